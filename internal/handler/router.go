package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mohit429/HasHBackend/internal/middleware"
)

// HealthChecker はデータベース疎通確認のインターフェース。*sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	TokenVerifier     middleware.TokenVerifier
	RejectionRecorder middleware.RejectionRecorder
	CORSAllowedOrigin string

	// メトリクス（nilの場合は無効）
	MetricsMiddleware func(http.Handler) http.Handler
	MetricsHandler    http.Handler

	// ヘルスチェック（nilの場合はDB疎通確認を省略）
	HealthChecker HealthChecker

	// サービス
	AuthService AuthServiceInterface
	PostService PostServiceInterface
	UserService UserServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Recovery → Logging → SecurityHeaders → CORS → Metrics → (Auth)
//
// signup/signinとヘルスチェック・メトリクスは認証不要。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.MetricsMiddleware != nil {
		r.Use(deps.MetricsMiddleware)
	}

	authHandler := NewAuthHandler(deps.AuthService)
	postHandler := NewPostHandler(deps.PostService)
	userHandler := NewUserHandler(deps.UserService)

	r.Get("/health", healthHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// --- 認証不要のルート ---
		r.Post("/user/signup", authHandler.Signup)
		r.Post("/user/signin", authHandler.Signin)

		// --- 認証が必要なルート ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier, deps.RejectionRecorder))

			r.Get("/user/me", userHandler.Me)
			r.Post("/namewithauthId", userHandler.GetName)

			r.Post("/blog", postHandler.Create)
			r.Get("/blog/bulk", postHandler.List)
			r.Post("/Updateblog", postHandler.Update)
			r.Delete("/deleteblog", postHandler.Delete)
		})
	})

	return r
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// healthHandler はプロセスとデータベースの稼働状態を返すハンドラーを生成する。
func healthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.PingContext(ctx); err != nil {
			slog.Warn("health check failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Database: "down"})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "up"})
	}
}
