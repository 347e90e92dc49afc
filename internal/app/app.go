package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mohit429/HasHBackend/internal/auth"
	"github.com/mohit429/HasHBackend/internal/config"
	"github.com/mohit429/HasHBackend/internal/database"
	"github.com/mohit429/HasHBackend/internal/handler"
	"github.com/mohit429/HasHBackend/internal/logger"
	"github.com/mohit429/HasHBackend/internal/metrics"
	"github.com/mohit429/HasHBackend/internal/middleware"
	"github.com/mohit429/HasHBackend/internal/post"
	"github.com/mohit429/HasHBackend/internal/repository"
	"github.com/mohit429/HasHBackend/internal/security"
	"github.com/mohit429/HasHBackend/internal/user"
)

// defaultHealthcheckPort はSERVER_PORT未設定時にhealthcheckが接続するポート。
const defaultHealthcheckPort = "3000"

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, slog.LevelInfo)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定されたログレベルで再初期化
	logger.SetupDefault(w, logger.ParseLevel(cfg.LogLevel))

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = defaultHealthcheckPort
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL, poolConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. 起動時マイグレーション（AUTO_MIGRATE=trueの場合のみ）
	if cfg.AutoMigrate {
		if err := runMigrate(cfg); err != nil {
			return err
		}
	}

	// 3. ルーターの構築
	router := buildRouter(cfg, db)

	// 4. HTTPサーバーの起動
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server listen error: %w", err)
	case <-stop:
	}
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// buildRouter はリポジトリ・サービス・ハンドラーをワイヤリングしたルーターを返す。
func buildRouter(cfg *config.Config, db *sql.DB) http.Handler {
	// 1. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	postRepo := repository.NewPostgresPostRepo(db)

	// 2. メトリクス（無効の場合は記録先をnilのままにする）
	var (
		authRecorder      auth.EventRecorder
		postRecorder      post.MutationRecorder
		rejectionRecorder middleware.RejectionRecorder
		metricsMiddleware func(http.Handler) http.Handler
		metricsHandler    http.Handler
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		collector := metrics.NewCollector(reg)

		authRecorder = collector
		postRecorder = collector
		rejectionRecorder = collector
		metricsMiddleware = collector.Middleware()
		metricsHandler = metrics.Handler(reg)
	}

	// 3. ドメインサービスの初期化
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	sanitizer := security.NewContentSanitizer()

	authService := auth.NewService(userRepo, hasher, tokens, authRecorder)
	postService := post.NewService(postRepo, sanitizer, postRecorder)
	userService := user.NewService(userRepo)

	// 4. ルーターの構築
	return handler.NewRouter(&handler.RouterDeps{
		Logger:            slog.Default(),
		TokenVerifier:     tokens,
		RejectionRecorder: rejectionRecorder,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,

		MetricsMiddleware: metricsMiddleware,
		MetricsHandler:    metricsHandler,

		HealthChecker: db,

		AuthService: authService,
		PostService: postService,
		UserService: userService,
	})
}

// poolConfig はConfigからコネクションプール設定を組み立てる。
func poolConfig(cfg *config.Config) database.PoolConfig {
	return database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	version, err := database.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully",
		slog.Uint64("version", uint64(version)),
	)
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
