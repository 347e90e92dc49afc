// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mohit429/HasHBackend/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var userIDContextKey = contextKey("user_id")

// トークン拒否理由
const (
	RejectMissing   = "missing"
	RejectMalformed = "malformed"
	RejectInvalid   = "invalid"
)

// TokenVerifier はトークン検証に必要なインターフェース。
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RejectionRecorder はトークン拒否を理由別に記録するインターフェース。
type RejectionRecorder interface {
	RecordTokenRejection(reason string)
}

// NewAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証するミドルウェアを返す。
// 検証済みのユーザーIDをリクエストコンテキストに注入する。
// トークンの欠如・形式不正・検証失敗には401を返す。recorderはnilでもよい。
func NewAuthMiddleware(verifier TokenVerifier, recorder RejectionRecorder) func(next http.Handler) http.Handler {
	reject := func(w http.ResponseWriter, reason string) {
		if recorder != nil {
			recorder.RecordTokenRejection(reason)
		}
		WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				reject(w, RejectMissing)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				reject(w, RejectMalformed)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				slog.Debug("token verification failed", slog.String("error", err.Error()))
				reject(w, RejectInvalid)
				return
			}

			setLoggedUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

// bearerToken は"Bearer <token>"形式のヘッダー値からトークンを取り出す。
// スキーム名の大文字小文字は区別しない。
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
