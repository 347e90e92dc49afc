package middleware

import "net/http"

// apiContentSecurityPolicy はJSONのみを返すAPI向けのCSP。どのリソースの読み込みも許可しない。
const apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

// NewSecurityHeadersMiddleware はJSON APIの応答にセキュリティ関連ヘッダーを付与するミドルウェアを返す。
// 応答にはトークンや記事本文が含まれるため、共有キャッシュ・ブラウザキャッシュに残さない。
func NewSecurityHeadersMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", apiContentSecurityPolicy)
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
