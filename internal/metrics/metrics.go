// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute はどのルートにも一致しなかったリクエストのラベル値。
// 未知のパスでラベルのカーディナリティが増えないようにする。
const unmatchedRoute = "unmatched"

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	RecordAuthEvent(event, outcome string)
	RecordTokenRejection(reason string)
	RecordPostMutation(op string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	authEvents      *prometheus.CounterVec
	tokenRejections *prometheus.CounterVec
	postMutations   *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hashbackend_http_requests_total",
			Help: "ルート・メソッド・ステータス別のHTTPリクエスト数",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hashbackend_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hashbackend_auth_events_total",
			Help: "登録・サインインの結果別件数",
		}, []string{"event", "outcome"}),
		tokenRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hashbackend_token_rejections_total",
			Help: "理由別のトークン拒否数",
		}, []string{"reason"}),
		postMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hashbackend_post_mutations_total",
			Help: "成功した記事の作成・更新・削除の件数",
		}, []string{"op"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.authEvents,
		c.tokenRejections,
		c.postMutations,
	)

	return c
}

// RecordHTTPRequest はHTTPリクエストの件数と処理時間を記録する。
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthEvent は登録・サインインの結果を記録する。
func (c *Collector) RecordAuthEvent(event, outcome string) {
	c.authEvents.WithLabelValues(event, outcome).Inc()
}

// RecordTokenRejection はトークン拒否を理由別に記録する。
func (c *Collector) RecordTokenRejection(reason string) {
	c.tokenRejections.WithLabelValues(reason).Inc()
}

// RecordPostMutation は成功した記事操作を記録する。
func (c *Collector) RecordPostMutation(op string) {
	c.postMutations.WithLabelValues(op).Inc()
}

// Middleware はchiのルートパターン単位でHTTPメトリクスを記録するミドルウェアを返す。
// ルートパターンはルーティング完了後に確定するため、ハンドラー実行後に読み取る。
func (c *Collector) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			c.RecordHTTPRequest(r.Method, route, status, time.Since(start))
		})
	}
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
