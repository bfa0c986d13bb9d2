package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/semaphore"

	resp "go-news-gateway/internal/transport/http/response"
)

var (
	inflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "news_http_inflight_requests",
		Help: "Requests currently holding a concurrency slot",
	})
	shed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "news_http_shed_total",
		Help: "Requests rejected because no concurrency slot freed up in time",
	})
)

func init() { prometheus.MustRegister(inflight, shed) }

// ConcurrencyLimit 同时处理的请求数不超过 max，每个请求占一个 DB 连接的上限由此兜住。
// 排队最多等 wait（<=0 只受请求 ctx 约束），等不到回 503
func ConcurrencyLimit(max int64, wait time.Duration) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if wait > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, wait)
			defer cancel()
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			shed.Inc()
			resp.Abort(c, resp.CodeUnavailable, "server busy")
			return
		}
		inflight.Inc()
		defer func() {
			inflight.Dec()
			sem.Release(1)
		}()
		c.Next()
	}
}
