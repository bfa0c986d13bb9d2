package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	resp "go-news-gateway/internal/transport/http/response"
)

var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_http_requests_total",
			Help: "HTTP requests by route, status and whether static fallback content was served",
		},
		[]string{"route", "method", "status", "degraded"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 3, 10},
		}, []string{"route", "method"},
	)
)

func init() { prometheus.MustRegister(httpReqTotal, httpLatency) }

// Metrics 未命中路由统一记为 "unmatched"，防止任意路径撑爆标签基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		degraded := strconv.FormatBool(c.Writer.Header().Get(resp.HeaderDegraded) == "1")
		httpReqTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status()), degraded).Inc()
		httpLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
