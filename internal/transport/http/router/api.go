package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-news-gateway/internal/core/auth"
	"go-news-gateway/internal/core/config"
	"go-news-gateway/internal/core/server"
	"go-news-gateway/internal/service"
	"go-news-gateway/internal/transport/http/handler"
	mdw "go-news-gateway/internal/transport/http/middleware"
)

type Deps struct {
	Log        *zap.Logger
	Gate       *auth.Gate
	News       *service.NewsService
	Categories *service.CategoryService
	Auth       *service.AuthService
	BasePath   string
	Limits     config.Limits
	CORS       []string
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log, d.CORS)

	// 中间件
	r.Use(
		mdw.RequestID(d.Log),
		mdw.AccessLog(d.Log),
		mdw.Metrics(),
	)
	r.Use(limiters(d.Limits)...)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group(d.BasePath)
	// 写接口统一走 admin 闸门
	admin := public.Group("")
	admin.Use(mdw.AuthJWT(d.Gate))

	MountAll(public, admin,
		handler.NewAuth(d.Auth),
		handler.NewNews(d.News),
		handler.NewCategories(d.Categories),
	)
	return r
}

// limiters 只挂配置了的背压中间件
func limiters(l config.Limits) []gin.HandlerFunc {
	var hs []gin.HandlerFunc
	if l.RPS > 0 {
		hs = append(hs, mdw.RateLimit(rate.Limit(l.RPS), max(l.Burst, 1)))
	}
	if l.PerIPRPS > 0 {
		hs = append(hs, mdw.RateLimitPerIP(rate.Limit(l.PerIPRPS), max(l.PerIPBurst, 1)))
	}
	if l.MaxConcurrent > 0 {
		hs = append(hs, mdw.ConcurrencyLimit(l.MaxConcurrent, l.MaxWait()))
	}
	if l.MaxBodyBytes > 0 {
		hs = append(hs, mdw.MaxBodyBytes(l.MaxBodyBytes))
	}
	if l.RequestTimeoutSec > 0 {
		hs = append(hs, mdw.Timeout(time.Duration(l.RequestTimeoutSec)*time.Second))
	}
	return hs
}
