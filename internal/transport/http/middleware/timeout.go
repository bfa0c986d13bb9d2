package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-news-gateway/internal/core/logger"
	resp "go-news-gateway/internal/transport/http/response"
)

// Timeout 给请求 ctx 加截止时间，Session 会继承它。
// 超时后还没写响应回 504；已经写了（比如读接口降级成功）就只记日志
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}
		logger.FromContext(ctx, zap.NewNop()).Warn("request deadline exceeded",
			zap.String("route", c.FullPath()),
			zap.Duration("limit", d),
			zap.Bool("written", c.Writer.Written()),
		)
		if !c.Writer.Written() {
			resp.Abort(c, resp.CodeTimeout, "")
		}
	}
}
