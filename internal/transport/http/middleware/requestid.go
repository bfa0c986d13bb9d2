package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-news-gateway/internal/core/logger"
)

const KeyRequestID = "X-Request-ID"

// 外部传入的 id 过长就丢掉重新生成，避免日志被撑爆
const maxRequestIDLen = 128

// RequestID 生成/透传请求 id，并把带 rid 的 logger 放进 request ctx，服务层日志自动带上
func RequestID(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(KeyRequestID)
		if rid == "" || len(rid) > maxRequestIDLen {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(KeyRequestID, rid)
		c.Set(KeyRequestID, rid)
		ctx := logger.WithContext(c.Request.Context(), l.With(zap.String("rid", rid)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
