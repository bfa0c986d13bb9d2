package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "go-news-gateway/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小，超出时 bind 失败，这里统一改写为 413
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			resp.Abort(c, resp.CodeTooLarge, "")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// IsTooLarge 供 binder 判断读 body 失败是否因为超限
func IsTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
