package middleware

import (
	"github.com/gin-gonic/gin"

	"go-news-gateway/internal/core/auth"
	resp "go-news-gateway/internal/transport/http/response"
)

const (
	KeyIdentity = "identity"
	KeyUserID   = "userId"
	KeyRole     = "role"
)

// AuthJWT 写接口入口：只有 admin 才能继续
func AuthJWT(g *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := g.Authorize(auth.BearerToken(c.GetHeader("Authorization")))
		if err != nil {
			resp.Fail(c, err)
			return
		}
		c.Set(KeyIdentity, id)
		c.Set(KeyUserID, id.UserID)
		c.Set(KeyRole, string(id.Role))
		c.Next()
	}
}

// IdentityFrom 未经过 AuthJWT 时返回零值，服务层会再拒绝
func IdentityFrom(c *gin.Context) auth.Identity {
	if v, ok := c.Get(KeyIdentity); ok {
		if id, ok := v.(auth.Identity); ok {
			return id
		}
	}
	return auth.Identity{}
}
