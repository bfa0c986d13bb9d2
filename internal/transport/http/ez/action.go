// Package ez 把 "绑定入参 → 调用 → 统一错误映射 → 写 JSON" 收敛成一行注册
package ez

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	mdw "go-news-gateway/internal/transport/http/middleware"
	resp "go-news-gateway/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// 动作定义：I 入参，O 出参。鉴权交给分组中间件
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/news/:id"
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

func Register[I any, O any](g *gin.RouterGroup, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			_ = c.Error(bindErr)
			if mdw.IsTooLarge(bindErr) {
				resp.Abort(c, resp.CodeTooLarge, "")
				return
			}
			resp.Abort(c, resp.CodeBadRequest, "invalid request body")
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			resp.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		g.GET(a.Path, h)
	case http.MethodPut:
		g.PUT(a.Path, h)
	case http.MethodDelete:
		g.DELETE(a.Path, h)
	default: // 默认 POST
		g.POST(a.Path, h)
	}
}

// AtoiDefault 非数字或 <1 时用 def
func AtoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v > 0 {
		return v
	}
	return def
}
