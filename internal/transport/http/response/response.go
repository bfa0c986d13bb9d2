package response

import (
	"github.com/gin-gonic/gin"

	"go-news-gateway/internal/domain"
)

// HeaderDegraded 标记响应来自静态兜底内容
const HeaderDegraded = "X-Content-Degraded"

type ErrBody struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) ErrBody {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return ErrBody{Code: code, Error: msg}
}

func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, Error(code, msg))
}

func StatusOf(k domain.Kind) int {
	switch k {
	case domain.KindAuthRequired:
		return CodeUnauthorized
	case domain.KindForbidden:
		return CodeForbidden
	case domain.KindValidation:
		return CodeBadRequest
	case domain.KindNotFound:
		return CodeNotFound
	case domain.KindUnavailable:
		return CodeUnavailable
	}
	return CodeServerError
}

// Fail 只把短消息写给客户端，完整错误挂到 c.Errors 由访问日志输出
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	code := StatusOf(domain.KindOf(err))
	Abort(c, code, domain.Message(err))
}

// MarkDegraded 所有兜底响应都带这个头
func MarkDegraded(c *gin.Context) {
	c.Header(HeaderDegraded, "1")
}
