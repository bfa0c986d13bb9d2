package domain

import "errors"

// Kind 网关对外的错误分类，transport 层据此映射 HTTP 状态码
type Kind uint8

const (
	KindInternal Kind = iota
	KindAuthRequired
	KindForbidden
	KindValidation
	KindNotFound
	KindUnavailable
)

// Error 携带可对外展示的 Msg；Err 只进日志
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func AuthRequired(err error) error {
	return &Error{Kind: KindAuthRequired, Msg: "authentication required", Err: err}
}
func Forbidden(msg string) error  { return &Error{Kind: KindForbidden, Msg: msg} }
func Validation(msg string) error { return &Error{Kind: KindValidation, Msg: msg} }
func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Msg: msg} }
func Unavailable(err error) error {
	return &Error{Kind: KindUnavailable, Msg: "content store unavailable", Err: err}
}
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf 未分类的错误一律按 Internal 处理
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message 返回可对外的短消息，未分类错误不透出细节
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}
