package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// WithContext 把带请求字段（rid 等）的 logger 挂到 ctx 上
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext 取请求级 logger；没有就用 def
func FromContext(ctx context.Context, def *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return def
}
