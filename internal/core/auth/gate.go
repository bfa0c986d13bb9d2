package auth

import (
	"strings"

	"go-news-gateway/internal/domain"
)

type Verifier interface {
	Verify(credential string) (Identity, error)
}

// Gate 只放行 admin，没有副作用
type Gate struct {
	v Verifier
}

func NewGate(v Verifier) *Gate { return &Gate{v: v} }

func (g *Gate) Authorize(credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, domain.AuthRequired(ErrMissingCredential)
	}
	id, err := g.v.Verify(credential)
	if err != nil {
		return Identity{}, domain.AuthRequired(err)
	}
	if err := RequireAdmin(id); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// RequireAdmin 供服务层在写操作入口复核
func RequireAdmin(id Identity) error {
	if id.UserID == "" {
		return domain.AuthRequired(ErrMissingCredential)
	}
	if !id.IsAdmin() {
		return domain.Forbidden("admin role required")
	}
	return nil
}

// BearerToken 取 "Bearer xxx" 里的 token，格式不对返回空串
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
