package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"go-news-gateway/internal/core/auth"
	"go-news-gateway/internal/core/logger"
	"go-news-gateway/internal/domain"
	"go-news-gateway/pkg/utils"
)

var errBadLogin = errors.New("email or password mismatch")

type AuthService struct {
	store domain.ContentStore
	jwt   *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(store domain.ContentStore, j *auth.JWTer, l *zap.Logger) *AuthService {
	return &AuthService{store: store, jwt: j, log: l}
}

// Login 邮箱或密码不对统一回 401，不区分哪个错
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.Validation("email and password are required")
	}
	var u *domain.User
	err := s.store.Session(ctx, func(st domain.StoreSession) error {
		found, err := st.FindUserByEmail(email)
		u = found
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnreachable) {
			return "", nil, domain.Unavailable(err)
		}
		return "", nil, domain.Internal("login failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, &domain.Error{Kind: domain.KindAuthRequired, Msg: "invalid email or password", Err: errBadLogin}
	}
	token, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, domain.Internal("issue token failed", err)
	}
	logger.FromContext(ctx, s.log).Info("login", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return token, u, nil
}
