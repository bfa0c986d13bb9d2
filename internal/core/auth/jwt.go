package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-news-gateway/internal/domain"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
)

type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"` // "admin" / "reader"
	jwt.RegisteredClaims
}

// Identity 是校验通过后的强类型身份
type Identity struct {
	UserID string
	Role   domain.Role
}

func (i Identity) IsAdmin() bool { return i.Role == domain.RoleAdmin }

type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (j *JWTer) Issue(uid string, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: uid,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.Issuer,
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second), jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// Verify 过期、签名错误、结构不对统一归为 ErrInvalidCredential；原因只包在 err 链里给日志用
func (j *JWTer) Verify(credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, ErrMissingCredential
	}
	c, err := j.Parse(credential)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	role, ok := domain.ParseRole(c.Role)
	if !ok || c.UserID == "" {
		return Identity{}, fmt.Errorf("%w: bad claims shape", ErrInvalidCredential)
	}
	return Identity{UserID: c.UserID, Role: role}, nil
}
