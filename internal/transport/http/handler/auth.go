package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/service"
	"go-news-gateway/internal/transport/http/ez"
)

type Auth struct{ svc *service.AuthService }

func NewAuth(svc *service.AuthService) *Auth { return &Auth{svc: svc} }

func (h *Auth) Priority() int { return 0 }

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginOut struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *Auth) Mount(public, _ *gin.RouterGroup) {
	ez.Register(public, ez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			token, u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{Token: token, User: u}, nil
		},
	})
}
