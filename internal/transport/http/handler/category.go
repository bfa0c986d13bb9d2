package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/service"
	"go-news-gateway/internal/transport/http/ez"
	mdw "go-news-gateway/internal/transport/http/middleware"
	resp "go-news-gateway/internal/transport/http/response"
)

type Categories struct{ svc *service.CategoryService }

func NewCategories(svc *service.CategoryService) *Categories { return &Categories{svc: svc} }

func (h *Categories) Priority() int { return 20 }

type categoryBody struct {
	Name string `json:"name"`
}

type categoryOut struct {
	Message  string           `json:"message"`
	Category *domain.Category `json:"category"`
}

func (h *Categories) Mount(public, admin *gin.RouterGroup) {
	// 列表是裸数组，降级只能靠响应头标记
	ez.Register(public, ez.Action[struct{}, []domain.Category]{
		Method: http.MethodGet,
		Path:   "/categories",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Category, error) {
			list, degraded, err := h.svc.List(c.Request.Context())
			if err != nil {
				return nil, err
			}
			if degraded {
				resp.MarkDegraded(c)
			}
			return list, nil
		},
	})

	ez.Register(admin, ez.Action[categoryBody, categoryOut]{
		Method: http.MethodPost,
		Path:   "/categories",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *categoryBody) (categoryOut, error) {
			cat, err := h.svc.Create(c.Request.Context(), mdw.IdentityFrom(c), in.Name)
			if err != nil {
				return categoryOut{}, err
			}
			return categoryOut{Message: "category created", Category: cat}, nil
		},
	})
}
