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

type News struct{ svc *service.NewsService }

func NewNews(svc *service.NewsService) *News { return &News{svc: svc} }

func (h *News) Priority() int { return 10 }

// 分页参数按字符串收，非法值由服务层回落默认值而不是 400
type listQuery struct {
	CategoryID string `form:"categoryId"`
	Page       string `form:"page"`
	Limit      string `form:"limit"`
}

type newsBody struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"categoryId"`
}

func (b *newsBody) input() domain.NewsInput {
	return domain.NewsInput{Title: b.Title, Content: b.Content, CategoryID: b.CategoryID}
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type listOut struct {
	News       []domain.News `json:"news"`
	Pagination pagination    `json:"pagination"`
	Degraded   bool          `json:"degraded"`
}

type detailOut struct {
	domain.News
	Degraded bool `json:"degraded,omitempty"`
}

type newsOut struct {
	Message string       `json:"message"`
	News    *domain.News `json:"news,omitempty"`
}

func (h *News) Mount(public, admin *gin.RouterGroup) {
	ez.Register(public, ez.Action[listQuery, listOut]{
		Method: http.MethodGet,
		Path:   "/news",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQuery) (listOut, error) {
			page, err := h.svc.List(c.Request.Context(), service.ListQuery{
				CategoryID: in.CategoryID,
				Page:       ez.AtoiDefault(in.Page, 0),
				Limit:      ez.AtoiDefault(in.Limit, 0),
			})
			if err != nil {
				return listOut{}, err
			}
			if page.Degraded {
				resp.MarkDegraded(c)
			}
			items := page.Items
			if items == nil {
				items = []domain.News{}
			}
			return listOut{
				News: items,
				Pagination: pagination{
					Page:       page.Page,
					Limit:      page.Limit,
					Total:      page.Total,
					TotalPages: page.TotalPages,
				},
				Degraded: page.Degraded,
			}, nil
		},
	})

	ez.Register(public, ez.Action[struct{}, detailOut]{
		Method: http.MethodGet,
		Path:   "/news/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (detailOut, error) {
			n, degraded, err := h.svc.Detail(c.Request.Context(), c.Param("id"))
			if err != nil {
				return detailOut{}, err
			}
			if degraded {
				resp.MarkDegraded(c)
			}
			return detailOut{News: *n, Degraded: degraded}, nil
		},
	})

	ez.Register(admin, ez.Action[newsBody, newsOut]{
		Method: http.MethodPost,
		Path:   "/news",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *newsBody) (newsOut, error) {
			n, err := h.svc.Create(c.Request.Context(), mdw.IdentityFrom(c), in.input())
			if err != nil {
				return newsOut{}, err
			}
			return newsOut{Message: "news created", News: n}, nil
		},
	})

	ez.Register(admin, ez.Action[newsBody, newsOut]{
		Method: http.MethodPut,
		Path:   "/news/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *newsBody) (newsOut, error) {
			n, err := h.svc.Update(c.Request.Context(), mdw.IdentityFrom(c), c.Param("id"), in.input())
			if err != nil {
				return newsOut{}, err
			}
			return newsOut{Message: "news updated", News: n}, nil
		},
	})

	ez.Register(admin, ez.Action[struct{}, newsOut]{
		Method: http.MethodDelete,
		Path:   "/news/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (newsOut, error) {
			if err := h.svc.Delete(c.Request.Context(), mdw.IdentityFrom(c), c.Param("id")); err != nil {
				return newsOut{}, err
			}
			return newsOut{Message: "news deleted"}, nil
		},
	})
}
