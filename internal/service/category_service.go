package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-news-gateway/internal/core/auth"
	"go-news-gateway/internal/core/cache"
	"go-news-gateway/internal/core/logger"
	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/fallback"
	"go-news-gateway/pkg/utils"
)

const categoriesKey = "categories:all"

var errCategoryExists = domain.Validation("category already exists")

type CategoryService struct {
	store    domain.ContentStore
	fallback *fallback.Provider
	cache    *cache.Cache // nil 表示不走缓存
	ttl      time.Duration
	log      *zap.Logger
}

func NewCategoryService(store domain.ContentStore, fb *fallback.Provider, c *cache.Cache, ttl time.Duration, l *zap.Logger) *CategoryService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CategoryService{store: store, fallback: fb, cache: c, ttl: ttl, log: l}
}

func (s *CategoryService) load(ctx context.Context) (*[]domain.Category, error) {
	var out []domain.Category
	err := s.store.Session(ctx, func(st domain.StoreSession) error {
		list, err := st.ListCategories()
		out = list
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Category{}
	}
	return &out, nil
}

// List 按名称升序；返回值 degraded 表示来自静态内容
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, bool, error) {
	var (
		list *[]domain.Category
		err  error
	)
	if s.cache != nil {
		list, err = cache.GetOrLoadJSON(s.cache, ctx, categoriesKey, s.ttl, s.load)
	} else {
		list, err = s.load(ctx)
	}
	if err == nil && list != nil {
		return *list, false, nil
	}
	if err == nil {
		return []domain.Category{}, false, nil
	}
	if errors.Is(err, domain.ErrUnreachable) {
		if s.fallback != nil {
			logger.FromContext(ctx, s.log).Warn("categories served from fallback", zap.Error(err))
			fallbackServed.WithLabelValues("categories").Inc()
			return s.fallback.Categories(), true, nil
		}
		return nil, false, domain.Unavailable(err)
	}
	return nil, false, domain.Internal("list categories failed", err)
}

func (s *CategoryService) Create(ctx context.Context, who auth.Identity, name string) (*domain.Category, error) {
	if err := auth.RequireAdmin(who); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("name is required")
	}
	c := &domain.Category{ID: utils.NewID(), Name: name}
	err := s.store.Session(ctx, func(st domain.StoreSession) error {
		dup, err := st.FindCategoryByName(name)
		if err != nil {
			return err
		}
		if dup != nil {
			return errCategoryExists
		}
		return st.CreateCategory(c)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConstraint) {
			return nil, errCategoryExists
		}
		mapped := writeErr("create category", err)
		if k := domain.KindOf(mapped); k == domain.KindUnavailable || k == domain.KindInternal {
			logger.FromContext(ctx, s.log).Error("create category failed", zap.Error(err))
		}
		return nil, mapped
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, categoriesKey); err != nil {
			logger.FromContext(ctx, s.log).Warn("invalidate category cache failed", zap.Error(err))
		}
	}
	logger.FromContext(ctx, s.log).Info("category created", zap.String("category_id", c.ID), zap.String("by", who.UserID))
	return c, nil
}
