package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"go-news-gateway/internal/core/auth"
	"go-news-gateway/internal/core/logger"
	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/fallback"
	"go-news-gateway/pkg/utils"
)

type NewsOptions struct {
	Fallback     bool
	DefaultLimit int
	MaxLimit     int
}

type ListQuery struct {
	CategoryID string
	Page       int
	Limit      int
}

type NewsPage struct {
	Items      []domain.News
	Page       int
	Limit      int
	Total      int64
	TotalPages int
	Degraded   bool
}

type NewsService struct {
	store    domain.ContentStore
	fallback *fallback.Provider
	opts     NewsOptions
	log      *zap.Logger
}

func NewNewsService(store domain.ContentStore, fb *fallback.Provider, opts NewsOptions, l *zap.Logger) *NewsService {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.MaxLimit < opts.DefaultLimit {
		opts.MaxLimit = max(100, opts.DefaultLimit)
	}
	if fb == nil {
		opts.Fallback = false
	}
	return &NewsService{store: store, fallback: fb, opts: opts, log: l}
}

// normalize 非法或 <1 的分页参数回落到默认值，limit 封顶
func (s *NewsService) normalize(q ListQuery) (page, limit int) {
	page, limit = q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.opts.DefaultLimit
	}
	if limit > s.opts.MaxLimit {
		limit = s.opts.MaxLimit
	}
	// 防止 offset 溢出
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func (s *NewsService) degradable(err error) bool {
	return s.opts.Fallback && errors.Is(err, domain.ErrUnreachable)
}

func (s *NewsService) List(ctx context.Context, q ListQuery) (*NewsPage, error) {
	page, limit := s.normalize(q)
	out := &NewsPage{Page: page, Limit: limit}
	err := s.store.Session(ctx, func(st domain.StoreSession) error {
		items, total, err := st.ListNews(domain.NewsFilter{
			CategoryID: q.CategoryID,
			Offset:     (page - 1) * limit,
			Limit:      limit,
		})
		if err != nil {
			return err
		}
		out.Items, out.Total = items, total
		return nil
	})
	if err != nil {
		if s.degradable(err) {
			logger.FromContext(ctx, s.log).Warn("news list served from fallback", zap.Error(err))
			fallbackServed.WithLabelValues("news_list").Inc()
			return s.fallbackPage(limit), nil
		}
		if errors.Is(err, domain.ErrUnreachable) {
			return nil, domain.Unavailable(err)
		}
		return nil, domain.Internal("list news failed", err)
	}
	out.TotalPages = totalPages(out.Total, limit)
	return out, nil
}

// fallbackPage total/totalPages 按静态集合计算，page 固定为 1
func (s *NewsService) fallbackPage(limit int) *NewsPage {
	all := s.fallback.News()
	items := all
	if len(items) > limit {
		items = items[:limit]
	}
	total := int64(len(all))
	return &NewsPage{
		Items:      items,
		Page:       1,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages(total, limit),
		Degraded:   true,
	}
}

// Detail 读成功后在同一会话里原子 +1；自增失败只记日志。返回值 degraded 表示来自静态内容
func (s *NewsService) Detail(ctx context.Context, id string) (*domain.News, bool, error) {
	var n *domain.News
	err := s.store.Session(ctx, func(st domain.StoreSession) error {
		found, err := st.FindNews(id)
		if err != nil {
			return err
		}
		if err := st.IncrementViews(id); err != nil {
			logger.FromContext(ctx, s.log).Warn("increment views failed", zap.String("news_id", id), zap.Error(err))
		} else {
			found.Views++
		}
		n = found
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoRecord):
			return nil, false, domain.NotFound("news not found")
		case s.degradable(err):
			logger.FromContext(ctx, s.log).Warn("news detail served from fallback", zap.String("news_id", id), zap.Error(err))
			fallbackServed.WithLabelValues("news_detail").Inc()
			a := s.fallback.Article(id)
			return &a, true, nil
		case errors.Is(err, domain.ErrUnreachable):
			return nil, false, domain.Unavailable(err)
		}
		return nil, false, domain.Internal("get news failed", err)
	}
	return n, false, nil
}

// ensureCategory 引用的分类必须存在
func ensureCategory(st domain.StoreSession, id string) error {
	c, err := st.FindCategory(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Validation("category does not exist")
	}
	return nil
}

var errIncompleteNews = domain.Validation("title, content and categoryId are required")

func (s *NewsService) Create(ctx context.Context, who auth.Identity, in domain.NewsInput) (*domain.News, error) {
	if err := auth.RequireAdmin(who); err != nil {
		return nil, err
	}
	in = in.Trimmed()
	if !in.Complete() {
		return nil, errIncompleteNews
	}
	var created *domain.News
	err := s.store.Session(ctx, func(st domain.StoreSession) error {
		if err := ensureCategory(st, in.CategoryID); err != nil {
			return err
		}
		n := &domain.News{
			ID:         utils.NewID(),
			Title:      in.Title,
			Content:    in.Content,
			AuthorID:   who.UserID,
			CategoryID: in.CategoryID,
		}
		if err := st.CreateNews(n); err != nil {
			return err
		}
		var err error
		created, err = st.FindNews(n.ID)
		return err
	})
	if err != nil {
		return nil, s.logWrite(ctx, "create news", err)
	}
	logger.FromContext(ctx, s.log).Info("news created", zap.String("news_id", created.ID), zap.String("author_id", who.UserID))
	return created, nil
}

func (s *NewsService) Update(ctx context.Context, who auth.Identity, id string, in domain.NewsInput) (*domain.News, error) {
	if err := auth.RequireAdmin(who); err != nil {
		return nil, err
	}
	in = in.Trimmed()
	if !in.Complete() {
		return nil, errIncompleteNews
	}
	var updated *domain.News
	err := s.store.Session(ctx, func(st domain.StoreSession) error {
		if _, err := st.FindNews(id); err != nil {
			if errors.Is(err, domain.ErrNoRecord) {
				return domain.NotFound("news not found")
			}
			return err
		}
		if err := ensureCategory(st, in.CategoryID); err != nil {
			return err
		}
		if err := st.UpdateNews(id, in); err != nil {
			return err
		}
		var err error
		updated, err = st.FindNews(id)
		return err
	})
	if err != nil {
		return nil, s.logWrite(ctx, "update news", err)
	}
	logger.FromContext(ctx, s.log).Info("news updated", zap.String("news_id", id), zap.String("by", who.UserID))
	return updated, nil
}

func (s *NewsService) Delete(ctx context.Context, who auth.Identity, id string) error {
	if err := auth.RequireAdmin(who); err != nil {
		return err
	}
	err := s.store.Session(ctx, func(st domain.StoreSession) error {
		if err := st.DeleteNews(id); err != nil {
			if errors.Is(err, domain.ErrNoRecord) {
				return domain.NotFound("news not found")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return s.logWrite(ctx, "delete news", err)
	}
	logger.FromContext(ctx, s.log).Info("news deleted", zap.String("news_id", id), zap.String("by", who.UserID))
	return nil
}

func (s *NewsService) logWrite(ctx context.Context, op string, err error) error {
	mapped := writeErr(op, err)
	switch domain.KindOf(mapped) {
	case domain.KindUnavailable, domain.KindInternal:
		logger.FromContext(ctx, s.log).Error(op+" failed", zap.Error(err))
	}
	return mapped
}
