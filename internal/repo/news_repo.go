package repo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/feature/news"
)

func byCategory(categoryID string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if categoryID != "" {
			q = q.Where("category_id = ?", categoryID)
		}
		return q
	}
}

func (s *session) ListNews(f domain.NewsFilter) ([]domain.News, int64, error) {
	var total int64
	if err := s.tx.Model(&news.NewsModel{}).Scopes(byCategory(f.CategoryID)).Count(&total).Error; err != nil {
		return nil, 0, classify("count news", err)
	}

	var rows []news.NewsModel
	err := s.tx.Model(&news.NewsModel{}).
		Scopes(byCategory(f.CategoryID)).
		Preload("Author").Preload("Category").
		Order("created_at DESC").Order("id DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, classify("list news", err)
	}
	out := make([]domain.News, 0, len(rows))
	for i := range rows {
		out = append(out, toNews(&rows[i]))
	}
	return out, total, nil
}

func (s *session) FindNews(id string) (*domain.News, error) {
	var m news.NewsModel
	if err := s.tx.Preload("Author").Preload("Category").First(&m, "id = ?", id).Error; err != nil {
		return nil, classify("find news", err)
	}
	n := toNews(&m)
	return &n, nil
}

// IncrementViews 单条 UPDATE 完成自增，并发读不会丢计数
func (s *session) IncrementViews(id string) error {
	res := s.tx.Model(&news.NewsModel{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return classify("increment views", res.Error)
	}
	if res.RowsAffected == 0 {
		return &domain.StoreError{Fault: domain.FaultNotFound, Op: "increment views"}
	}
	return nil
}

func (s *session) CreateNews(n *domain.News) error {
	m := news.NewsModel{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		Views:      n.Views,
		AuthorID:   n.AuthorID,
		CategoryID: n.CategoryID,
		CreatedAt:  n.CreatedAt,
	}
	if err := s.tx.Omit(clause.Associations).Create(&m).Error; err != nil {
		return classify("create news", err)
	}
	n.CreatedAt = m.CreatedAt
	return nil
}

// UpdateNews 只改可写字段；created_at/views/author 不动
func (s *session) UpdateNews(id string, in domain.NewsInput) error {
	res := s.tx.Model(&news.NewsModel{}).Where("id = ?", id).Updates(map[string]any{
		"title":       in.Title,
		"content":     in.Content,
		"category_id": in.CategoryID,
	})
	if res.Error != nil {
		return classify("update news", res.Error)
	}
	return nil
}

func (s *session) DeleteNews(id string) error {
	res := s.tx.Where("id = ?", id).Delete(&news.NewsModel{})
	if res.Error != nil {
		return classify("delete news", res.Error)
	}
	if res.RowsAffected == 0 {
		return &domain.StoreError{Fault: domain.FaultNotFound, Op: "delete news"}
	}
	return nil
}
