package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/feature/category"
)

func (s *session) ListCategories() ([]domain.Category, error) {
	var rows []category.CategoryModel
	if err := s.tx.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, classify("list categories", err)
	}
	out := make([]domain.Category, 0, len(rows))
	for i := range rows {
		out = append(out, toCategory(&rows[i]))
	}
	return out, nil
}

func (s *session) FindCategory(id string) (*domain.Category, error) {
	var m category.CategoryModel
	err := s.tx.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("find category", err)
	}
	c := toCategory(&m)
	return &c, nil
}

// FindCategoryByName 精确匹配（区分大小写）；查询侧在 Go 里再比一次，唯一索引侧见 categoryNameDDL
func (s *session) FindCategoryByName(name string) (*domain.Category, error) {
	var rows []category.CategoryModel
	if err := s.tx.Where("name = ?", name).Find(&rows).Error; err != nil {
		return nil, classify("find category by name", err)
	}
	for i := range rows {
		if rows[i].Name == name {
			c := toCategory(&rows[i])
			return &c, nil
		}
	}
	return nil, nil
}

func (s *session) CreateCategory(c *domain.Category) error {
	m := category.CategoryModel{ID: c.ID, Name: c.Name}
	if err := s.tx.Create(&m).Error; err != nil {
		return classify("create category", err)
	}
	c.CreatedAt = m.CreatedAt
	return nil
}
