package repo

import (
	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/feature/category"
	"go-news-gateway/internal/feature/news"
	"go-news-gateway/internal/feature/user"
)

func toNews(m *news.NewsModel) domain.News {
	n := domain.News{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		Views:      m.Views,
		CreatedAt:  m.CreatedAt,
		AuthorID:   m.AuthorID,
		CategoryID: m.CategoryID,
	}
	if m.Author.ID != "" {
		n.Author = &domain.Author{Name: m.Author.Name}
	}
	if m.Category.ID != "" {
		n.Category = &domain.CategoryRef{ID: m.Category.ID, Name: m.Category.Name}
	}
	return n
}

func toCategory(m *category.CategoryModel) domain.Category {
	return domain.Category{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}
}

func toUser(m *user.UserModel) domain.User {
	role, ok := domain.ParseRole(m.Role)
	if !ok {
		role = domain.RoleReader
	}
	return domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         role,
		CreatedAt:    m.CreatedAt,
	}
}
