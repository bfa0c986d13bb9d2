package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/feature/user"
)

func (s *session) FindUserByEmail(email string) (*domain.User, error) {
	var m user.UserModel
	err := s.tx.First(&m, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("find user", err)
	}
	u := toUser(&m)
	return &u, nil
}

func (s *session) CreateUser(u *domain.User) error {
	m := user.UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
	}
	if err := s.tx.Create(&m).Error; err != nil {
		return classify("create user", err)
	}
	u.CreatedAt = m.CreatedAt
	return nil
}
