package news

import (
	"time"

	"go-news-gateway/internal/feature/category"
	"go-news-gateway/internal/feature/user"
)

type NewsModel struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Title      string `gorm:"size:255;not null"`
	Content    string `gorm:"type:text;not null"`
	Views      int64  `gorm:"not null;default:0"`
	AuthorID   string `gorm:"type:varchar(36);not null;index"`
	CategoryID string `gorm:"type:varchar(36);not null;index"`

	Author   user.UserModel         `gorm:"foreignKey:AuthorID"`
	Category category.CategoryModel `gorm:"foreignKey:CategoryID"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (NewsModel) TableName() string { return "news" }
