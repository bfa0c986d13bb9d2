package category

import "time"

type CategoryModel struct {
	ID   string `gorm:"primaryKey;type:varchar(36)"`
	Name string `gorm:"uniqueIndex;size:64;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CategoryModel) TableName() string { return "categories" }
