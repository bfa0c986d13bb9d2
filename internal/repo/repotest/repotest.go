// Package repotest 提供基于内存 sqlite 的 Store，供各层测试复用
package repotest

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-news-gateway/internal/core/database"
	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/repo"
	"go-news-gateway/pkg/utils"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Open 每个测试一个独立的内存库（shared cache，只要池里有连接就不会丢）
func Open(t *testing.T) (*gorm.DB, *repo.Store) {
	t.Helper()
	name := unsafeChars.ReplaceAllString(t.Name(), "_") + "_" + uuid.NewString()[:8]
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name),
		MaxIdleConns: 4,
		LogLevel:     "silent",
		LogWriter:    io.Discard,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db, repo.NewStore(db, 2*time.Second)
}

func run(t *testing.T, st domain.ContentStore, fn func(domain.StoreSession) error) {
	t.Helper()
	if err := st.Session(context.Background(), fn); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func SeedUser(t *testing.T, st domain.ContentStore, email, password string, role domain.Role) domain.User {
	t.Helper()
	u := domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Name:         "user " + email,
		PasswordHash: utils.HashPassword(password),
		Role:         role,
	}
	run(t, st, func(s domain.StoreSession) error { return s.CreateUser(&u) })
	return u
}

func SeedCategory(t *testing.T, st domain.ContentStore, name string) domain.Category {
	t.Helper()
	c := domain.Category{ID: utils.NewID(), Name: name}
	run(t, st, func(s domain.StoreSession) error { return s.CreateCategory(&c) })
	return c
}

func SeedNews(t *testing.T, st domain.ContentStore, authorID, categoryID, title string, createdAt time.Time) domain.News {
	t.Helper()
	n := domain.News{
		ID:         utils.NewID(),
		Title:      title,
		Content:    "content of " + title,
		AuthorID:   authorID,
		CategoryID: categoryID,
		CreatedAt:  createdAt,
	}
	run(t, st, func(s domain.StoreSession) error { return s.CreateNews(&n) })
	return n
}

// Views 直接读库里的计数，绕过服务层
func Views(t *testing.T, st domain.ContentStore, id string) int64 {
	t.Helper()
	var views int64
	run(t, st, func(s domain.StoreSession) error {
		n, err := s.FindNews(id)
		if err != nil {
			return err
		}
		views = n.Views
		return nil
	})
	return views
}
