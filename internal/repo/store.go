package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"go-news-gateway/internal/domain"
	"go-news-gateway/internal/feature/category"
	"go-news-gateway/internal/feature/news"
	"go-news-gateway/internal/feature/user"
)

// Store 是 domain.ContentStore 的 gorm 实现
type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewStore timeout 作用于每个 Session，<=0 表示只受调用方 ctx 约束
func NewStore(db *gorm.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.UserModel{}, &category.CategoryModel{}, &news.NewsModel{}); err != nil {
		return err
	}
	if ddl := categoryNameDDL(db.Dialector.Name()); ddl != "" {
		return db.Exec(ddl).Error
	}
	return nil
}

// categoryNameDDL 分类名唯一索引必须区分大小写；MySQL 默认 _ci 排序规则不区分，改成 _bin。
// sqlite 默认 BINARY，postgres 默认确定性排序，都不用改
func categoryNameDDL(dialect string) string {
	if dialect != "mysql" {
		return ""
	}
	return "ALTER TABLE categories MODIFY name varchar(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL"
}

// MigrateUntil 迁移失败时按 every 重试，直到成功或 ctx 结束；onFail 每次失败回调一次
func MigrateUntil(ctx context.Context, db *gorm.DB, every time.Duration, onFail func(attempt int, err error)) error {
	t := time.NewTicker(every)
	defer t.Stop()
	for attempt := 1; ; attempt++ {
		err := Migrate(db.WithContext(ctx))
		if err == nil {
			return nil
		}
		if onFail != nil {
			onFail(attempt, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

func (s *Store) Session(ctx context.Context, fn func(domain.StoreSession) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	acquired := false
	err := s.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		acquired = true
		// NewDB 让每条链式查询都从干净的 Statement 开始，连接仍是同一个
		return fn(&session{tx: tx.Session(&gorm.Session{NewDB: true})})
	})
	if err != nil && !acquired {
		// 拿不到连接即视为不可达
		return &domain.StoreError{Fault: domain.FaultConnectivity, Op: "acquire connection", Err: err}
	}
	return err
}

// session 里所有查询共用同一个连接和 ctx
type session struct{ tx *gorm.DB }

var _ domain.ContentStore = (*Store)(nil)
var _ domain.StoreSession = (*session)(nil)
