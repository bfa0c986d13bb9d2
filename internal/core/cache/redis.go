package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type Cache struct {
	RDB *redis.Client
	// LoadTimeout 回源的超时；回源脱离发起者的 ctx，<=0 表示不限
	LoadTimeout time.Duration
	sf          singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

// GetOrLoad redis 不可用时直接回源，缓存只是加速层。
// 合并回源跑在独立 ctx 上：某个调用方断开只影响它自己，不会让排队的调用方一起失败
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	// 先读缓存
	if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	// single flight 合并回源
	ch := c.sf.DoChan(key, func() (any, error) {
		lctx := context.WithoutCancel(ctx)
		if c.LoadTimeout > 0 {
			var cancel context.CancelFunc
			lctx, cancel = context.WithTimeout(lctx, c.LoadTimeout)
			defer cancel()
		}
		b, e := load(lctx)
		if e != nil {
			return nil, e
		}
		_ = c.RDB.Set(lctx, key, b, ttl).Err()
		return b, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.([]byte), nil
	}
}

// Invalidate 删除 key；key 不存在不算错误
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.RDB.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (c *Cache) Close() error { return c.RDB.Close() }
