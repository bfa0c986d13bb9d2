package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetOrLoadJSON 缓存里存 JSON。读到的旧数据解不开（结构变了）就删掉重新回源，而不是报错
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	encode := func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v)
	}
	b, err := c.GetOrLoad(ctx, key, ttl, encode)
	if err != nil {
		return nil, err
	}
	out, err := decode[T](b)
	if err == nil {
		return out, nil
	}
	_ = c.Invalidate(ctx, key)
	if b, err = c.GetOrLoad(ctx, key, ttl, encode); err != nil {
		return nil, err
	}
	return decode[T](b)
}

func decode[T any](b []byte) (*T, error) {
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
