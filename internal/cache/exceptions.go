package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"atelier/internal/model"
)

const genKey = "exceptions:gen"

// ExceptionCache is an optional Redis read-through cache for the
// exceptions window the status endpoint fetches on every call. A nil
// cache or nil client disables it entirely.
type ExceptionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *ExceptionCache {
	return &ExceptionCache{rdb: rdb, ttl: ttl}
}

func (c *ExceptionCache) enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

// GetWindow returns the cached exception list for [from, to], if present.
func (c *ExceptionCache) GetWindow(ctx context.Context, from, to string) ([]model.Exception, bool) {
	if !c.enabled() {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, c.windowKey(ctx, from, to)).Result()
	if err != nil {
		return nil, false
	}
	var list []model.Exception
	if err := json.Unmarshal([]byte(val), &list); err != nil {
		return nil, false
	}
	return list, true
}

// SetWindow stores the exception list for [from, to] with the cache TTL.
func (c *ExceptionCache) SetWindow(ctx context.Context, from, to string, list []model.Exception) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, c.windowKey(ctx, from, to), data, c.ttl).Err()
}

// Invalidate bumps the generation counter so every cached window key goes
// stale at once. Called after any temporary-hours write.
func (c *ExceptionCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	_ = c.rdb.Incr(ctx, genKey).Err()
}

func (c *ExceptionCache) windowKey(ctx context.Context, from, to string) string {
	gen, err := c.rdb.Get(ctx, genKey).Int64()
	if err != nil {
		gen = 0
	}
	return fmt.Sprintf("exceptions:%d:%s:%s", gen, from, to)
}
