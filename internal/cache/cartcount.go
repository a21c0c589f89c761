package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartCount caches per-user cart quantities for the count endpoint.
// A nil cache is always a miss, so the handlers work without redis.
type CartCount struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCartCount(addr string) *CartCount {
	if addr == "" {
		return nil
	}
	return &CartCount{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: 5 * time.Minute,
	}
}

func key(userID uint) string { return fmt.Sprintf("cart_count:%d", userID) }

func (c *CartCount) Get(ctx context.Context, userID uint) (uint, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	n, err := c.rdb.Get(ctx, key(userID)).Uint64()
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func (c *CartCount) Set(ctx context.Context, userID uint, count uint) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, key(userID), uint64(count), c.ttl)
}

func (c *CartCount) Invalidate(ctx context.Context, userID uint) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, key(userID))
}

func (c *CartCount) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
