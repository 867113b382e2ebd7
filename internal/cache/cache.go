// Package cache holds the Redis-backed cache of the public shop listing.
// The map view reads the full approved-shop set on every load, so the
// serialized listing is kept hot and invalidated on lifecycle mutations.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const shopListKey = "shops:approved"

// ShopCache is a cache-aside wrapper for the serialized approved-shop
// listing. All failures degrade to a miss; the caller falls back to the
// database.
type ShopCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewShopCache(rdb *redis.Client, ttl time.Duration) *ShopCache {
	return &ShopCache{rdb: rdb, ttl: ttl}
}

// GetShops returns the cached listing JSON, or ok=false on a miss.
func (c *ShopCache) GetShops(ctx context.Context) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, shopListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Error("shop cache read failed", "error", err)
		}
		return nil, false
	}
	return data, true
}

// SetShops stores the listing JSON with the configured TTL.
func (c *ShopCache) SetShops(ctx context.Context, data []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, shopListKey, data, c.ttl).Err(); err != nil {
		slog.Error("shop cache write failed", "error", err)
	}
}

// Invalidate drops the cached listing. Called after any mutation that
// changes public shop visibility or content.
func (c *ShopCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, shopListKey).Err(); err != nil {
		slog.Error("shop cache invalidate failed", "error", err)
	}
}
