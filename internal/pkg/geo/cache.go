package geo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/ShopLedger/internal/pkg/cache"
)

// Cache stores resolved countries per client IP.
type Cache interface {
	Get(ctx context.Context, ip string) (country string, ok bool, err error)
	Set(ctx context.Context, ip, country string) error
}

const cacheKeyPrefix = "geo:country:"

// RedisCache keeps resolved countries in the shared Redis cache for a fixed TTL.
type RedisCache struct {
	ttl time.Duration
}

func NewRedisCache(ttl time.Duration) *RedisCache {
	return &RedisCache{ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, ip string) (string, bool, error) {
	val, err := cache.Get(ctx, cacheKeyPrefix+ip)
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, ip, country string) error {
	return cache.Set(ctx, cacheKeyPrefix+ip, country, c.ttl)
}
