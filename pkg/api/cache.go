package api

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

const trafficCacheExpiration = 90 * time.Minute

// TrafficCache stores rendered traffic responses in Redis.
type TrafficCache struct {
	Cache *cache.Cache[string]
}

func NewTrafficCache(client *redis.Client) *TrafficCache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(trafficCacheExpiration))

	return &TrafficCache{
		Cache: cache.New[string](redisStore),
	}
}

func (t *TrafficCache) Get(ctx context.Context, key string) (string, error) {
	return t.Cache.Get(ctx, key)
}

func (t *TrafficCache) Set(ctx context.Context, key string, value string) error {
	return t.Cache.Set(ctx, key, value)
}
