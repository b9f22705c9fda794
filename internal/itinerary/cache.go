package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Cache stores generated itineraries. A ttl <= 0 means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) (Response, bool, error)
	Set(ctx context.Context, key string, value Response, ttl time.Duration) error
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (Response, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Response{}, false, nil
	}
	if err != nil {
		return Response{}, false, err
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Response{}, false, err
	}
	return resp, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value Response, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

// MemoryCache keeps encoded responses in process so callers never share
// slices with the cache.
type MemoryCache struct {
	items *gocache.Cache
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (Response, bool, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return Response{}, false, nil
	}
	var resp Response
	if err := json.Unmarshal(v.([]byte), &resp); err != nil {
		return Response{}, false, err
	}
	return resp, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value Response, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.items.Set(key, raw, ttl)
	return nil
}
