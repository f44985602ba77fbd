package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boycottapp/weekly-boycott/pkg/logger"
)

// ListCache is a short-TTL Redis cache for read-path product listings.
// A nil client disables caching entirely; Redis being down degrades to a
// pass-through, never to an error on the read path.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a list cache with the given TTL
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{client: client, ttl: ttl}
}

// NewRedisClient connects to Redis; returns nil (cache disabled) when the
// address is empty or the server is unreachable.
func NewRedisClient(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", addr).Msg("Redis unavailable, caching disabled")
		return nil
	}
	return client
}

// Get unmarshals the cached value for key into dest. Returns false on miss
// or any cache failure.
func (c *ListCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		logger.Logger.Warn().Err(err).Str("key", key).Msg("Dropping undecodable cache entry")
		c.client.Del(ctx, key)
		return false
	}
	return true
}

// Set stores value under key for the cache TTL. Failures are logged only.
func (c *ListCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("key", key).Msg("Failed to write cache entry")
	}
}

// InvalidatePrefix drops all keys under the given prefix, used after a
// rotation changes the boycott list.
func (c *ListCache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, fmt.Sprintf("%s*", prefix), 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("prefix", prefix).Msg("Cache invalidation incomplete")
	}
}
