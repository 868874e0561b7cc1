package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLCache is a redis-backed implementation of the ranking cache contract.
// Expiry is handled by redis itself, so a read after the TTL is a plain miss.
// Used when the ranking caches need to be shared across instances; the
// default deployment uses the in-memory cache instead.
type TTLCache struct {
	client *redis.Client
}

func NewTTLCache(client *redis.Client) *TTLCache {
	return &TTLCache{
		client: client,
	}
}

func (c *TTLCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache entry from Redis: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	return true, nil
}

func (c *TTLCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cache entry in Redis: %w", err)
	}

	return nil
}
