package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storelaunch/backend/internal/infrastructure/config"
)

// DefaultKeyPrefix namespaces cache keys in a shared Redis
const DefaultKeyPrefix = "storelaunch:cache:"

// RedisTextCache implements TextCache on Redis so every API instance
// shares the same entries
type RedisTextCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTextCache connects to Redis and pings it
func NewRedisTextCache(cfg config.RedisConfig, keyPrefix string) (*RedisTextCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisTextCacheWithClient(client, keyPrefix), nil
}

// NewRedisTextCacheWithClient wraps an existing client
func NewRedisTextCacheWithClient(client *redis.Client, keyPrefix string) *RedisTextCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisTextCache{client: client, keyPrefix: keyPrefix}
}

// Get reads a key; a missing key is not an error
func (c *RedisTextCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache key: %w", err)
	}
	return v, true, nil
}

// Set writes a key with a TTL. A non-positive ttl is a no-op.
func (c *RedisTextCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisTextCache) Close() error {
	return c.client.Close()
}

var _ TextCache = (*RedisTextCache)(nil)
