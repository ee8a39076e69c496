// Package cache holds short-lived string caches shared by API instances.
package cache

import (
	"context"
	"time"

	"github.com/storelaunch/backend/internal/infrastructure/config"
)

// TextCache stores string values under string keys with a TTL
type TextCache interface {
	// Get returns the value and whether it was present and unexpired
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

// NewTextCache returns a Redis cache when a Redis host is configured and an
// in-memory one otherwise
func NewTextCache(cfg config.RedisConfig, keyPrefix string) (TextCache, error) {
	if cfg.Host == "" {
		return NewInMemoryTextCache(), nil
	}
	return NewRedisTextCache(cfg, keyPrefix)
}
