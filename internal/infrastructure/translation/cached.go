package translation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/storelaunch/backend/internal/domain/translation"
	"github.com/storelaunch/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

const refineKeyPrefix = "refine:"

// CachedRefiner remembers provider results so repeated instructions do not
// spend the provider's daily quota. Cache errors never fail a refine.
type CachedRefiner struct {
	next   translation.Refiner
	store  cache.TextCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRefiner wraps next with store
func NewCachedRefiner(next translation.Refiner, store cache.TextCache, ttl time.Duration, logger *zap.Logger) *CachedRefiner {
	return &CachedRefiner{next: next, store: store, ttl: ttl, logger: logger}
}

// Refine implements translation.Refiner
func (r *CachedRefiner) Refine(ctx context.Context, text string) (string, error) {
	key := refineKey(text)
	if v, ok, err := r.store.Get(ctx, key); err != nil {
		r.logger.Warn("Refine cache read failed", zap.Error(err))
	} else if ok {
		return v, nil
	}

	out, err := r.next.Refine(ctx, text)
	if err != nil {
		return "", err
	}
	if err := r.store.Set(ctx, key, out, r.ttl); err != nil {
		r.logger.Warn("Refine cache write failed", zap.Error(err))
	}
	return out, nil
}

func refineKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return refineKeyPrefix + hex.EncodeToString(sum[:])
}

var _ translation.Refiner = (*CachedRefiner)(nil)
