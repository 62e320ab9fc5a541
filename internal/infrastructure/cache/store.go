package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marketplace/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrMiss is returned by Store.Get when the key is absent or expired
var ErrMiss = errors.New("cache: miss")

// Store is a byte-oriented key/value cache with per-key expiry
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// GetOrLoad returns the cached JSON value under key, or calls load and caches
// its result for ttl. Cache failures are logged and never fail the call; load
// errors are returned as-is and nothing is cached.
func GetOrLoad[T any](ctx context.Context, store Store, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var zero T

	raw, err := store.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		logger.L(ctx).Warn("discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, ErrMiss):
		logger.L(ctx).Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	value, err := load(ctx)
	if err != nil {
		return zero, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return value, fmt.Errorf("encode cache value: %w", err)
	}
	if err := store.Set(ctx, key, encoded, ttl); err != nil {
		logger.L(ctx).Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}
