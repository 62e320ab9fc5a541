package cache

import (
	"fmt"
	"sync"

	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Factory hands out caches backed by one shared Redis client, falling back to
// in-memory stores when Redis cannot be reached
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	connect               func(config.RedisConfig) (*redis.Client, error)

	once      sync.Once
	client    *redis.Client
	clientErr error
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// in-memory stores. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory. Redis is dialled lazily on first use.
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		connect:               NewRedisClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Client returns the shared Redis client, connecting on the first call
func (f *Factory) Client() (*redis.Client, error) {
	f.once.Do(func() {
		f.client, f.clientErr = f.connect(f.redisConfig)
	})
	return f.client, f.clientErr
}

// CreateStore returns a Redis store under keyPrefix, or an in-memory store
// when Redis is unavailable and fallback is allowed
func (f *Factory) CreateStore(keyPrefix string) (Store, error) {
	client, err := f.Client()
	if err == nil {
		f.logger.Info("using Redis cache", zap.String("prefix", keyPrefix))
		return NewRedisStore(client, keyPrefix), nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cache. "+
		"Cached data is not shared between instances.",
		zap.String("prefix", keyPrefix),
		zap.Error(err),
	)
	return NewInMemoryStore(), nil
}

// Close releases the Redis client when one was opened
func (f *Factory) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
