package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/nutriswap/backend/config"
	"github.com/nutriswap/backend/internal/domain"
)

const redisKeyPrefix = "nutriswap:"

// Store is a cache repository that owns resources
type Store interface {
	domain.CacheRepository
	Close() error
}

// New builds the cache backend selected by cfg.Type
func New(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemoryCache(5 * time.Minute), nil
	case "redis":
		store, err := NewRedisCache(ctx, cfg.RedisURL, redisKeyPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}
