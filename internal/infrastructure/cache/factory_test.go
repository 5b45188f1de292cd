package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriswap/backend/config"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := New(ctx, config.CacheConfig{Type: "memory"})
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &MemoryCache{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		server := miniredis.RunT(t)

		store, err := New(ctx, config.CacheConfig{Type: "redis", RedisURL: "redis://" + server.Addr()})
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &RedisCache{}, store)

		require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
		assert.True(t, server.Exists("nutriswap:k"))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := New(ctx, config.CacheConfig{Type: "memcached"})
		assert.Error(t, err)
	})
}
