package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nutriswap/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)

	cache, err := NewRedisCache(context.Background(), "redis://"+server.Addr(), "nutriswap:")
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	return cache, server
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not a url", "")
	assert.Error(t, err)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := NewRedisCache(context.Background(), "redis://"+addr, "")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cache, server := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "product:1", []byte(`{"code":"1"}`), time.Minute))

	assert.True(t, server.Exists("nutriswap:product:1"), "keys are prefixed")

	got, err := cache.Get(ctx, "product:1")
	require.NoError(t, err)
	assert.Equal(t, `{"code":"1"}`, string(got))

	exists, err := cache.Exists(ctx, "product:1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Delete(ctx, "product:1"))

	_, err = cache.Get(ctx, "product:1")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	exists, err = cache.Exists(ctx, "product:1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Expiry(t *testing.T) {
	cache, server := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "pool:snacks", []byte("[]"), time.Minute))
	server.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "pool:snacks")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_Unavailable(t *testing.T) {
	cache, server := newTestRedisCache(t)
	ctx := context.Background()

	server.Close()

	_, err := cache.Get(ctx, "anything")
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)

	err = cache.Set(ctx, "anything", []byte("x"), time.Minute)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}
