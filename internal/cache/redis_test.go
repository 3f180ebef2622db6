package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client, DefaultTTL), mr
}

func TestGet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, mr.Set(cacheKey("storefront:cart"), `[{"id":1,"quantity":2}]`))

	data, err := cache.Get(context.Background(), "storefront:cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"quantity":2}]`, string(data))
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	data, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, data)
}

func TestSet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)

	err := cache.Set(context.Background(), "storefront:products", []byte(`[{"id":10,"stock":5}]`))
	require.NoError(t, err)

	stored, err := mr.Get(cacheKey("storefront:products"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":10,"stock":5}]`, stored)
}

func TestSet_WithTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, cache.Set(context.Background(), "storefront:cart", []byte(`[]`)))

	ttl := mr.TTL(cacheKey("storefront:cart"))
	assert.True(t, ttl >= 15*time.Minute, "TTL should be at least base TTL")
	assert.True(t, ttl <= 20*time.Minute, "TTL should be base + max jitter")
}

func TestNewRedisCache_DefaultTTL(t *testing.T) {
	cache := NewRedisCache(nil, 0)
	assert.Equal(t, DefaultTTL, cache.baseTTL)
}

func TestDelete_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(cacheKey("storefront:cart"), `[]`))
	assert.True(t, mr.Exists(cacheKey("storefront:cart")))

	require.NoError(t, cache.Delete(context.Background(), "storefront:cart"))

	assert.False(t, mr.Exists(cacheKey("storefront:cart")))
}

func TestDelete_NonExistentKey(t *testing.T) {
	cache, _ := setupTestRedis(t)

	assert.NoError(t, cache.Delete(context.Background(), "nonexistent"))
}

func TestCacheKey_Format(t *testing.T) {
	assert.Equal(t, "state:storefront:cart", cacheKey("storefront:cart"))
}
