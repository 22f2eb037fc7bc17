package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salecart-api/internal/infrastructure/cache"
	"github.com/jhoicas/salecart-api/pkg/config"
)

func newCache(t *testing.T, ttl time.Duration) (*cache.PriceCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewPriceCache(client, ttl, "test:"), mr
}

func TestPriceCache_GuardaYLee(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "price:vip:p1:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "price:vip:p1:1", decimal.RequireFromString("8.125")))
	assert.True(t, mr.Exists("test:price:vip:p1:1"))

	got, ok, err := c.Get(ctx, "price:vip:p1:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, decimal.RequireFromString("8.125").Equal(got))
}

func TestPriceCache_Expira(t *testing.T) {
	c, mr := newCache(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", decimal.NewFromInt(3)))
	mr.FastForward(31 * time.Second)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPriceCache_ValorCorrupto(t *testing.T) {
	c, mr := newCache(t, time.Minute)
	require.NoError(t, mr.Set("test:k", "no-es-numero"))

	_, _, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestPriceCache_NilNoFalla(t *testing.T) {
	var c *cache.PriceCache
	_, ok, err := c.Get(context.Background(), "k")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(context.Background(), "k", decimal.Zero))
}

func TestNewClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := cache.NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = client.Close()

	mr.Close()
	_, err = cache.NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	assert.Error(t, err)
}
