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

func setupCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCacheWithClient(client, "test:"), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "dashboard:2026-07", []byte(`{"rows":[]}`), time.Minute))

	raw, err := c.Get(ctx, "dashboard:2026-07")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"rows":[]}`), raw)
}

func TestRedisCache_MissReadsNil(t *testing.T) {
	c, _ := setupCache(t)

	raw, err := c.Get(context.Background(), "dashboard:2026-07")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestRedisCache_TTLExpires(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	mr.FastForward(2 * time.Minute)

	raw, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	// Deleting again is fine
	require.NoError(t, c.Delete(ctx, "k"))

	raw, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestRedisCache_KeysArePrefixed(t *testing.T) {
	c, mr := setupCache(t)

	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("test:k"))
}
