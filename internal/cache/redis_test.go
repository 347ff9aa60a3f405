package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	opts := DefaultRedisCacheOptions()
	opts.URL = "redis://" + mr.Addr()
	opts.Prefix = "test:"
	opts.DefaultTTL = time.Minute

	c, err := NewRedisCache(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestRedisCache_Basic(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))
	assert.True(t, mr.Exists("test:key"), "keys must carry the prefix")
	assert.Equal(t, time.Minute, mr.TTL("test:key"))

	got, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", string(got))

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Delete(ctx, "key"))
	_, err = c.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)

	stats := c.Stats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 2, stats.Misses)
	assert.Equal(t, "redis", c.Name())
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_DeleteByPrefixKeepsOtherNamespaces(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("other:page:/portfolio/a", "foreign"))
	for _, k := range []string{"page:/portfolio/a", "page:/portfolio/b", "page:/"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}

	require.NoError(t, c.DeleteByPrefix(ctx, "page:/portfolio/"))

	assert.False(t, mr.Exists("test:page:/portfolio/a"))
	assert.False(t, mr.Exists("test:page:/portfolio/b"))
	assert.True(t, mr.Exists("test:page:/"))
	assert.True(t, mr.Exists("other:page:/portfolio/a"))

	require.NoError(t, c.Clear(ctx))
	assert.False(t, mr.Exists("test:page:/"))
	assert.True(t, mr.Exists("other:page:/portfolio/a"))
}

func TestRedisCache_Closed(t *testing.T) {
	c, _ := newTestRedis(t)
	require.NoError(t, c.Close())

	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCacheClosed)
}

func TestNewRedisCache_Errors(t *testing.T) {
	_, err := NewRedisCache(RedisCacheOptions{})
	assert.Error(t, err)

	_, err = NewRedisCache(RedisCacheOptions{URL: "not a url"})
	assert.Error(t, err)
}

func TestNew_SelectsBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mem := New(Config{DefaultTTL: time.Minute, MaxSize: 10}, logger)
	assert.Equal(t, "memory", mem.Name())

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rc := New(Config{RedisURL: "redis://" + mr.Addr(), DefaultTTL: time.Minute}, logger)
	defer func() { _ = rc.Close() }()
	assert.Equal(t, "redis", rc.Name())
}

func TestNew_FallsBackWhenRedisDown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	c := New(Config{RedisURL: "redis://" + addr, DefaultTTL: time.Minute, MaxSize: 10}, logger)
	assert.Equal(t, "memory", c.Name())
}
