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

type doc struct {
	Date  string   `json:"date"`
	Items []string `json:"items"`
}

func newRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheFromClient(client, "test"), mr
}

func backends(t *testing.T) map[string]Service {
	mem := NewMemoryCache(WithMemoryCleanup(time.Minute))
	t.Cleanup(func() { _ = mem.Close() })

	rc, _ := newRedis(t)
	rc2, _ := newRedis(t)
	return map[string]Service{
		"memory":  mem,
		"redis":   rc,
		"layered": NewLayeredCache(rc2),
	}
}

func TestServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			in := doc{Date: "2026-10-19", Items: []string{"NVDA", "AMD"}}
			require.NoError(t, c.Set(ctx, "report:2026-10-19", in, time.Hour))

			var out doc
			require.NoError(t, c.Get(ctx, "report:2026-10-19", &out))
			assert.Equal(t, in, out)

			ok, err := c.Exists(ctx, "report:2026-10-19")
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, c.Set(ctx, "plain", "hello", time.Hour))
			var s string
			require.NoError(t, c.Get(ctx, "plain", &s))
			assert.Equal(t, "hello", s)

			require.NoError(t, c.Delete(ctx, "report:2026-10-19"))
			assert.ErrorIs(t, c.Get(ctx, "report:2026-10-19", &out), ErrCacheMiss)
		})
	}
}

func TestServiceTryLock(t *testing.T) {
	ctx := context.Background()
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := c.TryLock(ctx, "lock:a", time.Hour)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = c.TryLock(ctx, "lock:a", time.Hour)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, c.Unlock(ctx, "lock:a"))
			ok, err = c.TryLock(ctx, "lock:a", time.Hour)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestRedisKeysArePrefixedAndExpire(t *testing.T) {
	ctx := context.Background()
	rc, mr := newRedis(t)

	ok, err := rc.TryLock(ctx, "delivery:2026-10-19", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("test:delivery:2026-10-19"))

	mr.FastForward(2 * time.Minute)
	ok, err = rc.TryLock(ctx, "delivery:2026-10-19", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	var s string
	assert.ErrorIs(t, mc.Get(ctx, "k", &s), ErrCacheMiss)
}

func TestMemoryEvictsWhenFull(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", "1", time.Hour))
	require.NoError(t, mc.Set(ctx, "b", "2", time.Hour))
	require.NoError(t, mc.Set(ctx, "c", "3", time.Hour))

	mc.mutex.Lock()
	n := len(mc.data)
	mc.mutex.Unlock()
	assert.Equal(t, 2, n)
}

func TestLayeredReadsThroughToRedis(t *testing.T) {
	ctx := context.Background()
	rc, _ := newRedis(t)
	lc := NewLayeredCache(rc)

	require.NoError(t, rc.Set(ctx, "k", doc{Date: "d"}, time.Hour))

	var out doc
	require.NoError(t, lc.Get(ctx, "k", &out))
	assert.Equal(t, "d", out.Date)

	var raw []byte
	require.NoError(t, lc.memCache.Get(ctx, "k", &raw), "value promoted to L1")
}
