package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisResultCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	c, err := NewRedisResultCache(srv.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, srv
}

func TestRedisResultCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", []byte(`{"ok":true}`), 0))

	got, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"ok":true}`), got)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 0.5, stats.HitRate)
}

func TestRedisResultCacheExpiry(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	srv.FastForward(2 * time.Minute)

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisResultCacheDefaultTTL(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	// Still present just before the default window closes.
	srv.FastForward(DefaultTTL - time.Second)
	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)

	srv.FastForward(2 * time.Second)
	_, found, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisResultCacheClear(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	_, _, _ = c.Get(ctx, "a")

	require.NoError(t, c.Clear(ctx))

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Entries)
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
	assert.Zero(t, stats.HitRate)
}

func TestRedisResultCacheConnectError(t *testing.T) {
	_, err := NewRedisResultCache("127.0.0.1:1", "")
	require.Error(t, err)
}

func TestOptimizeKeyCanonical(t *testing.T) {
	base := OptimizeKey(40.4168, -3.7038, []string{"prado", "retiro"}, "Madrid", "2025-07-16", 9, "balanced")

	// Id order does not matter.
	reordered := OptimizeKey(40.4168, -3.7038, []string{"retiro", "prado"}, "Madrid", "2025-07-16", 9, "balanced")
	assert.Equal(t, base, reordered)

	// Sub-11m coordinate jitter collapses onto the same key.
	jittered := OptimizeKey(40.41680004, -3.70380004, []string{"prado", "retiro"}, "Madrid", "2025-07-16", 9, "balanced")
	assert.Equal(t, base, jittered)

	// Any semantic change produces a different key.
	assert.NotEqual(t, base, OptimizeKey(40.4168, -3.7038, []string{"prado", "retiro"}, "Madrid", "2025-07-16", 10, "balanced"))
	assert.NotEqual(t, base, OptimizeKey(40.4168, -3.7038, []string{"prado", "retiro"}, "Madrid", "2025-07-16", 9, "comfort"))
	assert.NotEqual(t, base, OptimizeKey(40.4168, -3.7038, []string{"prado"}, "Madrid", "2025-07-16", 9, "balanced"))
}

func TestOptimizeKeyDoesNotMutateInput(t *testing.T) {
	ids := []string{"retiro", "prado"}
	_ = OptimizeKey(0, 0, ids, "Madrid", "2025-07-16", 9, "balanced")
	assert.Equal(t, []string{"retiro", "prado"}, ids)
}

func TestTrafficKeyDistinct(t *testing.T) {
	a := TrafficKey(40.41, -3.70, 40.42, -3.71, "Madrid", 8, "weekday", 7)
	b := TrafficKey(40.41, -3.70, 40.42, -3.71, "Madrid", 8, "weekend", 7)
	assert.NotEqual(t, a, b)
}
