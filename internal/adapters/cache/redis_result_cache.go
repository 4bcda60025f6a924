package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"itinerary-optimizer-service/internal/ports"
)

// DefaultTTL is applied when callers pass a zero ttl to Set.
const DefaultTTL = 15 * time.Minute

// RedisResultCache implements ports.ResultCache on a Redis instance. Hit and
// miss counters are process-local; entry counts come from the server.
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

var _ ports.ResultCache = (*RedisResultCache)(nil)

// NewRedisResultCache connects to addr and verifies the connection with a
// ping before returning.
func NewRedisResultCache(addr, password string) (*RedisResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect %s: %w", addr, err)
	}

	return &RedisResultCache{client: client, ttl: DefaultTTL}, nil
}

// Get returns the cached payload for key, or found=false on a miss.
func (c *RedisResultCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.misses.Add(1)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	c.hits.Add(1)
	return data, true, nil
}

// Set stores value under key. A zero ttl falls back to DefaultTTL.
func (c *RedisResultCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Clear flushes the database and resets the local counters.
func (c *RedisResultCache) Clear(ctx context.Context) error {
	if err := c.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("redis flush: %w", err)
	}
	c.hits.Store(0)
	c.misses.Store(0)
	return nil
}

// Stats reports entry count and the process-local hit/miss counters.
func (c *RedisResultCache) Stats(ctx context.Context) (ports.CacheStats, error) {
	entries, err := c.client.DBSize(ctx).Result()
	if err != nil {
		return ports.CacheStats{}, fmt.Errorf("redis dbsize: %w", err)
	}

	hits := c.hits.Load()
	misses := c.misses.Load()
	stats := ports.CacheStats{Entries: entries, Hits: hits, Misses: misses}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats, nil
}

// Close releases the underlying connection pool.
func (c *RedisResultCache) Close() error {
	return c.client.Close()
}
