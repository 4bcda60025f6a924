package ports

import (
	"context"
	"time"
)

// CacheStats reports hit/miss counters for the boundary result cache.
type CacheStats struct {
	Entries int64   `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Port: boundary-owned response cache keyed by the full request tuple.
// The optimization engine never sees this; only HTTP handlers do.
type ResultCache interface {
	// Get returns the cached payload and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a payload under key. A zero ttl means the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Clear drops all cached entries.
	Clear(ctx context.Context) error

	// Stats returns current counters.
	Stats(ctx context.Context) (CacheStats, error)
}
