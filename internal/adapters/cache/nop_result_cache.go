package cache

import (
	"context"
	"time"

	"itinerary-optimizer-service/internal/ports"
)

// NopResultCache misses on every read and discards every write. Used when no
// Redis address is configured so handlers need no nil checks.
type NopResultCache struct{}

var _ ports.ResultCache = NopResultCache{}

func (NopResultCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NopResultCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NopResultCache) Clear(context.Context) error { return nil }

func (NopResultCache) Stats(context.Context) (ports.CacheStats, error) {
	return ports.CacheStats{}, nil
}
