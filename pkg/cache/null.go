package cache

import (
	"context"
	"time"
)

// NullCache discards writes and misses every read, so each lookup falls
// through to the UIUC server. The --no-cache flag wires it in, and the
// database tests use it to keep fetches observable.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache creates a cache that never stores anything.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (NullCache) Delete(ctx context.Context, key string) error { return nil }

func (NullCache) Close() error { return nil }
