package cache

import (
	"context"
	"time"
)

// NullCache stands in for the raster cache when caching is off. Every
// lookup misses and every write is dropped, so exports always rasterize.
type NullCache struct {
	reason string
}

// NewNullCache returns a cache that stores nothing. The reason is kept for
// diagnostics, e.g. "--no-cache" or "disabled in config".
func NewNullCache(reason string) *NullCache {
	return &NullCache{reason: reason}
}

// Reason reports why caching is off.
func (c *NullCache) Reason() string {
	if c == nil || c.reason == "" {
		return "disabled"
	}
	return c.reason
}

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *NullCache) Delete(context.Context, string) error { return nil }

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
