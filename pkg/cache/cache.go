// Package cache stores rendered export artifacts between runs.
//
// Rasterizing the stage is the slowest step of an export, and the same
// appearance is often exported repeatedly while a user tweaks only the
// output location or format list. Entries are keyed by the hash of the
// scene's SVG document together with the raster settings, so any visual
// change produces a new key and stale entries are simply never read again.
//
// Two implementations are provided: [FileCache] for CLI use and [NullCache]
// when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// RasterKey identifies a raster rendered from the SVG with the given hash.
	RasterKey(svgHash string, opts RasterKeyOpts) string
}

// RasterKeyOpts are the settings that change raster output besides the
// scene itself.
type RasterKeyOpts struct {
	Rasterizer string  `json:"rasterizer"`
	Scale      float64 `json:"scale"`
	Format     string  `json:"format"`
	Backdrop   string  `json:"backdrop,omitempty"`
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// RasterKey returns "raster:<sha256>" over the svg hash and options.
func (DefaultKeyer) RasterKey(svgHash string, opts RasterKeyOpts) string {
	return hashKey("raster", svgHash, opts)
}
