// Package observability lets the CLI watch exports without the export
// service depending on a logger or metrics backend.
//
// The service reports through the process-wide hooks returned by [Export]
// and [Cache]. Both default to no-ops; a front end installs its own once at
// startup:
//
//	observability.SetExportHooks(&logExportHooks{logger: logger})
//	observability.SetCacheHooks(&logCacheHooks{logger: logger})
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// ExportHooks receives export lifecycle events. Formats are the normalized
// format list of the request.
type ExportHooks interface {
	OnExportStart(ctx context.Context, formats []string)
	// OnRasterize fires once per rasterization, whether or not it succeeded.
	// Cache hits do not rasterize and do not fire it.
	OnRasterize(ctx context.Context, rasterizer string, scale float64, duration time.Duration, err error)
	OnExportComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives raster cache traffic. kind names the cached artifact,
// currently always "raster".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, []string)                            {}
func (NoopExportHooks) OnRasterize(context.Context, string, float64, time.Duration, error) {}
func (NoopExportHooks) OnExportComplete(context.Context, []string, time.Duration, error)   {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	exportHooks atomic.Pointer[ExportHooks]
	cacheHooks  atomic.Pointer[CacheHooks]
)

// SetExportHooks installs h. A nil h is ignored.
func SetExportHooks(h ExportHooks) {
	if h != nil {
		exportHooks.Store(&h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.Store(&h)
	}
}

// Export returns the installed export hooks.
func Export() ExportHooks {
	if h := exportHooks.Load(); h != nil {
		return *h
	}
	return NoopExportHooks{}
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	if h := cacheHooks.Load(); h != nil {
		return *h
	}
	return NoopCacheHooks{}
}

// Reset uninstalls all hooks. Tests use it to undo SetExportHooks and
// SetCacheHooks.
func Reset() {
	exportHooks.Store(nil)
	cacheHooks.Store(nil)
}
