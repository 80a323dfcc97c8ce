// Package cli implements the pisica command-line interface.
//
// The commands build an appearance from flags (or interactively), compose
// it into a scene and hand the scene to the export service. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Build a cat from flags and export PNG, SVG or PDF
//   - edit: Dress the cat interactively in the terminal
//   - config: Show the effective settings
//   - cache: Manage the raster cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and export and cache events are logged
// through observability hooks registered at startup.
package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Exported 2 files (31ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logExportHooks reports export events at debug level.
type logExportHooks struct {
	logger *log.Logger
}

func (h *logExportHooks) OnExportStart(_ context.Context, formats []string) {
	h.logger.Debug("export started", "formats", strings.Join(formats, ","))
}

func (h *logExportHooks) OnRasterize(_ context.Context, rasterizer string, scale float64, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("rasterize failed", "rasterizer", rasterizer, "scale", scale, "err", err)
		return
	}
	h.logger.Debug("rasterized", "rasterizer", rasterizer, "scale", scale, "took", d.Round(time.Millisecond))
}

func (h *logExportHooks) OnExportComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "formats", strings.Join(formats, ","), "err", err)
		return
	}
	h.logger.Debug("export complete", "formats", strings.Join(formats, ","), "took", d.Round(time.Millisecond))
}

// logCacheHooks reports cache traffic at debug level.
type logCacheHooks struct {
	logger *log.Logger
}

func (h *logCacheHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logCacheHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logCacheHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}
