// Package export writes a composed scene to image files.
//
// The Service renders the requested formats, caches rasters by the content
// of the scene, and writes one file per format. Export blocks until every
// file is written; Request runs the same work in the background and reports
// on a channel, which is how interactive callers stay responsive.
//
//	svc := export.NewService(cache, nil, logger)
//	res, err := svc.Export(ctx, sc, export.Options{Formats: []string{"png"}})
//
// A scene with no layers has nothing to export. It yields a skipped result,
// not an error.
package export

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pisica/pkg/cache"
	"github.com/matzehuels/pisica/pkg/errors"
	"github.com/matzehuels/pisica/pkg/observability"
	"github.com/matzehuels/pisica/pkg/render"
	"github.com/matzehuels/pisica/pkg/scene"
)

// Artifact is one written file.
type Artifact struct {
	Format string
	Path   string
	Size   int
	Cached bool
}

// Result summarizes an export.
type Result struct {
	Artifacts []Artifact
	Skipped   bool
	Duration  time.Duration
	// Err is set only on results delivered by Request.
	Err error
}

// Service renders and writes exports. It is safe for concurrent use as
// long as the cache is.
type Service struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Rasterizer resolves a rasterizer by name. Tests swap it out.
	Rasterizer func(name, backdrop string) (render.Rasterizer, error)
}

// NewService creates a service with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, caching is off.
func NewService(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Service {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache("no cache configured")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		Cache:      c,
		Keyer:      keyer,
		Logger:     logger,
		Rasterizer: render.NewRasterizer,
	}
}

// Export renders sc in every requested format and writes the files.
func (s *Service) Export(ctx context.Context, sc scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if sc.Empty() {
		s.Logger.Debug("nothing to export")
		return &Result{Skipped: true}, nil
	}

	start := time.Now()
	observability.Export().OnExportStart(ctx, opts.Formats)

	res, err := s.export(ctx, sc, opts)
	res.Duration = time.Since(start)

	observability.Export().OnExportComplete(ctx, opts.Formats, res.Duration, err)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("exported", "files", len(res.Artifacts), "duration", res.Duration)
	return res, nil
}

// Request starts Export in the background. The returned channel receives
// exactly one Result and is then closed.
func (s *Service) Request(ctx context.Context, sc scene.Scene, opts Options) <-chan Result {
	done := make(chan Result, 1)
	go func() {
		defer close(done)
		res, err := s.Export(ctx, sc, opts)
		if err != nil {
			done <- Result{Err: err}
			return
		}
		done <- *res
	}()
	return done
}

// Render produces the bytes for each requested format without writing
// anything.
func (s *Service) Render(ctx context.Context, sc scene.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, _, err := s.render(ctx, sc, f, opts)
		if err != nil {
			return nil, err
		}
		out[f] = data
	}
	return out, nil
}

func (s *Service) export(ctx context.Context, sc scene.Scene, opts Options) (*Result, error) {
	res := &Result{}
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return res, errors.Wrap(errors.ErrCodeExportFailed, err, "create %s", opts.Dir)
		}
	}

	for _, f := range opts.Formats {
		data, cached, err := s.render(ctx, sc, f, opts)
		if err != nil {
			return res, err
		}
		path := opts.Path(f)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return res, errors.Wrap(errors.ErrCodeExportFailed, err, "write %s", path)
		}
		s.Logger.Debug("wrote artifact", "format", f, "path", path, "bytes", len(data), "cached", cached)
		res.Artifacts = append(res.Artifacts, Artifact{Format: f, Path: path, Size: len(data), Cached: cached})
	}
	return res, nil
}

func (s *Service) render(ctx context.Context, sc scene.Scene, format string, opts Options) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var svgOpts []render.SVGOption
	if opts.Backdrop != "" {
		svgOpts = append(svgOpts, render.WithBackdrop(opts.Backdrop))
	}
	svg := render.RenderSVG(sc, svgOpts...)

	switch format {
	case FormatSVG:
		return svg, false, nil
	case FormatPNG:
		key := s.Keyer.RasterKey(cache.Digest(svg), cache.RasterKeyOpts{
			Rasterizer: opts.Rasterizer, Scale: opts.Scale, Format: format, Backdrop: opts.Backdrop,
		})
		return s.cached(ctx, key, func() ([]byte, error) { return s.rasterize(ctx, sc, opts) })
	case FormatPDF:
		key := s.Keyer.RasterKey(cache.Digest(svg), cache.RasterKeyOpts{Rasterizer: render.RasterizerRSVG, Format: format})
		return s.cached(ctx, key, func() ([]byte, error) { return render.ToPDF(ctx, svg) })
	default:
		return nil, false, ValidateFormat(format)
	}
}

func (s *Service) rasterize(ctx context.Context, sc scene.Scene, opts Options) ([]byte, error) {
	r, err := s.Rasterizer(opts.Rasterizer, opts.Backdrop)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	data, err := r.Rasterize(ctx, sc, opts.Scale)
	observability.Export().OnRasterize(ctx, r.Name(), opts.Scale, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "rasterize with %s", r.Name())
	}
	s.Logger.Debug("rasterized", "rasterizer", r.Name(), "scale", opts.Scale, "duration", time.Since(start))
	return data, nil
}

// cached returns the entry for key or computes and stores it. Cache
// failures are logged and never fail the export.
func (s *Service) cached(ctx context.Context, key string, compute func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok, err := s.Cache.Get(ctx, key); err != nil {
		s.Logger.Warn("cache read failed", "error", err)
	} else if ok {
		observability.Cache().OnCacheHit(ctx, "raster")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "raster")

	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	if err := s.Cache.Set(ctx, key, data, 0); err != nil {
		s.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "raster", len(data))
	}
	return data, false, nil
}
