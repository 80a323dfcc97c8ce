package render

import (
	"context"
	"strings"

	"github.com/matzehuels/pisica/pkg/errors"
	"github.com/matzehuels/pisica/pkg/scene"
)

// Rasterizer names accepted by NewRasterizer.
const (
	RasterizerCanvas = "canvas"
	RasterizerRSVG   = "rsvg"
)

// Rasterizer paints a scene to PNG bytes at scale pixels per stage unit.
type Rasterizer interface {
	Name() string
	Rasterize(ctx context.Context, sc scene.Scene, scale float64) ([]byte, error)
}

// Rasterizers lists the available rasterizer names.
func Rasterizers() []string { return []string{RasterizerCanvas, RasterizerRSVG} }

// NewRasterizer returns the rasterizer called name. backdrop, when set, is
// painted under the scene; otherwise the stage is transparent.
func NewRasterizer(name, backdrop string) (Rasterizer, error) {
	switch strings.ToLower(name) {
	case RasterizerCanvas, "":
		return &Canvas{Backdrop: backdrop}, nil
	case RasterizerRSVG:
		return &RSVG{Backdrop: backdrop}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown rasterizer %q (must be one of: %s)", name, strings.Join(Rasterizers(), ", "))
	}
}

// RSVG rasterizes through the SVG document and rsvg-convert.
type RSVG struct {
	Backdrop string
}

func (r *RSVG) Name() string { return RasterizerRSVG }

func (r *RSVG) Rasterize(ctx context.Context, sc scene.Scene, scale float64) ([]byte, error) {
	var opts []SVGOption
	if r.Backdrop != "" {
		opts = append(opts, WithBackdrop(r.Backdrop))
	}
	return ToPNG(ctx, RenderSVG(sc, opts...), scale)
}
