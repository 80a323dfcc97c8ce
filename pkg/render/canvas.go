package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/pisica/pkg/errors"
	"github.com/matzehuels/pisica/pkg/geometry"
	"github.com/matzehuels/pisica/pkg/scene"
)

// Canvas rasterizes natively with fogleman/gg.
type Canvas struct {
	Backdrop string
}

func (c *Canvas) Name() string { return RasterizerCanvas }

// Rasterize draws sc and encodes it as PNG.
func (c *Canvas) Rasterize(ctx context.Context, sc scene.Scene, scale float64) ([]byte, error) {
	dc, err := c.draw(ctx, sc, scale)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Draw returns the painted stage as an image.
func (c *Canvas) Draw(ctx context.Context, sc scene.Scene, scale float64) (image.Image, error) {
	dc, err := c.draw(ctx, sc, scale)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (c *Canvas) draw(ctx context.Context, sc scene.Scene, scale float64) (*gg.Context, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidScale, "scale must be positive, got %g", scale)
	}
	w := int(math.Round(sc.Width * scale))
	h := int(math.Round(sc.Height * scale))
	dc := gg.NewContext(w, h)

	if c.Backdrop != "" {
		col, err := parseColor(c.Backdrop, 1)
		if err != nil {
			return nil, err
		}
		dc.SetColor(col)
		dc.Clear()
	}

	grads := make(map[string]scene.Gradient, len(sc.Gradients))
	for _, g := range sc.Gradients {
		grads[g.ID] = g
	}

	for _, l := range sc.Layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := painter{scale: scale, tr: l.Transform, grads: grads}
		if l.Opacity >= 1 {
			if err := p.layer(dc, l); err != nil {
				return nil, err
			}
			continue
		}
		group := gg.NewContext(w, h)
		if err := p.layer(group, l); err != nil {
			return nil, err
		}
		composite(dc, group, l.Opacity)
	}
	return dc, nil
}

// composite blends src over dst with a uniform alpha.
func composite(dst, src *gg.Context, alpha float64) {
	d, ok := dst.Image().(draw.Image)
	if !ok {
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(clamp01(alpha) * 255))})
	draw.DrawMask(d, d.Bounds(), src.Image(), image.Point{}, mask, image.Point{}, draw.Over)
}

// painter maps one layer into device pixels.
type painter struct {
	scale float64
	tr    scene.Transform
	grads map[string]scene.Gradient
}

func (p painter) pt(q geometry.Point) geometry.Point {
	s := p.tr.Apply(q)
	return geometry.Point{X: s.X * p.scale, Y: s.Y * p.scale}
}

func (p painter) size(v float64) float64 { return v * p.tr.Scale * p.scale }

func (p painter) layer(dc *gg.Context, l scene.Layer) error {
	for _, s := range l.Shapes {
		if err := p.shape(dc, s); err != nil {
			return err
		}
	}
	return nil
}

func (p painter) shape(dc *gg.Context, s scene.Shape) error {
	if s.Kind == scene.KindImage {
		p.image(dc, s)
		return nil
	}

	dc.ClearPath()
	switch s.Kind {
	case scene.KindPath:
		s.Path.Walk(func(op geometry.Op, pts ...geometry.Point) {
			switch op {
			case geometry.OpMove:
				q := p.pt(pts[0])
				dc.MoveTo(q.X, q.Y)
			case geometry.OpLine:
				q := p.pt(pts[0])
				dc.LineTo(q.X, q.Y)
			case geometry.OpCubic:
				a, b, e := p.pt(pts[0]), p.pt(pts[1]), p.pt(pts[2])
				dc.CubicTo(a.X, a.Y, b.X, b.Y, e.X, e.Y)
			case geometry.OpClose:
				dc.ClosePath()
			}
		})
	case scene.KindEllipse:
		c := p.pt(s.Center)
		dc.DrawEllipse(c.X, c.Y, p.size(s.RX), p.size(s.RY))
	case scene.KindRect:
		m := p.pt(s.Box.Min)
		dc.DrawRoundedRectangle(m.X, m.Y, p.size(s.Box.W()), p.size(s.Box.H()), p.size(s.Corner))
	}

	if !s.Fill.None() {
		if err := p.setPaint(dc, s, s.Fill, dc.SetFillStyle); err != nil {
			return err
		}
		dc.FillPreserve()
	}
	if !s.Stroke.None() {
		if err := p.setPaint(dc, s, s.Stroke, dc.SetStrokeStyle); err != nil {
			return err
		}
		dc.SetLineWidth(p.size(s.StrokeWidth))
		if s.RoundCap {
			dc.SetLineCapRound()
		} else {
			dc.SetLineCapButt()
		}
		dc.StrokePreserve()
	}
	dc.ClearPath()
	return nil
}

func (p painter) setPaint(dc *gg.Context, s scene.Shape, paint scene.Paint, set func(gg.Pattern)) error {
	if paint.Gradient == "" {
		col, err := parseColor(paint.Color, paint.Alpha*s.Opacity)
		if err != nil {
			return err
		}
		set(gg.NewSolidPattern(col))
		return nil
	}

	g, ok := p.grads[paint.Gradient]
	if !ok {
		return errors.New(errors.ErrCodeInternal, "unknown gradient %q", paint.Gradient)
	}
	b := s.Bounds()
	at := func(u, v float64) geometry.Point {
		return p.pt(geometry.Point{X: b.Min.X + u*b.W(), Y: b.Min.Y + v*b.H()})
	}

	var grad gg.Gradient
	switch g.Kind {
	case scene.Linear:
		a, z := at(g.X1, g.Y1), at(g.X2, g.Y2)
		grad = gg.NewLinearGradient(a.X, a.Y, z.X, z.Y)
	default:
		c := at(g.CX, g.CY)
		r := g.R * p.size((b.W()+b.H())/2)
		grad = gg.NewRadialGradient(c.X, c.Y, 0, c.X, c.Y, r)
	}
	for _, stop := range g.Stops {
		col, err := parseColor(stop.Color, stop.Opacity*paint.Alpha*s.Opacity)
		if err != nil {
			return err
		}
		grad.AddColorStop(stop.Offset, col)
	}
	set(grad)
	return nil
}

// image draws a photo centered in the shape box, scaled to fit.
func (p painter) image(dc *gg.Context, s scene.Shape) {
	if s.Image == nil {
		return
	}
	lo, hi := p.pt(s.Box.Min), p.pt(s.Box.Max)
	w, h := int(math.Round(hi.X-lo.X)), int(math.Round(hi.Y-lo.Y))
	if w <= 0 || h <= 0 {
		return
	}
	dc.Push()
	dc.Identity()
	dc.DrawImageAnchored(s.Image.Contain(w, h), int(math.Round((lo.X+hi.X)/2)), int(math.Round((lo.Y+hi.Y)/2)), 0.5, 0.5)
	dc.Pop()
}

func parseColor(hex string, alpha float64) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "color %q", hex)
	}
	return color.NRGBA{
		R: uint8(math.Round(clamp01(c.R) * 255)),
		G: uint8(math.Round(clamp01(c.G) * 255)),
		B: uint8(math.Round(clamp01(c.B) * 255)),
		A: uint8(math.Round(clamp01(alpha) * 255)),
	}, nil
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }
