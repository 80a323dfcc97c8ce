package render

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"

	"github.com/matzehuels/pisica/pkg/scene"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	backdrop string
	photo    bool
}

// WithBackdrop fills the stage with a solid color below every layer.
func WithBackdrop(hex string) SVGOption { return func(r *svgRenderer) { r.backdrop = hex } }

// WithoutPhoto leaves the photo underlay out of the document.
func WithoutPhoto() SVGOption { return func(r *svgRenderer) { r.photo = false } }

// RenderSVG writes sc as an SVG document sized to the stage.
func RenderSVG(sc scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{photo: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(sc.Width), num(sc.Height), num(sc.Width), num(sc.Height))

	renderDefs(&buf, sc.Gradients)
	if r.backdrop != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.backdrop)
	}
	for _, l := range sc.Layers {
		if l.Name == scene.LayerBackground && !r.photo {
			continue
		}
		renderLayer(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, grads []scene.Gradient) {
	if len(grads) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, g := range grads {
		switch g.Kind {
		case scene.Linear:
			fmt.Fprintf(buf, `    <linearGradient id="%s" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
				g.ID, num(g.X1), num(g.Y1), num(g.X2), num(g.Y2))
		case scene.Radial:
			fmt.Fprintf(buf, `    <radialGradient id="%s" cx="%s" cy="%s" r="%s">`+"\n",
				g.ID, num(g.CX), num(g.CY), num(g.R))
		}
		for _, s := range g.Stops {
			fmt.Fprintf(buf, `      <stop offset="%s" stop-color="%s"`, num(s.Offset), s.Color)
			if s.Opacity < 1 {
				fmt.Fprintf(buf, ` stop-opacity="%s"`, num(s.Opacity))
			}
			buf.WriteString("/>\n")
		}
		if g.Kind == scene.Linear {
			buf.WriteString("    </linearGradient>\n")
		} else {
			buf.WriteString("    </radialGradient>\n")
		}
	}
	buf.WriteString("  </defs>\n")
}

func renderLayer(buf *bytes.Buffer, l scene.Layer) {
	t := l.Transform
	fmt.Fprintf(buf, `  <g id="%s" transform="translate(%s %s) scale(%s)"`, l.Name, num(t.TX), num(t.TY), num(t.Scale))
	if l.Opacity < 1 {
		fmt.Fprintf(buf, ` opacity="%s"`, num(l.Opacity))
	}
	buf.WriteString(">\n")
	for _, s := range l.Shapes {
		buf.WriteString("    ")
		renderShape(buf, s)
		buf.WriteString("\n")
	}
	buf.WriteString("  </g>\n")
}

func renderShape(buf *bytes.Buffer, s scene.Shape) {
	switch s.Kind {
	case scene.KindPath:
		fmt.Fprintf(buf, `<path d="%s"`, s.Path.String())
	case scene.KindEllipse:
		if s.RX == s.RY {
			fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s"`, num(s.Center.X), num(s.Center.Y), num(s.RX))
		} else {
			fmt.Fprintf(buf, `<ellipse cx="%s" cy="%s" rx="%s" ry="%s"`, num(s.Center.X), num(s.Center.Y), num(s.RX), num(s.RY))
		}
	case scene.KindRect:
		fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s"`, num(s.Box.Min.X), num(s.Box.Min.Y), num(s.Box.W()), num(s.Box.H()))
		if s.Corner > 0 {
			fmt.Fprintf(buf, ` rx="%s"`, num(s.Corner))
		}
	case scene.KindImage:
		fmt.Fprintf(buf, `<image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid meet"`,
			num(s.Box.Min.X), num(s.Box.Min.Y), num(s.Box.W()), num(s.Box.H()))
		if s.Image != nil {
			fmt.Fprintf(buf, ` xlink:href="%s"`, html.EscapeString(s.Image.DataURI()))
		}
	}

	if s.Kind != scene.KindImage {
		writePaint(buf, "fill", s.Fill)
	}
	if !s.Stroke.None() {
		writePaint(buf, "stroke", s.Stroke)
		fmt.Fprintf(buf, ` stroke-width="%s"`, num(s.StrokeWidth))
		if s.RoundCap {
			buf.WriteString(` stroke-linecap="round"`)
		}
	}
	if s.Opacity < 1 {
		fmt.Fprintf(buf, ` opacity="%s"`, num(s.Opacity))
	}
	buf.WriteString("/>")
}

func writePaint(buf *bytes.Buffer, attr string, p scene.Paint) {
	switch {
	case p.Gradient != "":
		fmt.Fprintf(buf, ` %s="url(#%s)"`, attr, p.Gradient)
	case p.Color != "":
		fmt.Fprintf(buf, ` %s="%s"`, attr, p.Color)
		if p.Alpha < 1 {
			fmt.Fprintf(buf, ` %s-opacity="%s"`, attr, num(p.Alpha))
		}
	default:
		fmt.Fprintf(buf, ` %s="none"`, attr)
	}
}

// num formats f with the fewest digits that round-trip, capped at 4
// decimals.
func num(f float64) string {
	return strconv.FormatFloat(roundTo(f, 4), 'f', -1, 64)
}

func roundTo(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(f*p) / p
	if r == 0 {
		return 0
	}
	return r
}
