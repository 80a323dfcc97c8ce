package geometry

import (
	"math"
	"strconv"
	"strings"
)

// Point is a 2-D coordinate.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max Point
}

// W returns the rectangle width.
func (r Rect) W() float64 { return r.Max.X - r.Min.X }

// H returns the rectangle height.
func (r Rect) H() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Op is an absolute drawing operation produced by Path.Walk.
type Op int

const (
	OpMove Op = iota
	OpLine
	OpCubic
	OpClose
)

// Segment is one path command. Cmd uses SVG letters: upper case is absolute,
// lower case is relative to the current point.
type Segment struct {
	Cmd  byte
	Args []float64
}

// Path is an outline made of SVG-style segments.
type Path []Segment

func M(x, y float64) Segment { return Segment{'M', []float64{x, y}} }
func L(x, y float64) Segment { return Segment{'L', []float64{x, y}} }
func C(x1, y1, x2, y2, x, y float64) Segment {
	return Segment{'C', []float64{x1, y1, x2, y2, x, y}}
}
func RelM(dx, dy float64) Segment { return Segment{'m', []float64{dx, dy}} }
func RelL(dx, dy float64) Segment { return Segment{'l', []float64{dx, dy}} }
func RelC(dx1, dy1, dx2, dy2, dx, dy float64) Segment {
	return Segment{'c', []float64{dx1, dy1, dx2, dy2, dx, dy}}
}
func Z() Segment { return Segment{Cmd: 'Z'} }

// String returns SVG path data, e.g. "M 0 -40 C -35 -40 -48 -25 -52 -5 Z".
func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(s.Cmd)
		for _, a := range s.Args {
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatFloat(a, 'f', -1, 64))
		}
	}
	return sb.String()
}

// Walk resolves relative segments and calls fn with absolute points:
// one point for OpMove and OpLine, three for OpCubic, none for OpClose.
func (p Path) Walk(fn func(op Op, pts ...Point)) {
	var cur, start Point
	for _, s := range p {
		rel := Point{}
		if s.Cmd >= 'a' && s.Cmd <= 'z' {
			rel = cur
		}
		pt := func(i int) Point { return Point{s.Args[i] + rel.X, s.Args[i+1] + rel.Y} }

		switch s.Cmd {
		case 'M', 'm':
			cur = pt(0)
			start = cur
			fn(OpMove, cur)
		case 'L', 'l':
			cur = pt(0)
			fn(OpLine, cur)
		case 'C', 'c':
			c1, c2, end := pt(0), pt(2), pt(4)
			cur = end
			fn(OpCubic, c1, c2, end)
		case 'Z', 'z':
			cur = start
			fn(OpClose)
		}
	}
}

// Bounds returns the bounding box of all points including Bezier control
// points. It is the box SVG uses for objectBoundingBox gradients on these
// convex outlines closely enough for rendering.
func (p Path) Bounds() Rect {
	r := Rect{
		Min: Point{math.Inf(1), math.Inf(1)},
		Max: Point{math.Inf(-1), math.Inf(-1)},
	}
	p.Walk(func(_ Op, pts ...Point) {
		for _, q := range pts {
			r.Min.X = min(r.Min.X, q.X)
			r.Min.Y = min(r.Min.Y, q.Y)
			r.Max.X = max(r.Max.X, q.X)
			r.Max.Y = max(r.Max.Y, q.Y)
		}
	})
	if math.IsInf(r.Min.X, 1) {
		return Rect{}
	}
	return r
}

// MirrorX returns the path reflected across the vertical axis x = 0.
func (p Path) MirrorX() Path {
	out := make(Path, len(p))
	for i, s := range p {
		args := make([]float64, len(s.Args))
		for j, a := range s.Args {
			if j%2 == 0 && a != 0 {
				a = -a
			}
			args[j] = a
		}
		out[i] = Segment{Cmd: s.Cmd, Args: args}
	}
	return out
}
