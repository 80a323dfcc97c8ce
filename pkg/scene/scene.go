// Package scene derives the layered drawing of the cat from an appearance.
//
// A Scene is a flat list of named layers in paint order, each a set of simple
// shapes placed by a translate+scale transform, plus the gradients the shapes
// reference. It carries no behavior of its own: render sinks walk it to
// produce SVG or pixels.
package scene

import (
	"github.com/matzehuels/pisica/pkg/geometry"
	"github.com/matzehuels/pisica/pkg/photo"
)

// Stage dimensions in pixels. Drag offsets are measured in the same units.
const (
	StageWidth  = 720
	StageHeight = 600
)

// Layer names in paint order. Accessory layers use the accessory key.
const (
	LayerBackground = "background"
	LayerShadow     = "shadow"
	LayerEars       = "ears"
	LayerEarInner   = "ear-inner"
	LayerHead       = "head"
	LayerMask       = "mask"
	LayerCheekFuzz  = "cheek-fuzz"
	LayerMuzzle     = "muzzle"
	LayerNose       = "nose"
	LayerMouth      = "mouth"
	LayerWhiskers   = "whiskers"
	LayerEyes       = "eyes"
	LayerHat        = "hat"
	LayerBow        = "bow"
	LayerScarf      = "scarf"
	LayerCollar     = "collar"
)

// Scene is a composed drawing.
type Scene struct {
	Width, Height float64
	Background    *photo.Image
	Layers        []Layer
	Gradients     []Gradient
}

// Empty reports whether there is nothing to draw.
func (s Scene) Empty() bool { return len(s.Layers) == 0 }

// Index returns the paint position of the named layer, or -1.
func (s Scene) Index(name string) int {
	for i, l := range s.Layers {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// Layer returns the named layer.
func (s Scene) Layer(name string) (Layer, bool) {
	if i := s.Index(name); i >= 0 {
		return s.Layers[i], true
	}
	return Layer{}, false
}

// Gradient returns the gradient with the given id.
func (s Scene) Gradient(id string) (Gradient, bool) {
	for _, g := range s.Gradients {
		if g.ID == id {
			return g, true
		}
	}
	return Gradient{}, false
}

// Names returns the layer names in paint order.
func (s Scene) Names() []string {
	names := make([]string, len(s.Layers))
	for i, l := range s.Layers {
		names[i] = l.Name
	}
	return names
}

// Layer is a group of shapes sharing a transform and a group opacity.
// Frame, when non-empty, is the layer's own coordinate box (an accessory's
// view box) and is what pointer hits are tested against.
type Layer struct {
	Name      string
	Transform Transform
	Opacity   float64
	Frame     geometry.Rect
	Shapes    []Shape
}

// Bounds returns the layer frame in stage coordinates.
func (l Layer) Bounds() geometry.Rect {
	return geometry.Rect{Min: l.Transform.Apply(l.Frame.Min), Max: l.Transform.Apply(l.Frame.Max)}
}

// Transform maps layer coordinates to stage pixels: p' = p*Scale + (TX, TY).
type Transform struct {
	TX, TY float64
	Scale  float64
}

// Apply maps p into stage coordinates.
func (t Transform) Apply(p geometry.Point) geometry.Point {
	return geometry.Point{X: t.TX + t.Scale*p.X, Y: t.TY + t.Scale*p.Y}
}

// Invert maps a stage point back into layer coordinates.
func (t Transform) Invert(p geometry.Point) geometry.Point {
	return geometry.Point{X: (p.X - t.TX) / t.Scale, Y: (p.Y - t.TY) / t.Scale}
}

// Kind is the primitive a Shape draws.
type Kind int

const (
	KindPath Kind = iota
	KindEllipse
	KindRect
	KindImage
)

// Shape is one drawing primitive in layer coordinates.
//
// Ellipses use Center, RX and RY. Rects and images use Box; rects round
// their corners by Corner.
type Shape struct {
	Kind   Kind
	Path   geometry.Path
	Center geometry.Point
	RX, RY float64
	Box    geometry.Rect
	Corner float64
	Image  *photo.Image

	Fill        Paint
	Stroke      Paint
	StrokeWidth float64
	RoundCap    bool
	Opacity     float64
}

// Bounds returns the shape's bounding box, used to resolve gradients
// given in bounding-box units.
func (s Shape) Bounds() geometry.Rect {
	switch s.Kind {
	case KindPath:
		return s.Path.Bounds()
	case KindEllipse:
		return geometry.Rect{
			Min: geometry.Point{X: s.Center.X - s.RX, Y: s.Center.Y - s.RY},
			Max: geometry.Point{X: s.Center.X + s.RX, Y: s.Center.Y + s.RY},
		}
	default:
		return s.Box
	}
}

// Paint is a solid color with alpha, a gradient reference, or nothing.
type Paint struct {
	Color    string
	Alpha    float64
	Gradient string
}

// None reports whether the paint draws nothing.
func (p Paint) None() bool { return p.Color == "" && p.Gradient == "" }

// Solid returns an opaque color paint. hex is "#rrggbb".
func Solid(hex string) Paint { return Paint{Color: hex, Alpha: 1} }

// Translucent returns a color paint with the given alpha.
func Translucent(hex string, alpha float64) Paint { return Paint{Color: hex, Alpha: alpha} }

// Ref returns a paint filled by the gradient with the given id.
func Ref(id string) Paint { return Paint{Gradient: id, Alpha: 1} }

// GradientKind distinguishes linear and radial gradients.
type GradientKind int

const (
	Linear GradientKind = iota
	Radial
)

// Gradient is a color ramp in the bounding-box units of the shape it
// fills: (0,0) is the top-left and (1,1) the bottom-right corner.
// Linear gradients run from (X1,Y1) to (X2,Y2); radial ones spread from
// (CX,CY) out to radius R.
type Gradient struct {
	ID             string
	Kind           GradientKind
	X1, Y1, X2, Y2 float64
	CX, CY, R      float64
	Stops          []Stop
}

// Stop is one color stop of a gradient.
type Stop struct {
	Offset  float64
	Color   string
	Opacity float64
}
