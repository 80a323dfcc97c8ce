package scene

import (
	"github.com/matzehuels/pisica/pkg/appearance"
	"github.com/matzehuels/pisica/pkg/colorspace"
	"github.com/matzehuels/pisica/pkg/geometry"
)

// Cat art is drawn in a 180×175 box centered on the nose and scaled onto
// the stage.
var (
	catBox   = geometry.Rect{Min: geometry.Point{X: -90, Y: -100}, Max: geometry.Point{X: 90, Y: 75}}
	catScale = 3.0
)

const (
	gradEarInner = "earInner"
	gradIrisL    = "irisL"
	gradIrisR    = "irisR"
)

// accessoryArt describes how one accessory is drawn: its own view box and
// the width in pixels that box is shown at.
type accessoryArt struct {
	layer  string
	frame  geometry.Rect
	width  float64
	shapes func(color string) []Shape
}

// Accessories paint in this order; the collar always ends on top.
var accessoryOrder = []struct {
	acc appearance.Accessory
	art accessoryArt
}{
	{appearance.Hat, accessoryArt{LayerHat, box(-60, -30, 120, 50), 160, hatShapes}},
	{appearance.Bow, accessoryArt{LayerBow, box(-60, -20, 120, 40), 144, bowShapes}},
	{appearance.Scarf, accessoryArt{LayerScarf, box(-70, -20, 140, 60), 192, scarfShapes}},
	{appearance.Collar, accessoryArt{LayerCollar, box(-70, -20, 140, 60), 192, collarShapes}},
}

// Compose lays out the scene for st using the outlines in p. It is pure:
// equal inputs always produce equal scenes.
func Compose(st appearance.State, p geometry.Profile) Scene {
	fur := colorspace.HexCompatible(st.PrimaryFur)
	secondary := colorspace.HexCompatible(st.SecondaryFur)
	eyes := colorspace.HexCompatible(st.EyeColor)

	sc := Scene{
		Width:      StageWidth,
		Height:     StageHeight,
		Background: st.Background,
		Gradients:  gradients(eyes),
	}

	cat := centered(catBox, catScale, geometry.Point{})
	add := func(name string, shapes ...Shape) {
		sc.Layers = append(sc.Layers, Layer{Name: name, Transform: cat, Opacity: 1, Shapes: shapes})
	}

	if st.Background != nil {
		sc.Layers = append(sc.Layers, Layer{
			Name:      LayerBackground,
			Transform: Transform{Scale: 1},
			Opacity:   1,
			Shapes: []Shape{{
				Kind:    KindImage,
				Box:     geometry.Rect{Max: geometry.Point{X: StageWidth, Y: StageHeight}},
				Image:   st.Background,
				Opacity: 1,
			}},
		})
	}

	add(LayerShadow, ellipse(0, 68, 42, 10, Translucent("#000000", 0.08)))
	add(LayerEars, fill(p.EarLeft, Solid(secondary), 1), fill(p.EarRight, Solid(secondary), 1))
	add(LayerEarInner, fill(p.EarLeft, Ref(gradEarInner), 0.6), fill(p.EarRight, Ref(gradEarInner), 0.6))
	add(LayerHead, fill(p.Head, Solid(fur), 1))
	if geometry.ShowMask(st.Breed) {
		add(LayerMask, fill(p.Head, Solid(secondary), 0.55))
	}
	if p.CheekFuzz {
		add(LayerCheekFuzz, cheekFuzz(fur)...)
	}
	add(LayerMuzzle, ellipse(0, 5, 26, 18, Translucent("#ffffff", 0.8)))
	add(LayerNose, fill(nosePath, Solid("#cc2266"), 1))
	add(LayerMouth, mouthShapes()...)
	add(LayerWhiskers, whiskerShapes()...)
	sc.Layers[len(sc.Layers)-1].Opacity = 0.7
	add(LayerEyes, eyeShapes()...)

	for _, item := range accessoryOrder {
		acc := st.Accessories[item.acc]
		if !acc.Visible {
			continue
		}
		art := item.art
		sc.Layers = append(sc.Layers, Layer{
			Name:      art.layer,
			Transform: centered(art.frame, art.width/art.frame.W(), acc.Offset),
			Opacity:   1,
			Frame:     art.frame,
			Shapes:    art.shapes(colorspace.HexCompatible(acc.Color)),
		})
	}
	return sc
}

// ComposeState composes st with the profile of its breed.
func ComposeState(st appearance.State) Scene {
	return Compose(st, geometry.ProfileFor(st.Breed))
}

// HitTest returns the topmost accessory layer whose frame contains the
// stage point p.
func (s Scene) HitTest(p geometry.Point) (appearance.Accessory, bool) {
	for i := len(s.Layers) - 1; i >= 0; i-- {
		l := s.Layers[i]
		if l.Frame == (geometry.Rect{}) || !l.Bounds().Contains(p) {
			continue
		}
		if a, err := appearance.ParseAccessory(l.Name); err == nil {
			return a, true
		}
	}
	return 0, false
}

// centered places the center of frame, drawn at scale, at the stage center
// moved by offset.
func centered(frame geometry.Rect, scale float64, offset geometry.Point) Transform {
	cx := (frame.Min.X + frame.Max.X) / 2
	cy := (frame.Min.Y + frame.Max.Y) / 2
	return Transform{
		TX:    StageWidth/2 + offset.X - scale*cx,
		TY:    StageHeight/2 + offset.Y - scale*cy,
		Scale: scale,
	}
}

func gradients(eyes string) []Gradient {
	iris := func(id string) Gradient {
		return Gradient{
			ID: id, Kind: Radial, CX: 0.5, CY: 0.5, R: 0.6,
			Stops: []Stop{{0, "#ffffff", 0.35}, {0.6, eyes, 1}, {1, eyes, 1}},
		}
	}
	return []Gradient{
		{
			ID: gradEarInner, Kind: Linear, X1: 0, Y1: 0, X2: 0, Y2: 1,
			Stops: []Stop{{0, "#ffd1dc", 1}, {1, "#f6a5b3", 1}},
		},
		iris(gradIrisL),
		iris(gradIrisR),
	}
}

// ===== Shape helpers =====

func box(x, y, w, h float64) geometry.Rect {
	return geometry.Rect{Min: geometry.Point{X: x, Y: y}, Max: geometry.Point{X: x + w, Y: y + h}}
}

func fill(p geometry.Path, paint Paint, opacity float64) Shape {
	return Shape{Kind: KindPath, Path: p, Fill: paint, Opacity: opacity}
}

func stroke(p geometry.Path, color string, width float64) Shape {
	return Shape{Kind: KindPath, Path: p, Stroke: Solid(color), StrokeWidth: width, RoundCap: true, Opacity: 1}
}

func ellipse(cx, cy, rx, ry float64, paint Paint) Shape {
	return Shape{Kind: KindEllipse, Center: geometry.Point{X: cx, Y: cy}, RX: rx, RY: ry, Fill: paint, Opacity: 1}
}

func circle(cx, cy, r float64, paint Paint) Shape { return ellipse(cx, cy, r, r, paint) }

func rect(x, y, w, h, corner float64, paint Paint) Shape {
	return Shape{Kind: KindRect, Box: box(x, y, w, h), Corner: corner, Fill: paint, Opacity: 1}
}

// ===== Face art =====

var nosePath = geometry.Path{
	geometry.M(0, 0), geometry.RelM(-4, 0), geometry.RelL(8, 0), geometry.RelL(-4, 5), geometry.Z(),
}

func cheekFuzz(fur string) []Shape {
	left := geometry.Path{geometry.M(-40, 5), geometry.C(-50, 5, -50, 20, -38, 20)}
	shapes := []Shape{stroke(left, fur, 6), stroke(left.MirrorX(), fur, 6)}
	for i := range shapes {
		shapes[i].Opacity = 0.8
	}
	return shapes
}

func mouthShapes() []Shape {
	left := geometry.Path{geometry.M(0, 6), geometry.RelC(-4, 4, -10, 4, -15, 1)}
	return []Shape{stroke(left, "#5a3a3a", 2), stroke(left.MirrorX(), "#5a3a3a", 2)}
}

func whiskerShapes() []Shape {
	left := []geometry.Path{
		{geometry.M(-12, 6), geometry.RelC(-16, 0, -24, -4, -32, -8)},
		{geometry.M(-12, 11), geometry.RelC(-16, 2, -24, -1, -32, -4)},
		{geometry.M(-12, 1), geometry.RelC(-16, -2, -24, -6, -32, -10)},
	}
	var shapes []Shape
	for _, p := range left {
		shapes = append(shapes, stroke(p, "#333333", 1.5))
	}
	for _, p := range left {
		shapes = append(shapes, stroke(p.MirrorX(), "#333333", 1.5))
	}
	return shapes
}

func eyeShapes() []Shape {
	white, dark := Solid("#ffffff"), Solid("#111111")
	return []Shape{
		ellipse(-16, -5, 10, 7, white),
		ellipse(16, -5, 10, 7, white),
		circle(-16, -5, 6, Ref(gradIrisL)),
		circle(16, -5, 6, Ref(gradIrisR)),
		ellipse(-16, -5, 2, 5, dark),
		ellipse(16, -5, 2, 5, dark),
		circle(-18, -7, 1.5, white),
		circle(14, -7, 1.5, white),
	}
}

// ===== Accessory art =====

func hatShapes(color string) []Shape {
	brim := ellipse(0, 0, 52, 6, Solid(color))
	brim.Opacity = 0.9
	band := rect(-24, -4, 48, 6, 3, Solid("#000000"))
	band.Opacity = 0.25
	return []Shape{brim, rect(-22, -16, 44, 14, 6, Solid(color)), band}
}

func bowShapes(color string) []Shape {
	left := geometry.Path{
		geometry.M(-40, 0), geometry.C(-30, -12, -18, -12, -8, 0), geometry.C(-18, 12, -30, 12, -40, 0), geometry.Z(),
	}
	return []Shape{
		fill(left, Solid(color), 1),
		circle(0, 0, 6, Solid(color)),
		fill(left.MirrorX(), Solid(color), 1),
	}
}

func scarfShapes(color string) []Shape {
	return []Shape{
		rect(-55, -4, 110, 16, 8, Solid(color)),
		rect(15, 10, 16, 24, 8, Solid(color)),
	}
}

func collarShapes(color string) []Shape {
	gold := Solid("#f5d442")
	return []Shape{
		rect(-52, -2, 104, 12, 6, Solid(color)),
		circle(0, 16, 6, gold),
		rect(-6, 12, 12, 16, 4, gold),
	}
}
