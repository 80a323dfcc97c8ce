package appearance

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/pisica/pkg/colorspace"
	"github.com/matzehuels/pisica/pkg/drag"
	"github.com/matzehuels/pisica/pkg/geometry"
)

// Source yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Engine draws complete random appearances.
//
// Draws happen in a fixed order: breed, primary fur, secondary fur, eyes,
// accessory visibility (bow, hat, scarf, collar), accessory colors, then
// accessory offsets (x before y). A scripted Source therefore reproduces a
// state exactly.
type Engine struct {
	src Source
}

// NewEngine returns an engine drawing from src.
func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// NewSeededEngine returns an engine whose output is fixed by seed.
func NewSeededEngine(seed uint64) *Engine {
	return NewEngine(rand.New(rand.NewPCG(seed, seed^0xdeadbeef)))
}

// newEntropyEngine seeds from the runtime's random source.
func newEntropyEngine() *Engine {
	return NewSeededEngine(rand.Uint64())
}

// Sample returns a new state. The background is always nil; callers that
// keep a photo across randomization carry it over themselves.
func (e *Engine) Sample() State {
	var st State

	breeds := geometry.Breeds()
	st.Breed = breeds[e.index(len(breeds))]
	st.PrimaryFur = e.color()
	st.SecondaryFur = e.color()
	st.EyeColor = e.color()

	for _, a := range Accessories() {
		st.Accessories[a].Visible = e.src.Float64() > 0.5
	}
	for _, a := range Accessories() {
		st.Accessories[a].Color = e.color()
	}
	for _, a := range Accessories() {
		r := offsetRanges[a]
		st.Accessories[a].Offset = drag.Point{
			X: e.between(r.Min.X, r.Max.X),
			Y: e.between(r.Min.Y, r.Max.Y),
		}
	}
	return st
}

// color draws hue in [0,360), saturation in [40,80) and lightness in [35,70).
func (e *Engine) color() colorspace.Color {
	h := math.Floor(e.src.Float64() * 360)
	s := 40 + e.src.Float64()*40
	l := 35 + e.src.Float64()*35
	return colorspace.HSL(h, s, l)
}

func (e *Engine) index(n int) int {
	return max(0, min(int(e.src.Float64()*float64(n)), n-1))
}

// between draws an integer uniformly from [lo, hi].
func (e *Engine) between(lo, hi float64) float64 {
	v := math.Floor(e.src.Float64()*(hi-lo+1)) + lo
	return max(lo, min(v, hi))
}
