// Package appearance holds the editable look of the cat and the operations
// that change it.
//
// State is a plain value. Session owns one State together with a drag
// controller per accessory and applies every operation completely before
// returning, so observers never see a half-applied reset or randomize.
// A Session is meant to be driven from a single event loop and is not safe
// for concurrent use.
package appearance

import (
	"github.com/matzehuels/pisica/pkg/colorspace"
	"github.com/matzehuels/pisica/pkg/drag"
	"github.com/matzehuels/pisica/pkg/geometry"
	"github.com/matzehuels/pisica/pkg/photo"
)

// AccessoryState is the look and placement of one accessory.
type AccessoryState struct {
	Visible bool
	Color   colorspace.Color
	Offset  drag.Point
}

// State is the complete appearance of the cat.
type State struct {
	Breed        geometry.Breed
	PrimaryFur   colorspace.Color
	SecondaryFur colorspace.Color
	EyeColor     colorspace.Color
	Accessories  [accessoryCount]AccessoryState
	Background   *photo.Image
}

// Accessory returns the state of a.
func (s State) Accessory(a Accessory) AccessoryState { return s.Accessories[a] }

// Default returns the look a new session starts with.
func Default() State {
	return State{
		Breed:        geometry.Short,
		PrimaryFur:   colorspace.HSL(30, 35, 55),
		SecondaryFur: colorspace.HSL(20, 20, 30),
		EyeColor:     colorspace.HSL(190, 80, 45),
		Accessories: [accessoryCount]AccessoryState{
			Bow:    {Visible: true, Color: colorspace.HSL(340, 70, 46), Offset: drag.Point{X: 0, Y: 0}},
			Hat:    {Visible: false, Color: colorspace.HSL(250, 40, 30), Offset: drag.Point{X: 0, Y: -20}},
			Scarf:  {Visible: false, Color: colorspace.HSL(0, 60, 45), Offset: drag.Point{X: 0, Y: 25}},
			Collar: {Visible: true, Color: colorspace.HSL(28, 80, 45), Offset: drag.Point{X: 0, Y: 22}},
		},
	}
}
