// Package drag turns pointer events into a 2-D offset for one draggable item.
//
// A Controller is a two-state machine. A pointer press captures the pointer
// and remembers where inside the item it grabbed; subsequent moves from that
// pointer place the item so the grab point stays under the pointer. Events
// from any other pointer are ignored until the capture is released.
//
// Controllers never share state; give each draggable item its own.
package drag

import (
	"fmt"

	"github.com/matzehuels/pisica/pkg/geometry"
)

// Point is an offset or pointer position in stage pixels.
type Point = geometry.Point

// PointerID identifies one pointer (mouse, pen, touch contact).
type PointerID int

// State is the controller phase.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Controller tracks the offset of one draggable item.
type Controller struct {
	state   State
	pointer PointerID
	start   Point
	offset  Point
}

// New returns an idle controller at the given offset.
func New(initial Point) *Controller {
	return &Controller{offset: initial}
}

// Offset returns the current offset.
func (c *Controller) Offset() Point { return c.offset }

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Captured returns the captured pointer, if any.
func (c *Controller) Captured() (PointerID, bool) {
	return c.pointer, c.state == Dragging
}

// PointerDown starts a drag at (x, y). It reports false and changes nothing
// when a drag is already in progress.
func (c *Controller) PointerDown(id PointerID, x, y float64) bool {
	if c.state == Dragging {
		return false
	}
	c.state = Dragging
	c.pointer = id
	c.start = Point{X: x - c.offset.X, Y: y - c.offset.Y}
	return true
}

// PointerMove updates the offset while id holds the capture. The new offset
// and true are returned when the move was applied.
func (c *Controller) PointerMove(id PointerID, x, y float64) (Point, bool) {
	if !c.owns(id) {
		return c.offset, false
	}
	c.offset = Point{X: x - c.start.X, Y: y - c.start.Y}
	return c.offset, true
}

// PointerUp ends the drag held by id. The offset is kept.
func (c *Controller) PointerUp(id PointerID) bool {
	return c.release(id)
}

// PointerCancel aborts the drag held by id. Like PointerUp it keeps the
// last applied offset.
func (c *Controller) PointerCancel(id PointerID) bool {
	return c.release(id)
}

// SetOffset places the item programmatically and drops any capture.
func (c *Controller) SetOffset(p Point) {
	c.offset = p
	c.state = Idle
	c.pointer = 0
	c.start = Point{}
}

func (c *Controller) owns(id PointerID) bool {
	return c.state == Dragging && c.pointer == id
}

func (c *Controller) release(id PointerID) bool {
	if !c.owns(id) {
		return false
	}
	c.state = Idle
	c.pointer = 0
	return true
}
