package appearance

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pisica/pkg/colorspace"
	"github.com/matzehuels/pisica/pkg/drag"
	"github.com/matzehuels/pisica/pkg/geometry"
	"github.com/matzehuels/pisica/pkg/photo"
)

// Session owns the appearance being edited and the drag controllers that
// place the accessories.
type Session struct {
	id     string
	logger *log.Logger
	engine *Engine

	state State
	drags [accessoryCount]*drag.Controller
}

// NewSession starts a session at Default. A nil logger discards output and a
// nil engine is seeded from runtime entropy.
func NewSession(logger *log.Logger, engine *Engine) *Session {
	id := uuid.NewString()
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if engine == nil {
		engine = newEntropyEngine()
	}
	s := &Session{
		id:     id,
		logger: logger.With("session", id[:8]),
		engine: engine,
	}
	for _, a := range Accessories() {
		s.drags[a] = drag.New(drag.Point{})
	}
	s.replace(Default())
	s.logger.Debug("session started")
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns a snapshot of the current appearance.
func (s *Session) State() State {
	st := s.state
	for _, a := range Accessories() {
		st.Accessories[a].Offset = s.drags[a].Offset()
	}
	return st
}

// Controller returns the drag controller of a.
func (s *Session) Controller(a Accessory) *drag.Controller { return s.drags[a] }

// ===== Single-field edits =====

// SetBreed switches the head and ear silhouette.
func (s *Session) SetBreed(b geometry.Breed) {
	s.state.Breed = b
	s.logger.Debug("set breed", "breed", b)
}

// SetPrimaryFur recolors the head.
func (s *Session) SetPrimaryFur(c colorspace.Color) {
	s.state.PrimaryFur = c
	s.logger.Debug("set primary fur", "color", c)
}

// SetSecondaryFur recolors the ears, muzzle and siamese points.
func (s *Session) SetSecondaryFur(c colorspace.Color) {
	s.state.SecondaryFur = c
	s.logger.Debug("set secondary fur", "color", c)
}

// SetEyeColor tints the irises.
func (s *Session) SetEyeColor(c colorspace.Color) {
	s.state.EyeColor = c
	s.logger.Debug("set eye color", "color", c)
}

// SetAccessoryVisible shows or hides a. Hiding an accessory ends any drag
// in progress on it.
func (s *Session) SetAccessoryVisible(a Accessory, visible bool) {
	s.state.Accessories[a].Visible = visible
	if !visible {
		s.drags[a].SetOffset(s.drags[a].Offset())
	}
	s.logger.Debug("set accessory visibility", "accessory", a, "visible", visible)
}

// SetAccessoryColor recolors a whether or not it is visible.
func (s *Session) SetAccessoryColor(a Accessory, c colorspace.Color) {
	s.state.Accessories[a].Color = c
	s.logger.Debug("set accessory color", "accessory", a, "color", c)
}

// SetAccessoryOffset places a directly, ending any drag in progress on it.
func (s *Session) SetAccessoryOffset(a Accessory, p drag.Point) {
	s.drags[a].SetOffset(p)
	s.logger.Debug("set accessory offset", "accessory", a, "x", p.X, "y", p.Y)
}

// SetBackground replaces the photo underlay. nil clears it.
func (s *Session) SetBackground(img *photo.Image) {
	s.state.Background = img
	if img == nil {
		s.logger.Debug("cleared background")
		return
	}
	s.logger.Debug("set background", "name", img.Name, "mime", img.MIME)
}

// ===== Whole-state replacement =====

// Reset restores Default, clearing the background and cancelling drags.
func (s *Session) Reset() {
	s.replace(Default())
	s.logger.Debug("reset")
}

// Randomize replaces everything except the background with a fresh sample
// and cancels drags.
func (s *Session) Randomize() {
	st := s.engine.Sample()
	st.Background = s.state.Background
	s.replace(st)
	s.logger.Debug("randomized", "breed", st.Breed, "fur", st.PrimaryFur)
}

func (s *Session) replace(st State) {
	s.state = st
	for _, a := range Accessories() {
		s.drags[a].SetOffset(st.Accessories[a].Offset)
	}
}

// ===== Pointer routing =====

// PointerDown starts dragging a with pointer id. It is ignored when a is
// hidden, already dragging, or when id is held by another accessory.
func (s *Session) PointerDown(a Accessory, id drag.PointerID, x, y float64) bool {
	if !s.state.Accessories[a].Visible {
		return false
	}
	if _, held := s.holder(id); held {
		return false
	}
	if !s.drags[a].PointerDown(id, x, y) {
		return false
	}
	s.logger.Debug("drag start", "accessory", a, "pointer", id)
	return true
}

// PointerMove forwards a move to the accessory holding id and returns it
// with its new offset.
func (s *Session) PointerMove(id drag.PointerID, x, y float64) (Accessory, drag.Point, bool) {
	a, ok := s.holder(id)
	if !ok {
		return 0, drag.Point{}, false
	}
	p, _ := s.drags[a].PointerMove(id, x, y)
	return a, p, true
}

// PointerUp ends the drag held by id.
func (s *Session) PointerUp(id drag.PointerID) (Accessory, bool) {
	a, ok := s.holder(id)
	if !ok {
		return 0, false
	}
	s.drags[a].PointerUp(id)
	s.logger.Debug("drag end", "accessory", a, "offset", s.drags[a].Offset())
	return a, true
}

// PointerCancel aborts the drag held by id, keeping the last offset.
func (s *Session) PointerCancel(id drag.PointerID) (Accessory, bool) {
	a, ok := s.holder(id)
	if !ok {
		return 0, false
	}
	s.drags[a].PointerCancel(id)
	s.logger.Debug("drag cancelled", "accessory", a)
	return a, true
}

// Dragging reports which accessory, if any, is being dragged by id.
func (s *Session) Dragging(id drag.PointerID) (Accessory, bool) { return s.holder(id) }

func (s *Session) holder(id drag.PointerID) (Accessory, bool) {
	for _, a := range Accessories() {
		if held, ok := s.drags[a].Captured(); ok && held == id {
			return a, true
		}
	}
	return 0, false
}
