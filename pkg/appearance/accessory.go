package appearance

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pisica/pkg/errors"
	"github.com/matzehuels/pisica/pkg/geometry"
)

// Accessory is one of the four decorations worn by the cat.
type Accessory int

const (
	Bow Accessory = iota
	Hat
	Scarf
	Collar

	accessoryCount = 4
)

var accessoryNames = [accessoryCount]string{"bow", "hat", "scarf", "collar"}

// Accessories returns every accessory in declaration order.
func Accessories() []Accessory { return []Accessory{Bow, Hat, Scarf, Collar} }

func (a Accessory) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Accessory(%d)", int(a))
	}
	return accessoryNames[a]
}

// Valid reports whether a is a declared accessory.
func (a Accessory) Valid() bool { return a >= 0 && a < accessoryCount }

// ParseAccessory parses an accessory key, ignoring case.
func ParseAccessory(s string) (Accessory, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range accessoryNames {
		if name == key {
			return Accessory(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidAccessory, "unknown accessory %q (must be one of: %s)", s, strings.Join(accessoryNames[:], ", "))
}

// offsetRanges are the inclusive rectangles random offsets are drawn from.
var offsetRanges = [accessoryCount]geometry.Rect{
	Bow:    {Min: geometry.Point{X: -20, Y: -10}, Max: geometry.Point{X: 20, Y: 10}},
	Hat:    {Min: geometry.Point{X: -30, Y: -40}, Max: geometry.Point{X: 30, Y: -10}},
	Scarf:  {Min: geometry.Point{X: -10, Y: 15}, Max: geometry.Point{X: 10, Y: 35}},
	Collar: {Min: geometry.Point{X: -10, Y: 18}, Max: geometry.Point{X: 10, Y: 28}},
}

// OffsetRange returns the rectangle randomized offsets for a fall in.
// Dragging is not confined to it.
func OffsetRange(a Accessory) geometry.Rect { return offsetRanges[a] }
