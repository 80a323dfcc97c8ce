// Package geometry maps a breed to the outlines of the cat's head and ears.
//
// Profiles are fixed art: there are exactly three breeds and every one has a
// profile. Looking up a breed outside the enumeration is a programming error
// and panics.
package geometry

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pisica/pkg/errors"
)

// Breed selects the head and ear silhouette.
type Breed int

const (
	Short Breed = iota
	Fluffy
	Siamese

	breedCount = 3
)

var breedNames = [breedCount]string{"short", "fluffy", "siamese"}

// Breeds returns all breeds in declaration order.
func Breeds() []Breed { return []Breed{Short, Fluffy, Siamese} }

// String returns the breed key, e.g. "fluffy".
func (b Breed) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Breed(%d)", int(b))
	}
	return breedNames[b]
}

// Valid reports whether b is one of the declared breeds.
func (b Breed) Valid() bool { return b >= 0 && b < breedCount }

// ParseBreed parses a breed key. Matching is case-insensitive.
func ParseBreed(s string) (Breed, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range breedNames {
		if name == key {
			return Breed(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidBreed, "unknown breed %q (must be one of: %s)", s, strings.Join(breedNames[:], ", "))
}

// Profile bundles the outlines drawn for a breed.
type Profile struct {
	Head      Path
	EarLeft   Path
	EarRight  Path
	CheekFuzz bool
}

// ShowMask reports whether the composer paints the translucent secondary
// fur mask over the head.
func ShowMask(b Breed) bool { return b == Siamese }

var profiles = [breedCount]Profile{
	Short:   newProfile(shortHead, shortEar, false),
	Fluffy:  newProfile(fluffyHead, fluffyEar, true),
	Siamese: newProfile(siameseHead, siameseEar, false),
}

// ProfileFor returns the outline bundle for b.
func ProfileFor(b Breed) Profile {
	if !b.Valid() {
		panic(fmt.Sprintf("geometry: no profile for %v", b))
	}
	return profiles[b]
}

func newProfile(head, earLeft Path, cheekFuzz bool) Profile {
	return Profile{
		Head:      head,
		EarLeft:   earLeft,
		EarRight:  earLeft.MirrorX(),
		CheekFuzz: cheekFuzz,
	}
}

var (
	shortHead = Path{
		M(0, -38),
		C(-28, -38, -42, -22, -46, -6),
		C(-50, 12, -32, 32, 0, 36),
		C(32, 32, 50, 12, 46, -6),
		C(42, -22, 28, -38, 0, -38),
		Z(),
	}
	shortEar = Path{M(-22, -42), C(-34, -66, -8, -70, -6, -48), Z()}

	fluffyHead = Path{
		M(0, -40),
		C(-35, -40, -48, -25, -52, -5),
		C(-58, 20, -40, 40, 0, 45),
		C(40, 40, 58, 20, 52, -5),
		C(48, -25, 35, -40, 0, -40),
		Z(),
	}
	fluffyEar = Path{M(-25, -45), C(-40, -75, -10, -80, -8, -52), Z()}

	siameseHead = Path{
		M(0, -35),
		C(-30, -38, -45, -22, -48, -8),
		C(-52, 12, -35, 35, 0, 38),
		C(35, 35, 52, 12, 48, -8),
		C(45, -22, 30, -38, 0, -35),
		Z(),
	}
	siameseEar = Path{M(-23, -42), C(-38, -68, -8, -72, -6, -50), Z()}
)
