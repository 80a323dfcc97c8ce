package geometry

import (
	"testing"

	"github.com/matzehuels/pisica/pkg/errors"
)

func TestProfileForPaths(t *testing.T) {
	tests := []struct {
		breed     Breed
		head      string
		earLeft   string
		earRight  string
		cheekFuzz bool
	}{
		{
			Short,
			"M 0 -38 C -28 -38 -42 -22 -46 -6 C -50 12 -32 32 0 36 C 32 32 50 12 46 -6 C 42 -22 28 -38 0 -38 Z",
			"M -22 -42 C -34 -66 -8 -70 -6 -48 Z",
			"M 22 -42 C 34 -66 8 -70 6 -48 Z",
			false,
		},
		{
			Fluffy,
			"M 0 -40 C -35 -40 -48 -25 -52 -5 C -58 20 -40 40 0 45 C 40 40 58 20 52 -5 C 48 -25 35 -40 0 -40 Z",
			"M -25 -45 C -40 -75 -10 -80 -8 -52 Z",
			"M 25 -45 C 40 -75 10 -80 8 -52 Z",
			true,
		},
		{
			Siamese,
			"M 0 -35 C -30 -38 -45 -22 -48 -8 C -52 12 -35 35 0 38 C 35 35 52 12 48 -8 C 45 -22 30 -38 0 -35 Z",
			"M -23 -42 C -38 -68 -8 -72 -6 -50 Z",
			"M 23 -42 C 38 -68 8 -72 6 -50 Z",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.breed.String(), func(t *testing.T) {
			p := ProfileFor(tt.breed)
			if got := p.Head.String(); got != tt.head {
				t.Errorf("Head = %q, want %q", got, tt.head)
			}
			if got := p.EarLeft.String(); got != tt.earLeft {
				t.Errorf("EarLeft = %q, want %q", got, tt.earLeft)
			}
			if got := p.EarRight.String(); got != tt.earRight {
				t.Errorf("EarRight = %q, want %q", got, tt.earRight)
			}
			if p.CheekFuzz != tt.cheekFuzz {
				t.Errorf("CheekFuzz = %v, want %v", p.CheekFuzz, tt.cheekFuzz)
			}
		})
	}
}

func TestProfileForDeterministic(t *testing.T) {
	for _, b := range Breeds() {
		if ProfileFor(b).Head.String() != ProfileFor(b).Head.String() {
			t.Errorf("ProfileFor(%v) not stable", b)
		}
	}
}

func TestProfileForInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ProfileFor(invalid) should panic")
		}
	}()
	ProfileFor(Breed(7))
}

func TestShowMask(t *testing.T) {
	for _, b := range Breeds() {
		if got, want := ShowMask(b), b == Siamese; got != want {
			t.Errorf("ShowMask(%v) = %v, want %v", b, got, want)
		}
	}
}

func TestParseBreed(t *testing.T) {
	tests := []struct {
		in      string
		want    Breed
		wantErr bool
	}{
		{"short", Short, false},
		{"Fluffy", Fluffy, false},
		{" SIAMESE ", Siamese, false},
		{"sphynx", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBreed(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBreed(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidBreed) {
				t.Errorf("error code = %v, want INVALID_BREED", errors.GetCode(err))
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseBreed(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBreedString(t *testing.T) {
	if Fluffy.String() != "fluffy" {
		t.Errorf("Fluffy.String() = %q", Fluffy.String())
	}
	if Breed(9).String() != "Breed(9)" {
		t.Errorf("Breed(9).String() = %q", Breed(9).String())
	}
}
