package appearance

import (
	"testing"

	"github.com/matzehuels/pisica/pkg/errors"
)

func TestParseAccessory(t *testing.T) {
	tests := []struct {
		in      string
		want    Accessory
		wantErr bool
	}{
		{"bow", Bow, false},
		{"HAT", Hat, false},
		{" scarf", Scarf, false},
		{"collar", Collar, false},
		{"monocle", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAccessory(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAccessory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidAccessory) {
					t.Errorf("code = %v, want INVALID_ACCESSORY", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseAccessory(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAccessoryString(t *testing.T) {
	for i, a := range Accessories() {
		if a.String() != accessoryNames[i] {
			t.Errorf("Accessory(%d).String() = %q", i, a.String())
		}
	}
	if got := Accessory(-1).String(); got != "Accessory(-1)" {
		t.Errorf("invalid String() = %q", got)
	}
}

func TestDefaultOffsetsInsideRanges(t *testing.T) {
	// Default anchors double as the centers users start dragging from; the
	// randomized rectangles are built around them.
	def := Default()
	for _, a := range Accessories() {
		if !OffsetRange(a).Contains(def.Accessories[a].Offset) {
			t.Errorf("%v default offset %v outside %v", a, def.Accessories[a].Offset, OffsetRange(a))
		}
	}
}
