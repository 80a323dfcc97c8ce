// Package colorspace converts between the hue/saturation/lightness colors the
// appearance model stores and the 8-bit hex strings color pickers exchange.
//
// HSL is canonical. Hex is the editing representation: a color that arrives
// as hex remembers its spelling so presenting it back to a picker is the
// identity, and every conversion clamps instead of failing.
//
//	c := colorspace.HSL(180, 60, 52.5)
//	colorspace.HexCompatible(c) // "#3dcfcf"
//
//	p, err := colorspace.ParseHex("#47a69e")
//	colorspace.HexCompatible(p) // "#47a69e"
package colorspace

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/pisica/pkg/errors"
)

// Fallback is presented for color strings that are neither hex nor hsl().
const Fallback = "#888888"

// Color is a canonical HSL color. H is in [0,360), S and L are percentages in
// [0,100]. Construct values with HSL or ParseHex so the domain holds.
type Color struct {
	H, S, L float64

	// hex is the original 6-digit spelling when the color was parsed from hex.
	hex string
}

// HSL builds a Color, wrapping the hue modulo 360 and clamping saturation
// and lightness into [0,100].
func HSL(h, s, l float64) Color {
	return Color{H: wrapHue(h), S: clampPercent(s), L: clampPercent(l)}
}

var hexPattern = regexp.MustCompile(`^#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)

// ParseHex parses "#rrggbb" or "#rgb". The 6-digit spelling is kept verbatim;
// the short form is expanded to lowercase 6 digits.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !hexPattern.MatchString(s) {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q (want #rrggbb or #rgb)", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
	}
	h, sat, l := c.Hsl()
	out := HSL(h, sat*100, l*100)
	if len(s) == 7 {
		out.hex = s
	} else {
		out.hex = c.Hex()
	}
	return out, nil
}

// MustParseHex is like ParseHex but panics on malformed input. It is meant
// for color literals in code and tests.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse accepts either a hex color or a CSS hsl() expression.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return ParseHex(s)
	}
	if c, ok := parseCSS(s); ok {
		return c, nil
	}
	return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q (want #rrggbb or hsl(h s%% l%%))", s)
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	if c.hex != "" {
		return c.hex
	}
	return HSLToHex(c.H, c.S, c.L)
}

// FromHex reports whether the color was ingested from a hex string.
func (c Color) FromHex() bool { return c.hex != "" }

// RGB returns the 8-bit channels of the color.
func (c Color) RGB() (r, g, b uint8) {
	r, g, b = hslToRGB(c.H, c.S, c.L)
	if c.hex != "" {
		if col, err := colorful.Hex(c.hex); err == nil {
			r, g, b = col.RGB255()
		}
	}
	return r, g, b
}

// String returns the CSS form, e.g. "hsl(180 60% 52.5%)".
func (c Color) String() string {
	return fmt.Sprintf("hsl(%s %s%% %s%%)", formatNumber(c.H), formatNumber(c.S), formatNumber(c.L))
}

// Equal reports whether two colors present the same hex value.
func (c Color) Equal(o Color) bool { return c.Hex() == o.Hex() }

// HexCompatible returns the value to hand to a hex color picker: the
// remembered spelling when the color came from hex, otherwise the converted
// HSL triple.
func HexCompatible(c Color) string { return c.Hex() }

// HexString is the string-level boundary for color inputs. A 6-digit hex
// string is returned unchanged, a CSS hsl() expression is converted, and
// anything else yields Fallback.
func HexString(s string) string {
	if !strings.HasPrefix(s, "hsl") {
		if hexPattern.MatchString(s) && len(s) == 7 {
			return s
		}
		if c, err := ParseHex(s); err == nil {
			return c.Hex()
		}
		return Fallback
	}
	c, ok := parseCSS(s)
	if !ok {
		return Fallback
	}
	return c.Hex()
}

// HSLToHex converts an HSL triple to "#rrggbb". It is total: the hue wraps
// and saturation and lightness are clamped before conversion.
func HSLToHex(h, s, l float64) string {
	r, g, b := hslToRGB(h, s, l)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// hslToRGB uses the chroma / intermediate / lightness-match construction with
// half-open sextants [0,60), [60,120), ... [300,360).
func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	h = wrapHue(h)
	s = clampPercent(s) / 100
	l = clampPercent(l) / 100

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return channel(r + m), channel(g + m), channel(b + m)
}

func channel(v float64) uint8 {
	return uint8(max(0, min(255, math.Round(v*255))))
}

func wrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// -1e-18 + 360 rounds to 360 in float64.
	if h >= 360 {
		h = 0
	}
	return h
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(100, v))
}

var cssPattern = regexp.MustCompile(`^hsla?\(\s*([-+]?[0-9]*\.?[0-9]+)(?:deg)?[\s,]+([-+]?[0-9]*\.?[0-9]+)%[\s,]+([-+]?[0-9]*\.?[0-9]+)%\s*\)$`)

func parseCSS(s string) (Color, bool) {
	m := cssPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Color{}, false
	}
	var v [3]float64
	for i := range v {
		f, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return Color{}, false
		}
		v[i] = f
	}
	return HSL(v[0], v[1], v[2]), true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
