package export

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/pisica/pkg/errors"
	"github.com/matzehuels/pisica/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale renders at twice the stage size.
	DefaultScale = 2.0

	// MaxScale bounds the raster size (8× is 5760×4800 pixels).
	MaxScale = 8.0

	// DefaultFilename is the file name used for the PNG; other formats swap
	// the extension.
	DefaultFilename = "pisica-mea.png"

	// DefaultRasterizer draws natively and needs no external tools.
	DefaultRasterizer = render.RasterizerCanvas
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures one export.
type Options struct {
	Formats    []string `json:"formats" toml:"formats"`
	Scale      float64  `json:"scale" toml:"scale"`
	Filename   string   `json:"filename" toml:"filename"`
	Dir        string   `json:"dir,omitempty" toml:"dir"`
	Rasterizer string   `json:"rasterizer" toml:"rasterizer"`
	Backdrop   string   `json:"backdrop,omitempty" toml:"backdrop"`
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Filename == "" {
		o.Filename = DefaultFilename
	}
	if o.Rasterizer == "" {
		o.Rasterizer = DefaultRasterizer
	}
}

// Validate checks the options after defaults are applied.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidScale, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	if !slices.Contains(render.Rasterizers(), strings.ToLower(o.Rasterizer)) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid rasterizer: %q (must be one of: %s)", o.Rasterizer, strings.Join(render.Rasterizers(), ", "))
	}
	if strings.ContainsAny(o.Filename, `/\`) {
		return errors.New(errors.ErrCodeInvalidInput, "filename must not contain a path: %q", o.Filename)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Path returns the output path for format.
func (o *Options) Path(format string) string {
	name := o.Filename
	if name == "" {
		name = DefaultFilename
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(o.Dir, base+"."+format)
}
