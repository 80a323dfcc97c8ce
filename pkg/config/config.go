// Package config loads pisica settings.
//
// Settings come from three layers, later ones winning: built-in defaults,
// a TOML file, and PISICA_* environment variables. Command-line flags are
// applied on top by the CLI.
//
//	[log]
//	level = "info"
//
//	[export]
//	scale = 2.0
//	filename = "pisica-mea.png"
//	formats = ["png"]
//	rasterizer = "canvas"
//
//	[cache]
//	disabled = false
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/pisica/pkg/colorspace"
	"github.com/matzehuels/pisica/pkg/errors"
	"github.com/matzehuels/pisica/pkg/export"
)

// LogLevels are the accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config is the full settings tree.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Export ExportConfig `toml:"export"`
	Cache  CacheConfig  `toml:"cache"`
}

type LogConfig struct {
	Level string `toml:"level" env:"PISICA_LOG_LEVEL"`
}

type ExportConfig struct {
	Scale      float64  `toml:"scale" env:"PISICA_EXPORT_SCALE"`
	Filename   string   `toml:"filename" env:"PISICA_EXPORT_FILENAME"`
	Dir        string   `toml:"dir" env:"PISICA_EXPORT_DIR"`
	Formats    []string `toml:"formats" env:"PISICA_EXPORT_FORMATS" envSeparator:","`
	Rasterizer string   `toml:"rasterizer" env:"PISICA_EXPORT_RASTERIZER"`
	Backdrop   string   `toml:"backdrop" env:"PISICA_EXPORT_BACKDROP"`
}

type CacheConfig struct {
	Disabled bool   `toml:"disabled" env:"PISICA_CACHE_DISABLED"`
	Dir      string `toml:"dir" env:"PISICA_CACHE_DIR"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Export: ExportConfig{
			Scale:      export.DefaultScale,
			Filename:   export.DefaultFilename,
			Formats:    []string{export.FormatPNG},
			Rasterizer: export.DefaultRasterizer,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pisica/config.toml, falling back to
// the platform config directory.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "pisica", "config.toml"), nil
}

// Load builds the effective settings. An empty path reads the default
// location if a file exists there; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("locate config: %w", err)
		}
		path = p
	}

	if err := cfg.readFile(path); err != nil {
		switch {
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		default:
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if !slices.Contains(LogLevels, strings.ToLower(c.Log.Level)) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid log level: %q (must be one of: %s)", c.Log.Level, strings.Join(LogLevels, ", "))
	}
	opts := c.ExportOptions()
	return opts.ValidateAndSetDefaults()
}

// ExportOptions converts the export section. A backdrop that is not a
// color becomes colorspace.Fallback.
func (c *Config) ExportOptions() export.Options {
	backdrop := c.Export.Backdrop
	if backdrop != "" {
		backdrop = colorspace.HexString(backdrop)
	}
	return export.Options{
		Formats:    slices.Clone(c.Export.Formats),
		Scale:      c.Export.Scale,
		Filename:   c.Export.Filename,
		Dir:        c.Export.Dir,
		Rasterizer: c.Export.Rasterizer,
		Backdrop:   backdrop,
	}
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
