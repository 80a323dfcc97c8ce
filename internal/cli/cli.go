// Package cli implements the pisica command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pisica/pkg/buildinfo"
	"github.com/matzehuels/pisica/pkg/cache"
	"github.com/matzehuels/pisica/pkg/config"
	"github.com/matzehuels/pisica/pkg/export"
	"github.com/matzehuels/pisica/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pisica"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Pisica dresses up a cartoon cat and exports the portrait",
		Long: `Pisica composes a cartoon cat avatar from a breed, fur and eye colors,
draggable accessories and an optional photo backdrop, and exports it as
PNG, SVG or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetExportHooks(&logExportHooks{logger: c.Logger})
			observability.SetCacheHooks(&logCacheHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/pisica/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Service Factory
// =============================================================================

// loadConfig reads the effective settings and applies the configured log
// level unless --verbose already raised it.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil && c.Logger.GetLevel() != log.DebugLevel {
		c.Logger.SetLevel(lvl)
	}
	return cfg, nil
}

// newService creates an export service backed by the raster cache.
func (c *CLI) newService(cfg *config.Config, noCache bool) (*export.Service, error) {
	store, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	if off, ok := store.(*cache.NullCache); ok {
		c.Logger.Debug("raster cache off", "reason", off.Reason())
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return export.NewService(store, keyer, c.Logger), nil
}

func newCache(cfg *config.Config, noCache bool) (cache.Cache, error) {
	switch {
	case noCache:
		return cache.NewNullCache("--no-cache"), nil
	case cfg.Cache.Disabled:
		return cache.NewNullCache("disabled in config"), nil
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		return cache.NewNullCache("no cache directory: " + err.Error()), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG standard
// location (~/.cache/pisica/).
func cacheDir(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
