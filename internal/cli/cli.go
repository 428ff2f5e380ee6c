// Package cli implements the tablegrid command-line interface.
//
// # Commands
//
// The main commands are:
//   - browse: Scroll the grid interactively in the terminal
//   - layout: Run layout passes headlessly and export the placements
//   - serve: Expose layout snapshots over HTTP
//   - cache: Manage the rendered artifact cache
//   - config: Print the effective configuration
//
// # Configuration
//
// Settings are read from a TOML file (see package config) and can be
// overridden by the persistent --source, --redis-addr and --redis-key flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes layout and pool events to the logger. Loggers are passed through
// context.Context to the command handlers.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tablegrid/pkg/buildinfo"
	"github.com/matzehuels/tablegrid/pkg/cache"
	"github.com/matzehuels/tablegrid/pkg/config"
	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/layout"
	"github.com/matzehuels/tablegrid/pkg/observability"
	"github.com/matzehuels/tablegrid/pkg/pool"
	"github.com/matzehuels/tablegrid/pkg/source"
	"github.com/matzehuels/tablegrid/pkg/viewport"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tablegrid"
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
	Config config.Config

	configPath string
	verbose    bool
	overrides  config.Source
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tablegrid lays out a wrapping grid of cells in a scrollable viewport",
		Long: `Tablegrid lays out a fixed grid of cells inside a scrollable viewport that
wraps around both axes. Only the cells that fit the viewport are created, and
they are recycled as the grid scrolls.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (default: "+config.DefaultPath(appName)+")")
	flags.StringVar(&c.overrides.Path, "source", "", "text file to read cell contents from")
	flags.StringVar(&c.overrides.RedisAddr, "redis-addr", "", "redis address to read cell contents from")
	flags.StringVar(&c.overrides.RedisKey, "redis-key", "", "redis list key (default: "+source.DefaultRedisKey+")")

	// Register all subcommands
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies flag overrides. An explicit
// --config must exist; the default location is optional.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadOptional(config.DefaultPath(appName))
	}
	if err != nil {
		return err
	}

	if c.overrides.Path != "" {
		cfg.Source.Path = c.overrides.Path
	}
	if c.overrides.RedisAddr != "" {
		cfg.Source.RedisAddr = c.overrides.RedisAddr
	}
	if c.overrides.RedisKey != "" {
		cfg.Source.RedisKey = c.overrides.RedisKey
	}
	c.Config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)
	if level <= log.DebugLevel {
		hooks := newLogHooks(c.Logger)
		observability.SetLayoutHooks(hooks)
		observability.SetPoolHooks(hooks)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// sourceArg applies an optional positional text file argument, which takes
// precedence over the configured source.
func (c *CLI) sourceArg(args []string) {
	if len(args) > 0 {
		c.Config.Source.Path = args[0]
	}
}

// =============================================================================
// Grid Session
// =============================================================================

// session wires a source, recycler, viewport and engine together.
type session struct {
	source   source.Source
	pool     *pool.Recycler
	viewport *viewport.Viewport
	engine   *layout.Engine
}

// newSession opens the configured source and builds an engine for a
// viewport of the given size. A zero size uses the configured viewport.
func (c *CLI) newSession(ctx context.Context, size grid.Axes[int]) (*session, error) {
	src, err := source.Open(ctx, c.Config.SourceOptions(c.Logger))
	if err != nil {
		return nil, err
	}
	return c.sessionFor(src, size)
}

// sessionFor builds an engine over an already opened source.
func (c *CLI) sessionFor(src source.Source, size grid.Axes[int]) (*session, error) {
	if size == (grid.Axes[int]{}) {
		size = c.Config.ViewportSize()
	}
	vp, err := viewport.New(size, c.Config.Padding())
	if err != nil {
		return nil, err
	}

	dims := src.Dimensions()
	mapper, err := grid.NewMapper(dims.A, dims.B)
	if err != nil {
		return nil, err
	}

	cellSize := c.Config.CellSize()
	recycler := pool.New(src, cellSize)
	engine, err := layout.New(mapper, src, recycler, vp.Helpers(),
		layout.WithCellSize(cellSize),
		layout.WithLogger(c.Logger),
	)
	if err != nil {
		return nil, err
	}

	c.Logger.Debug("session ready", "grid", dims, "viewport", vp, "cell", cellSize)
	return &session{source: src, pool: recycler, viewport: vp, engine: engine}, nil
}

// =============================================================================
// Cache
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tablegrid/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
