// Package config loads tablegrid settings from a TOML file.
//
// Values are layered: [Default] first, then the file passed to [Load], then
// command-line flags applied by the caller. A missing file is not an error
// when no path was given explicitly.
//
// Example file:
//
//	[cell]
//	height = 1
//	width = 16
//
//	[viewport]
//	width = 80
//	height = 24
//	padding_bottom = 1
//
//	[source]
//	redis_addr = "localhost:6379"
//	redis_key = "tablegrid:cells"
//
//	[log]
//	level = "debug"
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tablegrid/pkg/errors"
	"github.com/matzehuels/tablegrid/pkg/grid"
	"github.com/matzehuels/tablegrid/pkg/source"
	"github.com/matzehuels/tablegrid/pkg/viewport"
)

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Config is the full set of settings.
type Config struct {
	Cell     Cell     `toml:"cell"`
	Viewport Viewport `toml:"viewport"`
	Source   Source   `toml:"source"`
	Log      Log      `toml:"log"`
}

// Cell is the fixed element size.
type Cell struct {
	Height int `toml:"height"`
	Width  int `toml:"width"`
}

// Viewport is the headless viewport size and the padding used everywhere.
type Viewport struct {
	Width         int `toml:"width"`
	Height        int `toml:"height"`
	PaddingTop    int `toml:"padding_top"`
	PaddingBottom int `toml:"padding_bottom"`
	PaddingLeft   int `toml:"padding_left"`
	PaddingRight  int `toml:"padding_right"`
}

// Source selects where cell contents come from.
type Source struct {
	Path      string `toml:"path"`
	RedisAddr string `toml:"redis_addr"`
	RedisKey  string `toml:"redis_key"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Cell:     Cell{Height: 1, Width: 16},
		Viewport: Viewport{Width: 80, Height: 24, PaddingBottom: 1},
		Source:   Source{RedisKey: source.DefaultRedisKey},
		Log:      Log{Level: "info"},
	}
}

// DefaultPath returns the config file location in the user config
// directory, or "" when that directory is unknown.
func DefaultPath(app string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, app, FileName)
}

// Load decodes the file at path on top of [Default] and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// LoadOptional is like [Load] but returns the defaults when path does not
// exist.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := errors.ValidateCellSize(c.Cell.Height, c.Cell.Width); err != nil {
		return err
	}
	v := c.Viewport
	if v.Width < 0 || v.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport size cannot be negative, got %dx%d", v.Height, v.Width)
	}
	if err := errors.ValidatePadding(v.Height, v.PaddingTop, v.PaddingBottom); err != nil {
		return err
	}
	if err := errors.ValidatePadding(v.Width, v.PaddingLeft, v.PaddingRight); err != nil {
		return err
	}
	if c.Source.RedisAddr != "" {
		if err := errors.ValidateKey(c.Source.RedisKey); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "source.redis_key")
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return nil
}

// Write encodes the config as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// CellSize returns the element size as (height, width).
func (c Config) CellSize() grid.Axes[int] { return grid.Of(c.Cell.Height, c.Cell.Width) }

// ViewportSize returns the viewport extent as (height, width).
func (c Config) ViewportSize() grid.Axes[int] { return grid.Of(c.Viewport.Height, c.Viewport.Width) }

// Padding returns the viewport padding.
func (c Config) Padding() viewport.Padding {
	return viewport.Padding{
		Top:    c.Viewport.PaddingTop,
		Bottom: c.Viewport.PaddingBottom,
		Left:   c.Viewport.PaddingLeft,
		Right:  c.Viewport.PaddingRight,
	}
}

// SourceOptions returns the options for source.Open.
func (c Config) SourceOptions(logger *log.Logger) source.Options {
	return source.Options{
		Path:      c.Source.Path,
		RedisAddr: c.Source.RedisAddr,
		RedisKey:  c.Source.RedisKey,
		Logger:    logger,
	}
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
