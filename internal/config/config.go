// Package config provides configuration file parsing for timetrack.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// FileName is the config file name inside Dir.
const FileName = "config.toml"

// Color modes for Display.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Dir returns the timetrack config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/timetrack if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "timetrack"), nil
}

// Config represents the application configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Display  DisplayConfig  `toml:"display"`
}

// DatabaseConfig holds storage settings. An empty Path means the default
// ~/.timetrack/timetrack.db.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DisplayConfig holds rendering settings.
type DisplayConfig struct {
	TimeFormat string `toml:"time_format"`
	Color      string `toml:"color"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "warn",
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 15:04",
			Color:      ColorAuto,
		},
	}
}

// Load reads the config file at path. A missing file yields the defaults
// without an error; missing keys are filled from the defaults.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}

	return &cfg, nil
}

// LoadDefault reads config.toml from Dir.
func LoadDefault() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get config directory")
	}
	return Load(filepath.Join(dir, FileName))
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("display.color must be one of auto, always, never (got %q)", c.Display.Color)
	}
	return nil
}

// fillDefaults fills in any missing config values with defaults
func (c *Config) fillDefaults() {
	defaults := DefaultConfig()

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Display.TimeFormat == "" {
		c.Display.TimeFormat = defaults.Display.TimeFormat
	}
	if c.Display.Color == "" {
		c.Display.Color = defaults.Display.Color
	}
}
