package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/supafloof/backpacks/internal/item"
)

// Config holds application configuration.
type Config struct {
	// DataDir is the directory holding one record file per container.
	DataDir string `toml:"data-dir" env:"BACKPACKS_DATA_DIR"`

	// BackpackItem is the material newly minted backpacks are made of.
	// Names that are not valid material identifiers fall back to the
	// built-in default when the config is normalized.
	BackpackItem string `toml:"backpack-item" env:"BACKPACKS_ITEM"`

	// AllowNestedBackpacks permits placing a backpack inside another
	// backpack. The click guard rejects it while this is false.
	AllowNestedBackpacks bool `toml:"allow-nested-backpacks" env:"BACKPACKS_ALLOW_NESTED"`

	// PersonalCapacity is the slot count for personal backpacks opened
	// by account rather than by item. Must be a legal capacity tier.
	PersonalCapacity int `toml:"personal-capacity" env:"BACKPACKS_PERSONAL_CAPACITY"`

	// LogLevel is the minimum log level: debug, info, warn, or error.
	LogLevel string `toml:"log-level" env:"BACKPACKS_LOG_LEVEL"`

	// WebAddr is the listen address for the web console.
	WebAddr string `toml:"web-addr" env:"BACKPACKS_WEB_ADDR"`
}

// DefaultConfig returns the default configuration rooted at baseDir.
func DefaultConfig(baseDir string) *Config {
	return &Config{
		DataDir:          filepath.Join(baseDir, "data"),
		BackpackItem:     item.DefaultMaterial,
		PersonalCapacity: item.BaseCapacity,
		LogLevel:         "info",
		WebAddr:          "127.0.0.1:8490",
	}
}

// Load loads configuration from baseDir/config.toml, then applies
// BACKPACKS_* environment overrides on top. A missing file yields the
// defaults. The baseDir parameter allows tests to use t.TempDir()
// instead of ~/.backpacks.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.toml"), baseDir)
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env overrides: %w", err)
	}
	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath, baseDir string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(baseDir), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	return Merge(DefaultConfig(baseDir), cfg), nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// for scalars when set; booleans win when true.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.DataDir = overlay.DataDir
	if result.DataDir == "" {
		result.DataDir = base.DataDir
	}

	result.BackpackItem = overlay.BackpackItem
	if result.BackpackItem == "" {
		result.BackpackItem = base.BackpackItem
	}

	result.PersonalCapacity = overlay.PersonalCapacity
	if result.PersonalCapacity == 0 {
		result.PersonalCapacity = base.PersonalCapacity
	}

	result.LogLevel = overlay.LogLevel
	if result.LogLevel == "" {
		result.LogLevel = base.LogLevel
	}

	result.WebAddr = overlay.WebAddr
	if result.WebAddr == "" {
		result.WebAddr = base.WebAddr
	}

	result.AllowNestedBackpacks = base.AllowNestedBackpacks || overlay.AllowNestedBackpacks

	return result
}

// Normalize fixes up values that parsed but make no sense, falling back
// to defaults. It returns one human-readable warning per corrected field
// for the caller to log.
func (c *Config) Normalize() []string {
	var warnings []string

	if !item.ValidMaterial(c.BackpackItem) {
		warnings = append(warnings, fmt.Sprintf(
			"backpack-item %q is not a valid material name, using %q", c.BackpackItem, item.DefaultMaterial))
		c.BackpackItem = item.DefaultMaterial
	}

	if !item.ValidCapacity(c.PersonalCapacity) {
		warnings = append(warnings, fmt.Sprintf(
			"personal-capacity %d is not a legal tier, using %d", c.PersonalCapacity, item.BaseCapacity))
		c.PersonalCapacity = item.BaseCapacity
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("log-level %q is unknown, using \"info\"", c.LogLevel))
		c.LogLevel = "info"
	}

	return warnings
}

// SlogLevel maps the configured log level onto slog's levels.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
