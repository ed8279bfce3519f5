// Package config loads uvcat configuration from .uvcat/config.yaml.
// Zero values are filled with defaults, then UVCAT_* environment
// variables are applied on top, so a partial config file is always valid.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all uvcat configuration.
type Config struct {
	// Spectrum defaults
	Temperature float64    `yaml:"temperature"` // kelvin
	Grid        GridConfig `yaml:"grid"`

	// Reference wavelength (nm) where the Rayleigh-Jeans curve is
	// anchored to the Planck curve for display.
	AnchorNm float64 `yaml:"anchor_nm"`

	// Classical/Planck ratio treated as "catastrophic" in reports.
	DivergenceThreshold float64 `yaml:"divergence_threshold"`

	// Chart dimensions
	Chart ChartConfig `yaml:"chart"`

	// Theme for the TUI ("light", "dark", or "auto")
	Theme string `yaml:"theme"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig describes the wavelength sampling grid.
type GridConfig struct {
	MinNm   float64 `yaml:"min_nm"`
	MaxNm   float64 `yaml:"max_nm"`
	Samples int     `yaml:"samples"`
}

// ChartConfig describes the terminal chart canvas.
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LoggingConfig configures the category file logger.
// Mirrored by internal/logging to avoid a circular import.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration: the reference chart's
// parameters (5000 K, 1-3000 nm, 1000 samples, anchored at 1000 nm).
func DefaultConfig() *Config {
	return &Config{
		Temperature: 5000,
		Grid: GridConfig{
			MinNm:   1,
			MaxNm:   3000,
			Samples: 1000,
		},
		AnchorNm:            1000,
		DivergenceThreshold: 10,
		Chart: ChartConfig{
			Width:  72,
			Height: 20,
		},
		Theme: "auto",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Path returns the config file location for a workspace.
func Path(workspace string) string {
	return filepath.Join(workspace, ".uvcat", "config.yaml")
}

// Load reads the workspace config, fills defaults, and applies
// environment overrides. A missing file yields the defaults.
func Load(workspace string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.fillDefaults()
	applyEnvOverrides(cfg)
	return cfg, cfg.Validate()
}

// fillDefaults replaces zero values with defaults so a sparse YAML file
// only overrides what it names.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Temperature == 0 {
		c.Temperature = def.Temperature
	}
	if c.Grid.MinNm == 0 {
		c.Grid.MinNm = def.Grid.MinNm
	}
	if c.Grid.MaxNm == 0 {
		c.Grid.MaxNm = def.Grid.MaxNm
	}
	if c.Grid.Samples == 0 {
		c.Grid.Samples = def.Grid.Samples
	}
	if c.AnchorNm == 0 {
		c.AnchorNm = def.AnchorNm
	}
	if c.DivergenceThreshold == 0 {
		c.DivergenceThreshold = def.DivergenceThreshold
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = def.Chart.Width
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = def.Chart.Height
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate rejects configs no command could run with.
func (c *Config) Validate() error {
	if c.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive, got %g", c.Temperature)
	}
	if c.Grid.MinNm <= 0 {
		return fmt.Errorf("grid min_nm must be positive, got %g", c.Grid.MinNm)
	}
	if c.Grid.MaxNm <= c.Grid.MinNm {
		return fmt.Errorf("grid max_nm (%g) must exceed min_nm (%g)", c.Grid.MaxNm, c.Grid.MinNm)
	}
	if c.Grid.Samples < 2 {
		return fmt.Errorf("grid samples must be at least 2, got %d", c.Grid.Samples)
	}
	if c.DivergenceThreshold <= 1 {
		return fmt.Errorf("divergence_threshold must exceed 1, got %g", c.DivergenceThreshold)
	}
	if c.Chart.Width < 20 || c.Chart.Height < 5 {
		return fmt.Errorf("chart must be at least 20x5, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	switch c.Theme {
	case "light", "dark", "auto":
	default:
		return fmt.Errorf("theme must be light, dark, or auto, got %q", c.Theme)
	}
	return nil
}

// Save writes the config to the workspace, creating .uvcat/ if needed.
func (c *Config) Save(workspace string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	dir := filepath.Join(workspace, ".uvcat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(Path(workspace), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
