package config

import (
	"os"
	"strconv"
)

// Environment variables recognized on top of the config file. They let a
// user retheme or retarget a single invocation without editing YAML.
const (
	EnvTemperature = "UVCAT_TEMPERATURE"
	EnvSamples     = "UVCAT_SAMPLES"
	EnvAnchorNm    = "UVCAT_ANCHOR_NM"
	EnvTheme       = "UVCAT_THEME"
	EnvLogLevel    = "UVCAT_LOG_LEVEL"
)

// applyEnvOverrides mutates cfg with any set UVCAT_* variables.
// Unparseable values are ignored; Validate catches out-of-range results.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvTemperature); v != "" {
		if temp, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = temp
		}
	}
	if v := os.Getenv(EnvSamples); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Grid.Samples = n
		}
	}
	if v := os.Getenv(EnvAnchorNm); v != "" {
		if nm, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.AnchorNm = nm
		}
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}
