package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverridesBeatConfigFile(t *testing.T) {
	ws := t.TempDir()
	writeConfig(t, ws, "temperature: 4000\ntheme: light\n")

	t.Setenv(EnvTemperature, "5500")
	t.Setenv(EnvTheme, "dark")
	t.Setenv(EnvSamples, "250")

	cfg, err := Load(ws)
	require.NoError(t, err)
	assert.Equal(t, 5500.0, cfg.Temperature)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 250, cfg.Grid.Samples)
}

func TestEnvOverridesApplyWithoutConfigFile(t *testing.T) {
	t.Setenv(EnvAnchorNm, "1500")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 1500.0, cfg.AnchorNm)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestUnparseableEnvValueIsIgnored(t *testing.T) {
	t.Setenv(EnvTemperature, "five thousand")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Temperature, cfg.Temperature)
}

func TestInvalidEnvOverrideFailsValidation(t *testing.T) {
	t.Setenv(EnvTemperature, "-300")

	_, err := Load(t.TempDir())
	require.Error(t, err)
}
