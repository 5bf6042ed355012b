package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchan-dev/rv32i-emu/config"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, 1024, cfg.Execution.MemorySize)
	assert.Equal(t, "hex", cfg.Display.NumberFormat)
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := config.DefaultConfig()
	cfg.Execution.MemorySize = 4096
	cfg.Execution.MaxCycles = 50000
	cfg.Display.NumberFormat = "dec"

	require.NoError(t, cfg.SaveTo(path))

	loaded, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
