package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 200, cfg.Mesh.Cells)
	assert.Equal(t, 0, cfg.Mesh.Workers)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sapwood.yaml")
	yaml := "log:\n  level: debug\nmesh:\n  cells: 128\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := loadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 128, cfg.Mesh.Cells)
	// Keys the file does not set keep their defaults.
	assert.Equal(t, 0, cfg.Mesh.Workers)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SAPWOOD_LOG_LEVEL", "warn")
	t.Setenv("SAPWOOD_MESH_CELLS", "64")

	cfg, err := loadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 64, cfg.Mesh.Cells)
}

func TestLoadConfigFlagsWin(t *testing.T) {
	t.Setenv("SAPWOOD_MESH_CELLS", "64")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("mesh-cells", 200, "")
	require.NoError(t, flags.Set("mesh-cells", "300"))

	cfg, err := loadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Mesh.Cells)
}

func TestLoadConfigUnchangedFlagKeepsLayers(t *testing.T) {
	t.Setenv("SAPWOOD_MESH_CELLS", "64")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("mesh-cells", 200, "")

	cfg, err := loadConfig("", flags)
	require.NoError(t, err)

	// An unset flag must not clobber the environment value with its default.
	assert.Equal(t, 64, cfg.Mesh.Cells)
}

func TestSetupLogging(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", ""} {
		assert.NoError(t, setupLogging(level), "level %q", level)
	}
	assert.Error(t, setupLogging("verbose"))
}
