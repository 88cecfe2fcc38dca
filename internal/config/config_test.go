package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, epic.DefaultDesignLife, cfg.DesignLife)
	assert.Equal(t, "0.0.0.0:8575", cfg.Listen)
	assert.NotEmpty(t, cfg.StorePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epic.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
design_life: 60
listen: "127.0.0.1:9000"
log:
  level: debug
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 60.0, cfg.DesignLife)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched values keep their defaults.
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("design_life: 60\n"), 0o600))

	t.Setenv("EPIC_DESIGN_LIFE", "75")
	t.Setenv("EPIC_LOG_FORMAT", "json")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 75.0, cfg.DesignLife)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("desing_life: 60\n"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadValidates(t *testing.T) {
	for name, contents := range map[string]string{
		"negative design life": "design_life: -5\n",
		"bad log level":        "log: {level: verbose}\n",
		"bad log format":       "log: {format: xml}\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "epic.yaml")
			require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}
