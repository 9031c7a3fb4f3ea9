package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "animio.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: yaml\nworkers: 3\npolicy: merge\n"), 0644))
	t.Setenv("ANIMIO_WORKERS", "7")
	t.Setenv("ANIMIO_STATS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format, "from file")
	assert.Equal(t, "merge", cfg.Policy, "from file")
	assert.Equal(t, 7, cfg.Workers, "env wins over file")
	assert.True(t, cfg.ShowStats)
	assert.Equal(t, "input/scenes", cfg.InputDir, "default kept")
}

func TestLoadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1"), 0644))
	_, err := Load(path)
	assert.Error(t, err)

	t.Setenv("ANIMIO_WORKERS", "many")
	_, err = Load("")
	assert.ErrorContains(t, err, "parse env")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Format = "xml"
	cfg.Workers = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Format: xml is not one of")
	assert.Contains(t, err.Error(), "Workers")
}
