package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, cfg.DataOptions().NormalizeXdata)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deepk.yaml")
	content := "normalize_xdata: false\nmetric: naae\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.NormalizeXdata)
	assert.Equal(t, "naae", cfg.Metric)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "results", cfg.ResultsFolder)
	assert.Equal(t, "runs.db", cfg.Store.Path)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("results folder and level", func(t *testing.T) {
		t.Setenv("DEEPK_RESULTS_FOLDER", "/tmp/deepk")
		t.Setenv("DEEPK_LOG_LEVEL", "warn")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/deepk", cfg.ResultsFolder)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("normalize flag", func(t *testing.T) {
		t.Setenv("DEEPK_NORMALIZE_XDATA", "false")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.False(t, cfg.NormalizeXdata)
	})

	t.Run("bad normalize flag", func(t *testing.T) {
		t.Setenv("DEEPK_NORMALIZE_XDATA", "sometimes")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metric = "rmse"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deepk.yaml")
	cfg := DefaultConfig()
	cfg.Metric = "naae"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
