package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5000", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSecs)
	assert.Equal(t, "University of Wisconsin-Milwaukee", cfg.University.Name)
	assert.Equal(t, "Milwaukee", cfg.University.TargetCity)
	assert.Equal(t, "sponsor.db", cfg.Store.Path)
	assert.Equal(t, ".", cfg.Report.OutputDir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
api:
  base_url: https://predictor.example.edu
university:
  target_city: Madison
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://predictor.example.edu", cfg.API.BaseURL)
	assert.Equal(t, "Madison", cfg.University.TargetCity)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Untouched defaults survive partial files.
	assert.Equal(t, "sponsor.db", cfg.Store.Path)
	assert.Equal(t, "University of Wisconsin-Milwaukee", cfg.University.Name)
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("SPONSOR_API_BASE_URL", "https://env.example.edu")
	t.Setenv("SPONSOR_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.edu", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level", Format: "json"})
	require.Error(t, err)
}
