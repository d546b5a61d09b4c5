package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Defaults(t *testing.T) {
	loader := NewLoaderWithViper(viper.New())

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 300, cfg.Offset.MaxShiftTest)
}

func TestLoader_LoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	content := `log_level: debug
match:
  language: english
  min_confidence: 75
offset:
  max_shift_test: 50
output:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	loader := NewLoaderWithViper(viper.New())
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "english", cfg.Match.Language)
	assert.InDelta(t, 75.0, cfg.Match.MinConfidence, 1e-9)
	assert.Equal(t, 50, cfg.Offset.MaxShiftTest)
	assert.Equal(t, "json", cfg.Output.Format)
	// Values the file omits fall back to defaults.
	assert.Equal(t, 5, cfg.Offset.MinMatchCount)
}

func TestLoader_LoadWithFile_Missing(t *testing.T) {
	loader := NewLoaderWithViper(viper.New())
	_, err := loader.LoadWithFile("/nonexistent/folio.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoader_LoadWithFile_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o600))

	loader := NewLoaderWithViper(viper.New())
	_, err := loader.LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoader_EnvironmentOverride(t *testing.T) {
	t.Setenv("FOLIO_LOG_LEVEL", "warn")

	loader := NewLoaderWithViper(viper.New())
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}
