package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billcraft/billcraft/internal/config"
)

const minimalConfig = `deployment:
  mode: local
server:
  address: ":8080"
logging:
  level: debug
templates:
  base_url: "http://localhost:8089/templates"
`

func writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}

func TestNewConfig_StrictImagesDefaultsOn(t *testing.T) {
	// omitting render.strict_images must leave the strict policy active
	writeConfig(t, minimalConfig)

	cfg, err := config.NewConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Render.StrictImages)
}

func TestNewConfig_StrictImagesExplicitOff(t *testing.T) {
	writeConfig(t, minimalConfig+`render:
  strict_images: false
`)

	cfg, err := config.NewConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Render.StrictImages)
}

func TestNewConfig_AppliesDefaults(t *testing.T) {
	writeConfig(t, minimalConfig)

	cfg, err := config.NewConfig()
	require.NoError(t, err)
	assert.Equal(t, 794, cfg.Render.PageWidthPx)
	assert.Equal(t, 1123, cfg.Render.PageHeightPx)
	assert.Equal(t, 48, cfg.Render.PageMarginPx)
	assert.Equal(t, 4, cfg.Templates.MaxConcurrentFetches)
	assert.NotZero(t, cfg.Templates.FetchTimeout)
	assert.NotZero(t, cfg.Render.ImageTimeout)
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := config.GetDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Render.StrictImages)
	assert.NotEmpty(t, cfg.Rates.Entries)
}
