package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:5000", cfg.API.BaseURL)
	require.Equal(t, 10, cfg.Catalog.PageSize)
	require.Equal(t, "drpatrospvtltd@gmail.com", cfg.Mail.OrderEmail)
	require.Equal(t, filepath.Join("/var/marketkit", "session.db"), cfg.SessionPath())
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marketkit.yml")
	data := []byte(`
api:
  base_url: https://api.example.com
  timeout: 30
catalog:
  page_size: 25
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	require.Equal(t, 30, cfg.API.Timeout)
	require.Equal(t, 25, cfg.Catalog.PageSize)
	// untouched sections keep their defaults
	require.Equal(t, "@every 10m", cfg.Catalog.RefreshInterval)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	t.Setenv("MARKETKIT_API_BASE_URL", "https://env.example.com")
	t.Setenv("MARKETKIT_CATALOG_PAGE_SIZE", "5")
	t.Setenv("MARKETKIT_SMTP_ENABLE", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	require.Equal(t, 5, cfg.Catalog.PageSize)
	require.True(t, cfg.Mail.SMTPEnable)
}
