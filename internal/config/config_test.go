package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/jobs.db", cfg.Database.Path)
	assert.Equal(t, "public/jobs", cfg.Artifacts.Dir)
	assert.Equal(t, 720, cfg.Artifacts.RetentionHours)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
database:
  path: /var/lib/siteforge/jobs.db
artifacts:
  dir: /srv/jobs
  retention_hours: 48
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/var/lib/siteforge/jobs.db", cfg.Database.Path)
	assert.Equal(t, "/srv/jobs", cfg.Artifacts.Dir)
	assert.Equal(t, 48, cfg.Artifacts.RetentionHours)
	// Unset section falls back to its default.
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DATABASE_PATH", "/tmp/override.db")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [broken"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
