package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stockyard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, "./data/inventory.db", cfg.Database.Path)
	require.True(t, cfg.Backup.Enabled)
	require.Equal(t, 5*time.Minute, cfg.Backup.Interval())
	require.Equal(t, "./backups", cfg.Backup.Directory)
	require.Equal(t, 3, cfg.Backup.MaxBackups)
	require.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /var/lib/stockyard/inventory.db
backup:
  enabled: false
  interval_seconds: 60
  directory: /var/backups/stockyard
  max_backups: 7
logging:
  level: DEBUG
`)

	cfg, loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, path, loaded)
	require.Equal(t, "/var/lib/stockyard/inventory.db", cfg.Database.Path)
	require.False(t, cfg.Backup.Enabled)
	require.Equal(t, time.Minute, cfg.Backup.Interval())
	require.Equal(t, "/var/backups/stockyard", cfg.Backup.Directory)
	require.Equal(t, 7, cfg.Backup.MaxBackups)
	require.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestLoadFromPathPartialKeepsDefaults(t *testing.T) {
	// A file that only overrides one value must keep every default,
	// including backup.enabled staying on.
	path := writeConfig(t, `
database:
  path: ./elsewhere.db
`)

	cfg, _, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "./elsewhere.db", cfg.Database.Path)
	require.True(t, cfg.Backup.Enabled)
	require.Equal(t, 300, cfg.Backup.IntervalSeconds)
	require.Equal(t, "./backups", cfg.Backup.Directory)
	require.Equal(t, 3, cfg.Backup.MaxBackups)
}

func TestLoadFromPathInvalidYAML(t *testing.T) {
	path := writeConfig(t, "database: [unclosed")

	_, _, err := LoadFromPath(path)
	require.Error(t, err)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backup.MaxBackups = 9

	path := filepath.Join(t.TempDir(), "deep", "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, _, err := LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, 9, loaded.Backup.MaxBackups)
}

func TestFindConfigPathEnvOverride(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: DEBUG\n")
	t.Setenv(EnvConfigPath, path)

	require.Equal(t, path, FindConfigPath())
}

func TestFindConfigPathEnvMissingFile(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	require.Empty(t, FindConfigPath())
}

func TestFindConfigPathXDG(t *testing.T) {
	xdg := t.TempDir()
	dir := filepath.Join(xdg, ConfigDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	require.Equal(t, path, FindConfigPath())
}

func TestApplyDefaultsFillsGaps(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	require.Equal(t, "./data/inventory.db", cfg.Database.Path)
	require.Equal(t, 300, cfg.Backup.IntervalSeconds)
	require.Equal(t, "./backups", cfg.Backup.Directory)
	require.Equal(t, 3, cfg.Backup.MaxBackups)
	require.Equal(t, "INFO", cfg.Logging.Level)
}
