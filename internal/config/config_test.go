package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Point HOME at an empty temp dir so no real config file leaks in.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultMaxFileSize), cfg.MaxFileSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Contains(t, cfg.DBPath, filepath.Join(".sigguard", "data", "signatures.db"))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvDBPath, "/tmp/custom/sigs.db")
	t.Setenv(EnvMaxFileSize, "1048576")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom/sigs.db", cfg.DBPath)
	assert.Equal(t, int64(1048576), cfg.MaxFileSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DataDirOverrideMovesDatabase(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataDir := t.TempDir()
	t.Setenv(EnvDataDir, dataDir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dataDir, "signatures.db"), cfg.DBPath)
}

func TestLoad_ConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".sigguard")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"db_path: /srv/sigguard/signatures.db\nmax_file_size: 2097152\nlog_level: warn\n",
	), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/sigguard/signatures.db", cfg.DBPath)
	assert.Equal(t, int64(2097152), cfg.MaxFileSize)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".sigguard")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"log_level: warn\n",
	), 0o644))
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_BadConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".sigguard")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}
