package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, BackendFixtures, cfg.Source.Backend)
	assert.Equal(t, "live", cfg.Source.Mode)
	assert.Equal(t, "carelens.db", cfg.Storage.DSN)
	assert.Empty(t, cfg.Assist.ReferenceNow)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CARELENS_SERVER__PORT", "9000")
	t.Setenv("CARELENS_SOURCE__MODE", "shadow")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "shadow", cfg.Source.Mode)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: 7700\nsource:\n  backend: sqlite\nstorage:\n  dsn: \":memory:\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CARELENS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7700, cfg.Server.Port)
	assert.Equal(t, BackendSQLite, cfg.Source.Backend)
	assert.Equal(t, ":memory:", cfg.Storage.DSN)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7700\n"), 0o600))
	t.Setenv("CARELENS_CONFIG", path)
	t.Setenv("CARELENS_SERVER__PORT", "7800")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7800, cfg.Server.Port)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CARELENS_SOURCE__BACKEND", "postgres")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown source backend")
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("CARELENS_SOURCE__MODE", "replay")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown source mode")
}

func TestLoadRejectsBadReferenceNow(t *testing.T) {
	t.Setenv("CARELENS_ASSIST__REFERENCE_NOW", "yesterday")

	_, err := Load()
	assert.ErrorContains(t, err, "reference_now")
}

func TestReferenceTime(t *testing.T) {
	t.Setenv("CARELENS_ASSIST__REFERENCE_NOW", "2025-08-20T09:00:00Z")

	cfg, err := Load()
	require.NoError(t, err)

	ref, ok := cfg.ReferenceTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC), ref)

	cfg.Assist.ReferenceNow = ""
	_, ok = cfg.ReferenceTime()
	assert.False(t, ok)
}
