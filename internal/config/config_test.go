package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SHMOPEN_LOG_LEVEL", "info")
	t.Setenv("SHMOPEN_NAME_PREFIX", "/app_")
	t.Setenv("SHMOPEN_PERM", "0640")
	t.Setenv("SHMOPEN_WORKERS", "8")
	t.Setenv("SHMOPEN_MIN_FREE_BYTES", "4096")
	t.Setenv("SHMOPEN_HEALTH_ADDR", ":9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "/app_", cfg.NamePrefix)
	assert.Equal(t, Perm(0o640), cfg.Perm)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, uint64(4096), cfg.MinFreeBytes)
	assert.Equal(t, ":9000", cfg.HealthAddr)
}

func TestDebugModeRaisesDefaultLevel(t *testing.T) {
	t.Setenv("SHMOPEN_DEBUG_MODE", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("SHMOPEN_LOG_LEVEL", "error")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestDebugModeKeepsExplicitDefaultLevel(t *testing.T) {
	t.Setenv("SHMOPEN_DEBUG_MODE", "true")
	t.Setenv("SHMOPEN_LOG_LEVEL", "warn")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestPermIsOctal(t *testing.T) {
	for _, in := range []string{"600", "0600", "0o600"} {
		t.Setenv("SHMOPEN_PERM", in)
		cfg, err := Load()
		require.NoError(t, err, in)
		assert.Equal(t, Perm(0o600), cfg.Perm, in)
	}

	t.Setenv("SHMOPEN_PERM", "9")
	_, err := Load()
	assert.ErrorContains(t, err, "not octal")
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("SHMOPEN_WORKERS", "0")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Perm = 0o4755
	cfg.NamePrefix = "app/"
	cfg.Workers = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "perm")
	assert.Contains(t, err.Error(), "workers")
	assert.Contains(t, err.Error(), "must start with '/'")
	assert.Contains(t, err.Error(), "embedded '/'")

	assert.NoError(t, Default().Validate())
}
