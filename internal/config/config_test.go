package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := newConfig(viper.New())

	assert.Equal(t, int32(8000), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.False(t, cfg.HTTP.ReadOnly)
	assert.Zero(t, cfg.HTTP.HSTSMaxAge)
	assert.Equal(t, 5, cfg.Global.ShutdownTimeoutInSeconds)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Audit.CleanupSchedule)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("READ_ONLY", "true")
	t.Setenv("AUDIT_RETENTION_DAYS", "7")
	t.Setenv("TASK_RELEASE_AFTER", "2m")
	t.Setenv("HSTS_MAX_AGE", "31536000")

	cfg := newConfig(viper.New())

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.True(t, cfg.HTTP.ReadOnly)
	assert.Equal(t, 7, cfg.Audit.RetentionDays)
	assert.Equal(t, 2*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, 31536000, cfg.HTTP.HSTSMaxAge)
}

func TestLoadDotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug\n"), 0o600))

	// t.Setenv registers restoration of the variable after the test
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	loadDotEnv(envFile)

	cfg := newConfig(viper.New())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	assert.NotPanics(t, func() {
		loadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	})
}
