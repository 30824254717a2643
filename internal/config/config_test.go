package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"PORT", "TASKS_FILE", "STATIC_DIR", "LOG_LEVEL", "TASKS_FILE_LOCK",
	"READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
}

// clearEnvVars unsets every variable Load reads for the rest of the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "./data/tasks.json", cfg.TasksFile)
	assert.Equal(t, "./web", cfg.StaticDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.FileLock)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)
	t.Chdir(t.TempDir())

	t.Setenv("PORT", "3000")
	t.Setenv("TASKS_FILE", "/srv/tasks.json")
	t.Setenv("STATIC_DIR", "/srv/public")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TASKS_FILE_LOCK", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "/srv/tasks.json", cfg.TasksFile)
	assert.Equal(t, "/srv/public", cfg.StaticDir)
	assert.False(t, cfg.FileLock)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnvVars(t)
	t.Chdir(t.TempDir())

	t.Setenv("TASKS_FILE_LOCK", "maybe")
	t.Setenv("READ_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.FileLock)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnvVars(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=4000\nTASKS_FILE=dotenv.json\n"), 0o644))

	t.Setenv("TASKS_FILE", "from-env.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	// Real environment wins over .env.
	assert.Equal(t, "from-env.json", cfg.TasksFile)
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
