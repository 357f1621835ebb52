package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmdflow/cmdflow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func noEnvFile(t *testing.T) config.Option {
	return config.WithEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "cmdflow.yaml", `
log_level: debug
event_buffer: 32
dry_run: false
history:
  backend: redis
  redis:
    addr: redis:6379
    db: 2
    ttl: 24h
server:
  read_timeout: 5s
`)
	cfg, err := config.Load(path, noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 32, cfg.EventBuffer)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, config.BackendRedis, cfg.History.Backend)
	assert.Equal(t, "redis:6379", cfg.History.Redis.Addr)
	assert.Equal(t, 2, cfg.History.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.History.Redis.TTL)
	assert.Equal(t, "cmdflow:runs:", cfg.History.Redis.Prefix, "unset keys keep defaults")
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "cmdflow.json", `{"event_buffer": 8, "server": {"addr": ":9000"}}`)
	cfg, err := config.Load(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.EventBuffer)
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := write(t, "cmdflow.yaml", "log_level: debug\nserver:\n  addr: ':1'\n")
	t.Setenv("CMDFLOW_LOG_LEVEL", "warn")
	t.Setenv("CMDFLOW_DRY_RUN", "false")
	t.Setenv("CMDFLOW_REDIS_DB", "3")
	t.Setenv("CMDFLOW_SERVER_READ_TIMEOUT", "1m")

	cfg, err := config.Load(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, 3, cfg.History.Redis.DB)
	assert.Equal(t, time.Minute, cfg.Server.ReadTimeout)
	assert.Equal(t, ":1", cfg.Server.Addr)
}

func TestLoad_DotEnv(t *testing.T) {
	envFile := write(t, ".env", "CMDFLOW_HISTORY_BACKEND=redis\nCMDFLOW_REDIS_ADDR=cache:6379\n")
	t.Cleanup(func() {
		os.Unsetenv("CMDFLOW_HISTORY_BACKEND")
		os.Unsetenv("CMDFLOW_REDIS_ADDR")
	})

	cfg, err := config.Load("", config.WithEnvFile(envFile))
	require.NoError(t, err)
	assert.Equal(t, config.BackendRedis, cfg.History.Backend)
	assert.Equal(t, "cache:6379", cfg.History.Redis.Addr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnvFile(t))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = config.Load(write(t, "bad.yaml", "log_levle: debug\n"), noEnvFile(t))
	assert.ErrorContains(t, err, "invalid config file")

	_, err = config.Load(write(t, "bad.yaml", "history:\n  backend: sqlite\n"), noEnvFile(t))
	assert.ErrorContains(t, err, "unknown history backend")

	_, err = config.Load(write(t, "bad.yaml", "log_level: loud\n"), noEnvFile(t))
	assert.ErrorContains(t, err, "unknown log level")

	_, err = config.Load(write(t, "bad.yaml", "event_buffer: -1\n"), noEnvFile(t))
	assert.ErrorContains(t, err, "event_buffer")
}
