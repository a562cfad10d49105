package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at a scratch dir so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".outings", "outings.db"), cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.LLM.MaxAttempts)
	assert.Equal(t, 2000, cfg.LLM.BackoffBaseMs)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.LLM.Model)
	assert.True(t, cfg.LLM.LogCalls)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "outings.yaml"), `
db_path: /tmp/family.db
log_level: debug
server:
  addr: 0.0.0.0:9090
llm:
  model: test-model
  max_attempts: 5
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/family.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr)
	assert.Equal(t, "test-model", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.LLM.MaxAttempts)
	assert.Equal(t, 16000, cfg.LLM.MaxTokens, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom", "settings.yaml")
	writeFile(t, path, `
llm:
  max_attempts: 5
  model: file-model
`)
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("OUTINGS_LLM_MAX_ATTEMPTS", "7")
	t.Setenv("OUTINGS_SERVER_ADDR", "localhost:7000")
	t.Setenv("OUTINGS_DB_PATH", ":memory:")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.LLM.MaxAttempts)
	assert.Equal(t, "file-model", cfg.LLM.Model)
	assert.Equal(t, "localhost:7000", cfg.Server.Addr)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestLoad_HomeConfigFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".outings", "config.yaml"), "log_level: error\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
}

func TestLoad_RejectsNonPositiveAttempts(t *testing.T) {
	isolate(t)
	t.Setenv("OUTINGS_LLM_MAX_ATTEMPTS", "0")
	t.Setenv("OUTINGS_LLM_TIMEOUT_MS", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.max_attempts must be > 0")
	assert.Contains(t, err.Error(), "llm.timeout_ms must be > 0")
}

func TestValidate_UnknownLogLevel(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `log_level "loud"`)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"OUTINGS_LLM_WEB_SEARCH_MAX_USES": "llm.web_search_max_uses",
		"OUTINGS_SERVER_ADDR":             "server.addr",
		"OUTINGS_LOG_LEVEL":               "log_level",
		"OUTINGS_CONFIG":                  "",
		"ANTHROPIC_API_KEY":               "llm.api_key",
		"PATH":                            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, envTransformFunc(in), in)
	}
}

func TestLoad_CORSOriginsFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("OUTINGS_SERVER_CORS_ORIGINS", "http://localhost:3000, https://family.example.com")
	t.Setenv("OUTINGS_SERVER_RATE_LIMIT_PER_MINUTE", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://family.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 0, cfg.Server.RateLimitPerMinute)
}

func TestLoad_DotEnvBelowProcessEnv(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "ANTHROPIC_API_KEY=sk-from-dotenv\nOUTINGS_LLM_MODEL=dotenv-model\nOUTINGS_LOG_LEVEL=debug\n")
	t.Setenv("OUTINGS_LOG_LEVEL", "error")
	unsetEnv(t, "ANTHROPIC_API_KEY")
	unsetEnv(t, "OUTINGS_LLM_MODEL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-from-dotenv", cfg.LLM.APIKey)
	assert.Equal(t, "dotenv-model", cfg.LLM.Model)
	assert.Equal(t, slog.LevelError, cfg.SlogLevel(), "process env wins over .env")
	_, leaked := os.LookupEnv("OUTINGS_LLM_MODEL")
	assert.False(t, leaked, ".env values are not exported")
}

// unsetEnv removes name for the rest of the test and restores it afterwards.
func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	require.NoError(t, os.Unsetenv(name))
}
