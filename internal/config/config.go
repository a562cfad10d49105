// Package config loads application settings from struct defaults, an
// optional YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/outings/internal/llm"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names an explicit config file to load.
const ConfigPathEnvVar = "OUTINGS_CONFIG"

const envPrefix = "outings_"

// Config is the full application configuration.
type Config struct {
	DBPath   string        `koanf:"db_path"`
	LogLevel string        `koanf:"log_level"`
	Server   ServerConfig  `koanf:"server"`
	LLM      llm.LLMConfig `koanf:"llm"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string `koanf:"cors_origins"`
	// RateLimitPerMinute caps search requests per client IP. Zero disables it.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	dbPath := "outings.db"
	if dir := homeDir(); dir != "" {
		dbPath = filepath.Join(dir, "outings.db")
	}
	return Config{
		DBPath:   dbPath,
		LogLevel: "warn",
		Server: ServerConfig{
			Addr:               "127.0.0.1:8080",
			CORSOrigins:        []string{"http://localhost:*", "http://127.0.0.1:*"},
			RateLimitPerMinute: 10,
		},
		LLM: llm.DefaultConfig(),
	}
}

// Load layers defaults, the first config file found, .env files and
// environment variables, then validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := loadDotEnv(k, DotEnvPaths()...); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.RateLimitPerMinute < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit_per_minute must be >= 0, got %d", c.Server.RateLimitPerMinute))
	}
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel maps log_level onto a slog level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q is not one of debug, info, warn, error", s)
	}
	return level, nil
}

// sliceConfigPaths are keys that arrive from the environment as
// comma-separated strings.
var sliceConfigPaths = []string{"server.cors_origins"}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := []string{}
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("setting %s: %w", path, err)
		}
	}
	return nil
}

// DefaultConfigPaths returns the locations searched when OUTINGS_CONFIG is unset.
func DefaultConfigPaths() []string {
	paths := []string{"outings.yaml"}
	if dir := homeDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "config.yaml"))
	}
	return paths
}

// DotEnvPaths returns the .env files read for variables not already set in
// the process environment. Earlier files win.
func DotEnvPaths() []string {
	paths := []string{".env"}
	if dir := homeDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, ".env"))
	}
	return paths
}

// loadDotEnv applies .env variables through the same key mapping as the
// environment, skipping any variable the process already has.
func loadDotEnv(k *koanf.Koanf, paths ...string) error {
	seen := map[string]bool{}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		vars, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for name, value := range vars {
			if _, set := os.LookupEnv(name); set || seen[name] {
				continue
			}
			seen[name] = true
			if key := envTransformFunc(name); key != "" {
				if err := k.Set(key, value); err != nil {
					return fmt.Errorf("setting %s from %s: %w", key, path, err)
				}
			}
		}
	}
	return nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".outings")
}

// envTransformFunc maps OUTINGS_LLM_MAX_ATTEMPTS to llm.max_attempts and
// OUTINGS_SERVER_ADDR to server.addr. Returning "" skips the variable.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	if key == "anthropic_api_key" {
		return "llm.api_key"
	}
	if !strings.HasPrefix(key, envPrefix) {
		return ""
	}
	key = strings.TrimPrefix(key, envPrefix)
	switch {
	case key == "config":
		return ""
	case strings.HasPrefix(key, "llm_"):
		return "llm." + strings.TrimPrefix(key, "llm_")
	case strings.HasPrefix(key, "server_"):
		return "server." + strings.TrimPrefix(key, "server_")
	default:
		return key
	}
}
