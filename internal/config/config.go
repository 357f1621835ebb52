// Package config loads cmdflow settings from defaults, a YAML file, a .env file
// and CMDFLOW_* environment variables, in that order of precedence (last wins).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmdflow/cmdflow/internal/logging"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CMDFLOW_"

// Config is the application configuration.
type Config struct {
	LogLevel    string  `mapstructure:"log_level" yaml:"log_level"`
	EventBuffer int     `mapstructure:"event_buffer" yaml:"event_buffer"`
	DryRun      bool    `mapstructure:"dry_run" yaml:"dry_run"`
	History     History `mapstructure:"history" yaml:"history"`
	Server      Server  `mapstructure:"server" yaml:"server"`
}

// History selects where run reports are stored.
type History struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Redis   Redis  `mapstructure:"redis" yaml:"redis"`
}

// Redis configures the Redis history backend.
type Redis struct {
	Addr     string        `mapstructure:"addr" yaml:"addr"`
	Password string        `mapstructure:"password" yaml:"password"`
	DB       int           `mapstructure:"db" yaml:"db"`
	Prefix   string        `mapstructure:"prefix" yaml:"prefix"`
	TTL      time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// Server configures the HTTP control server.
type Server struct {
	Addr        string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:    "info",
		EventBuffer: 256,
		DryRun:      true,
		History: History{
			Backend: BackendMemory,
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "cmdflow:runs:",
			},
		},
		Server: Server{
			Addr:        ":8080",
			ReadTimeout: 10 * time.Second,
		},
	}
}

// envKeys maps environment variable suffixes to config paths.
var envKeys = map[string][]string{
	"LOG_LEVEL":           {"log_level"},
	"EVENT_BUFFER":        {"event_buffer"},
	"DRY_RUN":             {"dry_run"},
	"HISTORY_BACKEND":     {"history", "backend"},
	"REDIS_ADDR":          {"history", "redis", "addr"},
	"REDIS_PASSWORD":      {"history", "redis", "password"},
	"REDIS_DB":            {"history", "redis", "db"},
	"REDIS_PREFIX":        {"history", "redis", "prefix"},
	"REDIS_TTL":           {"history", "redis", "ttl"},
	"SERVER_ADDR":         {"server", "addr"},
	"SERVER_READ_TIMEOUT": {"server", "read_timeout"},
}

type options struct {
	envFile string
}

// Option customizes Load.
type Option func(*options)

// WithEnvFile reads variables from path instead of ".env". A missing file is ignored.
func WithEnvFile(path string) Option {
	return func(o *options) {
		o.envFile = path
	}
}

// Load builds the configuration. An empty path skips the config file;
// a non-empty path must exist. Files ending in .json are read as JSON, anything else as YAML.
func Load(path string, opts ...Option) (Config, error) {
	o := options{envFile: ".env"}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()

	if path != "" {
		raw, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		if err := decode(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load env file %s: %w", o.envFile, err)
	}

	if err := decode(fromEnv(), &cfg); err != nil {
		return cfg, fmt.Errorf("invalid environment override: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.EventBuffer < 0 {
		return fmt.Errorf("event_buffer must not be negative, got %d", c.EventBuffer)
	}
	switch c.History.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}
	if c.History.Backend == BackendRedis && c.History.Redis.Addr == "" {
		return errors.New("history.redis.addr is required for the redis backend")
	}
	return nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return raw, nil
}

func fromEnv() map[string]any {
	raw := map[string]any{}
	for suffix, path := range envKeys {
		v, ok := os.LookupEnv(EnvPrefix + suffix)
		if !ok {
			continue
		}
		m := raw
		for _, key := range path[:len(path)-1] {
			next, ok := m[key].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[key] = next
			}
			m = next
		}
		m[path[len(path)-1]] = v
	}
	return raw
}

// decode overlays raw onto cfg.
func decode(raw map[string]any, cfg *Config) error {
	if len(raw) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
