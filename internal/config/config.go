// Package config loads the rcupdate configuration: which registry backend
// to use and how to reach it. Configuration is constructed once per
// invocation and immutable afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is consulted when no --config flag and no RCUPDATE_CONFIG
// environment variable is set.
const DefaultPath = "/etc/rcupdate.yaml"

// Backend names accepted in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config selects and parameterizes the registry backend.
type Config struct {
	Backend string      `mapstructure:"backend"`
	File    FileConfig  `mapstructure:"file"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// FileConfig configures the filesystem backend.
type FileConfig struct {
	Root string `mapstructure:"root"`
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// Load reads the config file at path, applies defaults, and applies
// environment overrides (RCUPDATE_BACKEND, RCUPDATE_ROOT,
// RCUPDATE_REDIS_ADDR, RCUPDATE_REDIS_DB). A missing file is not an error:
// the defaults describe a file registry rooted at /etc.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Backend: BackendFile,
		File:    FileConfig{Root: "/etc"},
		Redis:   RedisConfig{Address: "localhost:6379"},
	}

	if path == "" {
		path = os.Getenv("RCUPDATE_CONFIG")
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err == nil {
		raw := map[string]any{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if err := mapstructure.Decode(raw, cfg); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	switch cfg.Backend {
	case BackendFile, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown backend %q (want %q or %q)", cfg.Backend, BackendFile, BackendRedis)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RCUPDATE_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("RCUPDATE_ROOT"); v != "" {
		cfg.File.Root = v
	}
	if v := os.Getenv("RCUPDATE_REDIS_ADDR"); v != "" {
		cfg.Redis.Address = v
	}
	if v := os.Getenv("RCUPDATE_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
}
