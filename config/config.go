// Package config loads the vecdb server configuration.
//
// Values come from, in increasing precedence: built-in defaults, a YAML
// file, VECDB_* environment variables and finally command-line flags
// (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDimension is the embedding width used when none is configured.
const DefaultDimension = 768

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	Gzip            bool          `yaml:"gzip"`
}

// StoreConfig configures the vector store.
type StoreConfig struct {
	Dimension         int `yaml:"dimension"`
	SearchWorkers     int `yaml:"search_workers"`
	ParallelThreshold int `yaml:"parallel_threshold"`
}

// LimitsConfig configures request admission.
type LimitsConfig struct {
	RequestsPerSecond     float64 `yaml:"requests_per_second"`
	Burst                 int     `yaml:"burst"`
	MaxConcurrentSearches int64   `yaml:"max_concurrent_searches"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Limits LimitsConfig `yaml:"limits"`
	Log    LogConfig    `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8001",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    8 << 20,
			Gzip:            true,
		},
		Store: StoreConfig{
			Dimension: DefaultDimension,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a config from path on top of the defaults.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ApplyEnv overrides values from VECDB_* variables found by lookup
// (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("VECDB_ADDR"); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup("VECDB_DIMENSION"); ok && v != "" {
		dim, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("VECDB_DIMENSION: %w", err)
		}
		c.Store.Dimension = dim
	}
	if v, ok := lookup("VECDB_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("VECDB_LOG_FORMAT"); ok && v != "" {
		c.Log.Format = v
	}
	return nil
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	if c.Store.Dimension <= 0 {
		return fmt.Errorf("store.dimension must be positive, got %d", c.Store.Dimension)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Limits.RequestsPerSecond < 0 || c.Limits.Burst < 0 || c.Limits.MaxConcurrentSearches < 0 {
		return errors.New("limits must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
