// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"roaming-cost/core/engine"
	"roaming-cost/core/types"
	"roaming-cost/internal/errors"
	"roaming-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Simulation contains engine and catalog settings
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server" yaml:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`

	// Sentry contains error reporting settings
	Sentry SentryConfig `json:"sentry" yaml:"sentry"`
}

// SimulationConfig contains simulation settings
type SimulationConfig struct {
	// Currency labels every rendered amount
	Currency types.Currency `json:"currency" yaml:"currency"`

	// CatalogPath is an HCL catalog file; empty uses the built-in catalog
	CatalogPath string `json:"catalog_path" yaml:"catalog_path"`

	// LongTripDays is the duration above which a long-trip alert is raised
	LongTripDays int `json:"long_trip_days" yaml:"long_trip_days"`

	// HeavyDailyDataMB is the daily data above which a heavy-usage alert is raised
	HeavyDailyDataMB int64 `json:"heavy_daily_data_mb" yaml:"heavy_daily_data_mb"`

	// RecommendationCount is how many leading estimates are recommendations
	RecommendationCount int `json:"recommendation_count" yaml:"recommendation_count"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds" yaml:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds writing a response
	WriteTimeoutSeconds int `json:"write_timeout_seconds" yaml:"write_timeout_seconds"`

	// MaxRequestBodyBytes caps request bodies
	MaxRequestBodyBytes int `json:"max_request_body_bytes" yaml:"max_request_body_bytes"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// NoColor disables ANSI colors in cli output
	NoColor bool `json:"no_color" yaml:"no_color"`
}

// SentryConfig contains error reporting settings
type SentryConfig struct {
	// DSN enables reporting when set
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`

	// Environment tags every event
	Environment string `json:"environment" yaml:"environment"`

	// SampleRate is the traces sample rate
	SampleRate float64 `json:"sample_rate" yaml:"sample_rate"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Simulation: SimulationConfig{
			Currency:            types.CurrencyTRY,
			LongTripDays:        30,
			HeavyDailyDataMB:    1000,
			RecommendationCount: 3,
		},
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  10,
			WriteTimeoutSeconds: 10,
			MaxRequestBodyBytes: 1 << 20,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
		Sentry: SentryConfig{
			Environment: "development",
			SampleRate:  0.2,
		},
	}
}

// DefaultPath is where the CLI looks for a config file
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".roaming-cost", "config.yaml")
}

// Load loads configuration from a file. A missing file yields the defaults.
// Files ending in .yaml or .yml are YAML, everything else is JSON.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, errors.Config("failed to read config file", err).WithContext("path", path)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Config("failed to parse config file", err).WithContext("path", path)
	}

	return config, nil
}

// LoadWithEnv loads the file at path, then applies .env and environment
// overrides, then validates the result
func LoadWithEnv(path string) (*Config, error) {
	config, err := Load(path)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv reads .env in the working directory if present and overrides
// settings from the environment
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("ROAMING_CURRENCY"); v != "" {
		c.Simulation.Currency = types.Currency(strings.ToUpper(v))
	}
	c.Simulation.CatalogPath = envOr("ROAMING_CATALOG", c.Simulation.CatalogPath)
	c.Server.Addr = envOr("ROAMING_ADDR", c.Server.Addr)
	c.Logging.Level = envOr("ROAMING_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = envOr("ROAMING_LOG_FORMAT", c.Logging.Format)
	c.Output.NoColor = envBool("NO_COLOR", c.Output.NoColor)
	c.Sentry.DSN = envOr("SENTRY_DSN", c.Sentry.DSN)
	c.Sentry.Environment = envOr("SENTRY_ENVIRONMENT", c.Sentry.Environment)
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	if !c.Simulation.Currency.IsValid() {
		return errors.Newf(errors.TypeConfig, "unsupported currency %q", c.Simulation.Currency)
	}
	switch c.Output.DefaultFormat {
	case "cli", "json", "markdown", "pdf":
	default:
		return errors.Newf(errors.TypeConfig, "unsupported output format %q", c.Output.DefaultFormat)
	}
	if c.Simulation.LongTripDays < 1 {
		return errors.New(errors.TypeConfig, "long_trip_days must be positive")
	}
	if c.Simulation.HeavyDailyDataMB < 0 {
		return errors.New(errors.TypeConfig, "heavy_daily_data_mb must not be negative")
	}
	return nil
}

// EngineConfig returns the engine configuration for these settings
func (c *Config) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Currency = c.Simulation.Currency
	if c.Simulation.LongTripDays > 0 {
		cfg.LongTripDays = c.Simulation.LongTripDays
	}
	cfg.HeavyDailyDataMB = decimal.NewFromInt(c.Simulation.HeavyDailyDataMB)
	if c.Simulation.RecommendationCount > 0 {
		cfg.RecommendationCount = c.Simulation.RecommendationCount
	}
	return cfg
}

// Save saves configuration to a file, as YAML or JSON by extension
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("failed to create config directory", err).WithContext("path", dir)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.Config("failed to encode config", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Config("failed to write config file", err).WithContext("path", path)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
