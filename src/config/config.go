package config

import (
	"fmt"
	"os"

	"stock-watch/src/helpers"
	"stock-watch/src/models"

	"gopkg.in/yaml.v3"
)

// Defaults applied to zero-valued settings.
const (
	DefaultPollIntervalSeconds = 15
	DefaultFlashDurationMs     = 1000
	DefaultConcurrentRequests  = 8
	DefaultRequestTimeout      = 10
	DefaultStorageKey          = "tickers"
	DefaultBaseURL             = "https://query1.finance.yahoo.com"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	return Parse(data)
}

// Parse builds a Config from raw YAML, fills defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// ApplyDefaults fills unset values. Poll interval and flash duration default to 15s and 1000ms.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "stock-watch"
	}
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "sqlite"
	}
	if c.Storage.Key == "" {
		c.Storage.Key = DefaultStorageKey
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = DefaultRequestTimeout
	}
	if c.DataSource.Name == "" {
		c.DataSource.Name = "yahoo"
	}
	if c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = DefaultBaseURL
	}
	if c.Poller.PollIntervalSeconds == 0 {
		c.Poller.PollIntervalSeconds = DefaultPollIntervalSeconds
	}
	if c.Poller.FlashDurationMs == 0 {
		c.Poller.FlashDurationMs = DefaultFlashDurationMs
	}
	if c.Poller.ConcurrentRequests == 0 {
		c.Poller.ConcurrentRequests = DefaultConcurrentRequests
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation. Failures are
// *helpers.ConfigurationError.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return helpers.NewConfigurationError(err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Server
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort != 0 && (c.GrpcPort <= 1024 || c.GrpcPort > 65535) {
		return fmt.Errorf("invalid grpc port number: %d (must be between 1025 and 65535)", c.GrpcPort)
	}

	// Storage
	switch c.Storage.DBType {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("connection string cannot be empty for postgres")
		}
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("redis address cannot be empty for redis")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Storage.DBType)
	}

	// Network
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}

	// Data source
	if c.DataSource.Name != "yahoo" {
		return fmt.Errorf("unsupported data source: %s", c.DataSource.Name)
	}

	// Poller
	if c.Poller.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll interval must be greater than 0")
	}
	if c.Poller.FlashDurationMs <= 0 {
		return fmt.Errorf("flash duration must be greater than 0")
	}
	if c.Poller.ConcurrentRequests <= 0 {
		return fmt.Errorf("concurrent requests must be greater than 0")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
