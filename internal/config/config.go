package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Dataset DatasetConfig `yaml:"dataset" envconfig:"DATASET"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// DatasetConfig bounds uploaded dataset handling
type DatasetConfig struct {
	MaxUploadBytes int64 `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
	MaxCachedSets  int   `yaml:"max_cached_sets" envconfig:"MAX_CACHED_SETS" default:"32"`
	MaxTopN        int   `yaml:"max_top_n" envconfig:"MAX_TOP_N" default:"50"`
}

// ExportConfig controls aggregate export output
type ExportConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"exports"`
}

// Load loads configuration from environment variables and config file.
// Environment variables (prefix F500) take precedence over the YAML file.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("F500", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges file config with env config, env taking precedence
// for any field the environment actually set.
func mergeConfigs(fileCfg, envCfg Config) Config {
	merged := fileCfg

	if envSet("F500_SERVER_PORT") {
		merged.Server.Port = envCfg.Server.Port
	}
	if envSet("F500_SERVER_READ_TIMEOUT") {
		merged.Server.ReadTimeout = envCfg.Server.ReadTimeout
	}
	if envSet("F500_SERVER_WRITE_TIMEOUT") {
		merged.Server.WriteTimeout = envCfg.Server.WriteTimeout
	}
	if envSet("F500_LOGGING_LEVEL") {
		merged.Logging.Level = envCfg.Logging.Level
	}
	if envSet("F500_LOGGING_OUTPUT") {
		merged.Logging.Output = envCfg.Logging.Output
	}
	if envSet("F500_DATASET_MAX_UPLOAD_BYTES") {
		merged.Dataset.MaxUploadBytes = envCfg.Dataset.MaxUploadBytes
	}
	if envSet("F500_EXPORT_DIR") {
		merged.Export.Dir = envCfg.Export.Dir
	}

	return merged
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func getConfigFilePath() string {
	if path := os.Getenv("F500_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// validate checks configuration values for consistency
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}

	if c.Dataset.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max upload size: %d", c.Dataset.MaxUploadBytes)
	}
	if c.Dataset.MaxTopN < 1 {
		return fmt.Errorf("invalid max top-n: %d", c.Dataset.MaxTopN)
	}

	return nil
}

// EnsureExportDir creates the export directory if it does not exist.
func (c *Config) EnsureExportDir() error {
	if err := os.MkdirAll(c.Export.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", c.Export.Dir, err)
	}
	return nil
}

// LogFileDir returns the directory of the configured log file.
func (c *Config) LogFileDir() string {
	return filepath.Dir(c.Logging.FilePath)
}
