// Package config loads CLI configuration with priority
// defaults < TOML file < OBJFS_* environment < flags.
package config

import (
	"github.com/hashicorp/go-version"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/internal/logging"
)

// Storage backends.
const (
	BackendMinIO = "minio"
	BackendAWS   = "aws"
)

// MaxPageSize is the most keys a single S3 listing call returns.
const MaxPageSize = 1000

// Config is the fully resolved configuration.
type Config struct {
	Storage StorageConfig
	Log     LogConfig
}

// StorageConfig selects and configures the object storage client.
type StorageConfig struct {
	Backend             string
	Endpoint            string
	Region              string
	AccessKey           string
	SecretKey           string
	UseSSL              bool
	PathStyle           bool
	DirectoryBucket     bool
	PageSize            int
	ValidationThreshold string
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string
	Format string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:  BackendAWS,
			Region:   "us-east-1",
			UseSSL:   true,
			PageSize: 1000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMinIO, BackendAWS:
	default:
		return invalid("storage.backend", "must be %q or %q, got %q", BackendMinIO, BackendAWS, c.Storage.Backend)
	}
	if c.Storage.Backend == BackendMinIO && c.Storage.Endpoint == "" {
		return invalid("storage.endpoint", "is required for the minio backend")
	}
	if c.Storage.PageSize < 0 || c.Storage.PageSize > MaxPageSize {
		return invalid("storage.page_size", "must be between 0 and %d, got %d", MaxPageSize, c.Storage.PageSize)
	}
	if c.Storage.ValidationThreshold != "" {
		if _, err := version.NewVersion(c.Storage.ValidationThreshold); err != nil {
			return invalid("storage.validation_threshold", "invalid version %q", c.Storage.ValidationThreshold)
		}
	}
	if _, err := logging.ParseLogLevel(c.Log.Level); err != nil {
		return invalid("log.level", "%v", err)
	}
	switch c.Log.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		return invalid("log.format", "must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, c.Log.Format)
	}
	return nil
}

// LoggingConfig converts the log section into a logger configuration.
func (c *Config) LoggingConfig() logging.LogConfig {
	cfg := logging.DefaultLogConfig()
	if level, err := logging.ParseLogLevel(c.Log.Level); err == nil {
		cfg.Level = level
	}
	cfg.Format = c.Log.Format
	return cfg
}

func invalid(field, format string, args ...interface{}) errors.Error {
	return errors.WithContext(errors.Newf(errors.CodeInvalidConfig, field+" "+format, args...), "field", field)
}
