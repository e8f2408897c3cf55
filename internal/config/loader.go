package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmgilman/objfs/errors"
)

// FileName is the config file name inside the user config directory.
const FileName = "config.toml"

// Environment variable names
const (
	EnvBackend             = "OBJFS_BACKEND"
	EnvEndpoint            = "OBJFS_ENDPOINT"
	EnvRegion              = "OBJFS_REGION"
	EnvAccessKey           = "OBJFS_ACCESS_KEY"
	EnvSecretKey           = "OBJFS_SECRET_KEY" //nolint:gosec // This is an env var name, not a credential
	EnvUseSSL              = "OBJFS_USE_SSL"
	EnvPathStyle           = "OBJFS_PATH_STYLE"
	EnvDirectoryBucket     = "OBJFS_DIRECTORY_BUCKET"
	EnvPageSize            = "OBJFS_PAGE_SIZE"
	EnvValidationThreshold = "OBJFS_VALIDATION_THRESHOLD"
	EnvLogLevel            = "OBJFS_LOG_LEVEL"
	EnvLogFormat           = "OBJFS_LOG_FORMAT"
)

// Loader loads configuration from file, environment, and applies defaults.
type Loader struct {
	configPath string // explicit config path (empty = use default)
}

// NewLoader creates a new config loader. An explicit configPath must exist;
// the default path may be absent.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// DefaultPath returns $XDG_CONFIG_HOME/objfs/config.toml or its platform
// equivalent. Returns "" if no config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "objfs", FileName)
}

// Load loads configuration with priority: defaults < file < env.
// Flags are applied by the caller. The result is not validated.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	fileCfg, err := l.loadFile()
	if err != nil {
		return nil, err
	}
	if fileCfg != nil {
		fileCfg.merge(cfg)
	}

	if err := applyEnvVars(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads and parses the config file.
// Returns nil if the default config file does not exist.
func (l *Loader) loadFile() (*FileConfig, error) {
	configPath := l.configPath
	if configPath == "" {
		configPath = DefaultPath()
		if configPath == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && l.configPath == "" {
			return nil, nil
		}
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "failed to read config file",
			map[string]interface{}{"path": configPath})
	}

	var fileCfg FileConfig
	if err := toml.Unmarshal(data, &fileCfg); err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeInvalidConfig, "invalid TOML in config file",
			map[string]interface{}{"path": configPath})
	}

	return &fileCfg, nil
}

// applyEnvVars applies environment variable overrides to config.
func applyEnvVars(cfg *Config) error {
	strs := map[string]*string{
		EnvBackend:             &cfg.Storage.Backend,
		EnvEndpoint:            &cfg.Storage.Endpoint,
		EnvRegion:              &cfg.Storage.Region,
		EnvAccessKey:           &cfg.Storage.AccessKey,
		EnvSecretKey:           &cfg.Storage.SecretKey,
		EnvValidationThreshold: &cfg.Storage.ValidationThreshold,
		EnvLogLevel:            &cfg.Log.Level,
		EnvLogFormat:           &cfg.Log.Format,
	}
	for name, dst := range strs {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		EnvUseSSL:          &cfg.Storage.UseSSL,
		EnvPathStyle:       &cfg.Storage.PathStyle,
		EnvDirectoryBucket: &cfg.Storage.DirectoryBucket,
	}
	for name, dst := range bools {
		if v := os.Getenv(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return envError(name, v, err)
			}
			*dst = b
		}
	}

	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvPageSize, v, err)
		}
		cfg.Storage.PageSize = n
	}

	return nil
}

func envError(name, value string, err error) error {
	return errors.WrapWithContext(err, errors.CodeInvalidConfig, "invalid environment variable",
		map[string]interface{}{"name": name, "value": value})
}
