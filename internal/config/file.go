package config

// FileConfig represents the raw config file contents.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	Storage FileStorageConfig `toml:"storage"`
	Log     FileLogConfig     `toml:"log"`
}

// FileStorageConfig is the TOML representation of StorageConfig.
type FileStorageConfig struct {
	Backend             *string `toml:"backend"`
	Endpoint            *string `toml:"endpoint"`
	Region              *string `toml:"region"`
	AccessKey           *string `toml:"access_key"`
	SecretKey           *string `toml:"secret_key"`
	UseSSL              *bool   `toml:"use_ssl"`
	PathStyle           *bool   `toml:"path_style"`
	DirectoryBucket     *bool   `toml:"directory_bucket"`
	PageSize            *int    `toml:"page_size"`
	ValidationThreshold *string `toml:"validation_threshold"`
}

// FileLogConfig is the TOML representation of LogConfig.
type FileLogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// merge copies set values into cfg.
func (f *FileConfig) merge(cfg *Config) {
	setString(&cfg.Storage.Backend, f.Storage.Backend)
	setString(&cfg.Storage.Endpoint, f.Storage.Endpoint)
	setString(&cfg.Storage.Region, f.Storage.Region)
	setString(&cfg.Storage.AccessKey, f.Storage.AccessKey)
	setString(&cfg.Storage.SecretKey, f.Storage.SecretKey)
	setString(&cfg.Storage.ValidationThreshold, f.Storage.ValidationThreshold)
	if f.Storage.UseSSL != nil {
		cfg.Storage.UseSSL = *f.Storage.UseSSL
	}
	if f.Storage.PathStyle != nil {
		cfg.Storage.PathStyle = *f.Storage.PathStyle
	}
	if f.Storage.DirectoryBucket != nil {
		cfg.Storage.DirectoryBucket = *f.Storage.DirectoryBucket
	}
	if f.Storage.PageSize != nil {
		cfg.Storage.PageSize = *f.Storage.PageSize
	}

	setString(&cfg.Log.Level, f.Log.Level)
	setString(&cfg.Log.Format, f.Log.Format)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
