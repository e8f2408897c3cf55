package minio

import (
	"fmt"

	"github.com/minio/minio-go/v7"
)

// DefaultPageSize is the number of keys requested per listing call.
const DefaultPageSize = 1000

// Config holds MinIO client configuration.
type Config struct {
	// Endpoint is the MinIO server address (e.g., "localhost:9000")
	Endpoint string

	// AccessKey is the access key ID for authentication
	AccessKey string

	// SecretKey is the secret access key for authentication
	SecretKey string

	// Region is optional; MinIO discovers it when empty
	Region string

	// UseSSL enables HTTPS connections
	UseSSL bool

	// PathStyle forces path-style bucket addressing
	PathStyle bool

	// Client is an optional pre-configured MinIO client
	// If provided, Endpoint/AccessKey/SecretKey/Region/UseSSL are ignored
	Client *minio.Client

	// PageSize is the number of keys per listing page
	// Default: 1000
	PageSize int

	// Version overrides the reported library version
	// Default: the linked minio-go module version
	Version string
}

// validate checks if the configuration is valid.
// Either Client OR (Endpoint + AccessKey + SecretKey) must be provided.
func (c *Config) validate() error {
	// If Client is provided, we're done (other fields are ignored)
	if c.Client != nil {
		return nil
	}

	// Otherwise, check required connection fields
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when client is not provided")
	}
	if c.AccessKey == "" {
		return fmt.Errorf("access key is required when client is not provided")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is required when client is not provided")
	}
	if c.PageSize < 0 {
		return fmt.Errorf("page size must not be negative")
	}

	return nil
}
