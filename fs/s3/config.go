package s3

import (
	"github.com/jmgilman/objfs/fs/compress"
	"github.com/jmgilman/objfs/internal/logging"
	"github.com/jmgilman/objfs/internal/metrics"
)

// Config holds S3 filesystem configuration.
type Config struct {
	// ValidationThreshold is the first client version that does not need
	// bucket validation. Empty selects 2.25.0.
	ValidationThreshold string

	// Registry selects decompressors by suffix.
	// Default: .gz, .bz2 and .zst
	Registry *compress.Registry

	// Logger receives debug and warning events. Default: discard
	Logger *logging.Logger

	// Metrics is optional
	Metrics *metrics.Metrics
}
