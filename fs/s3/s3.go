package s3

import (
	"context"
	stderrors "errors"
	"io"
	"iter"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/compress"
	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/fs/glob"
	"github.com/jmgilman/objfs/fs/s3/internal/compat"
	"github.com/jmgilman/objfs/fs/uri"
	"github.com/jmgilman/objfs/internal/logging"
	"github.com/jmgilman/objfs/internal/metrics"
)

// Compile-time interface check
var _ core.FS = (*FS)(nil)

// FS implements core.FS over a storage Client.
// It is safe for concurrent use if the Client is.
type FS struct {
	client   Client
	policy   *compat.Policy
	registry *compress.Registry
	logger   *logging.Logger
	metrics  *metrics.Metrics
}

// New creates a filesystem over client.
func New(client Client, cfg Config) (*FS, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInvalidConfig, "storage client is required")
	}

	policy, err := compat.New(cfg.ValidationThreshold)
	if err != nil {
		return nil, err
	}

	registry := cfg.Registry
	if registry == nil {
		registry = compress.DefaultRegistry()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &FS{
		client:   client,
		policy:   policy,
		registry: registry,
		logger:   logger,
		metrics:  cfg.Metrics,
	}, nil
}

// bucket acquires a handle for addr's bucket, validating it if the client
// library is older than the threshold.
func (f *FS) bucket(ctx context.Context, op string, addr uri.Address) (Bucket, error) {
	b, err := f.acquire(ctx, addr)
	if err != nil {
		return nil, f.fail(op, addr, err)
	}
	return b, nil
}

// acquire is bucket without error classification.
func (f *FS) acquire(ctx context.Context, addr uri.Address) (Bucket, error) {
	version := f.client.Version()
	validate := f.policy.RequiresValidation(version)

	f.logger.Debug(ctx, "acquiring bucket",
		"bucket", addr.Bucket,
		"client_version", version,
		"validate", validate)

	return f.client.Bucket(ctx, addr.Bucket, validate)
}

// fail attaches an error code and the address to err and records it.
// Errors that already carry a code keep it.
func (f *FS) fail(op string, addr uri.Address, err error) errors.Error {
	var coded errors.Error
	if !errors.As(err, &coded) {
		code, msg := classify(err)
		coded = errors.Wrap(err, code, msg)
	}
	coded = errors.WithContextMap(coded, map[string]interface{}{
		"address": addr.String(),
		"op":      op,
	})
	f.metrics.Error(op, string(coded.Code()))
	return coded
}

func classify(err error) (errors.ErrorCode, string) {
	switch {
	case stderrors.Is(err, core.ErrNotExist):
		return errors.CodeNotFound, "object not found"
	case stderrors.Is(err, core.ErrPermission):
		return errors.CodeForbidden, "access denied"
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return errors.CodeTimeout, "storage request timed out"
	default:
		return errors.CodeNetwork, "storage request failed"
	}
}

// parseObject parses address and rejects bucket roots and glob keys, which do
// not name a single object.
func (f *FS) parseObject(op, address string) (uri.Address, error) {
	addr, err := uri.Parse(address)
	if err != nil {
		f.metrics.Error(op, string(errors.GetCode(err)))
		return uri.Address{}, err
	}
	if addr.IsRoot() {
		return uri.Address{}, f.fail(op, addr,
			errors.New(errors.CodeInvalidAddress, "address names a bucket, not an object"))
	}
	if glob.HasMagic(addr.Key) {
		return uri.Address{}, f.fail(op, addr,
			errors.New(errors.CodeInvalidAddress, "glob patterns are not allowed here"))
	}
	return addr, nil
}

// CanHandlePath reports whether path is an s3, s3n or s3a address.
func (f *FS) CanHandlePath(path string) bool {
	_, err := uri.Parse(path)
	return err == nil
}

// Type returns core.FSTypeRemote.
func (f *FS) Type() core.FSType {
	return core.FSTypeRemote
}

// Ls yields the addresses matching pattern as strings.
func (f *FS) Ls(ctx context.Context, pattern string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for addr, err := range f.List(ctx, pattern) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(addr.String(), nil) {
				return
			}
		}
	}
}

// Open is OpenRead.
func (f *FS) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return f.OpenRead(ctx, path)
}

// Exists is PathExists.
func (f *FS) Exists(ctx context.Context, path string) (bool, error) {
	return f.PathExists(ctx, path)
}
