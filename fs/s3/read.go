package s3

import (
	"context"
	"io"
	"iter"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/fs/uri"
	"github.com/jmgilman/objfs/internal/metrics"
)

// OpenRead opens the object at address for reading, decompressing it
// according to its suffix.
//
// The address must name one existing object: bucket roots and glob keys
// fail with errors.CodeInvalidAddress, and a missing object fails with
// errors.CodeNotFound before any content is requested.
//
// Read errors carry errors.CodeDecompressionFailed for corrupt content and
// errors.CodeNetwork for transport failures. Close releases both the
// decompressor and the network stream and may be called more than once.
func (f *FS) OpenRead(ctx context.Context, address string) (io.ReadCloser, error) {
	addr, err := f.parseObject(metrics.OpRead, address)
	if err != nil {
		return nil, err
	}

	b, err := f.bucket(ctx, metrics.OpRead, addr)
	if err != nil {
		return nil, err
	}

	if _, err := b.Head(ctx, addr.Key); err != nil {
		return nil, f.fail(metrics.OpRead, addr, err)
	}

	raw, err := b.Get(ctx, addr.Key)
	if err != nil {
		return nil, f.fail(metrics.OpRead, addr, err)
	}

	f.logger.Debug(ctx, "opened object", "address", addr.String())

	return &objectReader{
		fs:   f,
		addr: addr,
		rc:   f.registry.Wrap(addr.Key, raw),
	}, nil
}

// Cat yields the decompressed lines of every object selected by pattern,
// in listing order. Each object is closed before the next is opened.
func (f *FS) Cat(ctx context.Context, pattern string) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for addr, err := range f.List(ctx, pattern) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !f.catObject(ctx, addr, yield) {
				return
			}
		}
	}
}

// catObject yields the lines of one object and reports whether the caller
// wants more.
func (f *FS) catObject(ctx context.Context, addr uri.Address, yield func([]byte, error) bool) bool {
	rc, err := f.OpenRead(ctx, addr.String())
	if err != nil {
		yield(nil, err)
		return false
	}
	defer func() { _ = rc.Close() }()

	for line, err := range core.Lines(rc) {
		if err != nil {
			yield(nil, err)
			return false
		}
		if !yield(line, nil) {
			return false
		}
	}
	return true
}

type objectReader struct {
	fs     *FS
	addr   uri.Address
	rc     io.ReadCloser
	closed bool
}

func (r *objectReader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, errors.WithContext(
			errors.New(errors.CodeInternal, "read from closed object"),
			"address", r.addr.String())
	}

	n, err := r.rc.Read(p)
	r.fs.metrics.BytesRead(n)
	if err != nil && err != io.EOF {
		var coded errors.Error
		if !errors.As(err, &coded) {
			coded = errors.Wrap(err, errors.CodeNetwork, "failed to read object")
		}
		return n, r.fs.fail(metrics.OpRead, r.addr, coded)
	}
	return n, err
}

func (r *objectReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.rc.Close(); err != nil {
		return r.fs.fail(metrics.OpRead, r.addr, err)
	}
	return nil
}
