// Package composite routes filesystem calls to the first provider that can
// handle a path.
//
// Usage:
//
//	fsys := composite.New(s3fs, billy.NewLocal())
//	for path, err := range fsys.Ls(ctx, "s3://walrus/logs/*.gz") {
//	    ...
//	}
package composite

import (
	"context"
	"io"
	"iter"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/core"
)

// Compile-time interface check
var _ core.FS = (*FS)(nil)

// FS dispatches each call to a provider chosen by path.
type FS struct {
	providers []core.FS
}

// New creates a router over providers. Earlier providers take precedence.
func New(providers ...core.FS) *FS {
	return &FS{providers: providers}
}

// Providers returns the providers in routing order.
func (f *FS) Providers() []core.FS {
	return append([]core.FS(nil), f.providers...)
}

// Route returns the provider for path.
func (f *FS) Route(path string) (core.FS, error) {
	for _, p := range f.providers {
		if p.CanHandlePath(path) {
			return p, nil
		}
	}
	return nil, errors.WithContext(
		errors.New(errors.CodeInvalidAddress, "no filesystem can handle path"),
		"path", path)
}

// CanHandlePath reports whether any provider accepts path.
func (f *FS) CanHandlePath(path string) bool {
	_, err := f.Route(path)
	return err == nil
}

// Type returns core.FSTypeUnknown; the concrete type depends on the path.
func (f *FS) Type() core.FSType {
	return core.FSTypeUnknown
}

func (f *FS) Ls(ctx context.Context, pattern string) iter.Seq2[string, error] {
	p, err := f.Route(pattern)
	if err != nil {
		return fail[string](err)
	}
	return p.Ls(ctx, pattern)
}

func (f *FS) Cat(ctx context.Context, pattern string) iter.Seq2[[]byte, error] {
	p, err := f.Route(pattern)
	if err != nil {
		return fail[[]byte](err)
	}
	return p.Cat(ctx, pattern)
}

func (f *FS) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	p, err := f.Route(path)
	if err != nil {
		return nil, err
	}
	return p.Open(ctx, path)
}

func (f *FS) Du(ctx context.Context, pattern string) (uint64, error) {
	p, err := f.Route(pattern)
	if err != nil {
		return 0, err
	}
	return p.Du(ctx, pattern)
}

func (f *FS) Exists(ctx context.Context, path string) (bool, error) {
	p, err := f.Route(path)
	if err != nil {
		return false, err
	}
	return p.Exists(ctx, path)
}

func (f *FS) Remove(ctx context.Context, path string) error {
	p, err := f.Route(path)
	if err != nil {
		return err
	}
	return p.Remove(ctx, path)
}

// fail returns a sequence holding only err.
func fail[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}
