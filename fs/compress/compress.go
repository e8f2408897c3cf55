// Package compress selects a stream decompressor from a file name suffix.
//
// Selection is by suffix only: a ".gz" object is always read through gzip
// and an object without a registered suffix is always passed through, no
// matter what its bytes look like.
package compress

import (
	"compress/bzip2"
	"io"
	"path"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Decompressor wraps a compressed stream. Closing the returned reader must
// not close r.
type Decompressor func(r io.Reader) (io.ReadCloser, error)

// Registry maps file suffixes (including the dot) to decompressors.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	byExt map[string]Decompressor
}

// NewRegistry returns an empty registry. Every name passes through.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Decompressor)}
}

// DefaultRegistry returns a registry that handles .gz, .bz2 and .zst.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".gz", Gzip)
	r.Register(".bz2", Bzip2)
	r.Register(".zst", Zstd)
	return r
}

// Register associates ext with d, replacing any previous entry.
func (r *Registry) Register(ext string, d Decompressor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byExt[ext] = d
}

// Lookup returns the decompressor for the suffix of name.
func (r *Registry) Lookup(name string) (Decompressor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byExt[path.Ext(name)]
	return d, ok
}

// Extensions returns the registered suffixes.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

// Wrap returns a reader over the decompressed content of rc, chosen by the
// suffix of name. Without a registered suffix rc is returned unchanged.
//
// The decompressor is created on the first Read, so a corrupt header is
// reported by Read rather than by Wrap. Errors produced by the
// decompressor carry errors.CodeDecompressionFailed. Errors returned by rc
// itself are passed through as they are.
//
// Closing the returned reader closes both the decompressor and rc.
func (r *Registry) Wrap(name string, rc io.ReadCloser) io.ReadCloser {
	d, ok := r.Lookup(name)
	if !ok {
		return rc
	}
	return &lazyReader{name: name, raw: rc, open: d}
}

// Gzip decompresses gzip streams, including concatenated members.
func Gzip(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// Bzip2 decompresses bzip2 streams.
func Bzip2(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(bzip2.NewReader(r)), nil
}

// Zstd decompresses zstandard streams.
func Zstd(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
