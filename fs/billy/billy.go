package billy

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/compress"
	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/fs/glob"
	"github.com/jmgilman/objfs/fs/uri"
	"github.com/jmgilman/objfs/internal/logging"
	"github.com/jmgilman/objfs/internal/metrics"
)

// Compile-time interface check
var _ core.FS = (*FS)(nil)

// FS implements core.FS over a billy.Filesystem.
type FS struct {
	bfs      billy.Filesystem
	typ      core.FSType
	cwd      string
	registry *compress.Registry
	logger   *logging.Logger
	metrics  *metrics.Metrics
}

// Option configures filesystem creation.
type Option func(*FS)

// WithRegistry sets the decompressor registry used by Open and Cat.
func WithRegistry(r *compress.Registry) Option {
	return func(f *FS) { f.registry = r }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(f *FS) { f.logger = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *FS) { f.metrics = m }
}

// NewLocal creates a go-billy-backed local filesystem.
// Relative paths resolve against the working directory at creation time.
func NewLocal(opts ...Option) *FS {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}
	return New(osfs.New("/"), core.FSTypeLocal, filepath.ToSlash(cwd), opts...)
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory(opts ...Option) *FS {
	return New(memfs.New(), core.FSTypeMemory, "/", opts...)
}

// New wraps an existing billy.Filesystem rooted at "/". Relative paths
// resolve against cwd.
func New(bfs billy.Filesystem, typ core.FSType, cwd string, opts ...Option) *FS {
	f := &FS{
		bfs: bfs,
		typ: typ,
		cwd: cwd,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.registry == nil {
		f.registry = compress.DefaultRegistry()
	}
	if f.logger == nil {
		f.logger = logging.NewNopLogger()
	}
	return f
}

// Unwrap returns the underlying billy.Filesystem.
func (f *FS) Unwrap() billy.Filesystem {
	return f.bfs
}

// Type returns the filesystem type given at creation.
func (f *FS) Type() core.FSType {
	return f.typ
}

// CanHandlePath accepts any path that is not a URI.
func (f *FS) CanHandlePath(p string) bool {
	return !uri.IsURI(p)
}

// clean converts p to a slash-separated, cleaned path.
func clean(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// resolve maps a user path onto the billy filesystem.
func (f *FS) resolve(p string) string {
	if path.IsAbs(p) {
		return p
	}
	return path.Join(f.cwd, p)
}

// join appends name to dir in the user's path form.
func join(dir, name string) string {
	switch {
	case dir == ".":
		return name
	case strings.HasSuffix(dir, "/"):
		return dir + name
	default:
		return dir + "/" + name
	}
}

// fail attaches an error code and the path to err and records it.
func (f *FS) fail(op, p string, err error) errors.Error {
	var coded errors.Error
	if !errors.As(err, &coded) {
		code, msg := classify(err)
		coded = errors.Wrap(err, code, msg)
	}
	coded = errors.WithContextMap(coded, map[string]interface{}{
		"path": p,
		"op":   op,
	})
	f.metrics.Error(op, string(coded.Code()))
	return coded
}

func classify(err error) (errors.ErrorCode, string) {
	switch {
	case stderrors.Is(err, core.ErrNotExist):
		return errors.CodeNotFound, "file not found"
	case stderrors.Is(err, core.ErrPermission):
		return errors.CodeForbidden, "permission denied"
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return errors.CodeTimeout, "operation cancelled"
	default:
		return errors.CodeInternal, "filesystem operation failed"
	}
}

// file is a regular file found by a listing.
type file struct {
	path string
	size uint64
}

// match returns the regular files selected by pattern, sorted by path.
// A directory selected by pattern contributes every file beneath it.
func (f *FS) match(ctx context.Context, pattern string) ([]file, error) {
	p := clean(pattern)
	pat, err := glob.Compile(p)
	if err != nil {
		return nil, err
	}

	root := p
	if pat.HasMagic() {
		root = "."
		prefix := pat.LiteralPrefix()
		if i := strings.LastIndex(prefix, "/"); i == 0 {
			root = "/"
		} else if i > 0 {
			root = prefix[:i]
		}
	}

	var files []file
	err = f.walk(ctx, root, func(name string, info fs.FileInfo) {
		if !pat.HasMagic() || selects(pat, name, len(root)) {
			files = append(files, file{path: name, size: uint64(max(info.Size(), 0))})
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })
	return files, nil
}

// selects reports whether pat matches name or one of its parent directories
// below the walk root.
func selects(pat *glob.Pattern, name string, from int) bool {
	if pat.Match(name) {
		return true
	}
	for i := from; i < len(name); i++ {
		if name[i] == '/' && i > 0 && pat.Match(name[:i]) {
			return true
		}
	}
	return false
}

// walk calls fn for every regular file at or beneath root. A missing root is
// not an error.
func (f *FS) walk(ctx context.Context, root string, fn func(name string, info fs.FileInfo)) error {
	info, err := f.bfs.Stat(f.resolve(root))
	if err != nil {
		if stderrors.Is(err, core.ErrNotExist) {
			return nil
		}
		return err
	}
	return f.walkDir(ctx, root, info, fn)
}

func (f *FS) walkDir(ctx context.Context, name string, info fs.FileInfo, fn func(string, fs.FileInfo)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			fn(name, info)
		}
		return nil
	}

	entries, err := f.bfs.ReadDir(f.resolve(name))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := f.walkDir(ctx, join(name, entry.Name()), entry, fn); err != nil {
			return err
		}
	}
	return nil
}

// Ls yields the files matching pattern in ascending order.
func (f *FS) Ls(ctx context.Context, pattern string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		files, err := f.match(ctx, pattern)
		if err != nil {
			yield("", f.fail(metrics.OpList, pattern, err))
			return
		}
		f.logger.Debug(ctx, "listed files", "pattern", pattern, "files", len(files))
		for _, fi := range files {
			if !yield(fi.path, nil) {
				return
			}
		}
	}
}

// Du returns the total size of the files matching pattern.
func (f *FS) Du(ctx context.Context, pattern string) (uint64, error) {
	files, err := f.match(ctx, pattern)
	if err != nil {
		return 0, f.fail(metrics.OpDu, pattern, err)
	}
	var total uint64
	for _, fi := range files {
		total += fi.size
	}
	return total, nil
}

// regular stats exactly p and requires a regular file.
func (f *FS) regular(op, p string) (string, error) {
	if glob.HasMagic(p) {
		return "", f.fail(op, p, errors.New(errors.CodeInvalidAddress, "glob patterns are not allowed here"))
	}
	name := f.resolve(clean(p))
	info, err := f.bfs.Stat(name)
	if err != nil {
		return "", f.fail(op, p, err)
	}
	if info.IsDir() {
		return "", f.fail(op, p, errors.New(errors.CodeInvalidInput, "path is a directory"))
	}
	return name, nil
}

// Open opens exactly one file, decompressing by suffix.
func (f *FS) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	name, err := f.regular(metrics.OpRead, p)
	if err != nil {
		return nil, err
	}
	bf, err := f.bfs.Open(name)
	if err != nil {
		return nil, f.fail(metrics.OpRead, p, err)
	}
	f.logger.Debug(ctx, "opened file", "path", p)
	return &reader{fs: f, path: p, rc: f.registry.Wrap(name, bf)}, nil
}

// Cat yields the lines of every file matching pattern.
func (f *FS) Cat(ctx context.Context, pattern string) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for p, err := range f.Ls(ctx, pattern) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !f.cat(ctx, p, yield) {
				return
			}
		}
	}
}

func (f *FS) cat(ctx context.Context, p string, yield func([]byte, error) bool) bool {
	rc, err := f.Open(ctx, p)
	if err != nil {
		yield(nil, err)
		return false
	}
	defer func() { _ = rc.Close() }()

	for line, err := range core.Lines(rc) {
		if !yield(line, err) || err != nil {
			return false
		}
	}
	return true
}

// Exists reports whether anything exists at exactly p.
func (f *FS) Exists(_ context.Context, p string) (bool, error) {
	_, err := f.bfs.Stat(f.resolve(clean(p)))
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, core.ErrNotExist) {
		return false, nil
	}
	return false, f.fail(metrics.OpExists, p, err)
}

// Remove deletes exactly one file.
func (f *FS) Remove(ctx context.Context, p string) error {
	name, err := f.regular(metrics.OpRemove, p)
	if err != nil {
		return err
	}
	if err := f.bfs.Remove(name); err != nil {
		return f.fail(metrics.OpRemove, p, err)
	}
	f.metrics.Removed()
	f.logger.Debug(ctx, "removed file", "path", p)
	return nil
}

// reader codes read errors and counts bytes.
type reader struct {
	fs     *FS
	path   string
	rc     io.ReadCloser
	closed bool
}

func (r *reader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	r.fs.metrics.BytesRead(n)
	if err != nil && err != io.EOF {
		return n, r.fs.fail(metrics.OpRead, r.path, err)
	}
	return n, err
}

func (r *reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.rc.Close()
}
