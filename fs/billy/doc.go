// Package billy provides a go-billy-backed implementation of the core.FS
// interface for local and in-memory files.
//
// This package wraps go-billy's osfs (local) and memfs (in-memory)
// implementations. Paths are plain filesystem paths; any path that parses as
// a URI is left to other providers.
//
// Usage:
//
//	// Create local filesystem
//	fsys := billy.NewLocal()
//
//	// List every gzip file beneath ./logs
//	for path, err := range fsys.Ls(ctx, "logs/*.gz") {
//	    ...
//	}
//
//	// Stream decompressed lines
//	for line, err := range fsys.Cat(ctx, "logs/app.log.gz") {
//	    ...
//	}
//
// # Memory Filesystem
//
// For testing or temporary storage, use the in-memory filesystem and seed it
// through the underlying billy.Filesystem:
//
//	fsys := billy.NewMemory()
//	err := util.WriteFile(fsys.Unwrap(), "/data/foo", []byte("foo\n"), 0o644)
//
// # Thread Safety
//
// FS instances are safe for concurrent use by multiple goroutines if the
// underlying billy.Filesystem is. Readers returned by Open are not.
package billy
