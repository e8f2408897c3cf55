package core

import (
	"context"
	"io"
	"iter"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local filesystem (e.g., disk-backed).
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates a remote filesystem (e.g., S3, cloud storage).
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// FS is the primary filesystem interface combining all core operations.
//
// Paths are strings in the provider's own syntax: plain paths for local
// providers, scheme://bucket/key addresses for object stores. Patterns
// accept *, ? and [...] globs, where * also matches "/".
//
// All filesystem providers MUST implement this interface, which is composed
// of two sub-interfaces: ReadFS and ManageFS.
type FS interface {
	ReadFS
	ManageFS

	// CanHandlePath reports whether path is addressed to this provider.
	CanHandlePath(path string) bool

	// Type returns the underlying filesystem type.
	// This allows callers to introspect whether the filesystem is
	// backed by a real disk, in-memory storage, or remote storage.
	Type() FSType
}

// ReadFS defines read-only filesystem operations.
// All backends MUST support this interface.
type ReadFS interface {
	// Ls yields every file matching pattern in ascending order. A pattern
	// naming a directory yields every file beneath it. Nothing matching is
	// not an error: the sequence is simply empty.
	//
	// A failure is yielded as the final element of the sequence.
	Ls(ctx context.Context, pattern string) iter.Seq2[string, error]

	// Cat yields the lines of every file matching pattern, decompressed
	// according to each file's suffix. Lines keep their trailing newline.
	Cat(ctx context.Context, pattern string) iter.Seq2[[]byte, error]

	// Open opens exactly one file for reading, decompressing by suffix.
	// The returned reader must be closed.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Du returns the total size in bytes of every file matching pattern.
	Du(ctx context.Context, pattern string) (uint64, error)

	// Exists reports whether a file exists at exactly path.
	// If an error occurs while checking (e.g., permission denied),
	// it returns false and the error.
	Exists(ctx context.Context, path string) (bool, error)
}

// ManageFS defines file management operations.
type ManageFS interface {
	// Remove removes exactly one file. Patterns are not expanded.
	// If the path does not exist, Remove returns an error matching
	// ErrNotExist.
	Remove(ctx context.Context, path string) error
}
