package s3

import (
	"context"
	"io"
	"iter"
	"time"
)

// ObjectRecord is a stored object as reported by a listing or a metadata
// lookup.
type ObjectRecord struct {
	Key          string
	Size         uint64
	LastModified time.Time
}

// Client is the storage library the filesystem runs on.
//
// Implementations report missing buckets and keys with errors matching
// fs.ErrNotExist, and denied access with errors matching fs.ErrPermission.
// A Client may be shared by concurrent callers.
type Client interface {
	// Bucket returns a handle for the named bucket. When validate is true
	// the implementation confirms the bucket exists before returning.
	Bucket(ctx context.Context, name string, validate bool) (Bucket, error)

	// Version returns the version of the underlying client library.
	Version() string
}

// Bucket is a handle to one bucket.
type Bucket interface {
	// Name returns the bucket name.
	Name() string

	// List yields every object whose key starts with prefix, one page at a
	// time. Keys are in ascending byte order across all pages. Breaking
	// out of the sequence stops the listing.
	List(ctx context.Context, prefix string) iter.Seq2[[]ObjectRecord, error]

	// Head returns the metadata of the object stored at exactly key.
	Head(ctx context.Context, key string) (ObjectRecord, error)

	// Get opens the raw content of the object at key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object at key. Deleting a missing key may
	// succeed silently.
	Delete(ctx context.Context, key string) error
}
