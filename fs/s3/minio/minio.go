// Package minio provides an s3.Client backed by the MinIO Go SDK.
package minio

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"runtime/debug"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/s3"
	"github.com/jmgilman/objfs/fs/s3/minio/internal/errs"
)

// modulePath is the import path whose build version is reported.
const modulePath = "github.com/minio/minio-go/v7"

// Compile-time interface check
var _ s3.Client = (*Client)(nil)

// Client implements s3.Client for MinIO/S3-compatible storage.
type Client struct {
	client   *minio.Client
	pageSize int
	version  string
}

// New creates a MinIO-backed storage client.
// Returns error if configuration is invalid.
func New(cfg Config) (*Client, error) {
	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid minio config")
	}

	client := cfg.Client
	if client == nil {
		var err error
		lookup := minio.BucketLookupAuto
		if cfg.PathStyle {
			lookup = minio.BucketLookupPath
		}
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure:       cfg.UseSSL,
			Region:       cfg.Region,
			BucketLookup: lookup,
		})
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidConfig, "failed to create minio client")
		}
	}

	pageSize := cfg.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	version := cfg.Version
	if version == "" {
		version = LibraryVersion()
	}

	return &Client{client: client, pageSize: pageSize, version: version}, nil
}

// LibraryVersion returns the version of the linked minio-go module, or ""
// when build information is unavailable.
func LibraryVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			if dep.Replace != nil {
				return dep.Replace.Version
			}
			return dep.Version
		}
	}
	return ""
}

// Version returns the minio-go version.
func (c *Client) Version() string {
	return c.version
}

// Bucket returns a handle for name. With validate, it fails with an error
// matching fs.ErrNotExist if the bucket does not exist.
func (c *Client) Bucket(ctx context.Context, name string, validate bool) (s3.Bucket, error) {
	if validate {
		exists, err := c.client.BucketExists(ctx, name)
		if err != nil {
			return nil, errs.Translate(err)
		}
		if !exists {
			return nil, fmt.Errorf("minio: bucket %q: %w", name, fs.ErrNotExist)
		}
	}
	return &bucket{client: c.client, name: name, pageSize: c.pageSize}, nil
}

type bucket struct {
	client   *minio.Client
	name     string
	pageSize int
}

func (b *bucket) Name() string { return b.name }

// List groups the SDK's object stream into pages. MinIO returns keys in
// ascending order.
func (b *bucket) List(ctx context.Context, prefix string) iter.Seq2[[]s3.ObjectRecord, error] {
	return func(yield func([]s3.ObjectRecord, error) bool) {
		// Cancelling stops the SDK's listing goroutine.
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		page := make([]s3.ObjectRecord, 0, b.pageSize)
		for object := range b.client.ListObjects(ctx, b.name, minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: true,
			MaxKeys:   b.pageSize,
		}) {
			if object.Err != nil {
				yield(nil, errs.Translate(object.Err))
				return
			}

			page = append(page, s3.ObjectRecord{
				Key:          object.Key,
				Size:         uint64(max(object.Size, 0)),
				LastModified: object.LastModified,
			})
			if len(page) == b.pageSize {
				if !yield(page, nil) {
					return
				}
				page = make([]s3.ObjectRecord, 0, b.pageSize)
			}
		}

		if err := ctx.Err(); err != nil {
			yield(nil, err)
			return
		}
		if len(page) > 0 {
			yield(page, nil)
		}
	}
}

func (b *bucket) Head(ctx context.Context, key string) (s3.ObjectRecord, error) {
	info, err := b.client.StatObject(ctx, b.name, key, minio.StatObjectOptions{})
	if err != nil {
		return s3.ObjectRecord{}, errs.Translate(err)
	}
	return s3.ObjectRecord{
		Key:          info.Key,
		Size:         uint64(max(info.Size, 0)),
		LastModified: info.LastModified,
	}, nil
}

// Get opens a streaming reader. The request is sent on first Read.
func (b *bucket) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := b.client.GetObject(ctx, b.name, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errs.Translate(err)
	}
	return &object{obj: obj}, nil
}

func (b *bucket) Delete(ctx context.Context, key string) error {
	err := b.client.RemoveObject(ctx, b.name, key, minio.RemoveObjectOptions{})
	return errs.Translate(err)
}

// object translates errors from the SDK's lazily opened stream.
type object struct {
	obj *minio.Object
}

func (o *object) Read(p []byte) (int, error) {
	n, err := o.obj.Read(p)
	if err != nil && err != io.EOF {
		return n, errs.Translate(err)
	}
	return n, err
}

func (o *object) Close() error {
	return o.obj.Close()
}
