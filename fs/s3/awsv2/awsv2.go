// Package awsv2 provides an s3.Client backed by the AWS SDK for Go v2.
package awsv2

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/s3"
)

// DefaultPageSize is the number of keys requested per ListObjectsV2 call.
const DefaultPageSize = 1000

// ValidationThreshold is the bucket validation threshold for this client.
// Every SDK v2 release reports a missing bucket from the call that uses it,
// so no release needs HeadBucket up front.
const ValidationThreshold = "1.0.0"

// API is the subset of *s3.Client used by this package.
// This allows for easy mocking in tests.
type API interface {
	HeadBucket(ctx context.Context, params *awss3.HeadBucketInput, optFns ...func(*awss3.Options)) (*awss3.HeadBucketOutput, error)
	HeadObject(ctx context.Context, params *awss3.HeadObjectInput, optFns ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
}

// Compile-time interface checks
var (
	_ API       = (*awss3.Client)(nil)
	_ s3.Client = (*Client)(nil)
)

// Config holds AWS client configuration.
type Config struct {
	// API is the S3 client, usually *s3.Client
	API API

	// PageSize is the number of keys per listing page
	// Default: 1000
	PageSize int32

	// Version overrides the reported library version
	// Default: aws.SDKVersion
	Version string

	// Unordered marks buckets whose listings are not in key order, such as
	// S3 Express directory buckets. Listings are then read in full and
	// sorted before the first page is returned.
	Unordered bool
}

// Client implements s3.Client over the AWS SDK.
type Client struct {
	api       API
	pageSize  int32
	version   string
	unordered bool
}

// New creates an AWS-backed storage client.
func New(cfg Config) (*Client, error) {
	if cfg.API == nil {
		return nil, errors.New(errors.CodeInvalidConfig, "s3 api client is required")
	}
	if cfg.PageSize < 0 {
		return nil, errors.New(errors.CodeInvalidConfig, "page size must not be negative")
	}

	pageSize := cfg.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	version := cfg.Version
	if version == "" {
		version = aws.SDKVersion
	}

	return &Client{api: cfg.API, pageSize: pageSize, version: version, unordered: cfg.Unordered}, nil
}

// Version returns the AWS SDK version.
func (c *Client) Version() string {
	return c.version
}

// Bucket returns a handle for name. With validate, HeadBucket confirms the
// bucket exists.
func (c *Client) Bucket(ctx context.Context, name string, validate bool) (s3.Bucket, error) {
	if validate {
		_, err := c.api.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: aws.String(name)})
		if err != nil {
			return nil, translate(err)
		}
	}
	return &bucket{api: c.api, name: name, pageSize: c.pageSize, unordered: c.unordered}, nil
}

type bucket struct {
	api       API
	name      string
	pageSize  int32
	unordered bool
}

func (b *bucket) Name() string { return b.name }

// List follows ListObjectsV2 continuation tokens. General purpose buckets
// return keys in ascending UTF-8 binary order; unordered buckets are
// buffered and sorted.
func (b *bucket) List(ctx context.Context, prefix string) iter.Seq2[[]s3.ObjectRecord, error] {
	if !b.unordered {
		return b.pages(ctx, prefix)
	}
	return func(yield func([]s3.ObjectRecord, error) bool) {
		var all []s3.ObjectRecord
		for page, err := range b.pages(ctx, prefix) {
			if err != nil {
				yield(nil, err)
				return
			}
			all = append(all, page...)
		}
		slices.SortFunc(all, func(x, y s3.ObjectRecord) int {
			return strings.Compare(x.Key, y.Key)
		})

		for page := range slices.Chunk(all, int(b.pageSize)) {
			if !yield(page, nil) {
				return
			}
		}
	}
}

func (b *bucket) pages(ctx context.Context, prefix string) iter.Seq2[[]s3.ObjectRecord, error] {
	return func(yield func([]s3.ObjectRecord, error) bool) {
		paginator := awss3.NewListObjectsV2Paginator(b.api, &awss3.ListObjectsV2Input{
			Bucket:  aws.String(b.name),
			Prefix:  aws.String(prefix),
			MaxKeys: aws.Int32(b.pageSize),
		})

		for paginator.HasMorePages() {
			output, err := paginator.NextPage(ctx)
			if err != nil {
				yield(nil, translate(err))
				return
			}

			page := make([]s3.ObjectRecord, 0, len(output.Contents))
			for _, obj := range output.Contents {
				page = append(page, s3.ObjectRecord{
					Key:          aws.ToString(obj.Key),
					Size:         uint64(max(aws.ToInt64(obj.Size), 0)),
					LastModified: aws.ToTime(obj.LastModified),
				})
			}
			if len(page) > 0 && !yield(page, nil) {
				return
			}
		}
	}
}

func (b *bucket) Head(ctx context.Context, key string) (s3.ObjectRecord, error) {
	output, err := b.api.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return s3.ObjectRecord{}, translate(err)
	}
	return s3.ObjectRecord{
		Key:          key,
		Size:         uint64(max(aws.ToInt64(output.ContentLength), 0)),
		LastModified: aws.ToTime(output.LastModified),
	}, nil
}

func (b *bucket) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	output, err := b.api.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, translate(err)
	}
	return output.Body, nil
}

func (b *bucket) Delete(ctx context.Context, key string) error {
	_, err := b.api.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	return translate(err)
}

// translate maps SDK errors onto fs.ErrNotExist and fs.ErrPermission,
// keeping the SDK error in the chain.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var noSuchKey *types.NoSuchKey
	var noSuchBucket *types.NoSuchBucket
	var notFound *types.NotFound
	if stderrors.As(err, &noSuchKey) || stderrors.As(err, &noSuchBucket) || stderrors.As(err, &notFound) {
		return fmt.Errorf("s3: %w: %w", fs.ErrNotExist, err)
	}

	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return fmt.Errorf("s3: %w: %w", fs.ErrNotExist, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("s3: %w: %w", fs.ErrPermission, err)
		}
	}

	return fmt.Errorf("s3: %w", err)
}
