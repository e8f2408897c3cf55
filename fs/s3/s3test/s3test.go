// Package s3test provides an in-memory s3.Client for tests.
//
// The store paginates listings like a real service, records how it was
// called and can be told to fail, which makes it suitable for testing
// ordering, validation and resource release without a server.
package s3test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jmgilman/objfs/fs/s3"
)

// DefaultVersion is the library version reported unless overridden.
const DefaultVersion = "2.25.0"

// DefaultPageSize matches the S3 ListObjectsV2 maximum.
const DefaultPageSize = 1000

// BucketCall records one Bucket acquisition.
type BucketCall struct {
	Name     string
	Validate bool
}

type object struct {
	data     []byte
	modified time.Time
}

type readFailure struct {
	after int
	err   error
}

// Store is an in-memory object store. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	buckets  map[string]map[string]object
	version  string
	pageSize int
	now      func() time.Time

	listErr      error
	listErrAfter int
	readFailures map[string]readFailure

	bucketCalls []BucketCall
	pages       int
	open        int
}

// Option configures a Store.
type Option func(*Store)

// WithPageSize sets the number of records per listing page.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithVersion sets the reported library version.
func WithVersion(v string) Option {
	return func(s *Store) { s.version = v }
}

// WithListError makes every listing fail with err after serving after
// pages.
func WithListError(after int, err error) Option {
	return func(s *Store) {
		s.listErrAfter = after
		s.listErr = err
	}
}

// WithClock sets the modification time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		buckets:      make(map[string]map[string]object),
		version:      DefaultVersion,
		pageSize:     DefaultPageSize,
		now:          time.Now,
		readFailures: make(map[string]readFailure),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBucket creates an empty bucket if it does not exist.
func (s *Store) CreateBucket(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buckets[name]; !ok {
		s.buckets[name] = make(map[string]object)
	}
}

// AddObject stores data under bucket/key, creating the bucket if needed,
// and returns the object's s3:// address.
func (s *Store) AddObject(bucket, key string, data []byte) string {
	return s.AddObjectAt(bucket, key, data, time.Time{})
}

// AddObjectAt is AddObject with an explicit modification time. A zero
// time uses the store's clock.
func (s *Store) AddObjectAt(bucket, key string, data []byte, modified time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if modified.IsZero() {
		modified = s.now()
	}
	b, ok := s.buckets[bucket]
	if !ok {
		b = make(map[string]object)
		s.buckets[bucket] = b
	}
	b[key] = object{data: bytes.Clone(data), modified: modified.UTC()}
	return fmt.Sprintf("s3://%s/%s", bucket, key)
}

// FailReads makes reads of bucket/key fail with err after after bytes.
func (s *Store) FailReads(bucket, key string, after int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readFailures[bucket+"/"+key] = readFailure{after: after, err: err}
}

// Keys returns the keys stored in bucket in ascending order.
func (s *Store) Keys(bucket string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.buckets[bucket]))
	for k := range s.buckets[bucket] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// BucketCalls returns every Bucket acquisition so far.
func (s *Store) BucketCalls() []BucketCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.bucketCalls)
}

// ListPages returns the number of listing pages served.
func (s *Store) ListPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pages
}

// OpenStreams returns the number of object streams not yet closed.
func (s *Store) OpenStreams() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Version implements s3.Client.
func (s *Store) Version() string {
	return s.version
}

// Bucket implements s3.Client. Without validation a handle is returned
// even for a bucket that does not exist.
func (s *Store) Bucket(ctx context.Context, name string, validate bool) (s3.Bucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bucketCalls = append(s.bucketCalls, BucketCall{Name: name, Validate: validate})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.buckets[name]; validate && !ok {
		return nil, noSuchBucket(name)
	}
	return &bucket{store: s, name: name}, nil
}

func noSuchBucket(name string) error {
	return fmt.Errorf("s3test: bucket %q: %w", name, fs.ErrNotExist)
}

func noSuchKey(bucket, key string) error {
	return fmt.Errorf("s3test: key %q in bucket %q: %w", key, bucket, fs.ErrNotExist)
}

type bucket struct {
	store *Store
	name  string
}

func (b *bucket) Name() string { return b.name }

// page returns up to pageSize records with prefix after the key after.
func (b *bucket) page(prefix, after string) ([]s3.ObjectRecord, bool, error) {
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	objects, ok := s.buckets[b.name]
	if !ok {
		return nil, false, noSuchBucket(b.name)
	}

	keys := make([]string, 0)
	for k := range objects {
		if strings.HasPrefix(k, prefix) && k > after {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	more := len(keys) > s.pageSize
	if more {
		keys = keys[:s.pageSize]
	}

	records := make([]s3.ObjectRecord, 0, len(keys))
	for _, k := range keys {
		obj := objects[k]
		records = append(records, s3.ObjectRecord{
			Key:          k,
			Size:         uint64(len(obj.data)),
			LastModified: obj.modified,
		})
	}
	s.pages++
	return records, more, nil
}

func (b *bucket) List(ctx context.Context, prefix string) iter.Seq2[[]s3.ObjectRecord, error] {
	return func(yield func([]s3.ObjectRecord, error) bool) {
		after := ""
		for served := 0; ; served++ {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if b.store.listErr != nil && served == b.store.listErrAfter {
				yield(nil, b.store.listErr)
				return
			}

			records, more, err := b.page(prefix, after)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(records) > 0 && !yield(records, nil) {
				return
			}
			if !more {
				return
			}
			after = records[len(records)-1].Key
		}
	}
}

func (b *bucket) Head(ctx context.Context, key string) (s3.ObjectRecord, error) {
	if err := ctx.Err(); err != nil {
		return s3.ObjectRecord{}, err
	}

	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	objects, ok := s.buckets[b.name]
	if !ok {
		return s3.ObjectRecord{}, noSuchBucket(b.name)
	}
	obj, ok := objects[key]
	if !ok {
		return s3.ObjectRecord{}, noSuchKey(b.name, key)
	}
	return s3.ObjectRecord{Key: key, Size: uint64(len(obj.data)), LastModified: obj.modified}, nil
}

func (b *bucket) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	objects, ok := s.buckets[b.name]
	if !ok {
		return nil, noSuchBucket(b.name)
	}
	obj, ok := objects[key]
	if !ok {
		return nil, noSuchKey(b.name, key)
	}

	var r io.Reader = bytes.NewReader(obj.data)
	if f, ok := s.readFailures[b.name+"/"+key]; ok {
		r = io.MultiReader(io.LimitReader(r, int64(f.after)), &errReader{err: f.err})
	}

	s.open++
	return &stream{Reader: r, store: s}, nil
}

func (b *bucket) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	objects, ok := s.buckets[b.name]
	if !ok {
		return noSuchBucket(b.name)
	}
	delete(objects, key)
	return nil
}

type stream struct {
	io.Reader
	store  *Store
	closed bool
}

func (s *stream) Close() error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.store.open--
	}
	return nil
}

type errReader struct {
	err error
}

func (e *errReader) Read([]byte) (int, error) {
	return 0, e.err
}
