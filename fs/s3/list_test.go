package s3_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/s3"
	"github.com/jmgilman/objfs/fs/s3/s3test"
)

func TestList_Basic(t *testing.T) {
	filesystem, store := newFS(t)
	path := store.AddObject("walrus", "data/foo", []byte("foo\nfoo\n"))

	assert.Equal(t, []string{path}, listAll(t, filesystem, path))
	assert.Equal(t, []string{path}, listAll(t, filesystem, "s3://walrus/"))
	assert.Equal(t, []string{path}, listAll(t, filesystem, "s3://walrus"))
}

func TestList_Recurse(t *testing.T) {
	filesystem, store := newFS(t)
	paths := []string{
		store.AddObject("walrus", "data/bar", []byte("bar\nbar\n")),
		store.AddObject("walrus", "data/bar/baz", []byte("baz\nbaz\n")),
		store.AddObject("walrus", "data/foo", []byte("foo\nfoo\n")),
	}

	assert.Equal(t, paths, listAll(t, filesystem, "s3://walrus/"))
	assert.Equal(t, paths, listAll(t, filesystem, "s3://walrus/*"))
}

func TestList_Glob(t *testing.T) {
	filesystem, store := newFS(t)
	paths := []string{
		store.AddObject("walrus", "data/bar", []byte("bar\nbar\n")),
		store.AddObject("walrus", "data/bar/baz", []byte("baz\nbaz\n")),
		store.AddObject("walrus", "data/foo", []byte("foo\nfoo\n")),
	}

	assert.Equal(t, []string{paths[1]}, listAll(t, filesystem, "s3://walrus/*/baz"))
	assert.Equal(t, []string{paths[0], paths[1]}, listAll(t, filesystem, "s3://walrus/data/ba?*"))
	// data/bar/baz lies beneath the matched data/bar
	assert.Equal(t, paths, listAll(t, filesystem, "s3://walrus/data/[bf][ao][ro]"))
	assert.Equal(t, []string{paths[2]}, listAll(t, filesystem, "s3://walrus/data/[!b]*"))
}

func TestList_S3N(t *testing.T) {
	filesystem, store := newFS(t)
	store.AddObject("walrus", "data/bar", []byte("abc123"))
	store.AddObject("walrus", "data/baz", []byte("123abc"))

	assert.Equal(t, []string{
		"s3n://walrus/data/bar",
		"s3n://walrus/data/baz",
	}, listAll(t, filesystem, "s3n://walrus/data/*"))

	assert.Equal(t, []string{
		"s3a://walrus/data/bar",
		"s3a://walrus/data/baz",
	}, listAll(t, filesystem, "s3a://walrus/data"))
}

func TestList_ExactObjectHidesChildren(t *testing.T) {
	filesystem, store := newFS(t)
	bar := store.AddObject("walrus", "data/bar", []byte("bar"))
	store.AddObject("walrus", "data/bar/baz", []byte("baz"))
	store.AddObject("walrus", "data/bar.gz", []byte("gz"))

	assert.Equal(t, []string{bar}, listAll(t, filesystem, bar))
}

func TestList_Directory(t *testing.T) {
	filesystem, store := newFS(t)
	paths := []string{
		store.AddObject("walrus", "data/bar", []byte("bar")),
		store.AddObject("walrus", "data/bar/baz", []byte("baz")),
		store.AddObject("walrus", "data/foo", []byte("foo")),
	}
	store.AddObject("walrus", "database", []byte("db"))

	assert.Equal(t, paths, listAll(t, filesystem, "s3://walrus/data"))
	assert.Equal(t, paths, listAll(t, filesystem, "s3://walrus/data/"))
}

func TestList_PartialNameMatchesNothing(t *testing.T) {
	filesystem, store := newFS(t)
	store.AddObject("walrus", "data/bar", []byte("bar"))

	assert.Empty(t, listAll(t, filesystem, "s3://walrus/data/ba"))
	assert.Empty(t, listAll(t, filesystem, "s3://walrus/dat"))
}

func TestList_OrderIndependentOfPageSize(t *testing.T) {
	keys := []string{"z", "a/b", "a", "m/n/o", "a/c", "b", "a-b", "a0", "y/z"}
	want := slices.Clone(keys)
	slices.Sort(want)
	for i := range want {
		want[i] = "s3://walrus/" + want[i]
	}

	for _, size := range []int{1, 2, 1000} {
		t.Run(fmt.Sprintf("page size %d", size), func(t *testing.T) {
			filesystem, store := newFS(t, s3test.WithPageSize(size))
			for _, k := range keys {
				store.AddObject("walrus", k, []byte(k))
			}
			assert.Equal(t, want, listAll(t, filesystem, "s3://walrus/"))
		})
	}
}

func TestList_MissingBucket(t *testing.T) {
	for _, version := range []string{"2.3.0", "2.25.0"} {
		t.Run(version, func(t *testing.T) {
			filesystem, _ := newFS(t, s3test.WithVersion(version))
			assert.Empty(t, listAll(t, filesystem, "s3://nothing/data/*"))
		})
	}
}

func TestList_MissingPrefix(t *testing.T) {
	filesystem, store := newFS(t)
	store.AddObject("walrus", "data/foo", []byte("foo"))

	assert.Empty(t, listAll(t, filesystem, "s3://walrus/other/"))
	assert.Empty(t, listAll(t, filesystem, "s3://walrus/other/*"))
}

func TestList_InvalidInput(t *testing.T) {
	filesystem, _ := newFS(t)

	tests := []struct {
		address string
		code    errors.ErrorCode
	}{
		{"/local/path", errors.CodeInvalidAddress},
		{"gs://walrus/foo", errors.CodeInvalidAddress},
		{"s3:///foo", errors.CodeInvalidAddress},
		{"s3://walrus/data/[abc", errors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			var errs []error
			for _, err := range filesystem.List(context.Background(), tt.address) {
				errs = append(errs, err)
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errors.GetCode(errs[0]))
		})
	}
}

func TestList_TransportFailure(t *testing.T) {
	reset := stderrors.New("connection reset by peer")
	filesystem, store := newFS(t, s3test.WithPageSize(1), s3test.WithListError(1, reset))
	first := store.AddObject("walrus", "data/a", []byte("a"))
	store.AddObject("walrus", "data/b", []byte("b"))

	var got []string
	var failure error
	for addr, err := range filesystem.List(context.Background(), "s3://walrus/data/") {
		if err != nil {
			failure = err
			continue
		}
		got = append(got, addr.String())
	}

	assert.Equal(t, []string{first}, got)
	require.Error(t, failure)
	assert.Equal(t, errors.CodeNetwork, errors.GetCode(failure))
	assert.True(t, errors.IsRetryable(failure))
	assert.ErrorIs(t, failure, reset)
}

func TestList_EarlyExitStopsListing(t *testing.T) {
	filesystem, store := newFS(t, s3test.WithPageSize(1))
	for i := range 5 {
		store.AddObject("walrus", fmt.Sprintf("data/%d", i), []byte("x"))
	}

	for addr, err := range filesystem.List(context.Background(), "s3://walrus/") {
		require.NoError(t, err)
		assert.Equal(t, "s3://walrus/data/0", addr.String())
		break
	}

	assert.Equal(t, 1, store.ListPages())
}

func TestList_CanceledContext(t *testing.T) {
	filesystem, store := newFS(t)
	store.AddObject("walrus", "data/foo", []byte("foo"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var failure error
	for _, err := range filesystem.List(ctx, "s3://walrus/") {
		failure = err
	}
	require.Error(t, failure)
	assert.ErrorIs(t, failure, context.Canceled)
	assert.Equal(t, errors.CodeTimeout, errors.GetCode(failure))
}

func TestObjects_SizesAndTimes(t *testing.T) {
	modified := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	filesystem, store := newFS(t)
	store.AddObjectAt("walrus", "data/foo", []byte("abcd"), modified)

	var objs []s3.Object
	for obj, err := range filesystem.Objects(context.Background(), "s3n://walrus/data/foo") {
		require.NoError(t, err)
		objs = append(objs, obj)
	}

	require.Len(t, objs, 1)
	assert.Equal(t, "s3n://walrus/data/foo", objs[0].Address.String())
	assert.Equal(t, uint64(4), objs[0].Size)
	assert.Equal(t, modified, objs[0].LastModified)
}

func TestBucketValidation(t *testing.T) {
	tests := []struct {
		version  string
		validate bool
	}{
		{"2.2.0", true},
		{"2.3.0", true},
		{"2.25.0", false},
		{"7.0.95", false},
		{"unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			filesystem, store := newFS(t, s3test.WithVersion(tt.version))
			store.AddObject("walrus", "data/foo", []byte("foo"))

			listAll(t, filesystem, "s3://walrus/data/foo")

			assert.Equal(t, []s3test.BucketCall{{Name: "walrus", Validate: tt.validate}}, store.BucketCalls())
		})
	}
}

func TestBucketValidation_CustomThreshold(t *testing.T) {
	store := s3test.New(s3test.WithVersion("2.3.0"))
	filesystem, err := s3.New(store, s3.Config{ValidationThreshold: "2.0"})
	require.NoError(t, err)

	listAll(t, filesystem, "s3://walrus/")
	assert.Equal(t, []s3test.BucketCall{{Name: "walrus", Validate: false}}, store.BucketCalls())
}
