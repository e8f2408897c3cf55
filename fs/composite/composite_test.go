package composite

import (
	"context"
	"io"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/billy"
	"github.com/jmgilman/objfs/fs/core"
	"github.com/jmgilman/objfs/fs/s3"
	"github.com/jmgilman/objfs/fs/s3/s3test"
)

func setup(t *testing.T) *FS {
	t.Helper()

	store := s3test.New()
	store.CreateBucket("walrus")
	store.AddObject("walrus", "data/foo", []byte("remote\n"))
	remote, err := s3.New(store, s3.Config{})
	require.NoError(t, err)

	local := billy.NewMemory()
	require.NoError(t, util.WriteFile(local.Unwrap(), "/data/foo", []byte("local\n"), 0o644))

	return New(remote, local)
}

func TestRoute(t *testing.T) {
	fsys := setup(t)

	p, err := fsys.Route("s3a://walrus/data")
	require.NoError(t, err)
	assert.Equal(t, core.FSTypeRemote, p.Type())

	p, err = fsys.Route("/data/foo")
	require.NoError(t, err)
	assert.Equal(t, core.FSTypeMemory, p.Type())

	_, err = fsys.Route("gs://walrus/data")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidAddress, errors.GetCode(err))
	assert.False(t, fsys.CanHandlePath("gs://walrus/data"))
}

func TestNoProviders(t *testing.T) {
	fsys := New()
	assert.False(t, fsys.CanHandlePath("/data"))
	assert.Empty(t, fsys.Providers())

	var errs []error
	for _, err := range fsys.Ls(context.Background(), "/data") {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.Equal(t, errors.CodeInvalidAddress, errors.GetCode(errs[0]))
}

func TestDispatch(t *testing.T) {
	fsys := setup(t)
	ctx := context.Background()

	read := func(path string) string {
		rc, err := fsys.Open(ctx, path)
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}

	assert.Equal(t, "remote\n", read("s3://walrus/data/foo"))
	assert.Equal(t, "local\n", read("/data/foo"))

	var paths []string
	for p, err := range fsys.Ls(ctx, "s3://walrus/*") {
		require.NoError(t, err)
		paths = append(paths, p)
	}
	assert.Equal(t, []string{"s3://walrus/data/foo"}, paths)

	var lines []string
	for line, err := range fsys.Cat(ctx, "/data/*") {
		require.NoError(t, err)
		lines = append(lines, string(line))
	}
	assert.Equal(t, []string{"local\n"}, lines)

	size, err := fsys.Du(ctx, "s3://walrus/data")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), size)

	require.NoError(t, fsys.Remove(ctx, "/data/foo"))
	exists, err := fsys.Exists(ctx, "/data/foo")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = fsys.Exists(ctx, "s3://walrus/data/foo")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = fsys.Du(ctx, "gs://walrus/data")
	assert.Equal(t, errors.CodeInvalidAddress, errors.GetCode(err))
}
