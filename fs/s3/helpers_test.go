package s3_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/objfs/fs/s3"
	"github.com/jmgilman/objfs/fs/s3/s3test"
)

func newFS(t *testing.T, opts ...s3test.Option) (*s3.FS, *s3test.Store) {
	t.Helper()
	store := s3test.New(opts...)
	filesystem, err := s3.New(store, s3.Config{})
	require.NoError(t, err)
	return filesystem, store
}

func listAll(t *testing.T, filesystem *s3.FS, address string) []string {
	t.Helper()
	var out []string
	for addr, err := range filesystem.List(context.Background(), address) {
		require.NoError(t, err)
		out = append(out, addr.String())
	}
	return out
}

func catAll(t *testing.T, filesystem *s3.FS, address string) []string {
	t.Helper()
	var out []string
	for line, err := range filesystem.Cat(context.Background(), address) {
		require.NoError(t, err)
		out = append(out, string(line))
	}
	return out
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
