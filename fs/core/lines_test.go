package core_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/objfs/fs/core"
)

func collect(t *testing.T, r io.Reader) ([]string, error) {
	t.Helper()
	var lines []string
	for line, err := range core.Lines(r) {
		if err != nil {
			return lines, err
		}
		lines = append(lines, string(line))
	}
	return lines, nil
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"two lines", "foo\nfoo\n", []string{"foo\n", "foo\n"}},
		{"no trailing newline", "foo\nbar", []string{"foo\n", "bar"}},
		{"blank lines", "\n\nx\n", []string{"\n", "\n", "x\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collect(t, strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLines_LongLines(t *testing.T) {
	long := strings.Repeat("x", 100_000) + "\n"
	got, err := collect(t, strings.NewReader(long+long))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, long, got[0])
}

func TestLines_Error(t *testing.T) {
	r := io.MultiReader(strings.NewReader("foo\nba"), iotest.ErrReader(io.ErrClosedPipe))
	got, err := collect(t, r)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.Equal(t, []string{"foo\n", "ba"}, got)
}

func TestLines_EarlyExit(t *testing.T) {
	var n int
	for range core.Lines(bytes.NewReader([]byte("a\nb\nc\n"))) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestLines_SlicesAreIndependent(t *testing.T) {
	var lines [][]byte
	for line, err := range core.Lines(strings.NewReader("aa\nbb\n")) {
		require.NoError(t, err)
		lines = append(lines, line)
	}
	assert.Equal(t, "aa\n", string(lines[0]))
	assert.Equal(t, "bb\n", string(lines[1]))
}
