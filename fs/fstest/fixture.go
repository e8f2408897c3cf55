package fstest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Fixture file contents.
var (
	barContent = "bar\nbar\n"
	quxContent = "qux\n"
	fooContent = "foo\nfoo\nfoo\n"
	gzContent  = strings.Repeat("gz\n", 100)
	zstContent = "zst\nzst\n"
)

// Files returns the tree every provider is seeded with:
//
//	data/bar
//	data/baz/qux
//	data/foo
//	data/foo.gz
//	data/foo.zst
//	other/x.txt
func Files(t *testing.T) map[string][]byte {
	t.Helper()
	return map[string][]byte{
		"data/bar":     []byte(barContent),
		"data/baz/qux": []byte(quxContent),
		"data/foo":     []byte(fooContent),
		"data/foo.gz":  gzipBytes(t, gzContent),
		"data/foo.zst": zstdBytes(t, zstContent),
		"other/x.txt":  []byte("x"),
	}
}

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func zstdBytes(t *testing.T, s string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd: %v", err)
	}
	defer func() { _ = enc.Close() }()
	return enc.EncodeAll([]byte(s), nil)
}

func paths(fx Fixture, names ...string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = fx.Path(name)
	}
	return out
}

// lines splits s the way core.Lines does.
func lines(s string) []string {
	out := strings.SplitAfter(s, "\n")
	if out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}
