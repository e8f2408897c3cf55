package fstest

import (
	"context"
	stderrors "errors"
	"io"
	"slices"
	"testing"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/core"
)

// TestReadFS tests read operations: Cat, Open, Du, Exists.
// Uses POSIXTestConfig() by default.
func TestReadFS(t *testing.T, fx Fixture) {
	TestReadFSWithConfig(t, fx, POSIXTestConfig())
}

// TestReadFSWithConfig tests read operations with behavior configuration.
func TestReadFSWithConfig(t *testing.T, fx Fixture, config FSTestConfig) {
	t.Run("CatPlain", func(t *testing.T) {
		testCat(t, fx, "data/foo", lines(fooContent))
	})
	t.Run("CatGzip", func(t *testing.T) {
		testCat(t, fx, "data/foo.gz", lines(gzContent))
	})
	t.Run("CatZstd", func(t *testing.T) {
		testCat(t, fx, "data/foo.zst", lines(zstContent))
	})
	t.Run("CatMultiple", func(t *testing.T) {
		want := slices.Concat(lines(barContent), lines(quxContent))
		testCat(t, fx, "data/ba*", want)
	})
	t.Run("CatNoMatch", func(t *testing.T) {
		testCat(t, fx, "nothing/*", nil)
	})
	t.Run("Open", func(t *testing.T) {
		testOpen(t, fx)
	})
	t.Run("OpenNotExist", func(t *testing.T) {
		testOpenNotExist(t, fx)
	})
	t.Run("Du", func(t *testing.T) {
		testDu(t, fx)
	})
	t.Run("ExistsFile", func(t *testing.T) {
		testExists(t, fx, "data/foo", true)
	})
	t.Run("ExistsNotExist", func(t *testing.T) {
		testExists(t, fx, "data/nothing", false)
	})
	t.Run("ExistsDir", func(t *testing.T) {
		testExists(t, fx, "data/baz", !config.VirtualDirectories)
	})
}

// testCat verifies Cat(pattern) yields want, line by line.
func testCat(t *testing.T, fx Fixture, pattern string, want []string) {
	var got []string
	for line, err := range fx.FS.Cat(context.Background(), fx.Path(pattern)) {
		if err != nil {
			t.Fatalf("Cat(%q): got error %v, want nil", pattern, err)
		}
		got = append(got, string(line))
	}

	if !slices.Equal(got, want) {
		t.Errorf("Cat(%q): got %d lines %q, want %d lines", pattern, len(got), got, len(want))
	}
}

// testOpen verifies Open() decompresses and Close() is idempotent.
func testOpen(t *testing.T, fx Fixture) {
	rc, err := fx.FS.Open(context.Background(), fx.Path("data/foo.gz"))
	if err != nil {
		t.Fatalf("Open(%q): got error %v, want nil", "data/foo.gz", err)
	}

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Errorf("ReadAll(): got error %v, want nil", err)
	}
	if string(data) != gzContent {
		t.Errorf("ReadAll(): got %d bytes, want %d", len(data), len(gzContent))
	}

	if err := rc.Close(); err != nil {
		t.Errorf("Close(): got error %v", err)
	}
	if err := rc.Close(); err != nil {
		t.Errorf("second Close(): got error %v, want nil", err)
	}
}

// testOpenNotExist verifies Open() on a missing file returns CodeNotFound.
func testOpenNotExist(t *testing.T, fx Fixture) {
	_, err := fx.FS.Open(context.Background(), fx.Path("data/nothing"))
	if err == nil {
		t.Fatalf("Open(%q): got nil error, want not found", "data/nothing")
	}
	if !stderrors.Is(err, core.ErrNotExist) {
		t.Errorf("Open(%q): error %v does not match ErrNotExist", "data/nothing", err)
	}
	if code := errors.GetCode(err); code != errors.CodeNotFound {
		t.Errorf("Open(%q): got code %s, want %s", "data/nothing", code, errors.CodeNotFound)
	}
}

// testDu verifies Du() sums stored sizes over the same selection as Ls().
func testDu(t *testing.T, fx Fixture) {
	files := Files(t)
	ctx := context.Background()

	tests := []struct {
		pattern string
		names   []string
	}{
		{"data/foo", []string{"data/foo"}},
		{"data/baz", []string{"data/baz/qux"}},
		{"data/foo.*", []string{"data/foo.gz", "data/foo.zst"}},
		{"nothing", nil},
	}

	for _, tt := range tests {
		var want uint64
		for _, name := range tt.names {
			want += uint64(len(files[name]))
		}

		got, err := fx.FS.Du(ctx, fx.Path(tt.pattern))
		if err != nil {
			t.Errorf("Du(%q): got error %v, want nil", tt.pattern, err)
			continue
		}
		if got != want {
			t.Errorf("Du(%q): got %d, want %d", tt.pattern, got, want)
		}
	}
}

// testExists verifies Exists(name) reports want.
func testExists(t *testing.T, fx Fixture, name string, want bool) {
	got, err := fx.FS.Exists(context.Background(), fx.Path(name))
	if err != nil {
		t.Fatalf("Exists(%q): got error %v, want nil", name, err)
	}
	if got != want {
		t.Errorf("Exists(%q): got %v, want %v", name, got, want)
	}
}
