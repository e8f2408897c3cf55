package fstest

import (
	"context"
	"slices"
	"testing"

	"github.com/jmgilman/objfs/errors"
)

// TestListFS tests pattern expansion through Ls.
// Uses POSIXTestConfig() by default.
func TestListFS(t *testing.T, fx Fixture) {
	TestListFSWithConfig(t, fx, POSIXTestConfig())
}

// TestListFSWithConfig tests pattern expansion with behavior configuration.
func TestListFSWithConfig(t *testing.T, fx Fixture, config FSTestConfig) {
	t.Run("SingleFile", func(t *testing.T) {
		testList(t, fx, "data/bar", "data/bar")
	})
	t.Run("Directory", func(t *testing.T) {
		testList(t, fx, "data",
			"data/bar", "data/baz/qux", "data/foo", "data/foo.gz", "data/foo.zst")
	})
	t.Run("Star", func(t *testing.T) {
		testList(t, fx, "data/*.gz", "data/foo.gz")
	})
	t.Run("StarCrossesSeparator", func(t *testing.T) {
		testList(t, fx, "*/qux", "data/baz/qux")
	})
	t.Run("Question", func(t *testing.T) {
		testList(t, fx, "data/f?o", "data/foo")
	})
	t.Run("ClassExpandsDirectory", func(t *testing.T) {
		testList(t, fx, "data/ba[rz]", "data/bar", "data/baz/qux")
	})
	t.Run("NegatedClass", func(t *testing.T) {
		testList(t, fx, "data/[!bf]*")
	})
	t.Run("NoMatch", func(t *testing.T) {
		testList(t, fx, "nothing/*")
	})
	t.Run("InvalidPattern", func(t *testing.T) {
		testListInvalid(t, fx)
	})
	t.Run("EarlyExit", func(t *testing.T) {
		testListEarlyExit(t, fx)
	})
}

// testList verifies Ls(pattern) yields exactly want, in order.
func testList(t *testing.T, fx Fixture, pattern string, want ...string) {
	var got []string
	for p, err := range fx.FS.Ls(context.Background(), fx.Path(pattern)) {
		if err != nil {
			t.Fatalf("Ls(%q): got error %v, want nil", pattern, err)
		}
		got = append(got, p)
	}

	if !slices.Equal(got, paths(fx, want...)) {
		t.Errorf("Ls(%q): got %q, want %q", pattern, got, paths(fx, want...))
	}
}

// testListInvalid verifies an unterminated class fails once with CodeInvalidInput.
func testListInvalid(t *testing.T, fx Fixture) {
	var errs []error
	for _, err := range fx.FS.Ls(context.Background(), fx.Path("data/[")) {
		if err == nil {
			t.Errorf("Ls(%q): yielded a path, want only an error", "data/[")
			continue
		}
		errs = append(errs, err)
	}

	if len(errs) != 1 {
		t.Fatalf("Ls(%q): got %d errors, want 1", "data/[", len(errs))
	}
	if code := errors.GetCode(errs[0]); code != errors.CodeInvalidInput {
		t.Errorf("Ls(%q): got code %s, want %s", "data/[", code, errors.CodeInvalidInput)
	}
}

// testListEarlyExit verifies a consumer can stop after the first path.
func testListEarlyExit(t *testing.T, fx Fixture) {
	var got []string
	for p, err := range fx.FS.Ls(context.Background(), fx.Path("data")) {
		if err != nil {
			t.Fatalf("Ls(%q): got error %v", "data", err)
		}
		got = append(got, p)
		break
	}

	if want := paths(fx, "data/bar"); !slices.Equal(got, want) {
		t.Errorf("Ls(%q) with break: got %q, want %q", "data", got, want)
	}
}
