package fstest

import (
	"context"
	stderrors "errors"
	"slices"
	"testing"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/core"
)

// TestManageFS tests file management: Remove.
// Uses POSIXTestConfig() by default.
func TestManageFS(t *testing.T, fx Fixture) {
	TestManageFSWithConfig(t, fx, POSIXTestConfig())
}

// TestManageFSWithConfig tests file management with behavior configuration.
func TestManageFSWithConfig(t *testing.T, fx Fixture, config FSTestConfig) {
	// Subtests share the fixture and run in order.
	t.Run("RemoveSingleFile", func(t *testing.T) {
		testManageFSRemoveFile(t, fx)
	})
	t.Run("RemoveNotExist", func(t *testing.T) {
		testManageFSRemoveNotExist(t, fx)
	})
	t.Run("RemoveDoesNotExpandGlobs", func(t *testing.T) {
		testManageFSRemoveGlob(t, fx)
	})
}

// testManageFSRemoveFile tests Remove() deletes exactly one file.
func testManageFSRemoveFile(t *testing.T, fx Fixture) {
	ctx := context.Background()

	if err := fx.FS.Remove(ctx, fx.Path("data/foo")); err != nil {
		t.Fatalf("Remove(%q): got error %v, want nil", "data/foo", err)
	}

	exists, err := fx.FS.Exists(ctx, fx.Path("data/foo"))
	if err != nil {
		t.Fatalf("Exists(%q): got error %v", "data/foo", err)
	}
	if exists {
		t.Errorf("Exists(%q): got true after Remove, want false", "data/foo")
	}

	var got []string
	for p, err := range fx.FS.Ls(ctx, fx.Path("data/foo*")) {
		if err != nil {
			t.Fatalf("Ls(%q): got error %v", "data/foo*", err)
		}
		got = append(got, p)
	}
	if want := paths(fx, "data/foo.gz", "data/foo.zst"); !slices.Equal(got, want) {
		t.Errorf("Ls(%q) after Remove: got %q, want %q", "data/foo*", got, want)
	}
}

// testManageFSRemoveNotExist tests Remove() on a missing file.
func testManageFSRemoveNotExist(t *testing.T, fx Fixture) {
	err := fx.FS.Remove(context.Background(), fx.Path("data/nothing"))
	if err == nil {
		t.Fatalf("Remove(%q): got nil error, want not found", "data/nothing")
	}
	if !stderrors.Is(err, core.ErrNotExist) {
		t.Errorf("Remove(%q): error %v does not match ErrNotExist", "data/nothing", err)
	}
	if code := errors.GetCode(err); code != errors.CodeNotFound {
		t.Errorf("Remove(%q): got code %s, want %s", "data/nothing", code, errors.CodeNotFound)
	}
}

// testManageFSRemoveGlob tests Remove() rejects patterns and leaves files intact.
func testManageFSRemoveGlob(t *testing.T, fx Fixture) {
	ctx := context.Background()

	err := fx.FS.Remove(ctx, fx.Path("data/ba*"))
	if code := errors.GetCode(err); code != errors.CodeInvalidAddress {
		t.Errorf("Remove(%q): got code %s, want %s", "data/ba*", code, errors.CodeInvalidAddress)
	}

	exists, err := fx.FS.Exists(ctx, fx.Path("data/bar"))
	if err != nil {
		t.Fatalf("Exists(%q): got error %v", "data/bar", err)
	}
	if !exists {
		t.Errorf("Exists(%q): got false, want true", "data/bar")
	}
}
