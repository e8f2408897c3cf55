// Package fstest provides a conformance test suite for validating filesystem
// provider implementations against the core.FS interface contracts.
//
// This package contains test functions that can be imported and executed by
// filesystem provider packages to verify they correctly implement listing,
// reading, sizing and removal with identical semantics.
//
// The test suite is designed to validate interface contracts, not backend-specific
// behavior. Providers describe their documented differences through
// FSTestConfig.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T, files map[string][]byte) fstest.Fixture {
//	        fsys := myprovider.New()
//	        // write files...
//	        return fstest.Fixture{FS: fsys, Path: func(name string) string { return "/" + name }}
//	    })
//	}
package fstest

import (
	"testing"

	"github.com/jmgilman/objfs/fs/core"
)

// Fixture is a seeded filesystem under test.
type Fixture struct {
	// FS is the provider under test.
	FS core.FS

	// Path maps a slash-separated fixture name (e.g., "data/foo") to the
	// provider's path syntax (e.g., "s3://walrus/data/foo" or "/data/foo").
	Path func(name string) string
}

// NewFixture returns a fresh filesystem containing exactly files.
type NewFixture func(t *testing.T, files map[string][]byte) Fixture

// FSTestConfig configures the test suite to match filesystem behavior characteristics.
type FSTestConfig struct {
	// VirtualDirectories indicates directories are virtual (e.g., S3 prefixes).
	// When true, Exists() on a directory reports false.
	VirtualDirectories bool

	// SkipTests lists specific test names to skip (for edge cases).
	// Format: "TestGroup" (e.g., "ManageFS").
	SkipTests []string
}

// POSIXTestConfig returns configuration for POSIX-like filesystems (local, memory).
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{
		VirtualDirectories: false,
	}
}

// S3TestConfig returns configuration for S3-like filesystems (MinIO, S3).
func S3TestConfig() FSTestConfig {
	return FSTestConfig{
		VirtualDirectories: true,
	}
}

// TestSuite runs all conformance tests against a filesystem.
// Uses POSIXTestConfig() by default.
func TestSuite(t *testing.T, newFixture NewFixture) {
	TestSuiteWithConfig(t, newFixture, POSIXTestConfig())
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
// Each group receives a freshly seeded fixture.
func TestSuiteWithConfig(t *testing.T, newFixture NewFixture, config FSTestConfig) {
	shouldSkip := func(testName string) bool {
		for _, skip := range config.SkipTests {
			if skip == testName {
				return true
			}
		}
		return false
	}

	groups := []struct {
		name string
		run  func(*testing.T, Fixture, FSTestConfig)
	}{
		{"ListFS", TestListFSWithConfig},
		{"ReadFS", TestReadFSWithConfig},
		{"ManageFS", TestManageFSWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if shouldSkip(g.name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			g.run(t, newFixture(t, Files(t)), config)
		})
	}
}
