// Package testutil gives tests access to shared SML fixtures.
package testutil

import (
	"embed"
	"io/fs"
	"path"
	"testing"
)

//go:embed testdata/*.sml
var fixtures embed.FS

// Fixture returns the content of the embedded fixture name, failing the
// test when it does not exist.
func Fixture(tb testing.TB, name string) []byte {
	tb.Helper()
	data, err := fs.ReadFile(fixtures, path.Join("testdata", name))
	if err != nil {
		tb.Fatalf("failed to read fixture '%s': %v", name, err)
	}
	return data
}

// Fixtures returns the names of all embedded fixtures.
func Fixtures(tb testing.TB) []string {
	tb.Helper()
	entries, err := fs.ReadDir(fixtures, "testdata")
	if err != nil {
		tb.Fatalf("failed to list fixtures: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
