package models

import (
	"os"
	"path/filepath"
	"testing"
)

// FixturePath resolves a file under the repository's testdata directory and
// fails the test when it does not exist.
func FixturePath(t testing.TB, name string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		t.Fatalf("Failed to get absolute path to testdata/%s: %v", name, err)
	}
	if _, err := os.Stat(absPath); err != nil {
		t.Fatalf("fixture testdata/%s is not readable: %v", name, err)
	}

	return absPath
}
