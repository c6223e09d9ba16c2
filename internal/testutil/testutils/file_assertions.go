package helpers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// FileAssertions provides utilities for asserting file system state in tests.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

// WriteTree creates files below baseDir from a relative-path → content map,
// creating parent directories as needed.
func WriteTree(t *testing.T, baseDir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(baseDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
}

// Backdate sets the modification time of every regular file below baseDir
// into the past so a later write is detectable through ModTime.
func Backdate(t *testing.T, baseDir string) time.Time {
	t.Helper()
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	err := filepath.WalkDir(baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		return os.Chtimes(path, past, past)
	})
	if err != nil {
		t.Fatalf("backdate %s: %v", baseDir, err)
	}
	return past
}

// AssertFileContent validates that a file holds exactly the expected bytes.
func (fa *FileAssertions) AssertFileContent(relativePath, expected string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))

	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return fa
	}
	if !bytes.Equal(content, []byte(expected)) {
		fa.t.Errorf("Unexpected content in %s\nwant: %q\ngot:  %q", relativePath, expected, string(content))
	}
	return fa
}

// AssertNotModifiedSince validates that a file was not written after ts.
func (fa *FileAssertions) AssertNotModifiedSince(relativePath string, ts time.Time) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	info, err := os.Stat(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to stat %s: %v", fullPath, err)
		return fa
	}
	if info.ModTime().After(ts) {
		fa.t.Errorf("Expected %s to be untouched, but it was modified at %s", relativePath, info.ModTime())
	}
	return fa
}

// AssertModifiedSince validates that a file was written after ts.
func (fa *FileAssertions) AssertModifiedSince(relativePath string, ts time.Time) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, filepath.FromSlash(relativePath))
	info, err := os.Stat(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to stat %s: %v", fullPath, err)
		return fa
	}
	if !info.ModTime().After(ts) {
		fa.t.Errorf("Expected %s to be rewritten, but mtime is still %s", relativePath, info.ModTime())
	}
	return fa
}
