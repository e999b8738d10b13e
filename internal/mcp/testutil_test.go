package mcp

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

const testHash = "0123456789abcdef0123456789abcdef"

// createTestZip creates a simple test zip file with the given files.
// files is a map of path -> content.
func createTestZip(t *testing.T, zipPath string, files map[string]string) {
	t.Helper()

	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	defer w.Close()

	for path, content := range files {
		f, err := w.Create(path)
		if err != nil {
			t.Fatalf("failed to create file %s in zip: %v", path, err)
		}

		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write content to %s: %v", path, err)
		}
	}
}

// setupTestEnvironment isolates config and working trees in temp directories.
// Returns the working tree parent directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	workDir := filepath.Join(t.TempDir(), "work")
	if err := os.MkdirAll(workDir, 0700); err != nil {
		t.Fatalf("failed to create work dir: %v", err)
	}

	t.Setenv("DEHASH_CONFIG_DIR", t.TempDir())
	t.Setenv("DEHASH_WORK_DIR", workDir)

	return workDir
}
