package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// workingTreePrefix names working trees so stray ones are recognizable.
const workingTreePrefix = "dehash-"

// CreateWorkingTree creates a fresh, uniquely named directory under parent
// (os.TempDir() when empty) to hold one archive's extracted contents.
func CreateWorkingTree(parent string) (string, error) {
	if parent == "" {
		parent = os.TempDir()
	}

	dir := filepath.Join(parent, workingTreePrefix+uuid.New().String())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create working tree: %w", err)
	}

	return dir, nil
}

// RemoveWorkingTree deletes a working tree and everything in it.
func RemoveWorkingTree(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove working tree: %w", err)
	}
	return nil
}
