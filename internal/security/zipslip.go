package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePath checks if an archive entry path is safe to extract under root.
// Returns an error if the path attempts to escape root.
//
// Rejected entries:
// - empty names, names with null bytes
// - absolute paths or paths carrying a volume name
// - paths whose cleaned form starts with ".."
// - paths that resolve outside root after joining
func ValidatePath(root, entryPath string) error {
	if entryPath == "" {
		return fmt.Errorf("entry path cannot be empty")
	}

	if strings.Contains(entryPath, "\x00") {
		return fmt.Errorf("entry path contains null byte: %q", entryPath)
	}

	if filepath.IsAbs(entryPath) || strings.HasPrefix(entryPath, "/") || filepath.VolumeName(entryPath) != "" {
		return fmt.Errorf("entry path must be relative, got absolute path: %q", entryPath)
	}

	cleanRoot := filepath.Clean(root)
	cleanEntry := filepath.Clean(filepath.FromSlash(entryPath))

	if cleanEntry == ".." || strings.HasPrefix(cleanEntry, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: %q attempts to escape the working tree", entryPath)
	}

	target := filepath.Join(cleanRoot, cleanEntry)
	rel, err := filepath.Rel(cleanRoot, target)
	if err != nil {
		return fmt.Errorf("path resolution failed for %q: %w", entryPath, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: %q resolves outside the working tree", entryPath)
	}

	return nil
}
