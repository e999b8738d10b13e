package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Fuabioo/dehash/internal/errors"
)

// DefaultMaxAttempts bounds the numeric suffixes tried for one name.
const DefaultMaxAttempts = 10000

// osRename is replaced in tests to inject filesystem failures.
var osRename = os.Rename

// ProposeName returns the candidate for name at the given attempt.
// Attempt 1 removes the marker; attempt n >= 2 replaces it with " n".
func ProposeName(name string, m Marker, attempt int) string {
	replacement := ""
	if attempt >= 2 {
		replacement = " " + strconv.Itoa(attempt)
	}
	return name[:m.Start] + replacement + name[m.End():]
}

// AllocateName returns the first candidate for name that taken rejects.
// Names without a marker are returned unchanged.
func AllocateName(name string, taken func(candidate string) bool, maxAttempts int) (string, error) {
	m, ok := Detect(name)
	if !ok {
		return name, nil
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		candidate := ProposeName(name, m, attempt)
		if candidate == "" {
			continue
		}
		if !taken(candidate) {
			return candidate, nil
		}
	}

	return "", errors.CollisionExhausted(name, maxAttempts)
}

// RenameEntry strips the marker from parent/name and renames the entry on disk.
// The filesystem is the source of truth for collisions: a candidate is free
// when nothing exists at parent/candidate. The rename happens before
// returning so later allocations in parent see the new name.
func RenameEntry(parent, name string, maxAttempts int) (string, error) {
	newName, err := AllocateName(name, func(candidate string) bool {
		_, err := os.Lstat(filepath.Join(parent, candidate))
		return err == nil
	}, maxAttempts)
	if err != nil {
		return "", err
	}
	if newName == name {
		return name, nil
	}

	oldPath := filepath.Join(parent, name)
	if err := osRename(oldPath, filepath.Join(parent, newName)); err != nil {
		return "", errors.RenameFailed(oldPath, fmt.Errorf("to %q: %w", newName, err))
	}

	return newName, nil
}
