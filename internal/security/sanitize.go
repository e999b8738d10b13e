package security

import (
	"fmt"
	"strings"
	"unicode"
)

const maxPrefixLength = 64

// ValidatePrefix checks that an output prefix can be prepended to an archive
// base name without changing the directory the output lands in.
// Rejects:
// - Empty prefixes
// - Path separators and ".." sequences
// - Null bytes and control characters
// - Prefixes longer than 64 bytes
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("output prefix cannot be empty")
	}

	if len(prefix) > maxPrefixLength {
		return fmt.Errorf("output prefix exceeds maximum length of %d characters", maxPrefixLength)
	}

	if strings.ContainsAny(prefix, `/\`) {
		return fmt.Errorf("output prefix must not contain path separators: %q", prefix)
	}

	if strings.Contains(prefix, "..") {
		return fmt.Errorf("output prefix must not contain \"..\": %q", prefix)
	}

	for _, r := range prefix {
		if unicode.IsControl(r) {
			return fmt.Errorf("output prefix contains control character: %q", prefix)
		}
	}

	return nil
}
