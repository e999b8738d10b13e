package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "simple error",
			err:      New(CodeZipNotFound, "zip not found"),
			expected: "ZIP_NOT_FOUND: zip not found",
		},
		{
			name:     "wrapped error",
			err:      Wrap(CodeArchiveWriteFailed, "write failed", fmt.Errorf("disk full")),
			expected: "ARCHIVE_WRITE_FAILED: write failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Run("no wrapped error", func(t *testing.T) {
		err := New(CodeZipNotFound, "not found")
		if err.Unwrap() != nil {
			t.Errorf("Unwrap() = %v, want nil", err.Unwrap())
		}
	})

	t.Run("stdlib errors.Is compatibility", func(t *testing.T) {
		underlying := fmt.Errorf("io error")
		err := Wrap(CodeRenameFailed, "rename failed", underlying)

		if !errors.Is(err, underlying) {
			t.Error("errors.Is() = false, want true for wrapped error")
		}
	})

	t.Run("stdlib errors.As compatibility", func(t *testing.T) {
		err := fmt.Errorf("context: %w", New(CodeOutputExists, "exists"))

		var dehashErr *Error
		if !errors.As(err, &dehashErr) {
			t.Fatal("errors.As() = false, want true for dehash error")
		}
		if dehashErr.Code != CodeOutputExists {
			t.Errorf("errors.As() code = %q, want %q", dehashErr.Code, CodeOutputExists)
		}
	})
}

func TestCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "dehash error",
			err:      New(CodeZipNotFound, "not found"),
			expected: CodeZipNotFound,
		},
		{
			name:     "standard error",
			err:      fmt.Errorf("standard error"),
			expected: "",
		},
		{
			name:     "wrapped standard error",
			err:      fmt.Errorf("wrapped: %w", New(CodeZipInvalid, "invalid")),
			expected: CodeZipInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Code(tt.err)
			if got != tt.expected {
				t.Errorf("Code() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     string
		expected bool
	}{
		{"nil error", nil, CodeZipNotFound, false},
		{"matching code", New(CodeZipNotFound, "x"), CodeZipNotFound, true},
		{"non-matching code", New(CodeZipNotFound, "x"), CodeZipInvalid, false},
		{"wrapped dehash error", fmt.Errorf("ctx: %w", RenameFailed("a", fmt.Errorf("io"))), CodeRenameFailed, true},
		{"standard error", fmt.Errorf("standard error"), CodeZipNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Is(tt.err, tt.code)
			if got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	underlying := fmt.Errorf("permission denied")

	tests := []struct {
		name     string
		err      *Error
		code     string
		contains []string
		wrapped  error
	}{
		{"ZipNotFound", ZipNotFound("/tmp/a.zip"), CodeZipNotFound, []string{"/tmp/a.zip", "not found"}, nil},
		{"ZipInvalid", ZipInvalid("/tmp/a.txt", underlying), CodeZipInvalid, []string{"/tmp/a.txt", "not a valid zip"}, underlying},
		{"ZipBombDetected", ZipBombDetected("ratio 500:1"), CodeZipBombDetected, []string{"zip bomb", "ratio 500:1"}, nil},
		{"PathTraversal", PathTraversal("../../etc/passwd"), CodePathTraversal, []string{"../../etc/passwd", "escape"}, nil},
		{"ArchiveWriteFailed", ArchiveWriteFailed("/ro/new_a.zip", underlying), CodeArchiveWriteFailed, []string{"/ro/new_a.zip"}, underlying},
		{"RenameFailed", RenameFailed("Page.md", underlying), CodeRenameFailed, []string{"Page.md"}, underlying},
		{"CollisionExhausted", CollisionExhausted("A.md", 10), CodeCollisionExhausted, []string{"A.md", "10 attempts"}, nil},
		{"RewriteFailed", RewriteFailed("Page.md", underlying), CodeRewriteFailed, []string{"Page.md", "rewrite"}, underlying},
		{"OutputExists", OutputExists("new_a.zip"), CodeOutputExists, []string{"new_a.zip", "already exists"}, nil},
		{"LimitExceeded", LimitExceeded("max attempts"), CodeLimitExceeded, []string{"limit exceeded", "max attempts"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			for _, s := range tt.contains {
				if !strings.Contains(tt.err.Message, s) {
					t.Errorf("Message = %q, should contain %q", tt.err.Message, s)
				}
			}
			if tt.err.Unwrap() != tt.wrapped {
				t.Errorf("Unwrap() = %v, want %v", tt.err.Unwrap(), tt.wrapped)
			}
		})
	}
}

func BenchmarkCode(b *testing.B) {
	err := New(CodeZipNotFound, "not found")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Code(err)
	}
}
