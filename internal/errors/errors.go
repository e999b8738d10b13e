package errors

import (
	"errors"
	"fmt"
)

// Error code constants
const (
	CodeZipNotFound        = "ZIP_NOT_FOUND"
	CodeZipInvalid         = "ZIP_INVALID"
	CodeZipBombDetected    = "ZIP_BOMB_DETECTED"
	CodePathTraversal      = "PATH_TRAVERSAL"
	CodeArchiveWriteFailed = "ARCHIVE_WRITE_FAILED"
	CodeRenameFailed       = "RENAME_FAILED"
	CodeCollisionExhausted = "COLLISION_EXHAUSTED"
	CodeRewriteFailed      = "REWRITE_FAILED"
	CodeOutputExists       = "OUTPUT_EXISTS"
	CodeLimitExceeded      = "LIMIT_EXCEEDED"
)

// Error represents a dehash error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	wrapped error
	Code    string
	Message string
}

// Error returns the error message, implementing the error interface.
func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error, supporting errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// New creates a new dehash error with the given code and message.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new dehash error that wraps an underlying error.
func Wrap(code string, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		wrapped: err,
	}
}

// Code extracts the error code from an error.
// Returns an empty string if the error is not a dehash error.
func Code(err error) string {
	if err == nil {
		return ""
	}
	var dehashErr *Error
	if errors.As(err, &dehashErr) {
		return dehashErr.Code
	}
	return ""
}

// Is checks if an error has a specific error code.
func Is(err error, code string) bool {
	return Code(err) == code
}

// Convenience constructors for each error code

// ZipNotFound creates a ZIP_NOT_FOUND error.
func ZipNotFound(path string) *Error {
	return New(CodeZipNotFound, fmt.Sprintf("zip file %q not found or not readable", path))
}

// ZipInvalid creates a ZIP_INVALID error wrapping the reason the archive could not be opened.
func ZipInvalid(path string, err error) *Error {
	return Wrap(CodeZipInvalid, fmt.Sprintf("file %q is not a valid zip archive", path), err)
}

// ZipBombDetected creates a ZIP_BOMB_DETECTED error.
func ZipBombDetected(reason string) *Error {
	return New(CodeZipBombDetected, fmt.Sprintf("zip bomb detected: %s", reason))
}

// PathTraversal creates a PATH_TRAVERSAL error.
func PathTraversal(path string) *Error {
	return New(CodePathTraversal, fmt.Sprintf("path %q attempts to escape working tree", path))
}

// ArchiveWriteFailed creates an ARCHIVE_WRITE_FAILED error wrapping the underlying cause.
func ArchiveWriteFailed(path string, err error) *Error {
	return Wrap(CodeArchiveWriteFailed, fmt.Sprintf("failed to write archive %q", path), err)
}

// RenameFailed creates a RENAME_FAILED error wrapping the filesystem error.
func RenameFailed(path string, err error) *Error {
	return Wrap(CodeRenameFailed, fmt.Sprintf("failed to rename %q", path), err)
}

// CollisionExhausted creates a COLLISION_EXHAUSTED error.
func CollisionExhausted(name string, attempts int) *Error {
	return New(CodeCollisionExhausted, fmt.Sprintf("no free name for %q after %d attempts", name, attempts))
}

// RewriteFailed creates a REWRITE_FAILED error wrapping the underlying cause.
func RewriteFailed(path string, err error) *Error {
	return Wrap(CodeRewriteFailed, fmt.Sprintf("failed to rewrite links in %q", path), err)
}

// OutputExists creates an OUTPUT_EXISTS error.
func OutputExists(path string) *Error {
	return New(CodeOutputExists, fmt.Sprintf("output archive %q already exists", path))
}

// LimitExceeded creates a LIMIT_EXCEEDED error.
func LimitExceeded(limit string) *Error {
	return New(CodeLimitExceeded, fmt.Sprintf("limit exceeded: %s", limit))
}
