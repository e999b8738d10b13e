// Package errors provides typed error handling for dehash operations.
//
// Every failure that ends the processing of one archive carries a code, so
// the CLI can map it to an exit status and the MCP server can report it.
//
// Example usage:
//
//	// Creating errors
//	err := errors.ZipNotFound("export.zip")
//	err := errors.ZipBombDetected("compression ratio exceeds 100:1")
//
//	// Wrapping errors
//	err := errors.RenameFailed("Page 0123...cdef.md", ioErr)
//
//	// Checking error codes
//	if errors.Is(err, errors.CodeRenameFailed) {
//	    // handle rename failure
//	}
//
//	// Stdlib compatibility
//	var dehashErr *errors.Error
//	if errors.As(err, &dehashErr) {
//	    fmt.Println(dehashErr.Code, dehashErr.Message)
//	}
package errors
