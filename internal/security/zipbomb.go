package security

import (
	"archive/zip"
	"fmt"
)

// ScanResult contains the results of an archive pre-scan.
type ScanResult struct {
	// Limit names the configured limit that was breached, for size and
	// count breaches. It is empty for a compression ratio breach.
	Limit                 string
	Reason                string
	TotalUncompressedSize uint64
	EntryCount            int
	MaxCompressionRatio   float64
	IsSafe                bool
}

// Limits configures the zip bomb detection thresholds.
type Limits struct {
	MaxExtractedSize    uint64  // bytes, default 1GB
	MaxFileCount        int     // default 100000
	MaxCompressionRatio float64 // default 100.0
}

// DefaultLimits returns the default extraction limits.
func DefaultLimits() Limits {
	return Limits{
		MaxExtractedSize:    1 * 1024 * 1024 * 1024, // 1 GB
		MaxFileCount:        100000,
		MaxCompressionRatio: 100.0,
	}
}

// ScanReader scans an already-opened zip reader against limits.
// A zero value in limits disables that particular check.
func ScanReader(r *zip.Reader, limits Limits) *ScanResult {
	result := &ScanResult{
		IsSafe:     true,
		EntryCount: len(r.File),
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}

		result.TotalUncompressedSize += f.UncompressedSize64

		if f.CompressedSize64 > 0 {
			ratio := float64(f.UncompressedSize64) / float64(f.CompressedSize64)
			if ratio > result.MaxCompressionRatio {
				result.MaxCompressionRatio = ratio
			}
		}
	}

	switch {
	case limits.MaxExtractedSize > 0 && result.TotalUncompressedSize > limits.MaxExtractedSize:
		result.IsSafe = false
		result.Limit = "max_extracted_size_bytes"
		result.Reason = fmt.Sprintf(
			"total uncompressed size (%d bytes) exceeds limit (%d bytes)",
			result.TotalUncompressedSize,
			limits.MaxExtractedSize,
		)
	case limits.MaxFileCount > 0 && result.EntryCount > limits.MaxFileCount:
		result.IsSafe = false
		result.Limit = "max_file_count"
		result.Reason = fmt.Sprintf(
			"entry count (%d) exceeds limit (%d)",
			result.EntryCount,
			limits.MaxFileCount,
		)
	case limits.MaxCompressionRatio > 0 && result.MaxCompressionRatio > limits.MaxCompressionRatio:
		result.IsSafe = false
		result.Reason = fmt.Sprintf(
			"compression ratio (%.2f:1) exceeds limit (%.2f:1)",
			result.MaxCompressionRatio,
			limits.MaxCompressionRatio,
		)
	}

	return result
}
