package core

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Fuabioo/dehash/internal/errors"
	"github.com/Fuabioo/dehash/internal/security"
	"github.com/klauspost/compress/flate"
)

// Archive is an opened zip whose central directory passed the extraction
// limits and entry path checks.
type Archive struct {
	r *zip.ReadCloser
}

// OpenArchive opens zipPath and checks it against limits. Only metadata is
// read; a rejected archive is closed before returning.
func OpenArchive(zipPath string, limits security.Limits) (*Archive, error) {
	r, err := zip.OpenReader(zipPath)
	// Insecure names are reported per entry by checkArchive.
	if err != nil && err != zip.ErrInsecurePath {
		return nil, errors.ZipInvalid(zipPath, err)
	}
	r.RegisterDecompressor(zip.Deflate, flate.NewReader)

	if err := checkArchive(&r.Reader, limits); err != nil {
		r.Close()
		return nil, err
	}

	return &Archive{r: r}, nil
}

// Files returns the archive's entries in central directory order.
func (a *Archive) Files() []*zip.File {
	return a.r.File
}

// Close releases the underlying file.
func (a *Archive) Close() error {
	return a.r.Close()
}

// Extract writes every entry under destDir.
// Returns the number of files extracted and the total size in bytes.
func (a *Archive) Extract(destDir string) (int, uint64, error) {
	var fileCount int
	var totalSize uint64

	for _, f := range a.r.File {
		written, err := extractFile(f, destDir)
		if err != nil {
			return fileCount, totalSize, fmt.Errorf("failed to extract %q: %w", f.Name, err)
		}
		if !f.FileInfo().IsDir() {
			fileCount++
			totalSize += uint64(written)
		}
	}

	return fileCount, totalSize, nil
}

// checkArchive applies limits and entry path validation to r's central
// directory. Validation is fail-closed: one unsafe entry rejects the archive.
func checkArchive(r *zip.Reader, limits security.Limits) error {
	if scan := security.ScanReader(r, limits); !scan.IsSafe {
		if scan.Limit != "" {
			return errors.LimitExceeded(fmt.Sprintf("%s: %s", scan.Limit, scan.Reason))
		}
		return errors.ZipBombDetected(scan.Reason)
	}

	for _, f := range r.File {
		if err := security.ValidatePath(".", f.Name); err != nil {
			return errors.PathTraversal(f.Name)
		}
	}

	return nil
}

// extractFile extracts a single entry and returns the bytes written.
func extractFile(f *zip.File, destDir string) (int64, error) {
	destPath := filepath.Join(destDir, filepath.FromSlash(f.Name))

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, 0755); err != nil {
			return 0, fmt.Errorf("failed to create directory: %w", err)
		}
		return 0, nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create parent directory: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open file in archive: %w", err)
	}
	defer rc.Close()

	// Owner read/write is forced so the relink pass can rewrite the file.
	outFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm()|0600)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	written, err := io.Copy(outFile, rc)
	if err != nil {
		return written, fmt.Errorf("failed to copy data: %w", err)
	}

	if err := outFile.Close(); err != nil {
		return written, fmt.Errorf("failed to close output file: %w", err)
	}

	return written, nil
}
