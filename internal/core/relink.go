package core

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Fuabioo/dehash/internal/errors"
)

// binarySniffLen is how many leading bytes are checked for NUL when deciding
// whether a file is text.
const binarySniffLen = 8000

// linkFixups turns form encoding into the form names take inside exported links.
var linkFixups = strings.NewReplacer("+", "%20", "%2F", "/", "%28", "(", "%29", ")")

// EncodeLink returns name as it appears when embedded as a path segment in an
// exported link: form-encoded (only A-Z, a-z, 0-9, "-", "_" and "." left
// as is), with spaces as %20 and "/", "(", ")" kept literal.
func EncodeLink(name string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(name), "~", "%7E")
	return linkFixups.Replace(escaped)
}

// RewriteOptions configures RewriteLinks.
type RewriteOptions struct {
	Logger *slog.Logger
}

// RewriteStats reports what RewriteLinks touched.
type RewriteStats struct {
	FilesScanned   int `json:"files_scanned" yaml:"files_scanned"`
	FilesRewritten int `json:"files_rewritten" yaml:"files_rewritten"`
	FilesSkipped   int `json:"files_skipped_binary" yaml:"files_skipped_binary"`
}

// NewLinkReplacer builds a replacer substituting the link form of every old
// name with the link form of its new name. All pairs apply in one pass over
// the original text, so output of one substitution is never matched again.
// Longer old forms are tried first where two start at the same offset.
func NewLinkReplacer(m *Mapping) *strings.Replacer {
	type pair struct{ old, new string }
	pairs := make([]pair, 0, m.Len())
	for _, rec := range m.Records() {
		oldForm, newForm := EncodeLink(rec.OldName), EncodeLink(rec.NewName)
		if oldForm == newForm {
			continue
		}
		pairs = append(pairs, pair{oldForm, newForm})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return len(pairs[i].old) > len(pairs[j].old)
	})

	oldnew := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		oldnew = append(oldnew, p.old, p.new)
	}
	return strings.NewReplacer(oldnew...)
}

// RewriteLinks rewrites links in every regular file under root so they follow
// the renames in m. Every file is visited since a link to a renamed entry may
// appear anywhere. Files whose content does not change are not written.
// Binary files are skipped.
func RewriteLinks(root string, m *Mapping, opts RewriteOptions) (*RewriteStats, error) {
	stats := &RewriteStats{}
	if m.Len() == 0 {
		return stats, nil
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	replacer := NewLinkReplacer(m)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk error: %w", err)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		stats.FilesScanned++

		content, err := os.ReadFile(path)
		if err != nil {
			return errors.RewriteFailed(path, err)
		}
		if isBinary(content) {
			stats.FilesSkipped++
			logger.Debug("skipping binary file", "path", path)
			return nil
		}

		rewritten := replacer.Replace(string(content))
		if rewritten == string(content) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return errors.RewriteFailed(path, err)
		}
		if err := os.WriteFile(path, []byte(rewritten), info.Mode().Perm()); err != nil {
			return errors.RewriteFailed(path, err)
		}

		stats.FilesRewritten++
		logger.Debug("rewrote links", "path", path)
		return nil
	})
	if err != nil {
		return stats, err
	}

	return stats, nil
}

// isBinary reports whether content looks like binary data.
func isBinary(content []byte) bool {
	if len(content) > binarySniffLen {
		content = content[:binarySniffLen]
	}
	return bytes.IndexByte(content, 0) >= 0
}
