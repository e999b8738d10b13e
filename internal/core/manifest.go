package core

import (
	"fmt"
	"os"
	"time"

	"github.com/Fuabioo/dehash/internal/errors"
	"gopkg.in/yaml.v3"
)

// Manifest is the YAML report written after a batch run.
type Manifest struct {
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Archives    []ManifestEntry `json:"archives" yaml:"archives"`
}

// ManifestEntry reports one archive of the batch.
type ManifestEntry struct {
	Source    string         `json:"source" yaml:"source"`
	Output    string         `json:"output,omitempty" yaml:"output,omitempty"`
	Status    string         `json:"status" yaml:"status"`
	ErrorCode string         `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
	Rewrite   *RewriteStats  `json:"rewrite,omitempty" yaml:"rewrite,omitempty"`
	Renames   []RenameRecord `json:"renames,omitempty" yaml:"renames,omitempty"`
}

// NewManifest summarizes a batch.
func NewManifest(items []BatchItem, now time.Time) *Manifest {
	m := &Manifest{GeneratedAt: now.UTC()}
	for _, item := range items {
		entry := ManifestEntry{Source: item.Source}
		if item.Err != nil {
			entry.Status = "failed"
			entry.ErrorCode = errors.Code(item.Err)
			entry.Error = item.Err.Error()
		} else if item.Result != nil {
			entry.Status = "ok"
			entry.Output = item.Result.Output
			rewrite := item.Result.Rewrite
			entry.Rewrite = &rewrite
			entry.Renames = item.Result.Renames
		}
		m.Archives = append(m.Archives, entry)
	}
	return m
}

// WriteManifest writes a YAML report of items to path.
func WriteManifest(path string, items []BatchItem) error {
	data, err := yaml.Marshal(NewManifest(items, time.Now()))
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
