package core

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Fuabioo/dehash/internal/errors"
)

// Result describes one successfully processed archive.
type Result struct {
	Source         string         `json:"source" yaml:"source"`
	Output         string         `json:"output" yaml:"output"`
	FileCount      int            `json:"file_count" yaml:"file_count"`
	ExtractedBytes uint64         `json:"extracted_size_bytes" yaml:"extracted_size_bytes"`
	Renames        []RenameRecord `json:"renames" yaml:"renames"`
	Rewrite        RewriteStats   `json:"rewrite" yaml:"rewrite"`
}

// Option configures Process and ProcessAll.
type Option func(*processOptions)

type processOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used while processing.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(o *processOptions) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) processOptions {
	o := processOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Process runs the full cycle for one archive: extract into a fresh working
// tree, strip hash markers, rewrite links when anything was renamed, and
// write the result next to the source. The archive is opened and checked
// before a working tree is created; once created, the tree is removed on
// every path out. No output is left behind for a failed run.
func Process(sourcePath string, cfg *Config, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	if cfg == nil {
		cfg = DefaultConfig()
	}

	info, err := os.Stat(sourcePath)
	if err != nil || info.IsDir() {
		return nil, errors.ZipNotFound(sourcePath)
	}

	absSource, err := filepath.Abs(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	outputPath := OutputPath(absSource, cfg.Output.Prefix)
	if _, err := os.Lstat(outputPath); err == nil && !cfg.Output.Overwrite {
		return nil, errors.OutputExists(outputPath)
	}

	logger := o.logger.With("archive", absSource)

	archive, err := OpenArchive(absSource, cfg.ToSecurityLimits())
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	workDir, err := CreateWorkingTree(cfg.Workspace.Dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := RemoveWorkingTree(workDir); err != nil {
			logger.Warn("working tree left behind", "dir", workDir, "error", err)
		}
	}()
	logger.Debug("created working tree", "dir", workDir)

	fileCount, totalSize, err := archive.Extract(workDir)
	if err != nil {
		return nil, err
	}
	logger.Info("extracted archive", "files", fileCount, "bytes", totalSize)

	mapping, err := RenameTree(workDir, RenameOptions{
		MaxAttempts: cfg.Rename.MaxAttempts,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("renamed entries", "count", mapping.Len())

	result := &Result{
		Source:         absSource,
		Output:         outputPath,
		FileCount:      fileCount,
		ExtractedBytes: totalSize,
		Renames:        mapping.Records(),
	}

	if mapping.Len() > 0 {
		stats, err := RewriteLinks(workDir, mapping, RewriteOptions{Logger: logger})
		if err != nil {
			return nil, err
		}
		result.Rewrite = *stats
		logger.Info("rewrote links", "scanned", stats.FilesScanned, "rewritten", stats.FilesRewritten)
	}

	if err := Repack(workDir, outputPath, cfg.Output.CompressionLevel); err != nil {
		return nil, errors.ArchiveWriteFailed(outputPath, err)
	}
	logger.Info("wrote archive", "output", outputPath)

	return result, nil
}

// BatchItem is the outcome of one archive in a batch.
type BatchItem struct {
	Source string
	Result *Result
	Err    error
}

// ProcessAll processes archives one after another. A failure on one archive
// is recorded in its item and never stops the remaining ones.
func ProcessAll(paths []string, cfg *Config, opts ...Option) []BatchItem {
	o := buildOptions(opts)

	items := make([]BatchItem, 0, len(paths))
	for _, path := range paths {
		result, err := Process(path, cfg, WithLogger(o.logger))
		if err != nil {
			o.logger.Error("archive failed", "archive", path, "error", err)
		}
		items = append(items, BatchItem{Source: path, Result: result, Err: err})
	}
	return items
}
