package core

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
)

// RenameOptions configures RenameTree.
type RenameOptions struct {
	MaxAttempts int
	Logger      *slog.Logger
}

// RenameTree strips hash markers from every entry under root and returns the
// resulting mapping.
//
// Files are renamed first. Directories follow deepest first, so each rename
// operates on a path that is still valid: a directory is only renamed after
// everything beneath it. The root itself is never renamed. The first failure
// aborts the run and leaves the tree partially renamed.
func RenameTree(root string, opts RenameOptions) (*Mapping, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	files, dirs, err := collectEntries(root)
	if err != nil {
		return nil, err
	}

	fileRenames := NewMapping()
	for _, path := range files {
		if err := renameOne(root, path, false, opts.MaxAttempts, fileRenames, logger); err != nil {
			return fileRenames, err
		}
	}

	dirRenames := NewMapping()
	sortDeepestFirst(dirs, string(filepath.Separator))
	for _, path := range dirs {
		if err := renameOne(root, path, true, opts.MaxAttempts, dirRenames, logger); err != nil {
			return mergePasses(fileRenames, dirRenames, logger), err
		}
	}

	return mergePasses(fileRenames, dirRenames, logger), nil
}

// mergePasses joins the file and directory pass mappings. Where a file and a
// directory shared an old base name, the directory record wins.
func mergePasses(fileRenames, dirRenames *Mapping, logger *slog.Logger) *Mapping {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for _, rec := range dirRenames.Records() {
		if prev, ok := fileRenames.Lookup(rec.OldName); ok {
			logger.Debug("file and directory share an old name",
				"old", rec.OldName, "file_new", prev, "dir_new", rec.NewName)
		}
	}

	fileRenames.Merge(dirRenames)
	return fileRenames
}

// collectEntries lists regular files and directories under root in lexical
// walk order. The root itself and non-regular files are excluded.
func collectEntries(root string) (files, dirs []string, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk error: %w", err)
		}
		if path == root {
			return nil
		}
		switch {
		case d.IsDir():
			dirs = append(dirs, path)
		case d.Type().IsRegular():
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk working tree: %w", err)
	}
	return files, dirs, nil
}

// sortDeepestFirst orders directories so every directory comes after all of
// its descendants. Ties keep lexical order for deterministic numbering.
func sortDeepestFirst(dirs []string, sep string) {
	sort.SliceStable(dirs, func(i, j int) bool {
		di, dj := strings.Count(dirs[i], sep), strings.Count(dirs[j], sep)
		if di != dj {
			return di > dj
		}
		return dirs[i] < dirs[j]
	})
}

func renameOne(root, path string, isDir bool, maxAttempts int, mapping *Mapping, logger *slog.Logger) error {
	name := filepath.Base(path)
	if !HasMarker(name) {
		return nil
	}

	parent := filepath.Dir(path)
	newName, err := RenameEntry(parent, name, maxAttempts)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(root, parent)
	if err != nil {
		return fmt.Errorf("failed to get relative path: %w", err)
	}

	mapping.Add(RenameRecord{
		OldName: name,
		NewName: newName,
		Dir:     filepath.ToSlash(rel),
		IsDir:   isDir,
	})
	logger.Debug("renamed entry", "dir", filepath.ToSlash(rel), "old", name, "new", newName)

	return nil
}
