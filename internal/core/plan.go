package core

import (
	"os"
	"path"
	"sort"
	"strings"

	"github.com/Fuabioo/dehash/internal/errors"
)

// Plan computes the mapping Process would produce for zipPath without
// extracting anything. It reads the central directory, rebuilds the tree
// (including parent directories the archive only implies) and replays both
// rename passes against in-memory sibling sets.
//
// The result matches Process on a case-sensitive filesystem. Archives that
// Process would reject fail here with the same error code.
func Plan(zipPath string, cfg *Config) (*Mapping, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if info, err := os.Stat(zipPath); err != nil || info.IsDir() {
		return nil, errors.ZipNotFound(zipPath)
	}

	archive, err := OpenArchive(zipPath, cfg.ToSecurityLimits())
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	tree := newPlanTree()
	for _, f := range archive.Files() {
		tree.add(f.Name, f.FileInfo().IsDir())
	}

	return tree.simulate(cfg.Rename.MaxAttempts)
}

// planTree is an in-memory view of an archive's directory structure.
type planTree struct {
	files    []string
	dirs     []string
	seen     map[string]bool
	siblings map[string]map[string]bool
}

func newPlanTree() *planTree {
	return &planTree{
		seen:     make(map[string]bool),
		siblings: make(map[string]map[string]bool),
	}
}

// add records an entry and every parent directory it implies.
func (t *planTree) add(name string, isDir bool) {
	clean := path.Clean(strings.TrimPrefix(name, "./"))
	if clean == "." || clean == "" || t.seen[clean] {
		return
	}

	t.seen[clean] = true
	if isDir {
		t.dirs = append(t.dirs, clean)
	} else {
		t.files = append(t.files, clean)
	}

	parent := path.Dir(clean)
	if t.siblings[parent] == nil {
		t.siblings[parent] = make(map[string]bool)
	}
	t.siblings[parent][path.Base(clean)] = true

	if parent != "." {
		t.add(parent, true)
	}
}

// simulate replays RenameTree's two passes.
func (t *planTree) simulate(maxAttempts int) (*Mapping, error) {
	fileRenames := NewMapping()
	files := append([]string(nil), t.files...)
	sort.Slice(files, func(i, j int) bool {
		return walkLess(files[i], files[j])
	})
	for _, p := range files {
		if err := t.rename(p, false, maxAttempts, fileRenames); err != nil {
			return nil, err
		}
	}

	dirRenames := NewMapping()
	dirs := append([]string(nil), t.dirs...)
	sortDeepestFirst(dirs, "/")
	for _, p := range dirs {
		if err := t.rename(p, true, maxAttempts, dirRenames); err != nil {
			return nil, err
		}
	}

	return mergePasses(fileRenames, dirRenames, nil), nil
}

func (t *planTree) rename(p string, isDir bool, maxAttempts int, mapping *Mapping) error {
	name := path.Base(p)
	if !HasMarker(name) {
		return nil
	}

	parent := path.Dir(p)
	names := t.siblings[parent]

	newName, err := AllocateName(name, func(candidate string) bool {
		return names[candidate]
	}, maxAttempts)
	if err != nil {
		return err
	}

	delete(names, name)
	names[newName] = true

	mapping.Add(RenameRecord{
		OldName: name,
		NewName: newName,
		Dir:     parent,
		IsDir:   isDir,
	})
	return nil
}

// walkLess orders slash paths the way filepath.WalkDir visits them: entries of
// a directory in lexical name order, each directory's contents before its
// following siblings.
func walkLess(a, b string) bool {
	pa, pb := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return len(pa) < len(pb)
}
