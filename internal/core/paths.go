package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ConfigDir returns the directory holding config.json.
// It follows the XDG Base Directory Specification:
// - $DEHASH_CONFIG_DIR (full override)
// - $XDG_CONFIG_HOME/dehash
// - ~/.config/dehash (fallback)
func ConfigDir() (string, error) {
	if dir := os.Getenv("DEHASH_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "dehash"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".config", "dehash"), nil
}

// OutputPath returns where the rewritten copy of source is written:
// the same directory, with prefix prepended to the base name.
func OutputPath(source, prefix string) string {
	return filepath.Join(filepath.Dir(source), prefix+filepath.Base(source))
}

// DiscoverArchives lists the .zip files directly inside dir, sorted by name.
// Files already carrying prefix are previous outputs and are skipped.
func DiscoverArchives(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	var archives []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".zip") {
			continue
		}
		if prefix != "" && strings.HasPrefix(name, prefix) {
			continue
		}
		archives = append(archives, filepath.Join(dir, name))
	}

	sort.Strings(archives)
	return archives, nil
}

// CollectArchives resolves paths into archive paths. Directories are
// expanded with DiscoverArchives; anything else is passed through so a
// missing file is reported when it is processed.
func CollectArchives(paths []string, prefix string) ([]string, error) {
	var archives []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			found, err := DiscoverArchives(p, prefix)
			if err != nil {
				return nil, err
			}
			archives = append(archives, found...)
			continue
		}
		archives = append(archives, p)
	}
	return archives, nil
}
