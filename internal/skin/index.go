package skin

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Index maps lowercase skin file stems to paths under a skin directory.
type Index struct {
	dir     string
	entries map[string]string
}

// BuildIndex scans dir and its subdirectories for .toml files. A missing
// directory gives an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{dir: dir, entries: make(map[string]string)}
	if dir == "" {
		return idx
	}
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".toml" {
			return nil
		}
		stem := key(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		// Shallower files win so a skin can be shadowed by moving it up.
		if existing, ok := idx.entries[stem]; !ok || depth(path) < depth(existing) {
			idx.entries[stem] = path
		}
		return nil
	})
	return idx
}

func depth(path string) int {
	return strings.Count(filepath.ToSlash(path), "/")
}

// Dir is the scanned directory.
func (idx *Index) Dir() string {
	return idx.dir
}

// ResolvePath returns the file for a skin name, or ("", false).
func (idx *Index) ResolvePath(name string) (string, bool) {
	path, ok := idx.entries[key(name)]
	return path, ok
}

// Keys returns the indexed stems in sorted order.
func (idx *Index) Keys() []string {
	keys := make([]string, 0, len(idx.entries))
	for k := range idx.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of indexed skins.
func (idx *Index) Len() int {
	return len(idx.entries)
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
