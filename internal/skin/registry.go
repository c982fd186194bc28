package skin

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"ballface/internal/logging"
)

//go:embed skins/*.toml
var builtinFS embed.FS

// ErrUnknownSkin is returned for names found neither on disk nor among the
// built-in skins.
var ErrUnknownSkin = errors.New("unknown skin")

// Registry resolves skin names to parsed skins. Skins from the directory
// index shadow built-in skins of the same name. Parsed skins are cached;
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	items map[string]*Skin
	index *Index
}

// NewRegistry creates a registry backed by index, which may be nil to use
// the built-in skins only.
func NewRegistry(index *Index) *Registry {
	if index == nil {
		index = BuildIndex("")
	}
	return &Registry{
		items: make(map[string]*Skin),
		index: index,
	}
}

// Get returns the named skin, loading it on first use.
func (r *Registry) Get(name string) (*Skin, error) {
	k := key(name)

	r.mu.RLock()
	if s, ok := r.items[k]; ok {
		r.mu.RUnlock()
		return s, nil
	}
	index := r.index
	r.mu.RUnlock()

	s, err := load(index, k)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[k]; ok {
		return existing, nil
	}
	r.items[k] = s
	return s, nil
}

func load(index *Index, k string) (*Skin, error) {
	if p, ok := index.ResolvePath(k); ok {
		logging.Logger().Debug("skin: loading", "name", k, "path", p)
		return Load(p)
	}
	data, err := builtinFS.ReadFile(path.Join("skins", k+".toml"))
	if err != nil {
		return nil, fmt.Errorf("skin: %w: %s", ErrUnknownSkin, k)
	}
	logging.Logger().Debug("skin: loading built-in", "name", k)
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("skin: built-in %s: %w", k, err)
	}
	return s, nil
}

// Names returns every resolvable skin key in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	index := r.index
	r.mu.RUnlock()

	set := map[string]bool{}
	for _, k := range index.Keys() {
		set[k] = true
	}
	entries, _ := builtinFS.ReadDir("skins")
	for _, e := range entries {
		set[strings.TrimSuffix(e.Name(), ".toml")] = true
	}
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Reload rescans the skin directory and drops every cached skin.
func (r *Registry) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.index = BuildIndex(r.index.Dir())
	r.items = make(map[string]*Skin)
	logging.Logger().Info("skin: registry reloaded", "dir", r.index.Dir(), "files", r.index.Len())
}
