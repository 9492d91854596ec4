// pkg/pkgconfig/registry.go
package pkgconfig

import "sort"

// Registry holds every package loaded during a run, keyed by package key.
// A package is added before its requirements are resolved, which is what
// stops requirement cycles from recursing forever.
type Registry struct {
	packages map[string]*Package
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{packages: make(map[string]*Package)}
}

// Lookup returns the package registered under key.
func (r *Registry) Lookup(key string) (*Package, bool) {
	p, ok := r.packages[key]
	return p, ok
}

// Add registers p under its key, replacing any previous entry.
func (r *Registry) Add(p *Package) {
	r.packages[p.Key] = p
}

// Remove drops key. Links other packages hold to it become dangling and
// are skipped by closures.
func (r *Registry) Remove(key string) {
	delete(r.packages, key)
}

// Len returns the number of registered packages.
func (r *Registry) Len() int {
	return len(r.packages)
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.packages))
	for k := range r.packages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Packages returns the registered packages sorted by key.
func (r *Registry) Packages() []*Package {
	keys := r.Keys()
	out := make([]*Package, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.packages[k])
	}
	return out
}
