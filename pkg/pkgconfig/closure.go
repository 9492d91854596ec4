// pkg/pkgconfig/closure.go
package pkgconfig

import "sort"

// Closure returns every package reachable from roots, each exactly once,
// with every package placed before all of its own requirements. Roots
// keep their relative order. Public edges are followed, plus private ones
// when includePrivate is set. Links to packages no longer registered are
// skipped.
func (r *Registry) Closure(roots []*Package, includePrivate bool) []*Package {
	visited := make(map[string]bool)
	var post []*Package

	var visit func(p *Package)
	visit = func(p *Package) {
		if visited[p.Key] {
			return
		}
		visited[p.Key] = true

		edges := p.edges(includePrivate)
		for i := len(edges) - 1; i >= 0; i-- {
			if dep, ok := r.Lookup(edges[i]); ok {
				visit(dep)
			}
		}
		post = append(post, p)
	}

	for i := len(roots) - 1; i >= 0; i-- {
		visit(roots[i])
	}

	// Appending in post-order and reversing is the same as prepending.
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

// sortByPathPosition orders pkgs by the search directory they came from,
// keeping dependency order among packages of the same directory.
func sortByPathPosition(pkgs []*Package) {
	sort.SliceStable(pkgs, func(i, j int) bool {
		return pkgs[i].PathPosition < pkgs[j].PathPosition
	})
}
