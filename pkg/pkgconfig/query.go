// pkg/pkgconfig/query.go
package pkgconfig

import (
	"fmt"
	"strings"

	"github.com/arc-language/pkgflags/pkg/version"
)

// ModVersions returns the Version of each root.
func (s *Set) ModVersions() []string {
	out := make([]string, 0, len(s.Roots))
	for _, p := range s.Roots {
		out = append(out, p.Version)
	}
	return out
}

// Provides returns "key = version" for each root. Leading slashes are
// dropped from keys and roots left with an empty key are skipped.
func (s *Set) Provides() []string {
	var out []string
	for _, p := range s.Roots {
		key := strings.TrimLeft(p.Key, "/")
		if key == "" {
			continue
		}
		out = append(out, key+" = "+p.Version)
	}
	return out
}

// Requires lists the public requirements of each root with their
// constraints.
func (s *Set) Requires() []string {
	var out []string
	for _, p := range s.Roots {
		for _, key := range p.Links {
			out = append(out, requirementLine(p, key))
		}
	}
	return out
}

// RequiresPrivate lists the requirements each root only names in
// Requires.private.
func (s *Set) RequiresPrivate() []string {
	var out []string
	for _, p := range s.Roots {
		public := make(map[string]bool, len(p.Links))
		for _, key := range p.Links {
			public[key] = true
		}
		for _, key := range p.PrivateLinks {
			if public[key] {
				continue
			}
			out = append(out, requirementLine(p, key))
		}
	}
	return out
}

func requirementLine(p *Package, key string) string {
	e, ok := p.Constraints[key]
	if !ok || e.Comparator == version.OpAny {
		return key
	}
	return fmt.Sprintf("%s %s %s", key, e.Comparator, e.Version)
}

// VariableNames returns the sorted variable names of each root that has
// any, one slice per root.
func (s *Set) VariableNames() [][]string {
	var out [][]string
	for _, p := range s.Roots {
		names := p.VarNames()
		if len(names) == 0 {
			continue
		}
		out = append(out, names)
	}
	return out
}

// LoadAll registers every descriptor found in the search path. A file
// whose key is already registered is skipped, so the first directory
// wins. Only fatal errors are returned.
func (r *Resolver) LoadAll() error {
	files, errs := r.settings.Path.Scan()
	for _, err := range errs {
		r.report.Debugf("Cannot open directory in package search path: %v", err)
	}

	for _, file := range files {
		if _, err := r.get(file, false, r.settings.DisableUninstalled); err != nil && IsFatal(err) {
			return err
		}
	}
	return nil
}

// List formats every registered package as "key<pad>name - description",
// sorted by key, with names aligned one column past the longest key.
func (r *Resolver) List() []string {
	pkgs := r.registry.Packages()

	width := 0
	for _, p := range pkgs {
		width = max(width, len(p.Key))
	}

	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		pad := strings.Repeat(" ", width+1-len(p.Key))
		out = append(out, p.Key+pad+p.Name+" - "+p.Description)
	}
	return out
}
