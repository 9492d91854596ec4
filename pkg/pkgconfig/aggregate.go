// pkg/pkgconfig/aggregate.go
package pkgconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arc-language/pkgflags/pkg/flag"
	"github.com/arc-language/pkgflags/pkg/requirement"
	"github.com/arc-language/pkgflags/pkg/version"
)

// Set is the outcome of resolving a module list: the root packages in the
// order they were requested.
type Set struct {
	Roots []*Package

	r *Resolver
}

// Resolve parses list as a requirement list and gets every package it
// names. Failures of individual roots are collected and joined; the
// returned Set holds the roots that succeeded. A fatal error returns a
// nil Set.
func (r *Resolver) Resolve(list string) (*Set, error) {
	entries, err := requirement.Parse(list, requirement.Options{
		Strict:   !r.opts.Lenient,
		Origin:   requirement.CommandLineOrigin,
		Reporter: r.report,
	})
	if err != nil {
		return nil, fatal("parse", "", err)
	}
	if len(entries) == 0 {
		return nil, &Error{Op: "resolve", Err: ErrNoPackages}
	}

	set := &Set{r: r}
	var errs []error
	for _, e := range entries {
		e = r.override(e)

		p, err := r.Get(e.Name)
		if err != nil {
			if IsFatal(err) {
				return nil, err
			}
			r.logf("%s NOT-FOUND", e.Name)
			r.report.Errorf("No package '%s' found", e.Name)
			errs = append(errs, err)
			continue
		}

		wanted := e.Version
		if wanted == "" {
			wanted = "(null)"
		}
		r.logf("%s %s %s", e.Name, e.Comparator, wanted)

		if !e.Matches(p.Version) {
			r.report.Errorf("Requested '%s %s %s' but version of %s is %s",
				e.Name, e.Comparator, e.Version, p.Name, p.Version)
			if p.URL != "" {
				r.report.Errorf("You may find new versions of %s at %s", p.Name, p.URL)
			}
			errs = append(errs, &ConstraintError{
				Required: p.Key,
				Entry:    e,
				Actual:   p.Version,
				URL:      p.URL,
			})
			continue
		}
		set.Roots = append(set.Roots, p)
	}
	return set, errors.Join(errs...)
}

// override applies the exact, at-least or max version option to a root.
func (r *Resolver) override(e requirement.Entry) requirement.Entry {
	switch {
	case r.opts.ExactVersion != "":
		e.Comparator, e.Version = version.OpEqual, r.opts.ExactVersion
	case r.opts.AtLeastVersion != "":
		e.Comparator, e.Version = version.OpGreaterEqual, r.opts.AtLeastVersion
	case r.opts.MaxVersion != "":
		e.Comparator, e.Version = version.OpLessEqual, r.opts.MaxVersion
	}
	return e
}

func (r *Resolver) logf(format string, args ...any) {
	if r.log == nil {
		return
	}
	fmt.Fprintf(r.log, format+"\n", args...)
}

// Merge concatenates the flags of pkgs matching mask, keeping each
// package's own order. Link categories are taken from Libs, compile
// categories from Cflags.
func Merge(pkgs []*Package, mask flag.Category) []flag.Flag {
	var out []flag.Flag
	for _, p := range pkgs {
		src := p.Cflags
		if mask&flag.LinkAny != 0 {
			src = p.Libs
		}
		out = append(out, flag.Filter(src, mask)...)
	}
	return out
}

// RenderFlags builds the flag string for mask over the closure of the
// roots. pathOrdered sorts the closure by search directory first;
// includePrivate follows Requires.private edges as well.
func (s *Set) RenderFlags(mask flag.Category, pathOrdered, includePrivate bool) string {
	closure := s.r.registry.Closure(s.Roots, includePrivate)
	if pathOrdered {
		sortByPathPosition(closure)
	}
	flags := flag.StripDuplicates(Merge(closure, mask))
	return flag.Render(flags, s.r.settings.Sysroot)
}

// Flags renders every category in mask. -I and -L flags are ordered by
// search directory, everything else by dependency order. Compile flags
// always follow private requirements; link flags only when private libs
// were parsed.
func (s *Set) Flags(mask flag.Category) string {
	private := !s.r.opts.IgnorePrivateLibs

	var parts []string
	add := func(m flag.Category, pathOrdered, includePrivate bool) {
		str := s.RenderFlags(m, pathOrdered, includePrivate)
		s.r.report.Debugf("adding %s string \"%s\"", m, str)
		if str != "" {
			parts = append(parts, str)
		}
	}

	if mask&flag.CompileOther != 0 {
		add(flag.CompileOther, false, true)
	}
	if mask&flag.IncludePath != 0 {
		add(flag.IncludePath, true, true)
	}
	if mask&flag.LinkPath != 0 {
		add(flag.LinkPath, true, private)
	}
	if m := mask & (flag.LinkOther | flag.LinkLib); m != 0 {
		add(m, false, private)
	}
	return strings.Join(parts, " ")
}

// AnyUninstalled reports whether a root, or anything it publicly requires,
// is an uninstalled package.
func (s *Set) AnyUninstalled() bool {
	visited := make(map[string]bool)
	var walk func(p *Package) bool
	walk = func(p *Package) bool {
		if visited[p.Key] {
			return false
		}
		visited[p.Key] = true
		if p.Uninstalled {
			return true
		}
		for _, key := range p.Links {
			if dep, ok := s.r.registry.Lookup(key); ok && walk(dep) {
				return true
			}
		}
		return false
	}

	for _, p := range s.Roots {
		if walk(p) {
			return true
		}
	}
	return false
}

// Variable returns name for every root that defines it, space separated.
func (s *Set) Variable(name string) string {
	var words []string
	for _, p := range s.Roots {
		if v, ok := s.r.Variable(p, name); ok && v != "" {
			words = append(words, v)
		}
	}
	return strings.Join(words, " ")
}
