// pkg/pkgconfig/types.go
package pkgconfig

import (
	"github.com/arc-language/pkgflags/pkg/descriptor"
	"github.com/arc-language/pkgflags/pkg/requirement"
)

// BuildState tracks how far a package got through resolution.
type BuildState int

const (
	// StateParsing: the descriptor is being read, fields may be missing.
	StateParsing BuildState = iota
	// StateResolving: the package is registered and its requirements are
	// being pulled in. Links are incomplete.
	StateResolving
	// StateVerified: links are complete and all checks passed.
	StateVerified
	// StateFailed: the package was dropped from the registry.
	StateFailed
)

func (s BuildState) String() string {
	switch s {
	case StateParsing:
		return "parsing"
	case StateResolving:
		return "resolving"
	case StateVerified:
		return "verified"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Package is a descriptor together with its resolved requirement graph.
// Links hold registry keys rather than pointers, so cyclic requirements
// need no special ownership.
type Package struct {
	*descriptor.Descriptor

	// Links are the keys of the packages named in Requires.
	Links []string
	// PrivateLinks are the keys named in Requires.private followed by Links.
	PrivateLinks []string
	// Constraints maps a resolved key to the entry that pulled it in.
	Constraints map[string]requirement.Entry

	Uninstalled  bool
	Virtual      bool
	PathPosition int
	State        BuildState
}

func newPackage(d *descriptor.Descriptor, position int) *Package {
	return &Package{
		Descriptor:   d,
		Constraints:  make(map[string]requirement.Entry),
		PathPosition: position,
		State:        StateParsing,
	}
}

// edges returns the links followed for a closure.
func (p *Package) edges(includePrivate bool) []string {
	if includePrivate {
		return p.PrivateLinks
	}
	return p.Links
}
