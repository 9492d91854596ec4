// pkg/requirement/types.go
package requirement

import (
	"errors"

	"github.com/arc-language/pkgflags/pkg/version"
)

// ErrSyntax marks a malformed requirement list.
var ErrSyntax = errors.New("malformed requirement")

// Entry is one "name [op version]" declaration from Requires,
// Requires.private, Conflicts or the command line.
type Entry struct {
	Name       string
	Comparator version.Comparator
	Version    string // empty when Comparator is OpAny
	Owner      string // key of the declaring package, empty for the command line
}

// Matches reports whether the given version satisfies the entry.
func (e Entry) Matches(actual string) bool {
	return e.Comparator.Match(actual, e.Version)
}

// String renders the entry the way it is printed by --print-requires.
func (e Entry) String() string {
	if e.Comparator == version.OpAny {
		return e.Name
	}
	return e.Name + " " + e.Comparator.String() + " " + e.Version
}
