// errors.go
package pkgflags

import "github.com/arc-language/pkgflags/pkg/pkgconfig"

var (
	// ErrNotFound indicates a package is not in the search path
	ErrNotFound = pkgconfig.ErrNotFound

	// ErrFatal marks failures that abort the whole resolution
	ErrFatal = pkgconfig.ErrFatal

	// ErrVersionMismatch indicates a version constraint was not met
	ErrVersionMismatch = pkgconfig.ErrVersionMismatch

	// ErrConflict indicates a Conflicts: entry matched
	ErrConflict = pkgconfig.ErrConflict

	// ErrMissingField indicates a descriptor lacks Name, Version or Description
	ErrMissingField = pkgconfig.ErrMissingField

	// ErrNoPackages indicates an empty module list
	ErrNoPackages = pkgconfig.ErrNoPackages

	// ErrDuplicateGlobal indicates a global variable defined twice
	ErrDuplicateGlobal = pkgconfig.ErrDuplicateGlobal
)

type (
	// Error wraps an error with the failing operation and package
	Error = pkgconfig.Error

	// ConstraintError describes an unsatisfied version requirement
	ConstraintError = pkgconfig.ConstraintError
)

// IsNotFound reports whether err means a package could not be located.
func IsNotFound(err error) bool {
	return pkgconfig.IsNotFound(err)
}

// IsFatal reports whether err aborted resolution.
func IsFatal(err error) bool {
	return pkgconfig.IsFatal(err)
}
