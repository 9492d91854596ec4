// pkg/pkgconfig/errors.go
package pkgconfig

import (
	"errors"
	"fmt"

	"github.com/arc-language/pkgflags/pkg/descriptor"
	"github.com/arc-language/pkgflags/pkg/requirement"
)

var (
	// ErrNotFound indicates no descriptor exists for a package. Resolution
	// of other packages may continue.
	ErrNotFound = errors.New("package not found")

	// ErrFatal marks failures that abort the whole resolution, such as
	// malformed descriptors under strict parsing.
	ErrFatal = errors.New("fatal")

	// ErrVersionMismatch indicates a version constraint was not met
	ErrVersionMismatch = errors.New("version constraint not satisfied")

	// ErrConflict indicates a dependency matched a Conflicts entry
	ErrConflict = errors.New("conflicting package")

	// ErrMissingField indicates a descriptor lacks Name, Version or Description
	ErrMissingField = errors.New("required field missing")

	// ErrNoPackages indicates an empty module list was given
	ErrNoPackages = errors.New("no package names given")

	// ErrDuplicateGlobal indicates a global variable was defined twice
	ErrDuplicateGlobal = errors.New("variable defined twice globally")
)

// Errors raised by the descriptor and requirement parsers.
var (
	ErrDuplicateField    = descriptor.ErrDuplicateField
	ErrDuplicateVariable = descriptor.ErrDuplicateVariable
	ErrUndefinedVariable = descriptor.ErrUndefinedVariable
	ErrSyntax            = requirement.ErrSyntax
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ConstraintError describes a version constraint or conflict that failed.
type ConstraintError struct {
	Package  string // package declaring the constraint, empty for the command line
	Required string // package the constraint applies to
	Entry    requirement.Entry
	Actual   string // version Required actually has
	URL      string // where newer versions of Required can be found
	Conflict bool
}

func (e *ConstraintError) Error() string {
	if e.Conflict {
		return fmt.Sprintf("version %s of %s conflicts with %s (declared by %s)",
			e.Actual, e.Required, e.Entry, e.Package)
	}
	if e.Package == "" {
		return fmt.Sprintf("requested '%s' but version of %s is %s", e.Entry, e.Required, e.Actual)
	}
	return fmt.Sprintf("%s requires '%s' but version of %s is %s", e.Package, e.Entry, e.Required, e.Actual)
}

func (e *ConstraintError) Unwrap() error {
	if e.Conflict {
		return ErrConflict
	}
	return ErrVersionMismatch
}

// IsFatal reports whether err must abort resolution.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// IsNotFound reports whether err was caused by a missing descriptor.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func fatal(op, key string, err error) error {
	return &Error{Op: op, Package: key, Err: fmt.Errorf("%w: %w", ErrFatal, err)}
}
