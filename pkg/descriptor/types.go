// pkg/descriptor/types.go
package descriptor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arc-language/pkgflags/pkg/diag"
	"github.com/arc-language/pkgflags/pkg/flag"
	"github.com/arc-language/pkgflags/pkg/requirement"
)

// DirVariable is predefined in every descriptor and holds the directory
// the file was read from.
const DirVariable = "pcfiledir"

// DefaultPrefixVariable is the variable relocated by DefinePrefix.
const DefaultPrefixVariable = "prefix"

var (
	ErrDuplicateField    = errors.New("field occurs twice")
	ErrDuplicateVariable = errors.New("variable defined twice")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrArgv              = errors.New("cannot split field into an argument vector")
)

// ParseError is a fatal problem found while reading a descriptor.
type ParseError struct {
	Path string
	Line int // logical line, 1-based; 0 when not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Options control parsing of a single descriptor.
type Options struct {
	// Key is the name the descriptor is registered under.
	Key string
	// Path is the file name used for pcfiledir and in messages.
	Path string

	// Strict turns duplicate fields, duplicate variables, undefined
	// references and malformed lists into errors. Otherwise they are
	// reported and parsing goes on.
	Strict bool

	// DefinePrefix relocates the prefix variable to the grandparent of a
	// ".../pkgconfig" directory holding the file.
	DefinePrefix   bool
	PrefixVariable string

	IgnoreRequires        bool
	IgnoreRequiresPrivate bool
	IgnorePrivateLibs     bool

	// Lookups are consulted, in order, before the descriptor's own
	// variables when expanding ${name}.
	Lookups []Lookup

	Reporter diag.Reporter
}

// Descriptor is the parsed content of one .pc file.
type Descriptor struct {
	Key  string
	Path string
	Dir  string

	Name        string
	Description string
	Version     string
	URL         string

	Requires        []requirement.Entry
	RequiresPrivate []requirement.Entry
	Conflicts       []requirement.Entry

	Cflags []flag.Flag
	// Libs holds the Libs and Libs.private arguments in file order.
	Libs []flag.Flag

	// Vars maps variable names to their expanded values.
	Vars map[string]string
	// OrigPrefix is the prefix value written in the file before it was
	// relocated. Empty when no relocation happened.
	OrigPrefix string

	fields map[Keyword]bool
}

// New returns an empty descriptor with the predefined variables set.
func New(key, path, dir string) *Descriptor {
	d := &Descriptor{
		Key:    key,
		Path:   path,
		Dir:    dir,
		Vars:   make(map[string]string),
		fields: make(map[Keyword]bool),
	}
	if dir != "" {
		d.Vars[DirVariable] = dir
	}
	return d
}

// Has reports whether the field was set from the file.
func (d *Descriptor) Has(k Keyword) bool {
	return d.fields[k]
}

// Set marks k as present. Used for descriptors built in code.
func (d *Descriptor) Set(k Keyword) {
	if d.fields == nil {
		d.fields = make(map[Keyword]bool)
	}
	d.fields[k] = true
}

// Var returns a variable value. Empty values count as unset.
func (d *Descriptor) Var(name string) (string, bool) {
	v, ok := d.Vars[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// VarNames returns the defined variable names in sorted order.
func (d *Descriptor) VarNames() []string {
	names := make([]string, 0, len(d.Vars))
	for name := range d.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
