// pkg/requirement/parser.go
package requirement

import (
	"fmt"

	"github.com/arc-language/pkgflags/pkg/diag"
	"github.com/arc-language/pkgflags/pkg/version"
)

// CommandLineOrigin names requirement lists given as program arguments.
const CommandLineOrigin = "(command line arguments)"

// Options control how a requirement list is parsed.
type Options struct {
	Strict   bool
	Origin   string // file the list came from, used in messages
	Owner    string // key of the declaring package
	Reporter diag.Reporter
}

// Parse splits a requirement list and parses every module in it.
//
// In strict mode the first malformed module aborts with an error wrapping
// ErrSyntax. Otherwise empty names are skipped, unknown operators are kept
// as OpUnknown and an operator without a version compares against "0".
func Parse(s string, opts Options) ([]Entry, error) {
	report := opts.Reporter
	if report == nil {
		report = diag.Discard
	}

	var entries []Entry
	for _, module := range Split(s) {
		e, ok, err := parseModule(module, opts, report)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func parseModule(module string, opts Options, report diag.Reporter) (Entry, bool, error) {
	e := Entry{Owner: opts.Owner}

	start := skipSeparators(module, 0)
	end := skipNonSpace(module, start)
	if start == end {
		report.Errorf("Empty package name in Requires or Conflicts in file '%s'", opts.Origin)
		if opts.Strict {
			return e, false, fmt.Errorf("%w: empty package name in %s", ErrSyntax, opts.Origin)
		}
		return e, false, nil
	}
	e.Name = module[start:end]

	start = skipSeparators(module, end)
	end = skipComparator(module, start)
	op := module[start:end]
	e.Comparator = version.ParseComparator(op)
	if e.Comparator == version.OpUnknown {
		report.Errorf("Unknown version comparison operator '%s' after package name '%s' in file '%s'",
			op, e.Name, opts.Origin)
		if opts.Strict {
			return e, false, fmt.Errorf("%w: unknown operator %q after %q in %s", ErrSyntax, op, e.Name, opts.Origin)
		}
		return e, true, nil
	}

	start = skipSpace(module, end)
	end = skipNonSeparator(module, start)
	if start == end {
		if e.Comparator != version.OpAny {
			report.Errorf("Comparison operator but no version after package name '%s' in file '%s'",
				e.Name, opts.Origin)
			if opts.Strict {
				return e, false, fmt.Errorf("%w: operator without version after %q in %s", ErrSyntax, e.Name, opts.Origin)
			}
			e.Version = "0"
		}
		return e, true, nil
	}
	e.Version = module[start:end]

	return e, true, nil
}
