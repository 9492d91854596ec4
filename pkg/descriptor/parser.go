// pkg/descriptor/parser.go
package descriptor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arc-language/pkgflags/pkg/diag"
	"github.com/arc-language/pkgflags/pkg/flag"
	"github.com/arc-language/pkgflags/pkg/requirement"
)

// ParseFile opens path and parses it. A file that cannot be opened is
// reported and returned as a plain *fs.PathError, never a *ParseError.
func ParseFile(path string, opts Options) (*Descriptor, error) {
	report := reporterOf(opts)

	f, err := os.Open(path)
	if err != nil {
		report.Errorf("Failed to open '%s': %v", path, err)
		return nil, err
	}
	defer f.Close()

	opts.Path = path
	return Parse(f, opts)
}

// Parse reads a descriptor from r.
func Parse(r io.Reader, opts Options) (*Descriptor, error) {
	if opts.PrefixVariable == "" {
		opts.PrefixVariable = DefaultPrefixVariable
	}

	dir := ""
	if opts.Path != "" {
		dir = filepath.Dir(opts.Path)
	}

	p := &parser{
		opts:   opts,
		report: reporterOf(opts),
		desc:   New(opts.Key, opts.Path, dir),
	}
	p.report.Debugf("Parsing package file '%s'", opts.Path)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(ScanLogicalLines)

	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, &ParseError{Path: opts.Path, Line: p.line, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Path: opts.Path, Err: fmt.Errorf("reading: %w", err)}
	}

	if p.line == 0 {
		p.report.Errorf("Package file '%s' appears to be empty", opts.Path)
	}
	return p.desc, nil
}

func reporterOf(opts Options) diag.Reporter {
	if opts.Reporter == nil {
		return diag.Discard
	}
	return opts.Reporter
}

type parser struct {
	opts   Options
	report diag.Reporter
	desc   *Descriptor
	line   int
}

func (p *parser) parseLine(untrimmed string) error {
	p.report.Debugf("  line>%s", untrimmed)

	s := trim(untrimmed)
	end := 0
	for end < len(s) && isTagChar(s[end]) {
		end++
	}
	if end == 0 {
		return nil
	}
	tag := s[:end]

	rest := skipSpace(s[end:])
	if rest == "" {
		return nil
	}
	switch rest[0] {
	case ':':
		return p.parseKeyword(tag, skipSpace(rest[1:]))
	case '=':
		return p.parseVariable(tag, skipSpace(rest[1:]))
	}
	return nil
}

func (p *parser) parseVariable(name, raw string) error {
	d := p.desc

	if p.opts.DefinePrefix {
		if name == p.opts.PrefixVariable {
			if prefix, ok := relocatedPrefix(d.Dir); ok {
				d.OrigPrefix = raw
				d.Vars[name] = prefix
				p.report.Debugf(" Variable declaration, '%s' overridden with '%s'", name, prefix)
				return nil
			}
		} else if rebased, ok := rebase(raw, d.OrigPrefix, d.Vars[p.opts.PrefixVariable]); ok {
			raw = rebased
		}
	}

	if _, dup := d.Vars[name]; dup {
		p.report.Errorf("Duplicate definition of variable '%s' in '%s'", name, p.opts.Path)
		if p.opts.Strict {
			return fmt.Errorf("%w: %q", ErrDuplicateVariable, name)
		}
	}

	value, err := p.expand(raw)
	if err != nil {
		return err
	}
	p.report.Debugf(" Variable declaration, '%s' has value '%s'", name, value)
	d.Vars[name] = value
	return nil
}

func (p *parser) parseKeyword(tag, raw string) error {
	kw := ParseKeyword(tag)
	switch kw {
	case KeywordUnknown:
		p.report.Debugf("Unknown keyword '%s' in '%s'", tag, p.opts.Path)
		return nil
	case KeywordRequires:
		if p.opts.IgnoreRequires {
			return nil
		}
	case KeywordRequiresPrivate:
		if p.opts.IgnoreRequiresPrivate {
			return nil
		}
	case KeywordLibsPrivate:
		if p.opts.IgnorePrivateLibs {
			return nil
		}
	}

	d := p.desc
	if d.fields[kw] {
		p.report.Errorf("%s field occurs twice in '%s'", kw, p.opts.Path)
		if p.opts.Strict {
			return fmt.Errorf("%w: %s", ErrDuplicateField, kw)
		}
		return nil
	}

	value, err := p.expand(raw)
	if err != nil {
		return err
	}

	switch kw {
	case KeywordName:
		d.Name = value
	case KeywordDescription:
		d.Description = value
	case KeywordVersion:
		d.Version = value
	case KeywordURL:
		d.URL = value

	case KeywordRequires, KeywordRequiresPrivate, KeywordConflicts:
		entries, err := requirement.Parse(value, requirement.Options{
			Strict:   p.opts.Strict,
			Origin:   p.opts.Path,
			Owner:    d.Key,
			Reporter: p.report,
		})
		if err != nil {
			return err
		}
		switch kw {
		case KeywordRequires:
			d.Requires = entries
		case KeywordRequiresPrivate:
			d.RequiresPrivate = entries
		default:
			d.Conflicts = entries
		}

	case KeywordCflags, KeywordLibs, KeywordLibsPrivate:
		parse := flag.ParseLibs
		if kw == KeywordCflags {
			parse = flag.ParseCflags
		}
		flags, err := parse(value)
		if err != nil {
			p.report.Errorf("Couldn't parse %s field into an argument vector: %v", kw, err)
			if p.opts.Strict {
				return fmt.Errorf("%w: %s: %v", ErrArgv, kw, err)
			}
			return nil
		}
		if kw == KeywordCflags {
			d.Cflags = flags
		} else {
			d.Libs = append(d.Libs, flags...)
		}
	}

	d.fields[kw] = true
	return nil
}

// expand substitutes variable references, reporting every unknown name.
func (p *parser) expand(raw string) (string, error) {
	lookups := append(append([]Lookup(nil), p.opts.Lookups...), MapLookup(p.desc.Vars))
	value, missing := Expand(raw, lookups...)
	for _, name := range missing {
		p.report.Errorf("Variable '%s' not defined in '%s'", name, p.opts.Path)
	}
	if len(missing) > 0 && p.opts.Strict {
		return "", fmt.Errorf("%w: %q", ErrUndefinedVariable, missing[0])
	}
	return value, nil
}

func isTagChar(c byte) bool {
	return c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '.'
}

func skipSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}
