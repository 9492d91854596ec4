// pkg/pkgconfig/variables.go
package pkgconfig

import (
	"fmt"
	"os"
	"strings"

	shlex "github.com/anmitsu/go-shlex"

	"github.com/arc-language/pkgflags/pkg/descriptor"
)

// Env gives access to environment variables. Lookup distinguishes an unset
// variable from one set to the empty string.
type Env interface {
	Lookup(name string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

func (OSEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapEnv is an Env backed by a map, handy for tests and embedding.
type MapEnv map[string]string

func (m MapEnv) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// EnvVarName returns the environment variable overriding variable name of
// package key: PKG_CONFIG_<KEY>_<NAME>, upper-cased, with every other byte
// than a letter or digit turned into '_'.
func EnvVarName(key, name string) string {
	return mangle("PKG_CONFIG_"+key+"_"+name, true)
}

// ConfigVarName returns the root configuration package variable overriding
// variable name of package key: "<key>.<name>" lower-cased and mangled
// like EnvVarName, so "gtk+-3.0" and "prefix" give "gtk__3_0_prefix". An
// empty key mangles name alone.
func ConfigVarName(key, name string) string {
	if key == "" {
		return mangle(name, false)
	}
	return mangle(key+"."+name, false)
}

func mangle(s string, upper bool) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			if upper {
				b[i] = c - 'a' + 'A'
			}
		case c >= 'A' && c <= 'Z':
			if !upper {
				b[i] = c - 'A' + 'a'
			}
		case c >= '0' && c <= '9':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

// Globals are variables that override every package's own definitions.
type Globals map[string]string

// Define adds a global. Defining the same name twice is an error.
func (g Globals) Define(name, value string) error {
	if _, ok := g[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateGlobal, name)
	}
	g[name] = value
	return nil
}

// Lookup implements descriptor.Lookup.
func (g Globals) Lookup(name string) (string, bool) {
	v, ok := g[name]
	return v, ok
}

// lookups returns the providers consulted before a package's own
// variables: globals, then PKG_CONFIG_<KEY>_<VAR>, then the root
// configuration package.
func (r *Resolver) lookups(key string) []descriptor.Lookup {
	return []descriptor.Lookup{
		func(name string) (string, bool) {
			v, ok := r.globals.Lookup(name)
			if ok {
				r.report.Debugf("Overriding variable '%s' from global list", name)
			}
			return v, ok
		},
		func(name string) (string, bool) {
			if key == "" {
				return "", false
			}
			v, ok := r.env.Lookup(EnvVarName(key, name))
			if ok {
				r.report.Debugf("Overriding variable '%s' with '%s' from environment", name, v)
			}
			return v, ok
		},
		func(name string) (string, bool) {
			if key == "" || r.config == nil {
				return "", false
			}
			v, ok := r.config.Vars[ConfigVarName(key, name)]
			if ok {
				r.report.Debugf("Overriding variable '%s' with '%s' from pkg-config package", name, v)
			}
			return v, ok
		},
	}
}

// Variable returns the value of name for p, honoring the same overrides
// as ${name} substitution. A value that starts with a quote is shell
// unquoted; if that fails the raw value is returned.
func (r *Resolver) Variable(p *Package, name string) (string, bool) {
	value, ok := "", false
	for _, lookup := range append(r.lookups(p.Key), descriptor.MapLookup(p.Vars)) {
		if value, ok = lookup(name); ok {
			break
		}
	}
	if !ok {
		return "", false
	}

	if !strings.HasPrefix(value, `"`) && !strings.HasPrefix(value, "'") {
		return value, true
	}

	words, err := shlex.Split(value, true)
	if err != nil {
		r.report.Debugf("Couldn't unquote value of \"%s\": %v", name, err)
		return value, true
	}
	return strings.Join(words, " "), true
}
