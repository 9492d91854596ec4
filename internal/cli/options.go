// internal/cli/options.go
package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/arc-language/pkgflags/pkg/flag"
)

// modes records the output options in the order they were given. Only one
// output mode is honored, with a few combinations allowed.
type modes struct {
	set    bool
	vercmp bool

	flags           flag.Category
	variable        string
	version         bool
	modversion      bool
	exists          bool
	printVariables  bool
	uninstalled     bool
	list            bool
	provides        bool
	requires        bool
	requiresPrivate bool
	validate        bool

	atLeast string
	exact   string
	max     string

	// warn receives "Ignoring incompatible output option" notices.
	warn func(format string, args ...any)
}

var flagOptions = map[string]flag.Category{
	"libs":              flag.LinkAny,
	"libs-only-l":       flag.LinkLib,
	"libs-only-other":   flag.LinkOther,
	"libs-only-L":       flag.LinkPath,
	"cflags":            flag.CompileAny,
	"cflags-only-I":     flag.IncludePath,
	"cflags-only-other": flag.CompileOther,
}

func (m *modes) compatible(opt string) bool {
	if _, ok := flagOptions[opt]; ok && m.flags != 0 {
		return true
	}
	if (m.requires && opt == "print-requires-private") || (m.requiresPrivate && opt == "print-requires") {
		return true
	}
	switch opt {
	case "atleast-version", "exact-version", "max-version":
		return m.exists && !m.vercmp
	}
	return false
}

func (m *modes) apply(opt, arg string) {
	if m.set && !m.compatible(opt) {
		if m.warn != nil {
			m.warn("Ignoring incompatible output option \"--%s\"", opt)
		}
		return
	}

	if cat, ok := flagOptions[opt]; ok {
		m.flags |= cat
		m.set = true
		return
	}

	switch opt {
	case "version":
		m.version = true
	case "modversion":
		m.modversion = true
	case "variable":
		m.variable = arg
	case "exists":
		m.exists = true
	case "print-variables":
		m.printVariables = true
	case "uninstalled":
		m.uninstalled = true
	case "atleast-version":
		m.atLeast, m.exists, m.vercmp = arg, true, true
	case "exact-version":
		m.exact, m.exists, m.vercmp = arg, true, true
	case "max-version":
		m.max, m.exists, m.vercmp = arg, true, true
	case "list-all":
		m.list = true
	case "print-provides":
		m.provides = true
	case "print-requires":
		m.requires = true
	case "print-requires-private":
		m.requiresPrivate = true
	case "validate":
		m.validate = true
	default:
		return
	}
	m.set = true
}

// outputValue feeds an output option into modes as soon as pflag sees it,
// so the order of options on the command line is kept.
type outputValue struct {
	name     string
	takesArg bool
	m        *modes
}

func (v *outputValue) String() string { return "" }

func (v *outputValue) Set(s string) error {
	v.m.apply(v.name, s)
	return nil
}

func (v *outputValue) Type() string {
	if v.takesArg {
		return "string"
	}
	return "bool"
}

func (v *outputValue) IsBoolFlag() bool { return !v.takesArg }

// addOutputFlag registers an output option. Options without an argName
// accept a bare --name; the usage text names the argument in backquotes.
func addOutputFlag(fs *pflag.FlagSet, m *modes, name, argName, usage string) {
	v := &outputValue{name: name, takesArg: argName != "", m: m}
	f := fs.VarPF(v, name, "", usage)
	if argName == "" {
		f.NoOptDefVal = "true"
	}
}

// defines collects --define-variable arguments in order.
type defines []string

func (d *defines) String() string { return strings.Join(*d, ",") }

func (d *defines) Set(s string) error {
	*d = append(*d, s)
	return nil
}

func (d *defines) Type() string { return "NAME=VALUE" }

// splitDefine separates "name=value". Blanks around the name and any run
// of blanks and '=' before the value are dropped.
func splitDefine(arg string) (name, value string) {
	s := strings.TrimLeft(arg, " \t\n\r\f\v")
	end := strings.IndexAny(s, " \t\n\r\f\v=")
	if end < 0 {
		return s, ""
	}
	name = s[:end]
	value = strings.TrimLeft(s[end:], " \t\n\r\f\v=")
	return name, value
}

// prefixToggle backs --define-prefix and --dont-define-prefix; the last
// one given wins.
type prefixToggle struct {
	value   bool
	changed bool
}

type prefixValue struct {
	t  *prefixToggle
	on bool
}

func (v *prefixValue) String() string { return "" }

func (v *prefixValue) Set(string) error {
	v.t.value, v.t.changed = v.on, true
	return nil
}

func (v *prefixValue) Type() string     { return "bool" }
func (v *prefixValue) IsBoolFlag() bool { return true }

func addPrefixFlags(fs *pflag.FlagSet, t *prefixToggle) {
	for _, opt := range []struct {
		name  string
		on    bool
		usage string
	}{
		{"define-prefix", true, "try to override the value of prefix for each .pc file found with a guesstimated value based on the location of the .pc file"},
		{"dont-define-prefix", false, "don't try to override the value of prefix for each .pc file found with a guesstimated value based on the location of the .pc file"},
	} {
		f := fs.VarPF(&prefixValue{t: t, on: opt.on}, opt.name, "", opt.usage)
		f.NoOptDefVal = "true"
	}
}
