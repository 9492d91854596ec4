// internal/cli/run.go
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/arc-language/pkgflags/internal/config"
	"github.com/arc-language/pkgflags/pkg/flag"
	"github.com/arc-language/pkgflags/pkg/pkgconfig"
	"github.com/arc-language/pkgflags/pkg/version"
)

func (a *app) run(args []string) int {
	cfg, used, err := config.Load(a.cfgFile)
	if err != nil {
		a.sink.Warnf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	m := &a.modes
	a.applyErrorMode()
	if a.debug || cfg.Debug {
		a.sink.EnableDebug()
	}
	if used != "" {
		a.sink.Debugf("Using config file %s", used)
	}
	if !m.set {
		a.sink.Debugf("no output option set, defaulting to --exists")
		m.exists = true
	}

	r, err := pkgconfig.New(a.resolverOptions(cfg))
	if err != nil {
		return 1
	}
	if r.Settings().Debug {
		a.sink.EnableDebug()
	}

	for _, d := range a.defines {
		name, value := splitDefine(d)
		if value == "" {
			a.sink.Printf("--define-variable argument does not have a value for the variable")
			return 1
		}
		if err := r.DefineVariable(name, value); err != nil {
			return 1
		}
	}

	if m.version {
		fmt.Fprintln(a.stdout, Version)
		return 0
	}

	if a.atLeastSelf != "" {
		if version.Compare(Version, a.atLeastSelf) != version.Less {
			return 0
		}
		return 1
	}

	if m.list {
		if err := r.LoadAll(); err != nil {
			return 1
		}
		for _, line := range r.List() {
			fmt.Fprintln(a.stdout, line)
		}
		return 0
	}

	if path := r.Settings().LogPath; path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			a.sink.Printf("Cannot open log file: %s", path)
			return 1
		}
		defer f.Close()
		r.SetLog(f)
	}

	set, err := r.Resolve(strings.TrimSpace(strings.Join(args, " ")))
	if err != nil {
		if errors.Is(err, pkgconfig.ErrNoPackages) {
			a.sink.Printf("Must specify package names on the command line")
		}
		return 1
	}

	return a.print(set)
}

// applyErrorMode decides whether resolution errors are shown. Queries
// that only answer through the exit status stay quiet unless asked.
func (a *app) applyErrorMode() {
	m := &a.modes
	exists := m.exists || !m.set
	switch {
	case exists || m.list:
		a.sink.SetErrors(a.printErrors)
	default:
		a.sink.SetErrors(!a.silenceErrors || a.debug)
	}
	if a.errorsToStdout {
		a.sink.SetOutput(a.stdout)
	}
}

func (a *app) resolverOptions(cfg *config.Config) pkgconfig.Options {
	m := &a.modes

	definePrefix := cfg.DefinePrefix
	if a.prefix.changed {
		definePrefix = a.prefix.value
	}
	prefixVariable := cfg.PrefixVariable
	if a.prefixVariable != "" {
		prefixVariable = a.prefixVariable
	}

	// Requires.private matters for cflags, for static linking and for
	// the queries that report it.
	needPrivate := m.flags&flag.CompileAny != 0 ||
		m.requiresPrivate ||
		m.exists ||
		(a.static && m.flags&flag.LinkAny != 0)

	return pkgconfig.Options{
		Env:                   pkgconfig.OSEnv{},
		Reporter:              a.sink,
		PackageDir:            cfg.PackagePath,
		ConfigDefaults:        cfg.Variables,
		Lenient:               m.list,
		DefinePrefix:          definePrefix,
		PrefixVariable:        prefixVariable,
		IgnoreRequires:        m.flags == 0 && !m.requires && !m.exists,
		IgnoreRequiresPrivate: !needPrivate,
		IgnorePrivateLibs:     !a.static,
		ShortErrors:           a.shortErrors || cfg.ShortErrors,
		ExactVersion:          m.exact,
		AtLeastVersion:        m.atLeast,
		MaxVersion:            m.max,
	}
}

// print writes the answer for the selected output mode.
func (a *app) print(set *pkgconfig.Set) int {
	m := &a.modes

	if m.exists || m.validate {
		return 0
	}

	if m.printVariables {
		for i, names := range set.VariableNames() {
			if i > 0 {
				fmt.Fprintln(a.stdout)
			}
			for _, name := range names {
				fmt.Fprintln(a.stdout, name)
			}
		}
	}

	if m.uninstalled {
		if set.AnyUninstalled() {
			return 0
		}
		return 1
	}

	if m.modversion {
		for _, v := range set.ModVersions() {
			fmt.Fprintln(a.stdout, v)
		}
	}
	if m.provides {
		for _, line := range set.Provides() {
			fmt.Fprintln(a.stdout, line)
		}
	}
	if m.requires {
		for _, line := range set.Requires() {
			fmt.Fprintln(a.stdout, line)
		}
	}
	if m.requiresPrivate {
		for _, line := range set.RequiresPrivate() {
			fmt.Fprintln(a.stdout, line)
		}
	}

	newline := false
	if m.variable != "" {
		fmt.Fprint(a.stdout, set.Variable(m.variable))
		newline = true
	}
	if m.flags != 0 {
		fmt.Fprint(a.stdout, set.Flags(m.flags))
		newline = true
	}
	if newline {
		fmt.Fprintln(a.stdout)
	}
	return 0
}
