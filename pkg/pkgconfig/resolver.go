// pkg/pkgconfig/resolver.go
package pkgconfig

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arc-language/pkgflags/pkg/descriptor"
	"github.com/arc-language/pkgflags/pkg/diag"
	"github.com/arc-language/pkgflags/pkg/requirement"
	"github.com/arc-language/pkgflags/pkg/searchpath"
	"github.com/arc-language/pkgflags/pkg/version"
)

// Options configure a Resolver.
type Options struct {
	// Env supplies environment variables. Defaults to the process
	// environment.
	Env Env
	// Reporter receives diagnostics. Defaults to diag.Discard.
	Reporter diag.Reporter

	// PackageDir holds pkg-config.pc. When empty PKG_CONFIG_PACKAGE_PATH
	// is used; when that is unset too a virtual package is synthesized.
	PackageDir string
	// ConfigDefaults are variables given to the configuration package
	// when it does not define them itself.
	ConfigDefaults map[string]string
	// DefaultPath is the pc_path used when the configuration package has
	// none. Defaults to the host layout.
	DefaultPath string

	// Lenient reports malformed descriptors and keeps going instead of
	// failing.
	Lenient        bool
	DefinePrefix   bool
	PrefixVariable string

	IgnoreRequires        bool
	IgnoreRequiresPrivate bool
	IgnorePrivateLibs     bool

	// ShortErrors drops the search path hint from not-found messages.
	ShortErrors bool

	// At most one of these overrides the constraint of every root.
	ExactVersion   string
	AtLeastVersion string
	MaxVersion     string
}

// Resolver loads descriptors into a registry and links them into a
// verified requirement graph. A Resolver serves a single run and is not
// safe for concurrent use.
type Resolver struct {
	registry *Registry
	config   *Package
	globals  Globals
	env      Env
	settings Settings
	opts     Options
	report   diag.Reporter
	log      io.Writer
}

// New loads the configuration package, derives the run settings and
// defines the pc_sysrootdir and pc_top_builddir globals.
func New(opts Options) (*Resolver, error) {
	if opts.Env == nil {
		opts.Env = OSEnv{}
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.Discard
	}
	if opts.PrefixVariable == "" {
		opts.PrefixVariable = descriptor.DefaultPrefixVariable
	}
	if opts.DefaultPath == "" {
		opts.DefaultPath = searchpath.DefaultPath()
	}

	r := &Resolver{
		registry: NewRegistry(),
		globals:  make(Globals),
		env:      opts.Env,
		opts:     opts,
		report:   opts.Reporter,
	}

	dir := opts.PackageDir
	if dir == "" {
		dir, _ = opts.Env.Lookup(PackagePathEnv)
	}
	config, err := r.loadConfigPackage(dir)
	if err != nil {
		return nil, err
	}
	r.config = config
	r.registry.Add(config)

	r.settings = deriveSettings(r.env, config, r.report)
	sysroot := r.settings.Sysroot
	if sysroot == "" {
		sysroot = "/"
	}
	r.globals["pc_sysrootdir"] = sysroot
	r.globals["pc_top_builddir"] = r.settings.TopBuildDir
	return r, nil
}

// Settings returns the values derived from the environment and the
// configuration package.
func (r *Resolver) Settings() Settings { return r.settings }

// Config returns the root configuration package.
func (r *Resolver) Config() *Package { return r.config }

// Registry returns the packages loaded so far.
func (r *Resolver) Registry() *Registry { return r.registry }

// SetLog makes Resolve append one line per root to w.
func (r *Resolver) SetLog(w io.Writer) { r.log = w }

// DefineVariable adds a global override from "name=value" style input.
func (r *Resolver) DefineVariable(name, value string) error {
	r.report.Debugf("Adding '%s' to list of global variables", name)
	if err := r.globals.Define(name, value); err != nil {
		r.report.Errorf("Variable '%s' defined twice globally", name)
		return err
	}
	return nil
}

// Get returns the verified package called name, loading it and its
// requirements on first use. name may also be a path to a .pc file.
func (r *Resolver) Get(name string) (*Package, error) {
	return r.get(name, !r.opts.ShortErrors, r.settings.DisableUninstalled)
}

func (r *Resolver) get(name string, warn, ignoreUninstalled bool) (*Package, error) {
	if p, ok := r.registry.Lookup(name); ok {
		return p, nil
	}

	p, err := r.create(name, warn, ignoreUninstalled)
	if err != nil {
		return nil, err
	}
	if p.State != StateParsing {
		return p, nil
	}
	p.State = StateResolving

	var (
		private []string
		errs    []error
	)
	pull := func(entries []requirement.Entry, isPrivate bool) error {
		for _, e := range entries {
			if isPrivate {
				r.report.Debugf("Searching for '%s' private requirement '%s'", p.Key, e.Name)
			} else {
				r.report.Debugf("Searching for '%s' requirement '%s'", p.Key, e.Name)
			}

			dep, err := r.get(e.Name, warn, ignoreUninstalled)
			if err != nil {
				r.report.Errorf("Package '%s', required by '%s', not found", e.Name, p.Key)
				if IsFatal(err) {
					return err
				}
				errs = append(errs, err)
				continue
			}

			p.Constraints[dep.Key] = e
			if isPrivate {
				private = append(private, dep.Key)
			} else {
				p.Links = append(p.Links, dep.Key)
			}
		}
		return nil
	}

	if err := pull(p.Requires, false); err != nil {
		r.fail(p)
		return nil, err
	}
	if err := pull(p.RequiresPrivate, true); err != nil {
		r.fail(p)
		return nil, err
	}
	if len(errs) > 0 {
		r.fail(p)
		return nil, &Error{Op: "resolve", Package: p.Key, Err: errors.Join(errs...)}
	}
	p.PrivateLinks = append(private, p.Links...)

	if err := r.verify(p); err != nil {
		r.fail(p)
		return nil, &Error{Op: "verify", Package: p.Key, Err: err}
	}
	p.State = StateVerified
	return p, nil
}

// create locates and parses a descriptor and registers it, before any of
// its requirements are looked at.
func (r *Resolver) create(name string, warn, ignoreUninstalled bool) (*Package, error) {
	r.report.Debugf("Looking for package '%s'", name)

	var (
		location string
		key      string
		position int
	)
	if searchpath.IsDescriptorFile(name) {
		r.report.Debugf("Considering '%s' to be a filename rather than a package name", name)
		location, key = name, searchpath.KeyOf(name)
		if p, ok := r.registry.Lookup(key); ok {
			return p, nil
		}
	} else {
		if !ignoreUninstalled && !strings.HasSuffix(name, "-uninstalled") {
			p, err := r.get(name+"-uninstalled", false, true)
			if err == nil {
				r.report.Debugf("Preferring uninstalled version of package '%s'", name)
				return p, nil
			}
			if IsFatal(err) {
				return nil, err
			}
		}

		var ok bool
		location, position, ok = r.settings.Path.Locate(name)
		if !ok {
			if warn {
				r.report.Errorf("Package %s was not found in the pkg-config search path.\n"+
					"Perhaps you should add the directory containing `%s.pc'\n"+
					"to the PKG_CONFIG_PATH environment variable", name, name)
			}
			return nil, &Error{Op: "locate", Package: name, Err: ErrNotFound}
		}
		key = name
	}

	r.report.Debugf("Reading '%s' from file '%s'", name, location)
	d, err := descriptor.ParseFile(location, r.parseOptions(key))
	if err != nil {
		r.report.Debugf("Failed to parse '%s'", location)
		var pe *descriptor.ParseError
		if errors.As(err, &pe) {
			return nil, fatal("parse", key, err)
		}
		return nil, &Error{Op: "read", Package: key, Err: fmt.Errorf("%w: %w", ErrNotFound, err)}
	}

	p := newPackage(d, position)
	p.Uninstalled = strings.Contains(location, "uninstalled.pc")
	r.report.Debugf("Path position of '%s' is %d", p.Key, p.PathPosition)

	r.registry.Add(p)
	return p, nil
}

func (r *Resolver) parseOptions(key string) descriptor.Options {
	return descriptor.Options{
		Key:                   key,
		Strict:                !r.opts.Lenient,
		DefinePrefix:          r.opts.DefinePrefix,
		PrefixVariable:        r.opts.PrefixVariable,
		IgnoreRequires:        r.opts.IgnoreRequires,
		IgnoreRequiresPrivate: r.opts.IgnoreRequiresPrivate,
		IgnorePrivateLibs:     r.opts.IgnorePrivateLibs,
		Lookups:               r.lookups(key),
		Reporter:              r.report,
	}
}

// fail drops p from the registry. Links to it held by other packages
// become dangling.
func (r *Resolver) fail(p *Package) {
	if cur, ok := r.registry.Lookup(p.Key); ok && cur == p {
		r.registry.Remove(p.Key)
	}
	p.State = StateFailed
}

func (r *Resolver) verify(p *Package) error {
	if err := r.verifyRequiredFields(p); err != nil {
		return err
	}
	if err := r.verifyConstraints(p); err != nil {
		return err
	}
	if err := r.verifyConflicts(p); err != nil {
		return err
	}
	r.stripSystemDirs(p)
	return nil
}

func (r *Resolver) verifyRequiredFields(p *Package) error {
	for _, kw := range []descriptor.Keyword{
		descriptor.KeywordName,
		descriptor.KeywordVersion,
		descriptor.KeywordDescription,
	} {
		if !p.Has(kw) {
			r.report.Errorf("Package '%s' has no %s: field", p.Key, kw)
			return fmt.Errorf("%w: %s", ErrMissingField, kw)
		}
	}
	return nil
}

// verifyConstraints checks the version of every package p links to, public
// or private, against the entry that pulled it in.
func (r *Resolver) verifyConstraints(p *Package) error {
	for _, key := range p.PrivateLinks {
		dep, ok := r.registry.Lookup(key)
		if !ok {
			continue
		}
		e, ok := p.Constraints[key]
		if !ok || e.Matches(dep.Version) {
			continue
		}

		r.report.Errorf("Package '%s' requires '%s %s %s' but version of %s is %s",
			p.Key, dep.Key, e.Comparator, e.Version, dep.Key, dep.Version)
		if dep.URL != "" {
			r.report.Errorf("You may find new versions of %s at %s", dep.Name, dep.URL)
		}
		return &ConstraintError{
			Package:  p.Key,
			Required: dep.Key,
			Entry:    e,
			Actual:   dep.Version,
			URL:      dep.URL,
		}
	}
	return nil
}

// verifyConflicts matches p's Conflicts against everything reachable from
// p through public requirements, p included.
func (r *Resolver) verifyConflicts(p *Package) error {
	if len(p.Conflicts) == 0 {
		return nil
	}

	for _, q := range r.registry.Closure([]*Package{p}, false) {
		for _, c := range p.Conflicts {
			if c.Name != q.Key || !c.Matches(q.Version) {
				continue
			}

			wanted := c.Version
			if c.Comparator == version.OpAny || wanted == "" {
				wanted = "(any)"
			}
			r.report.Errorf("Version %s of %s creates a conflict.\n(%s %s %s conflicts with %s %s)",
				q.Version, q.Key, c.Name, c.Comparator, wanted, p.Key, p.Version)
			return &ConstraintError{
				Package:  p.Key,
				Required: q.Key,
				Entry:    c,
				Actual:   q.Version,
				URL:      q.URL,
				Conflict: true,
			}
		}
	}
	return nil
}

// stripSystemDirs drops p's own -I and -L flags that name default
// compiler directories.
func (r *Resolver) stripSystemDirs(p *Package) {
	sys := r.settings.System

	for _, f := range p.Cflags {
		if sys.IsSystemInclude(f) {
			r.report.Debugf("Package %s has %s in Cflags", p.Key, f.Arg)
		}
	}
	kept, removed := sys.StripCflags(p.Cflags)
	for _, f := range removed {
		r.report.Debugf("Removing %s from Cflags for %s", f.Arg, p.Key)
	}
	p.Cflags = kept

	for _, f := range p.Libs {
		if sys.IsSystemLibrary(f) {
			r.report.Debugf("Package %s has %s in Libs", p.Key, f.Arg)
		}
	}
	kept, removed = sys.StripLibs(p.Libs)
	for _, f := range removed {
		r.report.Debugf("Removing %s from Libs for %s", f.Arg, p.Key)
	}
	p.Libs = kept
}
