// pkg/pkgconfig/configpkg.go
package pkgconfig

import (
	"errors"
	"path/filepath"

	"github.com/arc-language/pkgflags/pkg/descriptor"
	"github.com/arc-language/pkgflags/pkg/searchpath"
	"github.com/arc-language/pkgflags/pkg/version"
)

const (
	// ConfigPackageName is the key of the root configuration package.
	ConfigPackageName = "pkg-config"

	// CompatVersion is the pkg-config release whose behavior is
	// reproduced. It is reported by --version and must match the Version
	// of an on-disk configuration package.
	CompatVersion = "0.29.2"

	// PackagePathEnv names the directory holding pkg-config.pc.
	PackagePathEnv = "PKG_CONFIG_PACKAGE_PATH"

	configDescription = "System package that allow querying of the compiler and linker flags"
	configURL         = "http://pkg-config.freedesktop.org"
)

// loadConfigPackage reads pkg-config.pc from dir, falling back to a
// virtual package when there is no usable file. Only a fatal parse error
// is returned.
func (r *Resolver) loadConfigPackage(dir string) (*Package, error) {
	if dir != "" {
		p, err := r.readConfigPackage(filepath.Join(dir, ConfigPackageName+searchpath.Extension))
		if err != nil {
			return nil, err
		}
		if p != nil {
			r.completeConfigPackage(p)
			return p, nil
		}
	}

	r.report.Debugf("Creating virtual pkg-config package")
	d := descriptor.New(ConfigPackageName, "", "")
	d.Name = ConfigPackageName
	d.Version = CompatVersion
	d.Description = configDescription
	d.URL = configURL
	for _, kw := range []descriptor.Keyword{
		descriptor.KeywordName,
		descriptor.KeywordVersion,
		descriptor.KeywordDescription,
		descriptor.KeywordURL,
	} {
		d.Set(kw)
	}

	p := newPackage(d, 0)
	p.Virtual = true
	p.State = StateVerified
	r.completeConfigPackage(p)
	return p, nil
}

func (r *Resolver) readConfigPackage(path string) (*Package, error) {
	r.report.Debugf("Reading pkg-config package: '%s'", path)
	if !searchpath.IsDescriptorFile(path) {
		return nil, nil
	}

	d, err := descriptor.ParseFile(path, descriptor.Options{
		Key:                   ConfigPackageName,
		Strict:                !r.opts.Lenient,
		DefinePrefix:          r.opts.DefinePrefix,
		PrefixVariable:        r.opts.PrefixVariable,
		IgnoreRequires:        true,
		IgnoreRequiresPrivate: true,
		IgnorePrivateLibs:     true,
		Lookups:               r.lookups(ConfigPackageName),
		Reporter:              r.report,
	})
	if err != nil {
		r.report.Debugf("Failed to parse '%s'", path)
		var pe *descriptor.ParseError
		if errors.As(err, &pe) {
			return nil, fatal("load", ConfigPackageName, err)
		}
		return nil, nil
	}

	p := newPackage(d, 0)
	if err := r.verifyRequiredFields(p); err != nil {
		return nil, nil
	}
	if !version.OpEqual.Match(d.Version, CompatVersion) {
		r.report.Errorf("Package version ('%s') does not match with pkg-config version ('%s')",
			d.Version, CompatVersion)
		return nil, nil
	}
	p.State = StateVerified
	return p, nil
}

// completeConfigPackage fills in the variables the rest of the run relies
// on: configured defaults the file does not set, and pc_path.
func (r *Resolver) completeConfigPackage(p *Package) {
	for name, value := range r.opts.ConfigDefaults {
		if _, ok := p.Vars[name]; !ok {
			p.Vars[name] = value
		}
	}

	if _, ok := p.Var("pc_path"); !ok {
		if !p.Virtual {
			r.report.Errorf("Package does not containt 'pc_path' variable.")
		}
		p.Vars["pc_path"] = r.opts.DefaultPath
	}

	if varBool(p, "debug") {
		r.report.Debugf("'debug' variable enabling debug spew")
	}
}

// varBool reads a boolean variable: "1" and "true" are true.
func varBool(p *Package, name string) bool {
	v, ok := p.Var(name)
	return ok && (v == "1" || v == "true")
}
