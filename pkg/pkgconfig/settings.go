// pkg/pkgconfig/settings.go
package pkgconfig

import (
	"github.com/arc-language/pkgflags/pkg/diag"
	"github.com/arc-language/pkgflags/pkg/flag"
	"github.com/arc-language/pkgflags/pkg/searchpath"
)

// Settings are the run-wide values taken from the environment, falling
// back to variables of the root configuration package.
type Settings struct {
	Path               *searchpath.Path
	Sysroot            string // empty means no rewriting
	TopBuildDir        string
	DisableUninstalled bool
	System             flag.SystemDirs
	LogPath            string
	Debug              bool
}

var includeEnvVars = []string{"CPATH", "C_INCLUDE_PATH", "CPP_INCLUDE_PATH"}

// deriveSettings reads the environment first and the configuration
// package second for every setting.
func deriveSettings(env Env, config *Package, report diag.Reporter) Settings {
	s := Settings{Path: searchpath.New()}

	get := func(envName, varName string) (string, bool) {
		if v, ok := env.Lookup(envName); ok {
			return v, true
		}
		return config.Var(varName)
	}
	toggle := func(envName, varName string) bool {
		if _, ok := env.Lookup(envName); ok {
			return true
		}
		return varBool(config, varName)
	}

	if v, ok := env.Lookup("PKG_CONFIG_PATH"); ok {
		report.Debugf("Adding directories from PKG_CONFIG_PATH")
		s.Path.Add(v)
	}
	if v, ok := env.Lookup("PKG_CONFIG_LIBDIR"); ok {
		report.Debugf("Adding directories from PKG_CONFIG_LIBDIR")
		s.Path.Add(v)
	} else if v, ok := config.Var("pc_path"); ok {
		report.Debugf("Adding directories from pkg-config package")
		s.Path.Add(v)
	}

	s.Sysroot, _ = get("PKG_CONFIG_SYSROOT_DIR", "sysrootdir")
	if v, ok := get("PKG_CONFIG_TOP_BUILD_DIR", "topbuilddir"); ok {
		s.TopBuildDir = v
	} else {
		s.TopBuildDir = "$(top_builddir)"
	}

	if toggle("PKG_CONFIG_DISABLE_UNINSTALLED", "disable_uninstalled") {
		report.Debugf("disabling auto-preference for uninstalled packages")
		s.DisableUninstalled = true
	}
	s.System.AllowInclude = toggle("PKG_CONFIG_ALLOW_SYSTEM_CFLAGS", "allow_system_cflags")
	s.System.AllowLibrary = toggle("PKG_CONFIG_ALLOW_SYSTEM_LIBS", "allow_system_libs")

	includes, ok := get("PKG_CONFIG_SYSTEM_INCLUDE_PATH", "system_include_path")
	if !ok {
		includes = "/usr/include"
	}
	s.System.Include = splitDirs(includes)
	for _, name := range includeEnvVars {
		if v, ok := get(name, ConfigVarName("", name)); ok {
			s.System.Include = append(s.System.Include, splitDirs(v)...)
		}
	}

	libraries, ok := get("PKG_CONFIG_SYSTEM_LIBRARY_PATH", "system_library_path")
	if !ok {
		libraries = "/usr/lib:/lib"
	}
	s.System.Library = splitDirs(libraries)

	s.LogPath, _ = get("PKG_CONFIG_LOG", "log")
	s.Debug = toggle("PKG_CONFIG_DEBUG_SPEW", "debug")
	return s
}

func splitDirs(list string) []string {
	p := searchpath.New()
	p.Add(list)
	return p.Dirs()
}
