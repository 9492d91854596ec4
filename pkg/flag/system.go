// pkg/flag/system.go
package flag

import "strings"

// SystemDirs lists the directories a compiler searches on its own. Flags
// naming them are redundant and, under a sysroot, harmful.
type SystemDirs struct {
	Include []string
	Library []string

	// AllowInclude keeps -I flags for system include directories.
	AllowInclude bool
	// AllowLibrary keeps -L flags for system library directories.
	AllowLibrary bool
}

// DefaultSystemDirs is used when neither the environment nor the
// configuration says otherwise.
var DefaultSystemDirs = SystemDirs{
	Include: []string{"/usr/include"},
	Library: []string{"/usr/lib", "/lib"},
}

// IsSystemInclude reports whether f is an -I flag for a system include dir.
func (d SystemDirs) IsSystemInclude(f Flag) bool {
	if f.Category != IncludePath {
		return false
	}
	return matchDir(f.Arg, "-I", d.Include)
}

// IsSystemLibrary reports whether f is an -L flag for a system library dir.
func (d SystemDirs) IsSystemLibrary(f Flag) bool {
	if f.Category != LinkPath {
		return false
	}
	return matchDir(f.Arg, "-L", d.Library)
}

// StripCflags removes system include flags unless they are allowed. The
// removed flags are returned so callers can log them.
func (d SystemDirs) StripCflags(flags []Flag) (kept, removed []Flag) {
	if d.AllowInclude {
		return flags, nil
	}
	return partition(flags, d.IsSystemInclude)
}

// StripLibs removes system library flags unless they are allowed.
func (d SystemDirs) StripLibs(flags []Flag) (kept, removed []Flag) {
	if d.AllowLibrary {
		return flags, nil
	}
	return partition(flags, d.IsSystemLibrary)
}

func partition(flags []Flag, drop func(Flag) bool) (kept, removed []Flag) {
	for _, f := range flags {
		if drop(f) {
			removed = append(removed, f)
			continue
		}
		kept = append(kept, f)
	}
	return kept, removed
}

// matchDir accepts "-I/usr/include" and "-I /usr/include". Only one blank
// is skipped after the option.
func matchDir(arg, opt string, dirs []string) bool {
	if !strings.HasPrefix(arg, opt) {
		return false
	}
	rest := arg[len(opt):]
	if strings.HasPrefix(rest, " ") {
		rest = rest[1:]
	}
	for _, dir := range dirs {
		if dir != "" && rest == dir {
			return true
		}
	}
	return false
}
