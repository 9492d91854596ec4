// pkg/flag/render.go
package flag

import "strings"

// RenderArgs returns the argument strings of flags. When sysroot is set,
// include and library paths are moved under it.
func RenderArgs(flags []Flag, sysroot string) []string {
	args := make([]string, 0, len(flags))
	for _, f := range flags {
		args = append(args, renderOne(f, sysroot))
	}
	return args
}

// Render joins RenderArgs with single blanks.
func Render(flags []Flag, sysroot string) string {
	return strings.Join(RenderArgs(flags, sysroot), " ")
}

func renderOne(f Flag, sysroot string) string {
	if sysroot == "" || f.Category&(IncludePath|LinkPath) == 0 {
		return f.Arg
	}

	arg := f.Arg
	switch {
	case strings.HasPrefix(arg, "-I"), strings.HasPrefix(arg, "-L"):
		opt, rest := arg[:2], arg[2:]
		if strings.HasPrefix(rest, " ") {
			return opt + " " + sysroot + rest[1:]
		}
		return opt + sysroot + rest

	case f.Category == IncludePath:
		// -isystem /path, -idirafter /path
		sp := strings.IndexByte(arg, ' ')
		if sp < 0 || sp+1 >= len(arg) {
			return arg
		}
		return arg[:sp+1] + sysroot + arg[sp+1:]
	}
	return arg
}
