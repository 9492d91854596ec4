// pkg/descriptor/prefix.go
package descriptor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/pkgflags/pkg/flag"
)

// relocatedPrefix derives an install prefix from the directory holding a
// descriptor: <prefix>/lib/pkgconfig yields <prefix>. ok is false when
// dir is not named pkgconfig.
func relocatedPrefix(dir string) (prefix string, ok bool) {
	if !strings.EqualFold(filepath.Base(dir), "pkgconfig") {
		return "", false
	}
	prefix = filepath.Dir(filepath.Dir(dir))
	// Backslashes would be eaten when ${prefix} ends up in an argument
	// vector.
	prefix = strings.ReplaceAll(prefix, `\`, "/")
	return flag.EscapeShell(prefix), true
}

// rebase rewrites a raw value that starts with the original prefix so it
// starts with the relocated one instead.
func rebase(raw, orig, relocated string) (string, bool) {
	if orig == "" || !strings.HasPrefix(raw, orig) || len(raw) == len(orig) {
		return raw, false
	}
	if c := raw[len(orig)]; c != '/' && !os.IsPathSeparator(c) {
		return raw, false
	}
	return relocated + raw[len(orig):], true
}
