// pkg/flag/parse.go
package flag

import (
	"fmt"
	"strings"

	shlex "github.com/anmitsu/go-shlex"
)

// SplitArgs breaks a field value into shell words. An empty value has no
// words.
func SplitArgs(value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	words, err := shlex.Split(value, true)
	if err != nil {
		return nil, fmt.Errorf("splitting %q: %w", value, err)
	}
	return words, nil
}

// ParseCflags classifies the words of a Cflags field. -I arguments are
// normalized to the joined form; -isystem and -idirafter are joined with
// their path and count as include paths.
func ParseCflags(value string) ([]Flag, error) {
	argv, err := SplitArgs(value)
	if err != nil {
		return nil, err
	}

	var flags []Flag
	for i := 0; i < len(argv); i++ {
		arg := EscapeShell(trimSpace(argv[i]))

		switch {
		case strings.HasPrefix(arg, "-I"):
			flags = append(flags, Flag{IncludePath, "-I" + trimLeftSpace(arg[2:])})

		case (arg == "-idirafter" || arg == "-isystem") && i+1 < len(argv):
			i++
			path := EscapeShell(trimSpace(argv[i]))
			flags = append(flags, Flag{IncludePath, arg + " " + path})

		case arg != "":
			flags = append(flags, Flag{CompileOther, arg})
		}
	}
	return flags, nil
}

// ParseLibs classifies the words of a Libs or Libs.private field. -l and -L
// are normalized to the joined form, "-framework Foo" stays one argument.
func ParseLibs(value string) ([]Flag, error) {
	argv, err := SplitArgs(value)
	if err != nil {
		return nil, err
	}

	var flags []Flag
	for i := 0; i < len(argv); i++ {
		arg := EscapeShell(trimSpace(argv[i]))

		switch {
		// -lib: belongs to the C# compiler, it is not a library.
		case strings.HasPrefix(arg, "-l") && !strings.HasPrefix(arg, "-lib:"):
			flags = append(flags, Flag{LinkLib, "-l" + trimLeftSpace(arg[2:])})

		case strings.HasPrefix(arg, "-L"):
			flags = append(flags, Flag{LinkPath, "-L" + trimLeftSpace(arg[2:])})

		case (arg == "-framework" || arg == "-Wl,-framework") && i+1 < len(argv):
			i++
			name := EscapeShell(trimSpace(argv[i]))
			flags = append(flags, Flag{LinkOther, arg + " " + name})

		case arg != "":
			flags = append(flags, Flag{LinkOther, arg})
		}
	}
	return flags, nil
}

// EscapeShell backslash-escapes every byte that a POSIX shell would treat
// specially, so the argument survives being pasted into a command line.
func EscapeShell(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if needsEscape(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func needsEscape(c byte) bool {
	return c < '$' ||
		(c > '$' && c < '(') ||
		(c > ')' && c < '+') ||
		(c > ':' && c < '=') ||
		(c > '=' && c < '@') ||
		(c > 'Z' && c < '^') ||
		c == '`' ||
		(c > 'z' && c < '~') ||
		c > '~'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func trimLeftSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

func trimSpace(s string) string {
	s = trimLeftSpace(s)
	j := len(s)
	for j > 0 && isSpace(s[j-1]) {
		j--
	}
	return s[:j]
}
