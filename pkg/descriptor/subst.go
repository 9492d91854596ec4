// pkg/descriptor/subst.go
package descriptor

import "strings"

// Lookup resolves a variable name. ok is false when the name is unknown.
type Lookup func(name string) (value string, ok bool)

// MapLookup looks names up in m.
func MapLookup(m map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// Expand trims s and replaces every ${name} reference with the first
// value found by lookups. "$$" yields a single '$', as does a '$' at the
// very end; '$' before any other byte is copied through unchanged. An
// unterminated "${name" takes the rest of the string as the name.
//
// Unresolved names are returned in missing and left in the output bare,
// without the "${}" around them.
func Expand(s string, lookups ...Lookup) (expanded string, missing []string) {
	s = trim(s)

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}

		if i+1 == len(s) {
			b.WriteByte('$')
			break
		}

		i++
		switch s[i] {
		case '$':
			b.WriteByte('$')

		case '{':
			start := i + 1
			end := strings.IndexByte(s[start:], '}')
			if end < 0 {
				end = len(s)
			} else {
				end += start
			}
			name := s[start:end]
			i = end

			if v, ok := resolve(name, lookups); ok {
				b.WriteString(v)
			} else {
				missing = append(missing, name)
				b.WriteString(name)
			}

		default:
			b.WriteByte('$')
			b.WriteByte(s[i])
		}
	}
	return b.String(), missing
}

func resolve(name string, lookups []Lookup) (string, bool) {
	for _, lookup := range lookups {
		if lookup == nil {
			continue
		}
		if v, ok := lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func trim(s string) string {
	i, j := 0, len(s)
	for i < j && isSpace(s[i]) {
		i++
	}
	for j > i && isSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}
