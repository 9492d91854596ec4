// pkg/version/compare.go
package version

// Ordering is the result of comparing two version strings.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	}
	return "invalid"
}

// Compare orders two version strings segment by segment.
//
// Runs of non-alphanumeric characters separate segments and are skipped.
// A segment starting with a digit is numeric and a segment starting with a
// letter is alphabetic. Numeric segments compare by length after leading
// zeros are dropped, then byte-wise; alphabetic segments compare byte-wise.
// A numeric segment is newer than an alphabetic or missing one. When every
// segment matched, the side with characters left over is newer.
func Compare(a, b string) Ordering {
	if a == b {
		return Equal
	}

	one, two := 0, 0
	for one < len(a) && two < len(b) {
		for one < len(a) && !isAlnum(a[one]) {
			one++
		}
		for two < len(b) && !isAlnum(b[two]) {
			two++
		}
		if one == len(a) || two == len(b) {
			break
		}

		end1, end2 := one, two
		numeric := isDigit(a[one])
		if numeric {
			for end1 < len(a) && isDigit(a[end1]) {
				end1++
			}
			for end2 < len(b) && isDigit(b[end2]) {
				end2++
			}
		} else {
			for end1 < len(a) && isAlpha(a[end1]) {
				end1++
			}
			for end2 < len(b) && isAlpha(b[end2]) {
				end2++
			}
		}

		if one == end1 {
			return Less
		}
		if two == end2 {
			if numeric {
				return Greater
			}
			return Less
		}

		seg1, seg2 := a[one:end1], b[two:end2]
		if numeric {
			seg1 = trimZeros(seg1)
			seg2 = trimZeros(seg2)
			if len(seg1) > len(seg2) {
				return Greater
			}
			if len(seg2) > len(seg1) {
				return Less
			}
		}
		if seg1 < seg2 {
			return Less
		}
		if seg1 > seg2 {
			return Greater
		}

		one, two = end1, end2
	}

	if one == len(a) {
		if two == len(b) {
			return Equal
		}
		return Less
	}
	return Greater
}

func trimZeros(s string) string {
	i := 0
	for i < len(s) && s[i] == '0' {
		i++
	}
	return s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isDigit(c) || isAlpha(c)
}
