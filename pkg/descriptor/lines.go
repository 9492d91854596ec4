// pkg/descriptor/lines.go
package descriptor

// ScanLogicalLines is a bufio.SplitFunc returning one logical line of a
// descriptor per token.
//
// A line ends at an unquoted '\n'; a '\r' right after it belongs to the
// same terminator. A backslash quotes the next byte: "\#" is a literal
// '#', a quoted line break joins the next physical line, any other quoted
// byte is kept together with its backslash. Everything from an unquoted
// '#' up to the line end is dropped, and backslashes inside a comment quote
// nothing.
func ScanLogicalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if len(data) == 0 {
		return 0, nil, nil
	}

	line := make([]byte, 0, 64)
	quoted := false
	comment := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if quoted {
			quoted = false
			switch c {
			case '#':
				line = append(line, '#')
			case '\r', '\n':
				if i+1 == len(data) && !atEOF {
					return 0, nil, nil
				}
				if i+1 < len(data) && isLineBreakPair(c, data[i+1]) {
					i++
				}
			default:
				line = append(line, '\\', c)
			}
			continue
		}

		switch c {
		case '#':
			comment = true
		case '\\':
			if !comment {
				quoted = true
			}
		case '\n':
			if i+1 == len(data) && !atEOF {
				return 0, nil, nil
			}
			if i+1 < len(data) && data[i+1] == '\r' {
				i++
			}
			return i + 1, line, nil
		default:
			if !comment {
				line = append(line, c)
			}
		}
	}

	if !atEOF {
		return 0, nil, nil
	}
	if quoted {
		line = append(line, '\\')
	}
	return len(data), line, nil
}

func isLineBreakPair(c, next byte) bool {
	return (c == '\r' && next == '\n') || (c == '\n' && next == '\r')
}
