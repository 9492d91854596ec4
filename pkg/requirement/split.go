// pkg/requirement/split.go
package requirement

type splitState int

const (
	outsideModule splitState = iota
	inModuleName
	beforeOperator
	inOperator
	afterOperator
	inModuleVersion
)

// Split cuts a module list into one raw token per module. Commas are
// treated like whitespace, so "a, b c >= 1" yields "a", ", b" and
// " c >= 1". Tokens keep their leading separators; Parse strips them.
func Split(s string) []string {
	var modules []string

	start := 0
	state := outsideModule
	for end := 0; end < len(s); end++ {
		last := state
		c := s[end]

		switch state {
		case outsideModule:
			if !isSeparator(c) {
				state = inModuleName
			}

		case inModuleName:
			if isSpace(c) {
				// Look past the blanks: an operator keeps the module open.
				next := skipSpace(s, end+1)
				if next < len(s) && isOperator(s[next]) {
					state = beforeOperator
				} else {
					state = outsideModule
				}
			} else if isSeparator(c) {
				state = outsideModule
			}

		case beforeOperator:
			if isOperator(c) {
				state = inOperator
			}

		case inOperator:
			if !isOperator(c) {
				state = afterOperator
			}

		case afterOperator:
			if !isSpace(c) {
				state = inModuleVersion
			}

		case inModuleVersion:
			if isSeparator(c) {
				state = outsideModule
			}
		}

		if state != outsideModule || last == outsideModule {
			continue
		}

		modules = append(modules, s[start:end])
		start = end
	}

	if start != len(s) {
		modules = append(modules, s[start:])
	}
	return modules
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isSeparator(c byte) bool {
	return c == ',' || isSpace(c)
}

func isOperator(c byte) bool {
	return c == '<' || c == '>' || c == '!' || c == '='
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func skipSeparators(s string, i int) int {
	for i < len(s) && isSeparator(s[i]) {
		i++
	}
	return i
}

func skipNonSpace(s string, i int) int {
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	return i
}

func skipNonSeparator(s string, i int) int {
	for i < len(s) && !isSeparator(s[i]) {
		i++
	}
	return i
}

// skipComparator ends an operator run. A token that does not start with an
// operator character runs to the next blank so it can be reported whole.
func skipComparator(s string, i int) int {
	if i < len(s) && isOperator(s[i]) {
		for i < len(s) && isOperator(s[i]) {
			i++
		}
		return i
	}
	return skipNonSpace(s, i)
}
