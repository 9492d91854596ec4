// pkg/version/comparator.go
package version

// Comparator is the relational operator of a version constraint.
type Comparator int

const (
	OpUnknown Comparator = iota
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpEqual
	OpNotEqual
	OpAny
)

// ParseComparator classifies an operator token. An empty token matches
// any version; anything unrecognized yields OpUnknown.
func ParseComparator(token string) Comparator {
	switch token {
	case "":
		return OpAny
	case "=":
		return OpEqual
	case ">":
		return OpGreater
	case ">=":
		return OpGreaterEqual
	case "<":
		return OpLess
	case "<=":
		return OpLessEqual
	case "!=":
		return OpNotEqual
	}
	return OpUnknown
}

func (c Comparator) String() string {
	switch c {
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEqual:
		return "<="
	case OpGreaterEqual:
		return ">="
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpAny:
		return "(any)"
	}
	return "(unknown)"
}

// Match reports whether actual satisfies "actual <op> wanted".
// OpUnknown never matches.
func (c Comparator) Match(actual, wanted string) bool {
	switch c {
	case OpAny:
		return true
	case OpUnknown:
		return false
	}

	cmp := Compare(actual, wanted)
	switch c {
	case OpLess:
		return cmp < Equal
	case OpGreater:
		return cmp > Equal
	case OpLessEqual:
		return cmp <= Equal
	case OpGreaterEqual:
		return cmp >= Equal
	case OpEqual:
		return cmp == Equal
	case OpNotEqual:
		return cmp != Equal
	}
	return false
}
