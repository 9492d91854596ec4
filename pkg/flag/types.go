// pkg/flag/types.go
package flag

import "strings"

// Category classifies a compiler or linker argument. Values are bits so
// a set of categories can be selected with a single mask.
type Category uint8

const (
	LinkLib      Category = 1 << iota // -lfoo
	LinkPath                          // -L/path
	LinkOther                         // -pthread, -framework Foo, ...
	IncludePath                       // -I/path, -isystem /path, -idirafter /path
	CompileOther                      // -DFOO, ...
)

const (
	LinkAny    = LinkLib | LinkPath | LinkOther
	CompileAny = IncludePath | CompileOther
	All        = LinkAny | CompileAny
)

func (c Category) String() string {
	var parts []string
	for _, n := range []struct {
		bit  Category
		name string
	}{
		{LinkLib, "link-lib"},
		{LinkPath, "link-path"},
		{LinkOther, "link-other"},
		{IncludePath, "include-path"},
		{CompileOther, "compile-other"},
	} {
		if c&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Flag is a single argument together with its category.
type Flag struct {
	Category Category
	Arg      string
}

// Filter returns the flags whose category intersects mask, in order.
func Filter(flags []Flag, mask Category) []Flag {
	var out []Flag
	for _, f := range flags {
		if f.Category&mask != 0 {
			out = append(out, f)
		}
	}
	return out
}
