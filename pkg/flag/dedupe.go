// pkg/flag/dedupe.go
package flag

// StripDuplicates drops every flag equal to the one right before it.
// Non-adjacent repeats survive: "-lfoo -lbar -lfoo" is a meaningful link
// order.
func StripDuplicates(flags []Flag) []Flag {
	if len(flags) == 0 {
		return nil
	}
	out := make([]Flag, 0, len(flags))
	for i, f := range flags {
		if i > 0 && f == flags[i-1] {
			continue
		}
		out = append(out, f)
	}
	return out
}
