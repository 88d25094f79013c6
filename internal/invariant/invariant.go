// Package invariant carries the distinction, made in spec.md §7, between
// input validation (returned as an error at the boundary) and an invariant
// violated mid-search (a logic bug, halted with a diagnostic).
package invariant

import "fmt"

// Violation is panicked, never returned, when the search or quantization
// path observes state that should be impossible if the core is correct:
// a bit rate out of the table's range, a normalized sample outside [0,1]
// beyond the packing epsilon, and similar.
type Violation struct {
	Where string
	Msg   string
}

func (v Violation) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", v.Where, v.Msg)
}

// Check panics with a Violation if cond is false.
func Check(cond bool, where, format string, args ...interface{}) {
	if !cond {
		panic(Violation{Where: where, Msg: fmt.Sprintf(format, args...)})
	}
}
