// Package search implements §4.4's two-phase bit-rate search: local-space
// priming (G) and object-space hierarchical refinement with its
// monotonic-fallback and last-resort saturation steps (H).
package search

// Compositions returns every integer vector of length k whose components
// sum to m and are each >= 0, in the fixed order spec.md's §4.4.3 example
// pins: ascending lexicographic over the whole vector — for m=2, k=3
// that's [0,0,2],[0,1,1],[0,2,0],[1,0,1],[1,1,0],[2,0,0]. The exact order
// is a deliberate tie-breaker (design note "permutation ordering
// invariant"): it decides which of several equally-scored solutions the
// search picks.
func Compositions(m, k int) [][]int {
	if k <= 0 {
		if m == 0 {
			return [][]int{{}}
		}
		return nil
	}
	if k == 1 {
		return [][]int{{m}}
	}

	var out [][]int
	// First slot ascends 0..m; for each choice the remaining k-1 slots
	// recurse the same way over what's left of m. This is plain ascending
	// lexicographic order over the whole vector, which is what reproduces
	// the pinned example: [0,0,2],[0,1,1],[0,2,0],[1,0,1],[1,1,0],[2,0,0].
	for first := 0; first <= m; first++ {
		for _, suffix := range Compositions(m-first, k-1) {
			row := append([]int{first}, suffix...)
			out = append(out, row)
		}
	}
	return out
}
