// Package errormetric implements §4.4.5 and §6's error metric interface:
// converting local transforms, applying an additive base, composing local
// to object space through a bone chain, and measuring per-bone error on
// the shell of a given radius. It is a consumed interface (spec.md §6) —
// owned by the caller's skeleton description, not by the search — so this
// package provides the default uniformly-sampled implementation the core
// ships with, following the "two distinct, statically-dispatched evaluator
// types chosen once per segment" design note rather than per-sample
// has_scale branching.
package errormetric

import "github.com/mogaika/ganim/xform"

// Metric is the error metric interface of spec.md §6. Two concrete,
// statically dispatched implementations are provided (withScale,
// noScale) and chosen once per segment by NewDefault, rather than
// branching on has_scale inside the per-sample loop.
type Metric interface {
	// NeedsConversion reports whether ConvertTransforms does nontrivial
	// work for this metric (some metrics compare raw local transforms
	// directly and can skip the conversion pass).
	NeedsConversion() bool

	// GetTransformSize returns the in-memory size, in bytes, of one
	// converted transform — used by callers sizing scratch buffers.
	GetTransformSize() int

	// ConvertTransforms converts the transforms at dirtyIndices from
	// src into out, in place at the same indices. Indices not in
	// dirtyIndices are left untouched in out.
	ConvertTransforms(dirtyIndices []int, src []xform.Transform, out []xform.Transform)

	// ApplyAdditiveToBase composes local onto base (local ⊗ base) at
	// dirtyIndices, writing into out.
	ApplyAdditiveToBase(dirtyIndices []int, local, base []xform.Transform, out []xform.Transform)

	// LocalToObjectSpace composes a local-space chain into object space.
	// chain holds bone indices root..target inclusive; parent of
	// chain[0] is the unparented root. local holds one transform per
	// bone index (not per chain slot); out receives the composed object
	// transform for every bone in chain.
	LocalToObjectSpace(chain []int, parentIndex []int, local []xform.Transform, out map[int]xform.Transform)

	// CalculateError measures the error between two transforms as the
	// maximum displacement of a point on a sphere of radius
	// shellDistance under the delta transform between a and b.
	CalculateError(a, b xform.Transform, shellDistance float64) float64
}

// NewDefault returns the metric implementation to use for a segment with
// the given has_scale flag, chosen once (not per sample) per the design
// note on branch-heavy error evaluation.
func NewDefault(hasScale bool) Metric {
	if hasScale {
		return withScale{}
	}
	return noScale{}
}
