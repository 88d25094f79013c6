package xform

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DropW reduces q to its x,y,z components for the QuatDropW-* formats
// (§3, glossary "Drop-W quaternion"): q and -q represent the same
// rotation, so the sign is flipped if needed to make w non-negative before
// dropping it, guaranteeing the reconstruction below is always valid.
// Grounded on original_source's quat_ensure_positive_w/quat_to_vector.
func DropW(q mgl32.Quat) mgl32.Vec3 {
	if q.W < 0 {
		q = mgl32.Quat{W: -q.W, V: q.V.Mul(-1)}
	}
	return q.V
}

// RestoreW reconstructs the full quaternion from its dropped-W components,
// per the glossary: w = sqrt(1 - x^2 - y^2 - z^2). xyz are clamped to the
// unit ball first so packing round-off near |xyz|=1 can't make the
// argument to Sqrt negative.
func RestoreW(xyz mgl32.Vec3) mgl32.Quat {
	lenSq := float64(xyz.Dot(xyz))
	if lenSq > 1 {
		lenSq = 1
	}
	w := float32(math.Sqrt(1 - lenSq))
	return mgl32.Quat{W: w, V: xyz}
}
