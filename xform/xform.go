// Package xform provides the local/object-space transform algebra the
// error metric and quantization operators share: rotation as a quaternion,
// translation and scale as 3-vectors, built on mgl32 the way the teacher's
// utils.QuatToEuler/EulerToQuat and pack/wad/mesh/common types are.
package xform

import "github.com/go-gl/mathgl/mgl32"

// Transform is one bone's local (or, after composition, object-space) pose
// for a single sample: rotation, translation, and optionally scale.
type Transform struct {
	Rotation    mgl32.Quat
	Translation mgl32.Vec3
	Scale       mgl32.Vec3 // ignored when the clip has no scale channel
}

// Identity returns the bind-pose identity transform: no rotation, no
// translation, unit scale.
func Identity() Transform {
	return Transform{
		Rotation:    mgl32.QuatIdent(),
		Translation: mgl32.Vec3{},
		Scale:       mgl32.Vec3{1, 1, 1},
	}
}

// Mul composes child (t) under parent p: result = p * t, matching the
// convention local_to_object_space walks root to leaf, each bone's object
// transform built from its parent's object transform and its own local one.
func (t Transform) Mul(p Transform) Transform {
	return Transform{
		Rotation:    p.Rotation.Mul(t.Rotation).Normalize(),
		Translation: p.Rotation.Rotate(vecScale(t.Translation, p.Scale)).Add(p.Translation),
		Scale:       vecScale(t.Scale, p.Scale),
	}
}

func vecScale(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Lerp performs the linear interpolation decompression uses between two
// adjacent sampled transforms at fraction alpha in [0,1]. Rotation is
// linearly interpolated on the quaternion components and renormalized
// (nlerp), matching uniformly-sampled clips' decompression behavior rather
// than a more expensive slerp.
func Lerp(a, b Transform, alpha float32) Transform {
	q := a.Rotation
	if q.Dot(b.Rotation) < 0 {
		q = mgl32.Quat{W: -q.W, V: q.V.Mul(-1)}
	}
	return Transform{
		Rotation:    nlerp(q, b.Rotation, alpha),
		Translation: lerpVec3(a.Translation, b.Translation, alpha),
		Scale:       lerpVec3(a.Scale, b.Scale, alpha),
	}
}

func nlerp(a, b mgl32.Quat, alpha float32) mgl32.Quat {
	return mgl32.Quat{
		W: a.W + (b.W-a.W)*alpha,
		V: lerpVec3(a.V, b.V, alpha),
	}.Normalize()
}

func lerpVec3(a, b mgl32.Vec3, alpha float32) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0] + (b[0]-a[0])*alpha,
		a[1] + (b[1]-a[1])*alpha,
		a[2] + (b[2]-a[2])*alpha,
	}
}
