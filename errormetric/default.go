package errormetric

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/ganim/xform"
)

// shellSamplePoints are the points on the unit sphere CalculateError probes,
// scaled by shellDistance. Six axis-aligned points are a cheap, symmetric
// approximation of the sphere's extremes and are enough to catch rotation
// error (which is maximal away from the rotation axis) and translation
// error (uniform over the sphere) alike.
var shellSamplePoints = [6]mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

func maxShellDisplacement(a, b xform.Transform, shellDistance float64, applyScale bool) float64 {
	r := float32(shellDistance)
	var maxErr float32
	for _, p := range shellSamplePoints {
		sp := p.Mul(r)
		pa := transformPoint(a, sp, applyScale)
		pb := transformPoint(b, sp, applyScale)
		d := pa.Sub(pb).Len()
		if d > maxErr {
			maxErr = d
		}
	}
	return float64(maxErr)
}

func transformPoint(t xform.Transform, p mgl32.Vec3, applyScale bool) mgl32.Vec3 {
	if applyScale {
		p = mgl32.Vec3{p[0] * t.Scale[0], p[1] * t.Scale[1], p[2] * t.Scale[2]}
	}
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// withScale is the has_scale=true evaluator.
type withScale struct{}

func (withScale) NeedsConversion() bool   { return false }
func (withScale) GetTransformSize() int   { return 10 * 4 } // quat(4)+pos(3)+scale(3) float32
func (withScale) ConvertTransforms(dirty []int, src, out []xform.Transform) {
	for _, i := range dirty {
		out[i] = src[i]
	}
}
func (withScale) ApplyAdditiveToBase(dirty []int, local, base []xform.Transform, out []xform.Transform) {
	for _, i := range dirty {
		out[i] = local[i].Mul(base[i])
	}
}
func (withScale) LocalToObjectSpace(chain []int, parentIndex []int, local []xform.Transform, out map[int]xform.Transform) {
	localToObjectSpace(chain, parentIndex, local, out)
}
func (withScale) CalculateError(a, b xform.Transform, shellDistance float64) float64 {
	return maxShellDisplacement(a, b, shellDistance, true)
}

// noScale is the has_scale=false evaluator: skips the scale multiply in
// the shell probe entirely rather than branching on it per sample.
type noScale struct{}

func (noScale) NeedsConversion() bool { return false }
func (noScale) GetTransformSize() int { return 7 * 4 } // quat(4)+pos(3) float32
func (noScale) ConvertTransforms(dirty []int, src, out []xform.Transform) {
	for _, i := range dirty {
		out[i] = src[i]
	}
}
func (noScale) ApplyAdditiveToBase(dirty []int, local, base []xform.Transform, out []xform.Transform) {
	for _, i := range dirty {
		out[i] = local[i].Mul(base[i])
	}
}
func (noScale) LocalToObjectSpace(chain []int, parentIndex []int, local []xform.Transform, out map[int]xform.Transform) {
	localToObjectSpace(chain, parentIndex, local, out)
}
func (noScale) CalculateError(a, b xform.Transform, shellDistance float64) float64 {
	return maxShellDisplacement(a, b, shellDistance, false)
}

func localToObjectSpace(chain []int, parentIndex []int, local []xform.Transform, out map[int]xform.Transform) {
	for _, bone := range chain {
		p := parentIndex[bone]
		if p < 0 {
			out[bone] = local[bone]
			continue
		}
		parentObj, ok := out[p]
		if !ok {
			// Parent wasn't part of this chain walk (shouldn't happen for
			// a root..target chain, but fall back to local space rather
			// than panic on malformed input).
			parentObj = xform.Identity()
		}
		out[bone] = local[bone].Mul(parentObj)
	}
}
