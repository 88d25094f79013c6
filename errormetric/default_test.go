package errormetric

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/ganim/xform"
)

func TestCalculateErrorZeroForIdenticalTransforms(t *testing.T) {
	m := NewDefault(false)
	tr := xform.Transform{Rotation: mgl32.QuatIdent(), Translation: mgl32.Vec3{1, 2, 3}}
	if err := m.CalculateError(tr, tr, 1.0); err > 1e-6 {
		t.Errorf("CalculateError(a, a) = %v, want ~0", err)
	}
}

func TestCalculateErrorDetectsTranslationOffset(t *testing.T) {
	m := NewDefault(false)
	a := xform.Identity()
	b := xform.Identity()
	b.Translation = mgl32.Vec3{1, 0, 0}

	err := m.CalculateError(a, b, 1.0)
	if math.Abs(err-1.0) > 1e-5 {
		t.Errorf("CalculateError with 1-unit translation offset = %v, want 1.0", err)
	}
}

func TestLocalToObjectSpaceComposesChain(t *testing.T) {
	m := NewDefault(false)
	parentIdx := []int{-1, 0}
	chain := []int{0, 1}

	local := []xform.Transform{
		{Rotation: mgl32.QuatIdent(), Translation: mgl32.Vec3{1, 0, 0}, Scale: mgl32.Vec3{1, 1, 1}},
		{Rotation: mgl32.QuatIdent(), Translation: mgl32.Vec3{1, 0, 0}, Scale: mgl32.Vec3{1, 1, 1}},
	}

	out := map[int]xform.Transform{}
	m.LocalToObjectSpace(chain, parentIdx, local, out)

	if got := out[0].Translation; got != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("root object translation = %v, want (1,0,0)", got)
	}
	if got := out[1].Translation; got != (mgl32.Vec3{2, 0, 0}) {
		t.Errorf("child object translation = %v, want (2,0,0) (composed under parent)", got)
	}
}

func TestNewDefaultChoosesScaleVariant(t *testing.T) {
	if NewDefault(true).GetTransformSize() == NewDefault(false).GetTransformSize() {
		t.Errorf("with-scale and no-scale metrics should report different transform sizes")
	}
}
