package clip

import (
	"math"
	"testing"

	"github.com/mogaika/ganim/track"
)

func constStream(n int, v [3]float32) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{v[0], v[1], v[2]}
	}
	return out
}

func varyingStream(n int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{float32(i), float32(i) * 2, float32(i) * 3}
	}
	return out
}

func newTestContext(t *testing.T, translation [][]float32, isConstant bool) *Context {
	t.Helper()
	n := len(translation)
	bs := BoneStream{
		Rotation:             track.Stream{NumSamples: n, SampleRate: 30, Samples: constStream(n, [3]float32{0, 0, 0})},
		Translation:          track.Stream{NumSamples: n, SampleRate: 30, Samples: translation},
		Scale:                track.Stream{},
		IsScaleDefault:       true,
		IsScaleConstant:      true,
		IsRotationConstant:   true,
		IsTranslationConstant: isConstant,
		ParentIndex:          -1,
	}
	segments := []Segment{{Bones: []BoneStream{bs}, NumSamples: n}}
	boneMeta := []BoneMetadata{{ParentIndex: -1, Precision: 0.01, ShellDistance: 1}}

	c, err := New(segments, boneMeta, 30, float64(n-1)/30, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// TestComputeBoneRangesZeroExtent covers the constant-stream boundary:
// every sample equal means extent 0 for every component, and
// Range.NormalizeComponent must return 0 rather than dividing by zero.
func TestComputeBoneRangesZeroExtent(t *testing.T) {
	c := newTestContext(t, constStream(5, [3]float32{2, 2, 2}), false)
	c.ComputeBoneRanges()

	r := c.BoneRanges[ChannelTranslation][0]
	for i := 0; i < 3; i++ {
		if r.Extent[i] != 0 {
			t.Errorf("Extent[%d] = %v, want 0", i, r.Extent[i])
		}
	}
	if got := r.NormalizeComponent(0, 2); got != 0 {
		t.Errorf("NormalizeComponent on zero-extent range = %v, want 0", got)
	}
	if !r.IsDegenerate() {
		t.Errorf("IsDegenerate() = false for zero-extent range")
	}
}

// TestNormalizeSkipsConstantChannel verifies Normalize skips a channel
// marked constant entirely, leaving its samples in real units.
func TestNormalizeSkipsConstantChannel(t *testing.T) {
	c := newTestContext(t, constStream(4, [3]float32{5, 6, 7}), true)
	c.ComputeBoneRanges()
	c.Normalize(ChannelTranslation)

	got := c.Segments[0].Bones[0].Translation.Samples[0]
	want := [3]float32{5, 6, 7}
	for i := 0; i < 3; i++ {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("constant channel sample[%d] = %v, want untouched %v", i, got[i], want[i])
		}
	}
	if !c.Segments[0].AreTranslationsNormalized {
		t.Errorf("AreTranslationsNormalized should still be set even when samples are untouched")
	}
}

// TestNormalizeVaryingChannelInto01 checks the common case: every sample
// lands in [0,1] after normalization, with the endpoints hitting 0 and 1.
func TestNormalizeVaryingChannelInto01(t *testing.T) {
	const n = 5
	c := newTestContext(t, varyingStream(n), false)
	c.ComputeBoneRanges()
	c.Normalize(ChannelTranslation)

	samples := c.Segments[0].Bones[0].Translation.Samples
	for _, s := range samples {
		for i := 0; i < 3; i++ {
			if s[i] < -1e-6 || s[i] > 1+1e-6 {
				t.Errorf("normalized component out of [0,1]: %v", s[i])
			}
		}
	}
	first, last := samples[0], samples[n-1]
	for i := 0; i < 3; i++ {
		if math.Abs(float64(first[i])) > 1e-6 {
			t.Errorf("first sample component %d = %v, want 0", i, first[i])
		}
		if math.Abs(float64(last[i]-1)) > 1e-6 {
			t.Errorf("last sample component %d = %v, want 1", i, last[i])
		}
	}
}
