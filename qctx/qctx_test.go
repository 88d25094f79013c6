package qctx

import (
	"testing"

	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/errormetric"
	"github.com/mogaika/ganim/level"
	"github.com/mogaika/ganim/track"
)

func constSamples(n int, v [3]float32) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{v[0], v[1], v[2]}
	}
	return out
}

func newTestClip(t *testing.T) *clip.Context {
	t.Helper()
	const n = 4
	bs := clip.BoneStream{
		Rotation:              track.Stream{NumSamples: n, SampleRate: 30, Samples: constSamples(n, [3]float32{0, 0, 0})},
		Translation:           track.Stream{NumSamples: n, SampleRate: 30, Samples: constSamples(n, [3]float32{1, 1, 1})},
		IsRotationConstant:    true,
		IsTranslationConstant: true,
		IsScaleDefault:        true,
		IsScaleConstant:       true,
		ParentIndex:           -1,
	}
	segments := []clip.Segment{{Bones: []clip.BoneStream{bs}, NumSamples: n}}
	boneMeta := []clip.BoneMetadata{{ParentIndex: -1, Precision: 0.05, ShellDistance: 2}}

	c, err := clip.New(segments, boneMeta, 30, float64(n-1)/30, false)
	if err != nil {
		t.Fatalf("clip.New: %v", err)
	}
	c.ComputeBoneRanges()
	return c
}

func TestNewAllocatesOneBitRatePerBone(t *testing.T) {
	c := newTestClip(t)
	qc := New(c, errormetric.NewDefault(false), level.Low)

	if len(qc.BitRates) != c.NumBones() {
		t.Errorf("len(BitRates) = %d, want %d", len(qc.BitRates), c.NumBones())
	}
}

func TestSetSegmentSeedsInitialBitRates(t *testing.T) {
	c := newTestClip(t)
	qc := New(c, errormetric.NewDefault(false), level.Low)

	qc.SetSegment(0)

	if got := qc.BitRates[0].Rotation; got != track.InvalidBitRate {
		t.Errorf("constant rotation initial bit rate = %v, want InvalidBitRate", got)
	}
	if got := qc.BitRates[0].Translation; got != track.InvalidBitRate {
		t.Errorf("constant translation initial bit rate = %v, want InvalidBitRate", got)
	}
	if qc.Segment() != &c.Segments[0] {
		t.Errorf("Segment() did not return the segment just set")
	}
}

func TestThresholdForReadsPerBonePrecisionIncludingZero(t *testing.T) {
	c := newTestClip(t)
	c.BoneMeta[0].Precision = 0
	qc := New(c, errormetric.NewDefault(false), level.Low)

	if got := qc.ThresholdFor(0); got != 0 {
		t.Errorf("ThresholdFor(0) = %v, want 0 (explicit zero threshold, not treated as unset)", got)
	}
}
