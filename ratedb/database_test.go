package ratedb

import (
	"math"
	"testing"

	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/track"
	"github.com/mogaika/ganim/xform"
)

func boneRanges(hasScale bool) [3]map[int]track.Range {
	r := [3]map[int]track.Range{
		{0: {Min: [3]float64{0, 0, 0}, Extent: [3]float64{1, 1, 1}}},
		{0: {Min: [3]float64{-10, -10, -10}, Extent: [3]float64{20, 20, 20}}},
		{0: {Min: [3]float64{0, 0, 0}, Extent: [3]float64{1, 1, 1}}},
	}
	return r
}

func singleBoneSegment(n int, constant bool) *clip.Segment {
	rot := make([][]float32, n)
	trans := make([][]float32, n)
	for i := range rot {
		rot[i] = []float32{0, 0, 0}
		trans[i] = []float32{0.5, 0.5, 0.5}
	}
	return &clip.Segment{
		NumSamples: n,
		Bones: []clip.BoneStream{{
			Rotation:              track.Stream{NumSamples: n, SampleRate: 30, Samples: rot},
			Translation:           track.Stream{NumSamples: n, SampleRate: 30, Samples: trans},
			IsRotationConstant:    true,
			IsTranslationConstant: constant,
			IsScaleDefault:        true,
			IsScaleConstant:       true,
			ParentIndex:           -1,
		}},
	}
}

func TestSampleConstantChannelReturnsSameValueEverywhere(t *testing.T) {
	seg := singleBoneSegment(4, true)
	db := New(boneRanges(false), false)
	db.SetSegment(seg)

	out := make([]xform.Transform, 1)
	q := Query{TargetBone: 0, Committed: []clip.BoneBitRate{{Rotation: track.InvalidBitRate, Translation: track.InvalidBitRate}}}

	db.Sample(q, 0, 30, out)
	first := out[0].Translation
	db.Sample(q, float64(3)/30, 30, out)
	last := out[0].Translation

	if first != last {
		t.Errorf("constant channel should sample the same value everywhere: %v vs %v", first, last)
	}
	// Constant channels are never normalized (clip.Context.Normalize skips
	// them), so the stored sample is already in real units and comes back
	// as-is, not run through the translation range.
	if math.Abs(float64(first[0])-0.5) > 1e-4 {
		t.Errorf("constant translation[0] = %v, want 0.5 (stored sample, real units)", first[0])
	}
}

func TestSetSegmentInvalidatesCache(t *testing.T) {
	seg1 := singleBoneSegment(2, true)
	db := New(boneRanges(false), false)
	db.SetSegment(seg1)

	q := Query{TargetBone: 0, Committed: []clip.BoneBitRate{{Rotation: track.InvalidBitRate, Translation: track.InvalidBitRate}}}
	out := make([]xform.Transform, 1)
	db.Sample(q, 0, 30, out)

	if len(db.channelCache) == 0 {
		t.Fatalf("expected cache to be populated after Sample")
	}

	seg2 := singleBoneSegment(2, true)
	db.SetSegment(seg2)
	if len(db.channelCache) != 0 {
		t.Errorf("SetSegment should drop the entire cache, got %d entries", len(db.channelCache))
	}
}
