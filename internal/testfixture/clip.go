package testfixture

import (
	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/track"
)

// BuildContext turns f into a single-segment clip.Context, inferring each
// channel's constant flag by comparing every sample to the first. Scale is
// only populated when f.HasScale; fixtures written for non-scaled clips can
// omit it entirely.
func (f *Fixture) BuildContext() (*clip.Context, error) {
	segments := []clip.Segment{f.toSegment()}
	boneMeta := make([]clip.BoneMetadata, len(f.Bones))
	for i, b := range f.Bones {
		boneMeta[i] = clip.BoneMetadata{
			ParentIndex:   b.ParentIndex,
			Precision:     b.Precision,
			ShellDistance: b.ShellDistance,
		}
	}
	return clip.New(segments, boneMeta, f.SampleRate, f.ClipDuration, f.HasScale)
}

func (f *Fixture) toSegment() clip.Segment {
	numSamples := len(f.Bones[0].Rotation)
	bones := make([]clip.BoneStream, len(f.Bones))
	for i, b := range f.Bones {
		bones[i] = clip.BoneStream{
			Rotation:    toStream(b.Rotation, f.SampleRate),
			Translation: toStream(b.Translation, f.SampleRate),
			ParentIndex: b.ParentIndex,

			IsRotationConstant:    isConstant(b.Rotation),
			IsTranslationConstant: isConstant(b.Translation),
			IsScaleConstant:       true,
			IsScaleDefault:        !f.HasScale,
		}
		if f.HasScale && len(b.Scale) > 0 {
			bones[i].Scale = toStream(b.Scale, f.SampleRate)
			bones[i].IsScaleConstant = isConstant(b.Scale)
			bones[i].IsScaleDefault = false
		}
	}
	return clip.Segment{Bones: bones, NumSamples: numSamples}
}

func toStream(samples [][]float32, sampleRate float64) track.Stream {
	return track.Stream{
		Samples:    samples,
		NumSamples: len(samples),
		SampleRate: sampleRate,
	}
}

func isConstant(samples [][]float32) bool {
	for i := 1; i < len(samples); i++ {
		for c := range samples[0] {
			if samples[i][c] != samples[0][c] {
				return false
			}
		}
	}
	return true
}
