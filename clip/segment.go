package clip

// Segment is §3's Segment: a contiguous range of samples from a clip,
// bit-rate-searched as a unit.
type Segment struct {
	Bones []BoneStream

	NumSamples       int
	ClipSampleOffset int // index of this segment's first sample within the clip

	AreRotationsNormalized    bool
	AreTranslationsNormalized bool
	AreScalesNormalized       bool
}

// SampleTime returns the clip-duration-relative time of sample index i
// within this segment, per invariant 5: computed from the full clip
// duration, not segment-local, so boundary samples match across segments.
func (s *Segment) SampleTime(i int, sampleRate, clipDuration float64) float64 {
	t := float64(s.ClipSampleOffset+i) / sampleRate
	if t > clipDuration {
		t = clipDuration
	}
	return t
}
