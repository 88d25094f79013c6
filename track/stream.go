package track

// Stream is a handle to a contiguous buffer of samples for one channel of
// one bone: a TrackStream per §3. Samples are stored as raw [3]float32 or
// [4]float32 (rotation) triples/quads prior to quantization; after
// quantize.Segment commits a bit rate, Packed holds the bit-exact packed
// payload and Samples is cleared.
type Stream struct {
	NumSamples int
	SampleRate float64 // samples per second
	BitRate    BitRate

	// Samples holds one []float32 per sample, length 3 (vector) or 4
	// (QuatFull) or 3 (drop-W formats, pre-quantization); nil once Packed
	// is populated.
	Samples [][]float32

	// Packed holds the committed bit-exact payload once quantization has
	// run; over-allocated by bitpack.PadBytes and zero-filled past the
	// logical end, per the packers' allocator contract.
	Packed []byte

	IsDefault  bool // bind-pose identity; no samples stored at all
	IsConstant bool // identical sample for the whole clip
}

// SampleSizeBytes returns the number of bytes needed to store NumSamples
// samples at the stream's current BitRate for a 3-component channel.
func SampleSizeBytes(numSamples int, br BitRate) int {
	if br == InvalidBitRate || !br.IsSearchable() {
		return 0
	}
	bits := NumBits(br)
	return (numSamples*3*int(bits) + 7) / 8
}

// Range is §3's TrackStreamRange: componentwise (min, extent) derived from
// the raw clip, used to rescale samples into [0,1] during normalization.
type Range struct {
	Min    [3]float64
	Extent [3]float64
}

// NormalizeComponent maps a raw component value into [0,1] using this
// range, per §4.2: an extent smaller than 1e-9 collapses to 0 (invariant
// 1), never divides by a near-zero denominator.
func (r Range) NormalizeComponent(i int, raw float64) float64 {
	if r.Extent[i] < 1e-9 {
		return 0
	}
	return (raw - r.Min[i]) / r.Extent[i]
}

// DenormalizeComponent is the inverse of NormalizeComponent.
func (r Range) DenormalizeComponent(i int, normalized float64) float64 {
	return r.Min[i] + normalized*r.Extent[i]
}

// IsDegenerate reports whether every component's extent is below the
// normalization epsilon (e.g. a single-sample segment).
func (r Range) IsDegenerate() bool {
	for i := 0; i < 3; i++ {
		if r.Extent[i] >= 1e-9 {
			return false
		}
	}
	return true
}
