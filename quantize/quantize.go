// Package quantize implements §4.5's quantization operators (component
// F): given the bit rates §4.4's search committed, rewrite every
// non-default track's samples into its final packed, bit-exact payload.
package quantize

import (
	"github.com/mogaika/ganim/bitpack"
	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/logging"
	"github.com/mogaika/ganim/track"
)

// Segment rewrites every bone's three sub-streams of seg into packed
// payloads per §4.5, given the bit-rate triple the search committed for
// each bone and the clip-wide formats CompressionSettings selected. logger
// may be nil.
func Segment(c *clip.Context, segIndex int, bitRates []clip.BoneBitRate, rotFormat track.RotationFormat, transFormat, scaleFormat track.VectorFormat, logger *logging.Logger) {
	seg := &c.Segments[segIndex]
	rawBones := 0

	for bone := range seg.Bones {
		bs := &seg.Bones[bone]
		br := bitRates[bone]

		quantizeRotation(&bs.Rotation, br.Rotation, rotFormat, bs.IsRotationDefault, bs.IsRotationConstant)
		quantizeVector(&bs.Translation, br.Translation, transFormat, bs.IsTranslationDefault, bs.IsTranslationConstant)
		if c.HasScale {
			quantizeVector(&bs.Scale, br.Scale, scaleFormat, bs.IsScaleDefault, bs.IsScaleConstant)
		}

		if br.Rotation.IsRawBitRate() || br.Translation.IsRawBitRate() || (c.HasScale && br.Scale.IsRawBitRate()) {
			rawBones++
		}
	}

	if logger != nil && rawBones > 0 {
		logger.Printf("quantize: segment %d: %d bone(s) quantized at raw bit rate (full-precision f32)", segIndex, rawBones)
	}
}

// paddedBuffer allocates a zero-filled packed payload n bytes long plus
// bitpack.PadBytes of slack, satisfying the unaligned-gather allocator
// contract every variable packer/unpacker pair relies on.
func paddedBuffer(n int) []byte {
	return make([]byte, n+bitpack.PadBytes)
}
