package quantize

import (
	"github.com/mogaika/ganim/bitpack"
	"github.com/mogaika/ganim/track"
)

// quantizeRotation implements §4.5's rotation, variable-path bullet
// (plus its implied fixed-format and constant-track passes): rewrites
// stream's Samples into a packed payload and clears Samples, matching
// Stream's "nil once Packed is populated" contract.
func quantizeRotation(stream *track.Stream, br track.BitRate, format track.RotationFormat, isDefault, isConstant bool) {
	if isDefault {
		return
	}

	switch {
	case isConstant:
		packSingleFullPrecision(stream)

	case !format.NeedsSearch():
		// Fixed format (QuatFull or QuatDropW-Full): no quantization
		// loss, one raw full-precision sample per frame.
		packAllFullPrecision(stream)

	case br == track.ConstantBitRate:
		packSingleU48(stream)

	case br.IsRawBitRate():
		// Highest table index: ACL's is_raw_bit_rate. NumBits would
		// report 32, which is not a width bitpack.PackVector3UXX can
		// take (MaxComponentBits is 19) — store full-precision f32
		// instead of routing through the fixed-point path.
		packAllFullPrecision(stream)

	default:
		packAllVariable(stream, br)
	}

	stream.BitRate = br
}

func packSingleFullPrecision(stream *track.Stream) {
	sample := stream.Samples[0]
	if len(sample) == 4 {
		buf := paddedBuffer(16)
		bitpack.PackVector4F128([4]float32{sample[0], sample[1], sample[2], sample[3]}, buf)
		stream.Packed = buf
	} else {
		buf := paddedBuffer(12)
		bitpack.PackVector3F96([3]float32{sample[0], sample[1], sample[2]}, buf)
		stream.Packed = buf
	}
	stream.Samples = nil
}

func packAllFullPrecision(stream *track.Stream) {
	n := stream.NumSamples
	width := 12
	isQuad := n > 0 && len(stream.Samples[0]) == 4
	if isQuad {
		width = 16
	}
	buf := paddedBuffer(n * width)
	for i, sample := range stream.Samples {
		if isQuad {
			bitpack.PackVector4F128([4]float32{sample[0], sample[1], sample[2], sample[3]}, buf[i*width:])
		} else {
			bitpack.PackVector3F96([3]float32{sample[0], sample[1], sample[2]}, buf[i*width:])
		}
	}
	stream.Packed = buf
	stream.Samples = nil
}

func packSingleU48(stream *track.Stream) {
	sample := stream.Samples[0]
	buf := paddedBuffer(6)
	bitpack.PackVector3U48([3]float64{float64(sample[0]), float64(sample[1]), float64(sample[2])}, buf)
	stream.Packed = buf
	stream.Samples = nil
}

func packAllVariable(stream *track.Stream, br track.BitRate) {
	n := stream.NumSamples
	nb := track.NumBits(br)
	byteLen := (n*3*int(nb) + 7) / 8
	buf := paddedBuffer(byteLen)
	for i, sample := range stream.Samples {
		v := [3]uint32{
			bitpack.PackU(float64(sample[0]), nb),
			bitpack.PackU(float64(sample[1]), nb),
			bitpack.PackU(float64(sample[2]), nb),
		}
		bitpack.PackVector3UXX(nb, v, buf, i*3*int(nb))
	}
	stream.Packed = buf
	stream.Samples = nil
}
