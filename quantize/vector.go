package quantize

import "github.com/mogaika/ganim/track"

// quantizeVector implements §4.5's translation/scale bullet: "same
// structure [as rotation], without the convert-rotation step" — there is
// no drop-W or 4-component case, every sample is a plain 3-vector.
func quantizeVector(stream *track.Stream, br track.BitRate, format track.VectorFormat, isDefault, isConstant bool) {
	if isDefault {
		return
	}

	switch {
	case isConstant:
		packSingleFullPrecision(stream)

	case !format.NeedsSearch():
		packAllFullPrecision(stream)

	case br == track.ConstantBitRate:
		packSingleU48(stream)

	case br.IsRawBitRate():
		// See quantizeRotation: the raw bit rate is a full-precision
		// f32 passthrough, never a packed bitpack.PackVector3UXX width.
		packAllFullPrecision(stream)

	default:
		packAllVariable(stream, br)
	}

	stream.BitRate = br
}
