package clip

import "github.com/mogaika/ganim/track"

// BoneStream is §3's BoneStream: the three sub-streams of one bone within
// one segment, plus the flags that decide whether each participates in the
// search at all.
type BoneStream struct {
	Rotation    track.Stream
	Translation track.Stream
	Scale       track.Stream

	IsRotationDefault    bool
	IsTranslationDefault bool
	IsScaleDefault       bool

	IsRotationConstant    bool
	IsTranslationConstant bool
	IsScaleConstant       bool

	ParentIndex int // -1 for the root bone
}

// InitialBitRate computes the priming starting point for each channel per
// §4.4.1: invalid if default-or-constant (tracked by the Is*Default/
// Is*Constant flags rather than re-deriving from samples), constant if
// variable-and-normalized, lowest otherwise.
func (bs *BoneStream) InitialBitRate(areRotationsNormalized, areTranslationsNormalized, areScalesNormalized, hasScale bool) BoneBitRate {
	pick := func(isDefault, isConstant, isNormalized bool) track.BitRate {
		if isDefault || isConstant {
			return track.InvalidBitRate
		}
		if isNormalized {
			return track.ConstantBitRate
		}
		return track.LowestBitRate
	}

	br := BoneBitRate{
		Rotation:    pick(bs.IsRotationDefault, bs.IsRotationConstant, areRotationsNormalized),
		Translation: pick(bs.IsTranslationDefault, bs.IsTranslationConstant, areTranslationsNormalized),
	}
	if hasScale {
		br.Scale = pick(bs.IsScaleDefault, bs.IsScaleConstant, areScalesNormalized)
	} else {
		br.Scale = track.InvalidBitRate
	}
	return br
}
