// Package clip holds the data model of §3: ClipContext, Segment,
// BoneStream, BoneBitRate, and the range-extraction/normalization stage of
// §4.2 (component C). The QuantizationContext lives in package qctx.
package clip

import "github.com/mogaika/ganim/track"

// BoneBitRate is the committed (or candidate) bit-rate triple for one
// bone's transform: §3.
type BoneBitRate struct {
	Rotation    track.BitRate
	Translation track.BitRate
	Scale       track.BitRate // meaningless when the clip has no scale
}

// TotalBits returns the sum of per-component bit counts this triple would
// cost for one sample, the "footprint" §4.4.2 sorts priming candidates by.
// Invalid and constant channels contribute 0.
func (b BoneBitRate) TotalBits(hasScale bool) int {
	total := 0
	if b.Rotation.IsSearchable() {
		total += 3 * int(track.NumBits(b.Rotation))
	}
	if b.Translation.IsSearchable() {
		total += 3 * int(track.NumBits(b.Translation))
	}
	if hasScale && b.Scale.IsSearchable() {
		total += 3 * int(track.NumBits(b.Scale))
	}
	return total
}

// Channel selects one of a BoneBitRate's three slots, used by the search
// and quantization operators to iterate channels uniformly.
type Channel int

const (
	ChannelRotation Channel = iota
	ChannelTranslation
	ChannelScale
)

// Get returns the bit rate for the given channel.
func (b BoneBitRate) Get(c Channel) track.BitRate {
	switch c {
	case ChannelRotation:
		return b.Rotation
	case ChannelTranslation:
		return b.Translation
	default:
		return b.Scale
	}
}

// With returns a copy of b with channel c set to v.
func (b BoneBitRate) With(c Channel, v track.BitRate) BoneBitRate {
	switch c {
	case ChannelRotation:
		b.Rotation = v
	case ChannelTranslation:
		b.Translation = v
	default:
		b.Scale = v
	}
	return b
}
