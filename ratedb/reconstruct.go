package ratedb

import (
	"github.com/mogaika/ganim/bitpack"
	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/track"
)

// reconstruct returns (building and caching if needed) the
// quantize-then-unpack-then-denormalize sample array for one bone/channel
// at the given bit rate, across every sample of the current segment.
func (db *Database) reconstruct(bone int, ch clip.Channel, br track.BitRate) [][3]float64 {
	key := channelKey{bone, ch, br}
	if v, ok := db.channelCache[key]; ok {
		return v
	}

	bs := &db.seg.Bones[bone]
	stream := channelStream(bs, ch)
	n := db.seg.NumSamples
	out := make([][3]float64, n)

	switch {
	case channelIsDefault(bs, ch):
		id := identityComponents(ch)
		for i := range out {
			out[i] = id
		}

	case channelIsConstant(bs, ch):
		v := sampleComponents(stream.Samples[0])
		for i := range out {
			out[i] = v
		}

	case br == track.InvalidBitRate:
		// Fixed full-precision format, or a channel the search never
		// touched: no quantization loss, one raw sample per frame.
		for i := range out {
			idx := i
			if idx >= len(stream.Samples) {
				idx = len(stream.Samples) - 1
			}
			out[i] = sampleComponents(stream.Samples[idx])
		}

	case br == track.ConstantBitRate:
		// Only legal when the segment is already normalized for this
		// channel (invariant 3), so stream.Samples are already in [0,1]:
		// quantize them directly and denormalize back to real units.
		rng := db.boneRanges[ch][bone]
		start := sampleComponents(stream.Samples[0])
		var v [3]float64
		for c := 0; c < 3; c++ {
			q := bitpack.PackU(start[c], 16)
			v[c] = rng.DenormalizeComponent(c, bitpack.UnpackU(q, 16))
		}
		for i := range out {
			out[i] = v
		}

	default:
		rng := db.boneRanges[ch][bone]
		nb := track.NumBits(br)
		for i, sample := range stream.Samples {
			sc := sampleComponents(sample)
			var v [3]float64
			for c := 0; c < 3; c++ {
				q := bitpack.PackU(sc[c], nb)
				v[c] = rng.DenormalizeComponent(c, bitpack.UnpackU(q, nb))
			}
			out[i] = v
		}
	}

	db.channelCache[key] = out
	return out
}

func channelStream(bs *clip.BoneStream, ch clip.Channel) *track.Stream {
	switch ch {
	case clip.ChannelRotation:
		return &bs.Rotation
	case clip.ChannelTranslation:
		return &bs.Translation
	default:
		return &bs.Scale
	}
}

func channelIsDefault(bs *clip.BoneStream, ch clip.Channel) bool {
	switch ch {
	case clip.ChannelRotation:
		return bs.IsRotationDefault
	case clip.ChannelTranslation:
		return bs.IsTranslationDefault
	default:
		return bs.IsScaleDefault
	}
}

func channelIsConstant(bs *clip.BoneStream, ch clip.Channel) bool {
	switch ch {
	case clip.ChannelRotation:
		return bs.IsRotationConstant
	case clip.ChannelTranslation:
		return bs.IsTranslationConstant
	default:
		return bs.IsScaleConstant
	}
}

func identityComponents(ch clip.Channel) [3]float64 {
	if ch == clip.ChannelScale {
		return [3]float64{1, 1, 1}
	}
	return [3]float64{0, 0, 0}
}

func sampleComponents(sample []float32) [3]float64 {
	return [3]float64{float64(sample[0]), float64(sample[1]), float64(sample[2])}
}
