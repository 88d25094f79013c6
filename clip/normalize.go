package clip

import (
	"github.com/mogaika/ganim/track"
)

// ComputeBoneRanges computes, for each bone and each of the three channels,
// the componentwise (min, extent) across every sample in every segment of
// that bone's raw stream (§4.2). Rotation ranges are computed over the
// drop-W reduced 3-component representation, per invariant 4: the search
// operates in the dropped-component space consistently for raw and lossy.
func (c *Context) ComputeBoneRanges() {
	numBones := c.NumBones()
	for bone := 0; bone < numBones; bone++ {
		rRange, tRange, sRange := computeChannelRange(c.Segments, bone, ChannelRotation),
			computeChannelRange(c.Segments, bone, ChannelTranslation),
			computeChannelRange(c.Segments, bone, ChannelScale)
		c.BoneRanges[ChannelRotation][bone] = rRange
		c.BoneRanges[ChannelTranslation][bone] = tRange
		if c.HasScale {
			c.BoneRanges[ChannelScale][bone] = sRange
		}
	}
}

func streamForChannel(bs *BoneStream, ch Channel) *track.Stream {
	switch ch {
	case ChannelRotation:
		return &bs.Rotation
	case ChannelTranslation:
		return &bs.Translation
	default:
		return &bs.Scale
	}
}

func computeChannelRange(segments []Segment, bone int, ch Channel) track.Range {
	var min, max [3]float64
	first := true
	for si := range segments {
		s := streamForChannel(&segments[si].Bones[bone], ch)
		for _, sample := range s.Samples {
			for i := 0; i < 3; i++ {
				v := float64(sample[i])
				if first {
					min[i], max[i] = v, v
				} else {
					if v < min[i] {
						min[i] = v
					}
					if v > max[i] {
						max[i] = v
					}
				}
			}
			first = false
		}
	}
	var r track.Range
	for i := 0; i < 3; i++ {
		r.Min[i] = min[i]
		r.Extent[i] = max[i] - min[i]
	}
	return r
}

// Normalize rescales every non-constant sample of the given channel's
// streams into [0,1] in place, per §4.2, and sets the segment's
// are_*_normalized flag. Normalization runs once per clip; calling it
// twice would double-normalize and is a caller error this function does
// not guard against (matching the "performed once and in place"
// lifecycle note in §3).
func (c *Context) Normalize(ch Channel) {
	ranges := c.BoneRanges[ch]
	for si := range c.Segments {
		seg := &c.Segments[si]
		for bone := range seg.Bones {
			bs := &seg.Bones[bone]
			r := ranges[bone]
			s := streamForChannel(bs, ch)
			if constantFlag(bs, ch) || defaultFlag(bs, ch) {
				continue
			}
			for _, sample := range s.Samples {
				for i := 0; i < 3; i++ {
					sample[i] = float32(r.NormalizeComponent(i, float64(sample[i])))
				}
			}
		}
		switch ch {
		case ChannelRotation:
			seg.AreRotationsNormalized = true
		case ChannelTranslation:
			seg.AreTranslationsNormalized = true
		case ChannelScale:
			seg.AreScalesNormalized = true
		}
	}
}

func constantFlag(bs *BoneStream, ch Channel) bool {
	switch ch {
	case ChannelRotation:
		return bs.IsRotationConstant
	case ChannelTranslation:
		return bs.IsTranslationConstant
	default:
		return bs.IsScaleConstant
	}
}

func defaultFlag(bs *BoneStream, ch Channel) bool {
	switch ch {
	case ChannelRotation:
		return bs.IsRotationDefault
	case ChannelTranslation:
		return bs.IsTranslationDefault
	default:
		return bs.IsScaleDefault
	}
}
