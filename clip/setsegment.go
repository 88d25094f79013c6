package clip

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/ganim/errormetric"
	"github.com/mogaika/ganim/track"
	"github.com/mogaika/ganim/xform"
)

// SetSegment performs §4.6's expensive per-segment precomputation once:
// sample raw at every segment sample time, convert if the metric requires
// it, apply the additive base if present, and compose to object space.
// These arrays are reused by every subsequent error evaluation for this
// segment. Calling SetSegment invalidates any bit-rate database built
// against the previous segment (the database's own contract).
func (c *Context) SetSegment(segIndex int, metric errormetric.Metric) {
	c.currentSegment = segIndex
	seg := &c.Segments[segIndex]
	numBones := c.NumBones()

	c.rawLocal = make([][]xform.Transform, seg.NumSamples)
	c.rawObject = make([][]xform.Transform, seg.NumSamples)

	parentIdx := make([]int, numBones)
	for i, m := range c.BoneMeta {
		parentIdx[i] = m.ParentIndex
	}
	allBones := make([]int, numBones)
	for i := range allBones {
		allBones[i] = i
	}

	normalized := [3]bool{seg.AreRotationsNormalized, seg.AreTranslationsNormalized, seg.AreScalesNormalized}

	for sampleIdx := 0; sampleIdx < seg.NumSamples; sampleIdx++ {
		local := make([]xform.Transform, numBones)
		for bone := 0; bone < numBones; bone++ {
			d := c.denormFor(bone, normalized)
			local[bone] = rawSampleTransform(&seg.Bones[bone], sampleIdx, c.HasScale, d)
		}

		if metric.NeedsConversion() {
			converted := make([]xform.Transform, numBones)
			metric.ConvertTransforms(allBones, local, converted)
			local = converted
		}

		if c.HasAdditiveBase && len(c.AdditiveBase) > segIndex {
			base := &c.AdditiveBase[segIndex]
			baseLocal := make([]xform.Transform, numBones)
			for bone := 0; bone < numBones; bone++ {
				baseIdx := sampleIdx
				if baseIdx >= base.NumSamples {
					baseIdx = base.NumSamples - 1
				}
				baseLocal[bone] = rawSampleTransform(&base.Bones[bone], baseIdx, c.HasScale, nil)
			}
			applied := make([]xform.Transform, numBones)
			metric.ApplyAdditiveToBase(allBones, local, baseLocal, applied)
			local = applied
		}

		object := map[int]xform.Transform{}
		metric.LocalToObjectSpace(allBones, parentIdx, local, object)

		objectSlice := make([]xform.Transform, numBones)
		for bone := 0; bone < numBones; bone++ {
			objectSlice[bone] = object[bone]
		}

		c.rawLocal[sampleIdx] = local
		c.rawObject[sampleIdx] = objectSlice
	}
}

// AdditiveBaseLocalPose returns the additive base's local pose for every
// bone at the given segment/sample, or nil if the clip has no additive
// base. Used by the search's error evaluators to apply the same
// conversion/additive composition to a lossy sampled pose that SetSegment
// already applied to the raw one, so the two stay comparable.
func (c *Context) AdditiveBaseLocalPose(segIndex, sampleIdx int) []xform.Transform {
	if !c.HasAdditiveBase || segIndex >= len(c.AdditiveBase) {
		return nil
	}
	base := &c.AdditiveBase[segIndex]
	idx := sampleIdx
	if idx >= base.NumSamples {
		idx = base.NumSamples - 1
	}
	out := make([]xform.Transform, c.NumBones())
	for bone := range out {
		// The additive base is never passed to Normalize (clip.Context.
		// Normalize only walks c.Segments), so its samples stay raw: no
		// denormalization step here.
		out[bone] = rawSampleTransform(&base.Bones[bone], idx, c.HasScale, nil)
	}
	return out
}

// channelDenorm undoes §4.2's normalization for one bone so raw and lossy
// poses are always compared in the clip's real coordinate space: the bit-
// rate database's reconstruction already denormalizes after quantizing
// (§4.3), and the ground-truth raw pose must match that same space or the
// error metric's shell-distance comparison is meaningless once any channel
// has been normalized in place.
type channelDenorm struct {
	ranges     [3]track.Range
	normalized [3]bool
}

func (d *channelDenorm) apply(ch Channel, comps [3]float32) [3]float32 {
	if d == nil || !d.normalized[ch] {
		return comps
	}
	r := d.ranges[ch]
	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = float32(r.DenormalizeComponent(i, float64(comps[i])))
	}
	return out
}

func (c *Context) denormFor(bone int, normalized [3]bool) *channelDenorm {
	return &channelDenorm{
		ranges: [3]track.Range{
			c.BoneRanges[ChannelRotation][bone],
			c.BoneRanges[ChannelTranslation][bone],
			c.BoneRanges[ChannelScale][bone],
		},
		normalized: normalized,
	}
}

// RawLocal returns the precomputed raw local transform for the current
// segment.
func (c *Context) RawLocal(sampleIdx, bone int) xform.Transform {
	return c.rawLocal[sampleIdx][bone]
}

// RawObject returns the precomputed raw object-space transform for the
// current segment.
func (c *Context) RawObject(sampleIdx, bone int) xform.Transform {
	return c.rawObject[sampleIdx][bone]
}

// rawSampleTransform reconstructs a full Transform from one bone's raw
// (unquantized) per-sample data. Rotation samples of length 3 are treated
// as drop-W reduced (invariant 4); length 4 as a full quaternion. denorm,
// if non-nil, undoes in-place normalization for the channels it reports
// normalized (Normalize skips constant/default samples, so those never
// need denormalizing even when the segment flag is set).
func rawSampleTransform(bs *BoneStream, sampleIdx int, hasScale bool, denorm *channelDenorm) xform.Transform {
	t := xform.Identity()

	if !bs.IsRotationDefault {
		idx := sampleIdx
		if bs.IsRotationConstant || idx >= len(bs.Rotation.Samples) {
			idx = 0
		}
		rs := bs.Rotation.Samples[idx]
		switch len(rs) {
		case 4:
			t.Rotation = mgl32.Quat{W: rs[3], V: mgl32.Vec3{rs[0], rs[1], rs[2]}}.Normalize()
		default:
			xyz := [3]float32{rs[0], rs[1], rs[2]}
			if !bs.IsRotationConstant {
				xyz = denorm.apply(ChannelRotation, xyz)
			}
			t.Rotation = xform.RestoreW(mgl32.Vec3{xyz[0], xyz[1], xyz[2]})
		}
	}

	if !bs.IsTranslationDefault {
		idx := sampleIdx
		if bs.IsTranslationConstant || idx >= len(bs.Translation.Samples) {
			idx = 0
		}
		ts := [3]float32{bs.Translation.Samples[idx][0], bs.Translation.Samples[idx][1], bs.Translation.Samples[idx][2]}
		if !bs.IsTranslationConstant {
			ts = denorm.apply(ChannelTranslation, ts)
		}
		t.Translation = mgl32.Vec3{ts[0], ts[1], ts[2]}
	}

	if hasScale && !bs.IsScaleDefault {
		idx := sampleIdx
		if bs.IsScaleConstant || idx >= len(bs.Scale.Samples) {
			idx = 0
		}
		ss := [3]float32{bs.Scale.Samples[idx][0], bs.Scale.Samples[idx][1], bs.Scale.Samples[idx][2]}
		if !bs.IsScaleConstant {
			ss = denorm.apply(ChannelScale, ss)
		}
		t.Scale = mgl32.Vec3{ss[0], ss[1], ss[2]}
	}

	return t
}
