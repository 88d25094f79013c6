// Package ratedb implements §4.3's bit-rate database (component D): a
// cache of reconstructed (quantize -> unpack -> denormalize) sample arrays
// keyed by (bone, channel, bit rate), valid within one segment. The search
// evaluates the same (bone, bit rate) thousands of times across chain
// permutations; materializing each once is the decisive speedup the
// component exists for.
package ratedb

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/track"
	"github.com/mogaika/ganim/xform"
)

type channelKey struct {
	bone int
	ch   clip.Channel
	br   track.BitRate
}

// Database is the per-clip bit-rate database. Its cache is coherent only
// with the segment most recently passed to SetSegment.
type Database struct {
	seg          *clip.Segment
	boneRanges   [3]map[int]track.Range
	hasScale     bool
	channelCache map[channelKey][][3]float64
}

// New constructs a Database bound to a clip's per-bone ranges (computed
// once by clip.Context.ComputeBoneRanges).
func New(boneRanges [3]map[int]track.Range, hasScale bool) *Database {
	return &Database{boneRanges: boneRanges, hasScale: hasScale}
}

// SetSegment points the database at a new segment and drops the entire
// cache: "set_segment invalidates entries" (§4.3's contract).
func (db *Database) SetSegment(seg *clip.Segment) {
	db.seg = seg
	db.channelCache = make(map[channelKey][][3]float64)
}

// Query names the target bone a sample() call is being made for, the
// triples every other (and, unless Override is set, this) bone should be
// reconstructed at, and an optional override triple for the target bone —
// the distinction between hierarchical_track_query (Override nil) and
// single_track_query (Override set) from §4.3.
type Query struct {
	TargetBone int
	Override   *clip.BoneBitRate
	Committed  []clip.BoneBitRate
}

func (q Query) tripleFor(bone int) clip.BoneBitRate {
	if bone == q.TargetBone && q.Override != nil {
		return *q.Override
	}
	return q.Committed[bone]
}

// Sample deterministically fills outLocalPose[0..len(outLocalPose)) with
// reconstructed local transforms at sampleTime, linearly interpolating
// between the two adjacent sample indices using the same time-to-index
// math decompression uses (§4.3's sample() contract).
func (db *Database) Sample(q Query, sampleTime, sampleRate float64, outLocalPose []xform.Transform) {
	n := db.seg.NumSamples
	rawIdx := sampleTime*sampleRate - float64(db.seg.ClipSampleOffset)
	i0 := int(math.Floor(rawIdx))
	alpha := float32(rawIdx - float64(i0))
	if i0 < 0 {
		i0, alpha = 0, 0
	}
	if i0 >= n-1 {
		i0, alpha = n-1, 0
	}
	i1 := i0
	if i0 < n-1 {
		i1 = i0 + 1
	}

	for bone := range outLocalPose {
		triple := q.tripleFor(bone)
		a := db.sampleChannels(bone, triple, i0)
		if i1 == i0 {
			outLocalPose[bone] = a
			continue
		}
		b := db.sampleChannels(bone, triple, i1)
		outLocalPose[bone] = xform.Lerp(a, b, alpha)
	}
}

func (db *Database) sampleChannels(bone int, triple clip.BoneBitRate, sampleIdx int) xform.Transform {
	t := xform.Identity()

	rot := db.reconstruct(bone, clip.ChannelRotation, triple.Rotation)[sampleIdx]
	t.Rotation = xform.RestoreW(vec3(rot))

	trans := db.reconstruct(bone, clip.ChannelTranslation, triple.Translation)[sampleIdx]
	t.Translation = vec3(trans)

	if db.hasScale {
		scale := db.reconstruct(bone, clip.ChannelScale, triple.Scale)[sampleIdx]
		t.Scale = vec3(scale)
	}
	return t
}

func vec3(c [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
}
