// Package qctx holds the QuantizationContext of §3: the ephemeral
// workspace for one clip compression — the bit-rate database, the
// per-bone committed bit rates, the active segment and the per-bone error
// threshold lookup —
// shared by the search (G, H) and quantization (F) stages without making
// either package depend on the coordinator.
package qctx

import (
	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/errormetric"
	"github.com/mogaika/ganim/level"
	"github.com/mogaika/ganim/ratedb"
)

// Context is the per-clip QuantizationContext. It is exclusively owned by
// one compression invocation for the duration of a clip (§5): it is not
// safe to share across concurrent compressions.
type Context struct {
	Clip   *clip.Context
	DB     *ratedb.Database
	Metric errormetric.Metric
	Level  level.Level

	// BitRates holds the committed triple per bone for the segment
	// currently being processed.
	BitRates []clip.BoneBitRate
}

// New allocates a QuantizationContext for c, ready for the coordinator to
// drive segment by segment.
func New(c *clip.Context, metric errormetric.Metric, lvl level.Level) *Context {
	return &Context{
		Clip:     c,
		DB:       ratedb.New(c.BoneRanges, c.HasScale),
		Metric:   metric,
		Level:    lvl,
		BitRates: make([]clip.BoneBitRate, c.NumBones()),
	}
}

// SetSegment points both the clip context and the bit-rate database at
// segIndex, per §4.6's coordinator loop, and seeds BitRates with each
// bone's initial §4.4.1 candidate.
func (qc *Context) SetSegment(segIndex int) {
	qc.Clip.SetSegment(segIndex, qc.Metric)
	seg := &qc.Clip.Segments[segIndex]
	qc.DB.SetSegment(seg)

	for bone := range seg.Bones {
		bs := &seg.Bones[bone]
		qc.BitRates[bone] = bs.InitialBitRate(
			seg.AreRotationsNormalized, seg.AreTranslationsNormalized, seg.AreScalesNormalized, qc.Clip.HasScale)
	}
}

// ThresholdFor returns the error threshold to use when bone is the search
// target: always its own BoneMeta.Precision. §8 boundary 10 relies on this
// being exactly the per-bone value, including zero (precision=0 forces the
// saturation fallback to run to completion rather than silently falling
// back to some other default).
func (qc *Context) ThresholdFor(bone int) float64 {
	return qc.Clip.BoneMeta[bone].Precision
}

// Segment returns the segment currently active on the clip context.
func (qc *Context) Segment() *clip.Segment {
	return &qc.Clip.Segments[qc.Clip.CurrentSegmentIndex()]
}
