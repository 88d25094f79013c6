package search

import (
	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/qctx"
	"github.com/mogaika/ganim/ratedb"
	"github.com/mogaika/ganim/xform"
)

// stopMode gates whether an evaluator short-circuits the moment a sample
// exceeds threshold (§4.4.2's priming loop) or always walks every sample to
// report the true maximum (§4.4.3's refinement, which needs the real error
// to judge monotonic improvement, not just a threshold crossing).
type stopMode int

const (
	stopUntilTooHigh stopMode = iota
	stopNever
)

// localSpaceMaxError implements §4.4.5's local_space_max_error(bone): the
// single_track_query variant, used only by local-space priming (G).
func localSpaceMaxError(qc *qctx.Context, bone int, override clip.BoneBitRate, mode stopMode) float64 {
	threshold := qc.ThresholdFor(bone)
	seg := qc.Segment()
	shell := qc.Clip.BoneMeta[bone].ShellDistance
	numBones := qc.Clip.NumBones()

	q := ratedb.Query{TargetBone: bone, Override: &override, Committed: qc.BitRates}
	lossy := make([]xform.Transform, numBones)

	maxError := 0.0
	for s := 0; s < seg.NumSamples; s++ {
		t := seg.SampleTime(s, qc.Clip.SampleRate, qc.Clip.ClipDuration)
		qc.DB.Sample(q, t, qc.Clip.SampleRate, lossy)

		lossyBone := lossy[bone]
		if qc.Metric.NeedsConversion() {
			converted := make([]xform.Transform, numBones)
			qc.Metric.ConvertTransforms([]int{bone}, lossy, converted)
			lossyBone = converted[bone]
		}
		if base := qc.Clip.AdditiveBaseLocalPose(qc.Clip.CurrentSegmentIndex(), s); base != nil {
			applied := make([]xform.Transform, numBones)
			qc.Metric.ApplyAdditiveToBase([]int{bone}, lossy, base, applied)
			lossyBone = applied[bone]
		}

		err := qc.Metric.CalculateError(qc.Clip.RawLocal(s, bone), lossyBone, shell)
		if err > maxError {
			maxError = err
		}
		if mode == stopUntilTooHigh && err >= threshold {
			break
		}
	}
	return maxError
}

// objectSpaceMaxError implements §4.4.5's object_space_max_error(bone): the
// hierarchical_track_query variant composed through the chain to object
// space, used by refinement (H). bitRates is the full per-bone array to
// reconstruct under — a scratch copy while trying a candidate, or
// qc.BitRates itself to measure the currently committed state.
func objectSpaceMaxError(qc *qctx.Context, bone int, chain []int, bitRates []clip.BoneBitRate, mode stopMode) float64 {
	threshold := qc.ThresholdFor(bone)
	seg := qc.Segment()
	shell := qc.Clip.BoneMeta[bone].ShellDistance
	numBones := qc.Clip.NumBones()

	q := ratedb.Query{TargetBone: bone, Committed: bitRates}
	lossyLocal := make([]xform.Transform, numBones)

	parentIdx := make([]int, numBones)
	for i, m := range qc.Clip.BoneMeta {
		parentIdx[i] = m.ParentIndex
	}

	maxError := 0.0
	for s := 0; s < seg.NumSamples; s++ {
		t := seg.SampleTime(s, qc.Clip.SampleRate, qc.Clip.ClipDuration)
		qc.DB.Sample(q, t, qc.Clip.SampleRate, lossyLocal)

		local := lossyLocal
		if qc.Metric.NeedsConversion() {
			converted := make([]xform.Transform, numBones)
			qc.Metric.ConvertTransforms(chain, lossyLocal, converted)
			local = converted
		}
		if base := qc.Clip.AdditiveBaseLocalPose(qc.Clip.CurrentSegmentIndex(), s); base != nil {
			applied := make([]xform.Transform, numBones)
			qc.Metric.ApplyAdditiveToBase(chain, local, base, applied)
			local = applied
		}

		object := map[int]xform.Transform{}
		qc.Metric.LocalToObjectSpace(chain, parentIdx, local, object)

		err := qc.Metric.CalculateError(qc.Clip.RawObject(s, bone), object[bone], shell)
		if err > maxError {
			maxError = err
		}
		if mode == stopUntilTooHigh && err >= threshold {
			break
		}
	}
	return maxError
}
