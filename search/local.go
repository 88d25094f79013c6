package search

import (
	"sort"

	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/internal/dump"
	"github.com/mogaika/ganim/logging"
	"github.com/mogaika/ganim/qctx"
	"github.com/mogaika/ganim/track"
)

// PrimeLocal implements §4.4.2's local-space priming (G): for every bone
// independently, walk a table of bit-rate triples compatible with the
// bone's §4.4.1 initial triple, sorted by ascending total transform
// footprint, and commit the smallest one meeting the bone's threshold (or,
// failing that, the one with the smallest observed error). Order across
// bones doesn't matter (§4.4.2: "order: any"). logger may be nil.
func PrimeLocal(qc *qctx.Context, logger *logging.Logger) {
	seg := qc.Segment()
	for bone := range seg.Bones {
		primeBone(qc, bone, logger)
	}
}

func primeBone(qc *qctx.Context, bone int, logger *logging.Logger) {
	initial := qc.BitRates[bone]
	if !initial.Rotation.IsSearchable() && !initial.Translation.IsSearchable() &&
		(!qc.Clip.HasScale || !initial.Scale.IsSearchable()) {
		// All channels invalid/constant: nothing to prime.
		return
	}

	candidates := primingCandidates(initial, qc.Clip.HasScale)
	threshold := qc.ThresholdFor(bone)

	bestErr := -1.0
	var bestCandidate clip.BoneBitRate
	committed := false

	for i, cand := range candidates {
		err := localSpaceMaxError(qc, bone, cand, stopUntilTooHigh)
		if bestErr < 0 || err < bestErr {
			bestErr = err
			bestCandidate = cand
		}
		if err < threshold {
			qc.BitRates[bone] = cand
			committed = true
		}
		// Once a candidate has met the threshold, stop as soon as the next
		// candidate strictly grows the footprint: no larger footprint can
		// matter more at the priming stage.
		if committed && (i+1 >= len(candidates) || candidates[i+1].TotalBits(qc.Clip.HasScale) > cand.TotalBits(qc.Clip.HasScale)) {
			if logger != nil {
				logger.Printf("search: bone %d primed: %s", bone, dump.SDump(qc.BitRates[bone]))
			}
			return
		}
	}

	if !committed {
		qc.BitRates[bone] = bestCandidate
	}
	if logger != nil {
		logger.Printf("search: bone %d primed (fallback, best observed error %v): %s", bone, bestErr, dump.SDump(qc.BitRates[bone]))
	}
}

// primingCandidates builds every BoneBitRate triple compatible with
// initial (invalid channels stay invalid, constant channels stay
// constant, searchable channels range over every table index), sorted
// ascending by total footprint (§4.4.2).
func primingCandidates(initial clip.BoneBitRate, hasScale bool) []clip.BoneBitRate {
	rotOpts := channelOptions(initial.Rotation)
	transOpts := channelOptions(initial.Translation)
	scaleOpts := []track.BitRate{initial.Scale}
	if hasScale {
		scaleOpts = channelOptions(initial.Scale)
	}

	var out []clip.BoneBitRate
	for _, r := range rotOpts {
		for _, tr := range transOpts {
			for _, sc := range scaleOpts {
				out = append(out, clip.BoneBitRate{Rotation: r, Translation: tr, Scale: sc})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalBits(hasScale) < out[j].TotalBits(hasScale)
	})
	return out
}

// channelOptions returns the bit rates a channel may take given its
// §4.4.1 initial value: invalid and constant channels are pinned,
// anything else ranges lowest..highest.
func channelOptions(initial track.BitRate) []track.BitRate {
	switch {
	case initial == track.InvalidBitRate:
		return []track.BitRate{track.InvalidBitRate}
	case initial == track.ConstantBitRate:
		return []track.BitRate{track.ConstantBitRate}
	default:
		highest := track.HighestBitRate()
		opts := make([]track.BitRate, 0, int(highest-track.LowestBitRate)+1)
		for br := track.LowestBitRate; br <= highest; br++ {
			opts = append(opts, br)
		}
		return opts
	}
}
