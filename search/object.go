package search

import (
	"sort"

	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/internal/dump"
	"github.com/mogaika/ganim/logging"
	"github.com/mogaika/ganim/qctx"
	"github.com/mogaika/ganim/track"
)

// RefineObject implements §4.4.3's object-space hierarchical refinement
// (H): proceed root to leaves, and for each bone run the permutation loop,
// the monotonic fallback, the indiscriminate saturation fallback and (for
// QuatFull-rotation clips only) the last-resort max step. rotationIsQuatFull
// is the clip-wide CompressionSettings.rotation_format == QuatFull check
// that gates step 5. logger may be nil.
func RefineObject(qc *qctx.Context, rotationIsQuatFull bool, logger *logging.Logger) {
	for _, bone := range bonesRootToLeaf(qc) {
		refineBone(qc, bone, rotationIsQuatFull, logger)
	}
}

// bonesRootToLeaf orders every bone by chain depth ascending (root first),
// satisfying §5's "parents before children" ordering requirement.
func bonesRootToLeaf(qc *qctx.Context) []int {
	n := qc.Clip.NumBones()
	order := make([]int, n)
	depth := make([]int, n)
	for i := 0; i < n; i++ {
		order[i] = i
		depth[i] = len(qc.Clip.BoneChain(i))
	}
	sort.SliceStable(order, func(a, b int) bool { return depth[order[a]] < depth[order[b]] })
	return order
}

func refineBone(qc *qctx.Context, target int, rotationIsQuatFull bool, logger *logging.Logger) {
	chain := qc.Clip.BoneChain(target)
	threshold := qc.ThresholdFor(target)

	for {
		err := objectSpaceMaxError(qc, target, chain, qc.BitRates, stopNever)
		if err < threshold {
			return
		}

		bestErr := err
		var bestCandidate []clip.BoneBitRate

		for m := 1; m <= qc.Level.MaxDelta(); m++ {
			for _, delta := range Compositions(m, len(chain)) {
				candidate := append([]clip.BoneBitRate(nil), qc.BitRates...)
				for i, boneIdx := range chain {
					if delta[i] == 0 {
						continue
					}
					increaseBoneBitRate(qc, target, chain, candidate, boneIdx, delta[i])
				}
				candErr := objectSpaceMaxError(qc, target, chain, candidate, stopNever)
				if candErr < bestErr {
					bestErr = candErr
					bestCandidate = candidate
				}
			}
		}

		if bestCandidate == nil {
			break
		}
		qc.BitRates = bestCandidate
	}

	if saturationFallback(qc, target, chain, threshold) {
		return
	}
	if rotationIsQuatFull {
		lastResortMax(qc, target, chain, threshold)
	}

	if logger != nil {
		finalErr := objectSpaceMaxError(qc, target, chain, qc.BitRates, stopNever)
		if finalErr >= threshold {
			logger.Printf("search: bone %d did not reach threshold %v (got %v): %s", target, threshold, finalErr, dump.SDump(qc.BitRates[target]))
		}
	}
}

// increaseBoneBitRate implements §4.4.4: distribute inc extra steps across
// bone's three channels (dr+dt+ds=inc), install each tuple temporarily in
// candidate, measure the target's object-space error, and keep whichever
// tuple scored lowest.
func increaseBoneBitRate(qc *qctx.Context, target int, chain []int, candidate []clip.BoneBitRate, bone, inc int) {
	base := candidate[bone]
	highest := track.HighestBitRate()
	// Eligibility here is "this channel is variable at all" (not
	// invalid_bit_rate), not IsSearchable: a channel G left pinned at
	// constant_bit_rate is exactly the case H exists to raise further.
	rotOK := base.Rotation != track.InvalidBitRate
	transOK := base.Translation != track.InvalidBitRate
	scaleOK := qc.Clip.HasScale && base.Scale != track.InvalidBitRate

	bestErr := -1.0
	bestTriple := base
	found := false

	for dr := 0; dr <= inc; dr++ {
		if dr > 0 && !rotOK {
			continue
		}
		for dt := 0; dt <= inc-dr; dt++ {
			if dt > 0 && !transOK {
				continue
			}
			ds := inc - dr - dt
			if ds > 0 && !scaleOK {
				continue
			}

			trial := base
			trial.Rotation = clampBitRate(base.Rotation+track.BitRate(dr), highest)
			trial.Translation = clampBitRate(base.Translation+track.BitRate(dt), highest)
			if qc.Clip.HasScale {
				trial.Scale = clampBitRate(base.Scale+track.BitRate(ds), highest)
			}

			candidate[bone] = trial
			err := objectSpaceMaxError(qc, target, chain, candidate, stopNever)
			if !found || err < bestErr {
				found = true
				bestErr = err
				bestTriple = trial
			}
		}
	}

	candidate[bone] = bestTriple
}

func clampBitRate(v, highest track.BitRate) track.BitRate {
	if v > highest {
		return highest
	}
	return v
}

// saturationFallback implements §4.4.3 step 4: walk the chain leaf to
// root, repeatedly incrementing each bone's smallest non-saturated
// channel and keeping whichever triple along the way scored the lowest
// error, until the threshold is met or every channel of every chain bone
// is saturated. Returns true if threshold was met.
func saturationFallback(qc *qctx.Context, target int, chain []int, threshold float64) bool {
	highest := track.HighestBitRate()

	for i := len(chain) - 1; i >= 0; i-- {
		bone := chain[i]
		triple := qc.BitRates[bone]
		bestTriple := triple
		bestErr := objectSpaceMaxError(qc, target, chain, qc.BitRates, stopNever)

		for {
			ch, ok := smallestIncrementableChannel(triple, qc.Clip.HasScale, highest)
			if !ok {
				break
			}
			triple = triple.With(ch, triple.Get(ch)+1)

			trial := append([]clip.BoneBitRate(nil), qc.BitRates...)
			trial[bone] = triple
			err := objectSpaceMaxError(qc, target, chain, trial, stopNever)

			if err < bestErr {
				bestErr = err
				bestTriple = triple
			}
			if err < threshold {
				qc.BitRates[bone] = triple
				return true
			}
		}

		qc.BitRates[bone] = bestTriple
	}

	return objectSpaceMaxError(qc, target, chain, qc.BitRates, stopNever) < threshold
}

// smallestIncrementableChannel picks the non-invalid (constant included),
// non-saturated channel with the smallest current value. Ties prefer translation over rotation
// over scale — spec.md's explicit example is rotation == translation <
// highest with scale == highest, which this general ordering satisfies.
func smallestIncrementableChannel(triple clip.BoneBitRate, hasScale bool, highest track.BitRate) (clip.Channel, bool) {
	type candidate struct {
		ch  clip.Channel
		val track.BitRate
	}
	var cands []candidate
	if triple.Rotation != track.InvalidBitRate && triple.Rotation < highest {
		cands = append(cands, candidate{clip.ChannelRotation, triple.Rotation})
	}
	if triple.Translation != track.InvalidBitRate && triple.Translation < highest {
		cands = append(cands, candidate{clip.ChannelTranslation, triple.Translation})
	}
	if hasScale && triple.Scale != track.InvalidBitRate && triple.Scale < highest {
		cands = append(cands, candidate{clip.ChannelScale, triple.Scale})
	}
	if len(cands) == 0 {
		return 0, false
	}

	priority := map[clip.Channel]int{clip.ChannelTranslation: 0, clip.ChannelRotation: 1, clip.ChannelScale: 2}
	best := cands[0]
	for _, c := range cands[1:] {
		switch {
		case c.val < best.val:
			best = c
		case c.val == best.val && priority[c.ch] < priority[best.ch]:
			best = c
		}
	}
	return best.ch, true
}

// lastResortMax implements §4.4.3 step 5: walk the chain leaf to root,
// raising each bone's non-invalid channels straight to highest_bit_rate,
// stopping as soon as the error drops below threshold.
func lastResortMax(qc *qctx.Context, target int, chain []int, threshold float64) {
	highest := track.HighestBitRate()
	for i := len(chain) - 1; i >= 0; i-- {
		bone := chain[i]
		t := qc.BitRates[bone]
		if t.Rotation != track.InvalidBitRate {
			t.Rotation = highest
		}
		if t.Translation != track.InvalidBitRate {
			t.Translation = highest
		}
		if qc.Clip.HasScale && t.Scale != track.InvalidBitRate {
			t.Scale = highest
		}
		qc.BitRates[bone] = t

		if objectSpaceMaxError(qc, target, chain, qc.BitRates, stopNever) < threshold {
			return
		}
	}
}
