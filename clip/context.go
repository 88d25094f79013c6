package clip

import (
	"github.com/google/uuid"
	"github.com/mogaika/ganim/track"
	"github.com/mogaika/ganim/xform"
	"github.com/pkg/errors"
)

// BoneMetadata is per-bone data that doesn't vary across segments: parent
// index, the error threshold used when this bone is the search target, and
// its shell distance (§4.4.5).
//
// Precision follows the convention compress.Compress relies on: a negative
// value means "not set by the caller, inherit CompressionSettings.
// ErrorThreshold"; zero is a legitimate explicit threshold that forces the
// §4.4.3 saturation fallback to run to completion (§8 boundary 10), not a
// sentinel for "unset".
type BoneMetadata struct {
	ParentIndex   int // -1 for root
	Precision     float64
	ShellDistance float64
}

// Context is §3's ClipContext: the owner of a clip's segments, per-bone
// ranges, metadata and top-level flags. A Context is constructed once from
// raw input; ranges are computed once; normalization mutates streams once;
// after that the coordinator drives one Segment at a time.
type Context struct {
	ID uuid.UUID

	Segments     []Segment
	BoneRanges   [3]map[int]track.Range // [rotation, translation, scale][boneIndex]
	BoneMeta     []BoneMetadata

	SampleRate   float64
	ClipDuration float64

	HasScale         bool
	HasAdditiveBase  bool
	AdditiveBase     []Segment // parallel segments, read-only, never quantized

	// RawLocal/RawObject are set by set_segment (§4.6) for the segment
	// currently being searched: one entry per [sample][bone].
	rawLocal  [][]xform.Transform
	rawObject [][]xform.Transform

	currentSegment int
}

// New constructs a Context from fully populated segments and per-bone
// metadata. It performs the boundary validation described in spec.md §7:
// reject at the boundary, never enter the search with malformed input.
func New(segments []Segment, boneMeta []BoneMetadata, sampleRate, clipDuration float64, hasScale bool) (*Context, error) {
	if len(segments) == 0 {
		return nil, errors.New("clip: at least one segment is required")
	}
	numBones := len(boneMeta)
	if numBones == 0 {
		return nil, errors.New("clip: at least one bone is required")
	}
	for si, seg := range segments {
		if seg.NumSamples <= 0 {
			return nil, errors.Errorf("clip: segment %d has num_samples=%d", si, seg.NumSamples)
		}
		if len(seg.Bones) != numBones {
			return nil, errors.Errorf("clip: segment %d has %d bone streams, want %d", si, len(seg.Bones), numBones)
		}
	}
	if sampleRate <= 0 {
		return nil, errors.Errorf("clip: sample_rate must be positive, got %v", sampleRate)
	}

	c := &Context{
		ID:           uuid.New(),
		Segments:     segments,
		BoneMeta:     boneMeta,
		SampleRate:   sampleRate,
		ClipDuration: clipDuration,
		HasScale:     hasScale,
	}
	c.BoneRanges[ChannelRotation] = map[int]track.Range{}
	c.BoneRanges[ChannelTranslation] = map[int]track.Range{}
	c.BoneRanges[ChannelScale] = map[int]track.Range{}
	return c, nil
}

// NumBones returns the number of bones tracked by this clip.
func (c *Context) NumBones() int {
	return len(c.BoneMeta)
}

// BoneChain returns the root-to-self inclusive chain of bone indices for
// target, per §4.4.3's "compute its bone chain".
func (c *Context) BoneChain(target int) []int {
	chain := []int{target}
	for p := c.BoneMeta[target].ParentIndex; p >= 0; p = c.BoneMeta[p].ParentIndex {
		chain = append(chain, p)
	}
	// reverse into root..target order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// CurrentSegmentIndex returns the index most recently passed to
// SetSegment.
func (c *Context) CurrentSegmentIndex() int {
	return c.currentSegment
}
