// Package compress implements §4.6's coordinator (component I): the
// top-level entry point that drives a ClipContext segment by segment
// through range extraction, priming, refinement and final quantization.
package compress

import (
	"github.com/mogaika/ganim/level"
	"github.com/mogaika/ganim/track"
)

// Settings is §6's CompressionSettings input record.
type Settings struct {
	RotationFormat    track.RotationFormat
	TranslationFormat track.VectorFormat
	ScaleFormat       track.VectorFormat

	// SegmentingEnabled is read by the caller that splits a clip into
	// segments before constructing the ClipContext; the coordinator
	// itself is segment-count agnostic and simply iterates whatever
	// Segments the context already holds.
	SegmentingEnabled bool

	ErrorThreshold float64
	Level          level.Level
}
