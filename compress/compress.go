package compress

import (
	"github.com/mogaika/ganim/clip"
	"github.com/mogaika/ganim/errormetric"
	"github.com/mogaika/ganim/logging"
	"github.com/mogaika/ganim/qctx"
	"github.com/mogaika/ganim/quantize"
	"github.com/mogaika/ganim/search"
	"github.com/mogaika/ganim/track"
	"github.com/pkg/errors"
)

// Compress implements §4.6's coordinator (component I) end to end: range
// extraction, normalization, per-segment priming/refinement, and final
// quantization. c is mutated in place; on return every non-default
// BoneStream channel holds a packed TrackStream ready for an external
// serializer. logger may be nil — every Printf call through it is then a
// no-op, matching the teacher's "pass (*Logger)(nil) to stay silent" idiom.
func Compress(c *clip.Context, settings Settings, logger *logging.Logger) error {
	if settings.ErrorThreshold < 0 {
		return errors.Errorf("compress: error_threshold must be >= 0, got %v", settings.ErrorThreshold)
	}

	logger.Printf("compress: clip %s: %d bones, %d segments", c.ID, c.NumBones(), len(c.Segments))

	for bone := range c.BoneMeta {
		if c.BoneMeta[bone].Precision < 0 {
			c.BoneMeta[bone].Precision = settings.ErrorThreshold
		}
	}

	c.ComputeBoneRanges()

	rotSearches := settings.RotationFormat.NeedsSearch()
	transSearches := settings.TranslationFormat.NeedsSearch()
	scaleSearches := c.HasScale && settings.ScaleFormat.NeedsSearch()

	if rotSearches {
		c.Normalize(clip.ChannelRotation)
	}
	if transSearches {
		c.Normalize(clip.ChannelTranslation)
	}
	if scaleSearches {
		c.Normalize(clip.ChannelScale)
	}

	anyVariable := rotSearches || transSearches || scaleSearches
	metric := errormetric.NewDefault(c.HasScale)
	qc := qctx.New(c, metric, settings.Level)
	rotationIsQuatFull := settings.RotationFormat == track.QuatFull

	for segIndex := range c.Segments {
		qc.SetSegment(segIndex)

		if anyVariable {
			search.PrimeLocal(qc, logger)
			search.RefineObject(qc, rotationIsQuatFull, logger)
		}

		quantize.Segment(c, segIndex, qc.BitRates, settings.RotationFormat, settings.TranslationFormat, settings.ScaleFormat, logger)
	}

	logger.Printf("compress: clip %s done", c.ID)
	return nil
}
