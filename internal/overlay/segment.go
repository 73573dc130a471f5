package overlay

import "github.com/ivlev/scrollreel/internal/config"

var (
	// OpacityCurve fades in, holds, fades out.
	OpacityCurve = []float64{0, 1, 1, 0}
	// offsetShape is scaled by a block's offset distance: enter from
	// below, hold, leave upward.
	offsetShape = []float64{1, 0, 0, -1}
)

// Segment binds one text block to a progress window.
type Segment struct {
	Title       string
	Subtitle    string
	CTA         string
	Theme       string
	Breakpoints []float64
	Opacity     []float64
	Offset      []float64
}

// NewSegment builds a segment with the stock fade and an offset of
// distance pixels.
func NewSegment(title, subtitle string, breakpoints []float64, distance float64) Segment {
	offset := make([]float64, len(offsetShape))
	for i, v := range offsetShape {
		offset[i] = v * distance
	}
	return Segment{
		Title:       title,
		Subtitle:    subtitle,
		Breakpoints: breakpoints,
		Opacity:     OpacityCurve,
		Offset:      offset,
	}
}

// SegmentsFromConfig converts configured overlays.
func SegmentsFromConfig(overlays []config.Overlay) []Segment {
	segments := make([]Segment, 0, len(overlays))
	for _, o := range overlays {
		s := NewSegment(o.Title, o.Subtitle, o.Breakpoints, o.Offset)
		s.CTA = o.CTA
		s.Theme = o.Theme
		segments = append(segments, s)
	}
	return segments
}

// DefaultSegments returns the three stock blocks.
func DefaultSegments() []Segment {
	return SegmentsFromConfig(config.DefaultOverlays())
}

// Hold returns the middle of the fully visible window.
func (s Segment) Hold() float64 {
	if len(s.Breakpoints) < 4 {
		return 0
	}
	return (s.Breakpoints[1] + s.Breakpoints[2]) / 2
}
