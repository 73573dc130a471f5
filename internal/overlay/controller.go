// Package overlay drives the text blocks layered over the frame sequence.
package overlay

// BlockState is the visual state of one block at a progress value.
type BlockState struct {
	Opacity float64
	Offset  float64 // vertical pixels; positive is below rest
}

// Visible reports whether the block needs painting.
func (b BlockState) Visible() bool {
	return b.Opacity > 0
}

// Controller evaluates every segment against progress.
type Controller struct {
	segments []Segment
}

func NewController(segments []Segment) *Controller {
	return &Controller{segments: segments}
}

func (c *Controller) Segments() []Segment {
	return c.segments
}

// Evaluate returns one state per segment, in segment order.
func (c *Controller) Evaluate(p float64) []BlockState {
	states := make([]BlockState, len(c.segments))
	for i, s := range c.segments {
		states[i] = BlockState{
			Opacity: Interpolate(s.Breakpoints, s.Opacity, p),
			Offset:  Interpolate(s.Breakpoints, s.Offset, p),
		}
	}
	return states
}
