// Package scroll turns scroll input into a smoothed progress value over a
// scroll-bound region.
package scroll

// Region is a block of fixed pixel height that pins the frame surface
// while it scrolls past. Progress is 0 when the region's top reaches the
// viewport top and 1 when its bottom reaches the viewport bottom.
type Region struct {
	Top      float64
	Height   float64
	Viewport float64
}

// NewRegion returns a region of factor viewport heights starting at top.
func NewRegion(top, factor, viewport float64) Region {
	return Region{Top: top, Height: factor * viewport, Viewport: viewport}
}

// Distance is the scroll distance that spans progress 0 to 1.
func (r Region) Distance() float64 {
	return r.Height - r.Viewport
}

// Limit is the largest reachable scroll offset.
func (r Region) Limit() float64 {
	return r.Top + max(r.Distance(), 0)
}

// Progress maps a scroll offset into [0,1].
func (r Region) Progress(offset float64) float64 {
	d := r.Distance()
	if d <= 0 {
		if offset >= r.Top {
			return 1
		}
		return 0
	}
	return clamp01((offset - r.Top) / d)
}

// Offset is the inverse of Progress.
func (r Region) Offset(progress float64) float64 {
	return r.Top + clamp01(progress)*max(r.Distance(), 0)
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
