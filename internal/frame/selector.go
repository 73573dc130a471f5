// Package frame maps scroll progress to a frame index.
package frame

import "math"

// Index returns round(progress*(n-1)) clamped to [0, n-1]. Progress outside
// [0,1] or NaN is clamped; n <= 0 yields 0.
func Index(progress float64, n int) int {
	if n <= 0 || math.IsNaN(progress) {
		return 0
	}
	i := int(math.Round(progress * float64(n-1)))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// Selector remembers the last selected index so callers only act on
// changes.
type Selector struct {
	n      int
	last   int
	primed bool
}

func NewSelector(n int) *Selector {
	return &Selector{n: n}
}

func (s *Selector) Len() int { return s.n }

// Select returns the index for progress and whether it differs from the
// previous call. The first call always reports a change.
func (s *Selector) Select(progress float64) (int, bool) {
	i := Index(progress, s.n)
	changed := !s.primed || i != s.last
	s.last = i
	s.primed = true
	return i, changed
}

// Last is the most recently selected index.
func (s *Selector) Last() int { return s.last }
