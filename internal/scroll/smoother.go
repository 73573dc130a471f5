package scroll

import (
	"fmt"
)

type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "vertical", "":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	default:
		return Vertical, fmt.Errorf("unknown orientation %q", s)
	}
}

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// SmootherOptions mirrors the smooth-scroll settings: animation duration
// in seconds, easing curve, axis, and input multipliers.
type SmootherOptions struct {
	Duration        float64
	Easing          Easing
	Orientation     Orientation
	WheelMultiplier float64
	TouchMultiplier float64
}

func DefaultSmootherOptions() SmootherOptions {
	return SmootherOptions{
		Duration:        1.2,
		Easing:          ExpoOut,
		Orientation:     Vertical,
		WheelMultiplier: 1,
		TouchMultiplier: 2,
	}
}

// Smoother eases the scroll offset toward its target. Every new target
// restarts the animation from the current offset.
type Smoother struct {
	opts SmootherOptions

	limit     float64
	offset    float64
	from      float64
	target    float64
	elapsed   float64
	animating bool
}

func NewSmoother(opts SmootherOptions, limit float64) *Smoother {
	if opts.Easing == nil {
		opts.Easing = ExpoOut
	}
	if opts.WheelMultiplier == 0 {
		opts.WheelMultiplier = 1
	}
	if opts.TouchMultiplier == 0 {
		opts.TouchMultiplier = 2
	}
	return &Smoother{opts: opts, limit: max(limit, 0)}
}

func (s *Smoother) Offset() float64 { return s.offset }

func (s *Smoother) Target() float64 { return s.target }

func (s *Smoother) Limit() float64 { return s.limit }

func (s *Smoother) Animating() bool { return s.animating }

func (s *Smoother) clamp(v float64) float64 {
	return min(max(v, 0), s.limit)
}

// SetLimit changes the reachable range; offset and target keep their
// pixel values, clamped to the new range.
func (s *Smoother) SetLimit(limit float64) {
	s.limit = max(limit, 0)
	s.offset = s.clamp(s.offset)
	s.from = s.clamp(s.from)
	s.target = s.clamp(s.target)
}

// ScrollTo animates toward offset.
func (s *Smoother) ScrollTo(offset float64) {
	target := s.clamp(offset)
	if s.opts.Duration <= 0 {
		s.Jump(target)
		return
	}
	s.from = s.offset
	s.target = target
	s.elapsed = 0
	s.animating = s.from != s.target
}

// Jump moves to offset immediately, cancelling any animation.
func (s *Smoother) Jump(offset float64) {
	s.offset = s.clamp(offset)
	s.from = s.offset
	s.target = s.offset
	s.elapsed = 0
	s.animating = false
}

// Wheel applies a wheel delta along the configured axis.
func (s *Smoother) Wheel(dx, dy float64) {
	s.ScrollTo(s.target + s.axis(dx, dy)*s.opts.WheelMultiplier)
}

// Touch applies a touch drag delta along the configured axis.
func (s *Smoother) Touch(dx, dy float64) {
	s.ScrollTo(s.target + s.axis(dx, dy)*s.opts.TouchMultiplier)
}

func (s *Smoother) axis(dx, dy float64) float64 {
	if s.opts.Orientation == Horizontal {
		return dx
	}
	return dy
}

// Tick advances the animation by dt seconds and reports whether the
// offset moved.
func (s *Smoother) Tick(dt float64) bool {
	if !s.animating || dt <= 0 {
		return false
	}
	prev := s.offset
	s.elapsed += dt
	t := s.elapsed / s.opts.Duration
	if t >= 1 {
		s.offset = s.target
		s.animating = false
	} else {
		s.offset = s.from + (s.target-s.from)*s.opts.Easing(t)
	}
	return s.offset != prev
}
