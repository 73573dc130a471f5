package scroll

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// restDelta is the distance and speed below which the spring snaps to its
// target.
const restDelta = 1e-4

// Spring smooths progress with a damped harmonic oscillator. A damping
// ratio of 1 is critically damped and never overshoots.
type Spring struct {
	frequency float64
	damping   float64

	dt     float64
	spring harmonica.Spring
	pos    float64
	vel    float64
	primed bool
}

func NewSpring(frequency, damping float64) *Spring {
	return &Spring{frequency: frequency, damping: damping}
}

// Step advances the spring by dt seconds toward target and returns the
// new position. The first step snaps to target.
func (s *Spring) Step(dt, target float64) float64 {
	if !s.primed {
		s.Reset(target)
		return s.pos
	}
	if dt <= 0 {
		return s.pos
	}
	if dt != s.dt {
		s.dt = dt
		s.spring = harmonica.NewSpring(dt, s.frequency, s.damping)
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	if math.Abs(s.pos-target) < restDelta && math.Abs(s.vel) < restDelta {
		s.pos, s.vel = target, 0
	}
	return s.pos
}

// Reset places the spring at rest on v.
func (s *Spring) Reset(v float64) {
	s.pos, s.vel = v, 0
	s.primed = true
}

func (s *Spring) Position() float64 {
	return s.pos
}
