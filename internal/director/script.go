package director

import (
	"errors"
	"fmt"
	"sort"
)

// Action names a scripted input.
type Action string

const (
	ActionScrollTo Action = "scroll_to" // animate to Progress
	ActionJump     Action = "jump"      // move to Progress immediately
	ActionWheel    Action = "wheel"     // wheel delta DX/DY pixels
	ActionTouch    Action = "touch"     // touch drag DX/DY pixels
	ActionResize   Action = "resize"    // change the viewport to Width x Height
)

var ErrInvalidScript = errors.New("invalid script")

// Script is a timed list of inputs played against the presenter
type Script struct {
	Version  string  `yaml:"version"`
	Duration float64 `yaml:"duration"` // Total duration in seconds
	Steps    []Step  `yaml:"steps"`
}

// Step is one input at a specific time
type Step struct {
	Time     float64 `yaml:"time"` // Time offset in seconds
	Action   Action  `yaml:"action"`
	Progress float64 `yaml:"progress,omitempty"`
	DX       float64 `yaml:"dx,omitempty"`
	DY       float64 `yaml:"dy,omitempty"`
	Width    int     `yaml:"width,omitempty"`
	Height   int     `yaml:"height,omitempty"`
	Note     string  `yaml:"note,omitempty"` // Description of the step
}

// Validate checks actions and arguments and sorts steps by time.
func (s *Script) Validate() error {
	if s.Duration < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if st.Time < 0 {
			return fmt.Errorf("%w: step %d has negative time", ErrInvalidScript, i)
		}
		switch st.Action {
		case ActionScrollTo, ActionJump:
			if st.Progress < 0 || st.Progress > 1 {
				return fmt.Errorf("%w: step %d progress %.3f outside [0,1]", ErrInvalidScript, i, st.Progress)
			}
		case ActionWheel, ActionTouch:
		case ActionResize:
			if st.Width <= 0 || st.Height <= 0 {
				return fmt.Errorf("%w: step %d resize needs positive width and height", ErrInvalidScript, i)
			}
		default:
			return fmt.Errorf("%w: step %d unknown action %q", ErrInvalidScript, i, st.Action)
		}
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].Time < s.Steps[j].Time })
	return nil
}

// Due returns the steps with from < time <= to. A player starts its first
// window below zero so steps at time 0 fire once.
func (s *Script) Due(from, to float64) []Step {
	var due []Step
	for _, st := range s.Steps {
		if st.Time > to {
			break
		}
		if st.Time > from {
			due = append(due, st)
		}
	}
	return due
}

// End is the script duration, or the last step time if longer.
func (s *Script) End() float64 {
	end := s.Duration
	if n := len(s.Steps); n > 0 && s.Steps[n-1].Time > end {
		end = s.Steps[n-1].Time
	}
	return end
}
