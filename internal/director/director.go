package director

import (
	"fmt"
	"sort"
)

// Director generates scroll scripts that tour the overlay windows
type Director struct {
	ViewportWidth  int
	ViewportHeight int
	MinDwell       float64 // Minimum time per hold (seconds)
	MaxDwell       float64 // Maximum time per hold (seconds)
	Settle         float64 // Time left after the last step for smoothing to finish
}

// NewDirector creates a new Director with default settings
func NewDirector(viewportWidth, viewportHeight int) *Director {
	return &Director{
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		MinDwell:       1.0,
		MaxDwell:       3.0,
		Settle:         1.5,
	}
}

// GenerateScript creates a tour that holds at the top, scrolls into each
// hold point in order, flips the viewport to portrait and back around the
// middle hold, and ends at the bottom of the region.
func (d *Director) GenerateScript(holds []float64, totalDuration float64) (*Script, error) {
	if len(holds) == 0 {
		return nil, fmt.Errorf("no hold points")
	}

	sorted := make([]float64, len(holds))
	copy(sorted, holds)
	sort.Float64s(sorted)

	// One dwell per hold plus the final scroll to the bottom
	dwellTime := d.calculateDwellTime(totalDuration, len(sorted)+1)

	steps := []Step{{Time: 0, Action: ActionJump, Progress: 0, Note: "top"}}
	currentTime := 1.0 // 1s intro
	middle := len(sorted) / 2

	for i, p := range sorted {
		steps = append(steps, Step{
			Time:     currentTime,
			Action:   ActionScrollTo,
			Progress: p,
			Note:     fmt.Sprintf("hold_%d", i+1),
		})
		if i == middle && d.ViewportWidth > 0 && d.ViewportHeight > 0 {
			steps = append(steps,
				Step{
					Time:   currentTime + dwellTime/3,
					Action: ActionResize,
					Width:  d.ViewportHeight,
					Height: d.ViewportWidth,
					Note:   "portrait",
				},
				Step{
					Time:   currentTime + 2*dwellTime/3,
					Action: ActionResize,
					Width:  d.ViewportWidth,
					Height: d.ViewportHeight,
					Note:   "landscape",
				},
			)
		}
		currentTime += dwellTime
	}

	steps = append(steps, Step{Time: currentTime, Action: ActionScrollTo, Progress: 1, Note: "bottom"})

	duration := totalDuration
	if end := currentTime + d.Settle; end > duration {
		duration = end
	}

	script := &Script{
		Version:  "1.0",
		Duration: duration,
		Steps:    steps,
	}
	return script, script.Validate()
}

// calculateDwellTime determines how long to stay at each hold point
func (d *Director) calculateDwellTime(totalDuration float64, holdCount int) float64 {
	// Reserve time for the intro and the final settle
	availableDuration := totalDuration - 1.0 - d.Settle

	if availableDuration <= 0 {
		availableDuration = totalDuration
	}

	dwellTime := availableDuration / float64(holdCount)

	// Clamp to min/max
	if dwellTime < d.MinDwell {
		dwellTime = d.MinDwell
	}
	if dwellTime > d.MaxDwell {
		dwellTime = d.MaxDwell
	}

	return dwellTime
}
