package scroll

import (
	"fmt"
	"math"
	"sort"
)

// Easing maps linear time t in [0,1] to eased progress.
type Easing func(t float64) float64

// ExpoOut is the default smooth-scroll curve: a fast start that settles
// asymptotically, capped at 1.
func ExpoOut(t float64) float64 {
	return math.Min(1, 1.001-math.Pow(2, -10*t))
}

func Linear(t float64) float64 {
	return t
}

func CubicOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

func QuartOut(t float64) float64 {
	return 1 - math.Pow(1-t, 4)
}

func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

var easings = map[string]Easing{
	"expo-out":    ExpoOut,
	"linear":      Linear,
	"cubic-out":   CubicOut,
	"quart-out":   QuartOut,
	"sine-in-out": SineInOut,
}

// LookupEasing resolves a named curve; the empty name is expo-out.
func LookupEasing(name string) (Easing, error) {
	if name == "" {
		return ExpoOut, nil
	}
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (known: %v)", name, EasingNames())
	}
	return e, nil
}

func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
