// Package analyzer measures frame content to keep overlays legible.
package analyzer

import (
	"fmt"
	"image"
	"image/color"
)

var (
	Light = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	Dark  = color.RGBA{R: 18, G: 18, B: 18, A: 255}
)

// Picker chooses a text colour for a region of an image.
type Picker interface {
	Pick(img image.Image, rect image.Rectangle) color.RGBA
}

// ContrastPicker picks whichever of Light or Dark contrasts more with the
// region's mean luma.
type ContrastPicker struct{}

func (ContrastPicker) Pick(img image.Image, rect image.Rectangle) color.RGBA {
	l := MeanLuma(img, rect)
	if Contrast(l, luminance(Light)) >= Contrast(l, luminance(Dark)) {
		return Light
	}
	return Dark
}

// FixedPicker always returns the same colour.
type FixedPicker struct {
	Color color.RGBA
}

func (p FixedPicker) Pick(image.Image, image.Rectangle) color.RGBA {
	return p.Color
}

// NewPicker creates a picker for a theme name: "auto" (or empty), "light"
// or "dark". Light and dark name the text colour.
func NewPicker(theme string) (Picker, error) {
	switch theme {
	case "auto", "":
		return ContrastPicker{}, nil
	case "light":
		return FixedPicker{Color: Light}, nil
	case "dark":
		return FixedPicker{Color: Dark}, nil
	default:
		return nil, fmt.Errorf("unknown overlay theme: %s", theme)
	}
}

func luminance(c color.RGBA) float64 {
	g := color.GrayModel.Convert(c).(color.Gray)
	return float64(g.Y) / 255
}
