package analyzer

import (
	"image"
	"image/color"
)

// maxSamples bounds the pixels read per measurement; larger regions are
// sampled on a regular grid.
const maxSamples = 4096

// MeanLuma returns the mean Rec. 601 luma of img inside rect, in [0,1].
// An empty intersection yields 0.
func MeanLuma(img image.Image, rect image.Rectangle) float64 {
	if img == nil {
		return 0
	}
	r := rect.Intersect(img.Bounds())
	if r.Empty() {
		return 0
	}

	step := 1
	for (r.Dx()/step)*(r.Dy()/step) > maxSamples {
		step++
	}

	var sum float64
	var n int
	for y := r.Min.Y; y < r.Max.Y; y += step {
		for x := r.Min.X; x < r.Max.X; x += step {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			sum += float64(g.Y)
			n++
		}
	}
	return sum / float64(n) / 255
}

// Contrast is the WCAG contrast ratio between two relative luminances.
func Contrast(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	return (a + 0.05) / (b + 0.05)
}
