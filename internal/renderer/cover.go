// Package renderer paints sequence frames onto a drawing surface.
package renderer

import (
	"image"
	"math"
)

// Placement is where a frame lands on the surface after cover-fit scaling.
// X and Y are zero or negative: the overflow is split evenly on both sides.
type Placement struct {
	X, Y          float64
	Width, Height float64
	Scale         float64
}

// CoverFit scales an iw x ih image uniformly so it covers an sw x sh
// surface, centred. The scaled size equals the surface on one axis and
// exceeds or equals it on the other.
func CoverFit(sw, sh, iw, ih int) Placement {
	if sw <= 0 || sh <= 0 || iw <= 0 || ih <= 0 {
		return Placement{}
	}
	scale := math.Max(float64(sw)/float64(iw), float64(sh)/float64(ih))
	w := float64(iw) * scale
	h := float64(ih) * scale
	return Placement{
		X:      (float64(sw) - w) / 2,
		Y:      (float64(sh) - h) / 2,
		Width:  w,
		Height: h,
		Scale:  scale,
	}
}

// Crop is the part of the source image that stays visible on the surface.
// Drawing that rectangle scaled to the full surface is equivalent to
// drawing the whole image at the placement and clipping.
func (p Placement) Crop(sw, sh, iw, ih int) image.Rectangle {
	if p.Scale <= 0 {
		return image.Rect(0, 0, iw, ih)
	}
	cw := min(int(math.Round(float64(sw)/p.Scale)), iw)
	ch := min(int(math.Round(float64(sh)/p.Scale)), ih)
	cw, ch = max(cw, 1), max(ch, 1)
	x := (iw - cw) / 2
	y := (ih - ch) / 2
	return image.Rect(x, y, x+cw, y+ch)
}
