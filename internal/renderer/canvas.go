package renderer

import (
	"image"

	"github.com/gogpu/gg"
)

// Canvas is the drawing surface the renderer paints on.
type Canvas interface {
	Size() (w, h int)
	Resize(w, h int) error
	Clear()
	DrawFrame(img *gg.ImageBuf, p Placement)
	Image() image.Image
}

// GGCanvas is a Canvas backed by a gg software context.
type GGCanvas struct {
	dc         *gg.Context
	background gg.RGBA
}

func NewGGCanvas(w, h int) *GGCanvas {
	return &GGCanvas{dc: gg.NewContext(w, h), background: gg.Black}
}

func (c *GGCanvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// Resize reallocates the backing pixmap and clears it.
func (c *GGCanvas) Resize(w, h int) error {
	if err := c.dc.Resize(w, h); err != nil {
		return err
	}
	c.Clear()
	return nil
}

func (c *GGCanvas) Clear() {
	c.dc.ClearWithColor(c.background)
}

// DrawFrame samples the visible crop of img and scales it onto the whole
// surface with bicubic interpolation.
func (c *GGCanvas) DrawFrame(img *gg.ImageBuf, p Placement) {
	w, h := c.Size()
	iw, ih := img.Bounds()
	crop := p.Crop(w, h, iw, ih)
	c.dc.DrawImageEx(img, gg.DrawImageOptions{
		DstWidth:      float64(w),
		DstHeight:     float64(h),
		SrcRect:       &crop,
		Interpolation: gg.InterpBicubic,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
}

func (c *GGCanvas) Image() image.Image {
	return c.dc.Image()
}

// Context exposes the underlying gg context for compositing.
func (c *GGCanvas) Context() *gg.Context {
	return c.dc
}

func (c *GGCanvas) Close() error {
	return c.dc.Close()
}
