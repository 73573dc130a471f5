package overlay

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ivlev/scrollreel/internal/analyzer"
)

// Text sizes as fractions of the surface height.
const (
	titleScale    = 1.0 / 12
	subtitleScale = 1.0 / 28
	qrScale       = 1.0 / 6
)

// Painter draws block states onto a composed surface. Titles use Go Bold,
// subtitles Go Regular; both are centred horizontally and rest on the
// vertical centre line shifted by the block's offset.
type Painter struct {
	segments []Segment
	pickers  []analyzer.Picker
	logger   *slog.Logger

	bold    *text.FontSource
	regular *text.FontSource
	faces   map[faceKey]text.Face
	qr      map[qrKey]*gg.ImageBuf
}

type faceKey struct {
	bold bool
	size float64
}

type qrKey struct {
	content string
	size    int
}

func NewPainter(segments []Segment, logger *slog.Logger) (*Painter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load bold font: %w", err)
	}
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}

	pickers := make([]analyzer.Picker, len(segments))
	for i, s := range segments {
		p, err := analyzer.NewPicker(s.Theme)
		if err != nil {
			return nil, fmt.Errorf("overlay %d: %w", i, err)
		}
		pickers[i] = p
	}

	return &Painter{
		segments: segments,
		pickers:  pickers,
		logger:   logger,
		bold:     bold,
		regular:  regular,
		faces:    make(map[faceKey]text.Face),
		qr:       make(map[qrKey]*gg.ImageBuf),
	}, nil
}

func (p *Painter) face(bold bool, size float64) text.Face {
	size = math.Round(size)
	k := faceKey{bold, size}
	if f, ok := p.faces[k]; ok {
		return f
	}
	src := p.regular
	if bold {
		src = p.bold
	}
	f := src.Face(size)
	p.faces[k] = f
	return f
}

// Layout is the band a block occupies at rest, before its offset.
func Layout(w, h int, withCTA bool) image.Rectangle {
	title := float64(h) * titleScale
	sub := float64(h) * subtitleScale
	top := float64(h)/2 - title
	bottom := float64(h)/2 + 2*sub
	if withCTA {
		bottom += float64(h) * qrScale
	}
	return image.Rect(0, int(top), w, int(math.Ceil(bottom)))
}

// Paint draws every visible block. States and segments pair by index.
func (p *Painter) Paint(dc *gg.Context, states []BlockState) error {
	w, h := dc.Width(), dc.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	for i, st := range states {
		if i >= len(p.segments) || !st.Visible() {
			continue
		}
		if err := p.paintBlock(dc, p.segments[i], p.pickers[i], st, w, h); err != nil {
			return fmt.Errorf("overlay %d: %w", i, err)
		}
	}
	return nil
}

func (p *Painter) paintBlock(dc *gg.Context, s Segment, picker analyzer.Picker, st BlockState, w, h int) error {
	band := Layout(w, h, s.CTA != "").Add(image.Pt(0, int(st.Offset)))
	c := picker.Pick(dc.ResizeTarget(), band)
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, st.Opacity)

	cx := float64(w) / 2
	cy := float64(h)/2 + st.Offset
	titleSize := float64(h) * titleScale
	subSize := float64(h) * subtitleScale

	if s.Title != "" {
		dc.SetFont(p.face(true, titleSize))
		dc.DrawStringAnchored(s.Title, cx, cy, 0.5, 0)
	}
	if s.Subtitle != "" {
		dc.SetFont(p.face(false, subSize))
		dc.DrawStringAnchored(s.Subtitle, cx, cy+1.6*subSize, 0.5, 0)
	}
	if s.CTA == "" {
		return nil
	}

	size := int(float64(h) * qrScale)
	if size < 21 {
		p.logger.Debug("surface too small for call-to-action code", "height", h)
		return nil
	}
	img, err := p.qrCode(s.CTA, size)
	if err != nil {
		return err
	}
	dc.DrawImageEx(img, gg.DrawImageOptions{
		X:             cx - float64(size)/2,
		Y:             cy + 2.4*subSize,
		Interpolation: gg.InterpNearest,
		Opacity:       st.Opacity,
		BlendMode:     gg.BlendNormal,
	})
	return nil
}

func (p *Painter) qrCode(content string, size int) (*gg.ImageBuf, error) {
	k := qrKey{content, size}
	if img, ok := p.qr[k]; ok {
		return img, nil
	}
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode call-to-action: %w", err)
	}
	img := gg.ImageBufFromImage(q.Image(size))
	p.qr[k] = img
	return img, nil
}

// Close releases the font sources.
func (p *Painter) Close() error {
	if err := p.bold.Close(); err != nil {
		return err
	}
	return p.regular.Close()
}
