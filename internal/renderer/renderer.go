package renderer

import (
	"log/slog"

	"github.com/gogpu/gg"
)

// FrameSet is a read-only view of decoded frames. A missing frame is a
// hole and reports ok == false.
type FrameSet interface {
	Len() int
	Frame(i int) (*gg.ImageBuf, bool)
}

// Renderer keeps the surface showing the frame for the current index.
// A frame is only painted when it is present; on a hole the surface keeps
// whatever it showed before.
type Renderer struct {
	canvas  Canvas
	index   int
	painted int
	logger  *slog.Logger
}

func New(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{painted: -1, logger: logger}
}

// Mount attaches the surface. Until then Render is a no-op.
func (r *Renderer) Mount(c Canvas) {
	r.canvas = c
	r.painted = -1
}

// Unmount detaches the surface.
func (r *Renderer) Unmount() {
	r.canvas = nil
	r.painted = -1
}

func (r *Renderer) Mounted() bool { return r.canvas != nil }

// Index is the last requested frame index.
func (r *Renderer) Index() int { return r.index }

// Painted is the index currently on the surface, or -1.
func (r *Renderer) Painted() int { return r.painted }

// Render records index as current and paints it if possible. It reports
// whether a draw happened.
func (r *Renderer) Render(index int, frames FrameSet) bool {
	r.index = index
	return r.paint(frames)
}

// Resize changes the surface size and repaints the current index.
func (r *Renderer) Resize(w, h int, frames FrameSet) error {
	if r.canvas == nil {
		return nil
	}
	if err := r.canvas.Resize(w, h); err != nil {
		return err
	}
	r.painted = -1
	r.paint(frames)
	return nil
}

func (r *Renderer) paint(frames FrameSet) bool {
	if r.canvas == nil || frames == nil {
		return false
	}
	w, h := r.canvas.Size()
	if w <= 0 || h <= 0 {
		return false
	}
	img, ok := frames.Frame(r.index)
	if !ok || img == nil {
		return false
	}
	iw, ih := img.Bounds()
	p := CoverFit(w, h, iw, ih)
	if p.Scale <= 0 {
		r.logger.Debug("frame has no area", "index", r.index)
		return false
	}
	r.canvas.Clear()
	r.canvas.DrawFrame(img, p)
	r.painted = r.index
	return true
}
