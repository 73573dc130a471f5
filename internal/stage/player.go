// Package stage wires the loader, scroll driver, renderer and overlays into
// a headless presenter, and plays scroll scripts through it.
package stage

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/gogpu/gg"

	"github.com/ivlev/scrollreel/internal/config"
	"github.com/ivlev/scrollreel/internal/director"
	"github.com/ivlev/scrollreel/internal/frame"
	"github.com/ivlev/scrollreel/internal/loader"
	"github.com/ivlev/scrollreel/internal/overlay"
	"github.com/ivlev/scrollreel/internal/renderer"
	"github.com/ivlev/scrollreel/internal/scroll"
	"github.com/ivlev/scrollreel/internal/source"
)

var ErrClosed = errors.New("player closed")

// Player is the presentation core. Tick, Resize, Input and Compose must be
// called from one goroutine; the loader publishes from its own.
type Player struct {
	logger *slog.Logger

	loader     *loader.Loader
	driver     *scroll.Driver
	selector   *frame.Selector
	renderer   *renderer.Renderer
	controller *overlay.Controller
	painter    *overlay.Painter

	canvas  *renderer.GGCanvas
	compose *gg.Context

	unsubscribe func()
	cancel      context.CancelFunc
	done        chan error

	snap     *loader.Snapshot
	progress float64
	closed   bool
}

func NewPlayer(cfg *config.Config, src source.Source, logger *slog.Logger) (*Player, error) {
	if logger == nil {
		logger = slog.Default()
	}
	driver, err := scroll.FromConfig(cfg.Scroll, cfg.Viewport)
	if err != nil {
		return nil, fmt.Errorf("scroll: %w", err)
	}
	segments := overlay.SegmentsFromConfig(cfg.Overlays)
	painter, err := overlay.NewPainter(segments, logger)
	if err != nil {
		return nil, err
	}

	p := &Player{
		logger: logger,
		loader: loader.New(src,
			loader.WithBatchSize(cfg.Sequence.BatchSize),
			loader.WithSettleDelay(time.Duration(cfg.Sequence.SettleDelay*float64(time.Second))),
			loader.WithLogger(logger),
		),
		driver:     driver,
		selector:   frame.NewSelector(src.Len()),
		renderer:   renderer.New(logger),
		controller: overlay.NewController(segments),
		painter:    painter,
	}
	p.snap = p.loader.Snapshot()
	p.unsubscribe = driver.Subscribe(p.onProgress)
	return p, nil
}

func (p *Player) onProgress(progress float64) {
	p.progress = progress
	if i, changed := p.selector.Select(progress); changed {
		p.renderer.Render(i, p.snap)
	}
}

// Mount creates the frame surface at w x h.
func (p *Player) Mount(w, h int) error {
	if p.closed {
		return ErrClosed
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", w, h)
	}
	p.canvas = renderer.NewGGCanvas(w, h)
	p.canvas.Clear()
	p.compose = gg.NewContext(w, h)
	p.renderer.Mount(p.canvas)
	p.driver.SetViewport(w, h)
	return nil
}

// Start launches the loader in the background.
func (p *Player) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan error, 1)
	go func() {
		p.done <- p.loader.Load(ctx)
	}()
}

// Ready is closed once the initial content is ready.
func (p *Player) Ready() <-chan struct{} {
	return p.loader.Ready()
}

// Loaded delivers the loader's result once every batch has settled.
func (p *Player) Loaded() <-chan error {
	return p.done
}

// Tick advances scroll smoothing by dt seconds and keeps the surface in
// sync with the selected frame.
func (p *Player) Tick(dt float64) {
	if p.closed {
		return
	}
	p.snap = p.loader.Snapshot()
	p.driver.Tick(dt)

	// The current frame may have arrived since it was selected.
	if i := p.renderer.Index(); p.renderer.Painted() != i {
		if p.renderer.Render(i, p.snap) {
			p.logger.Debug("late frame painted", "index", i)
		}
	}
}

// Resize resizes the surface, repaints the current frame, then updates
// the scroll geometry.
func (p *Player) Resize(w, h int) error {
	if p.closed {
		return ErrClosed
	}
	if err := p.renderer.Resize(w, h, p.snap); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	p.driver.SetViewport(w, h)
	return nil
}

// Input applies one scripted step.
func (p *Player) Input(st director.Step) error {
	switch st.Action {
	case director.ActionScrollTo:
		p.driver.ScrollTo(st.Progress)
	case director.ActionJump:
		p.driver.Jump(st.Progress)
	case director.ActionWheel:
		p.driver.Wheel(st.DX, st.DY)
	case director.ActionTouch:
		p.driver.Touch(st.DX, st.DY)
	case director.ActionResize:
		return p.Resize(st.Width, st.Height)
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Compose returns the frame layer with overlays painted on top. The frame
// layer itself is never drawn on, so a retained frame stays clean.
func (p *Player) Compose() (image.Image, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if p.canvas == nil {
		return nil, errors.New("player not mounted")
	}
	w, h := p.canvas.Size()
	if err := p.compose.Resize(w, h); err != nil {
		return nil, err
	}
	copy(p.compose.ResizeTarget().Data(), p.canvas.Context().ResizeTarget().Data())

	if err := p.painter.Paint(p.compose, p.controller.Evaluate(p.progress)); err != nil {
		return nil, err
	}
	return p.compose.Image(), nil
}

func (p *Player) Progress() float64 { return p.progress }

// Index is the selected frame index.
func (p *Player) Index() int { return p.renderer.Index() }

// Painted is the frame index on the surface, or -1.
func (p *Player) Painted() int { return p.renderer.Painted() }

func (p *Player) Snapshot() *loader.Snapshot { return p.snap }

func (p *Player) Driver() *scroll.Driver { return p.driver }

// Close stops scroll notifications and the loader and releases the
// surfaces. Frames that arrive later are dropped.
func (p *Player) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.unsubscribe()
	p.driver.Destroy()
	if p.cancel != nil {
		p.cancel()
	}
	p.renderer.Unmount()

	var errs []error
	if p.canvas != nil {
		errs = append(errs, p.canvas.Close())
	}
	if p.compose != nil {
		errs = append(errs, p.compose.Close())
	}
	errs = append(errs, p.painter.Close())
	return errors.Join(errs...)
}
