package scroll

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ivlev/scrollreel/internal/config"
)

var ErrDestroyed = errors.New("scroll driver destroyed")

// Listener receives every change of the smoothed progress.
type Listener func(progress float64)

// Source is what the presentation core consumes: a stream of progress
// values and a teardown that releases per-tick scheduling.
type Source interface {
	Subscribe(fn Listener) (unsubscribe func())
	Destroy()
}

type Options struct {
	RegionTop    float64
	RegionFactor float64
	ViewportW    int
	ViewportH    int
	Smoother     SmootherOptions
	// Spring smoothing on progress; nil disables it.
	Spring *SpringOptions
}

type SpringOptions struct {
	Frequency float64
	Damping   float64
}

// Driver owns the region, the offset smoother and the progress spring, and
// fans progress out to subscribers. Listeners are called synchronously
// from Tick, outside the driver's lock.
type Driver struct {
	mu sync.Mutex

	factor      float64
	regionTop   float64
	orientation Orientation
	region      Region
	smoother    *Smoother
	spring      *Spring

	listeners map[uint64]Listener
	nextID    uint64

	raw       float64
	progress  float64
	primed    bool
	destroyed bool
	stop      chan struct{}
}

var _ Source = (*Driver)(nil)

func NewDriver(opts Options) *Driver {
	if opts.RegionFactor <= 1 {
		opts.RegionFactor = 4
	}
	d := &Driver{
		factor:      opts.RegionFactor,
		regionTop:   opts.RegionTop,
		orientation: opts.Smoother.Orientation,
		listeners:   make(map[uint64]Listener),
		stop:        make(chan struct{}),
	}
	d.region = NewRegion(opts.RegionTop, opts.RegionFactor, d.extent(opts.ViewportW, opts.ViewportH))
	d.smoother = NewSmoother(opts.Smoother, d.region.Limit())
	if opts.Spring != nil {
		d.spring = NewSpring(opts.Spring.Frequency, opts.Spring.Damping)
	}
	return d
}

// FromConfig builds a driver from the scroll and viewport sections.
func FromConfig(sc config.Scroll, vp config.Viewport) (*Driver, error) {
	easing, err := LookupEasing(sc.Easing)
	if err != nil {
		return nil, err
	}
	orientation, err := ParseOrientation(sc.Orientation)
	if err != nil {
		return nil, err
	}
	opts := Options{
		RegionFactor: sc.RegionHeight,
		ViewportW:    vp.Width,
		ViewportH:    vp.Height,
		Smoother: SmootherOptions{
			Duration:        sc.Duration,
			Easing:          easing,
			Orientation:     orientation,
			WheelMultiplier: sc.WheelMultiplier,
			TouchMultiplier: sc.TouchMultiplier,
		},
	}
	if sc.Spring.Enabled {
		opts.Spring = &SpringOptions{Frequency: sc.Spring.Frequency, Damping: sc.Spring.Damping}
	}
	return NewDriver(opts), nil
}

func (d *Driver) extent(w, h int) float64 {
	if d.orientation == Horizontal {
		return float64(w)
	}
	return float64(h)
}

// Subscribe registers fn. The returned func removes it and is safe to call
// more than once.
func (d *Driver) Subscribe(fn Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed || fn == nil {
		return func() {}
	}
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	return func() {
		d.mu.Lock()
		delete(d.listeners, id)
		d.mu.Unlock()
	}
}

// Destroy drops every listener and stops Run. Later calls are no-ops.
func (d *Driver) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return
	}
	d.destroyed = true
	d.listeners = nil
	close(d.stop)
}

func (d *Driver) Destroyed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyed
}

// Tick advances smoothing by dt seconds and notifies listeners when the
// smoothed progress changed.
func (d *Driver) Tick(dt float64) {
	d.mu.Lock()
	if d.destroyed {
		d.mu.Unlock()
		return
	}
	d.smoother.Tick(dt)
	d.raw = d.region.Progress(d.smoother.Offset())
	p := d.raw
	if d.spring != nil {
		p = clamp01(d.spring.Step(dt, d.raw))
	}
	changed := !d.primed || p != d.progress
	d.progress = p
	d.primed = true
	listeners := d.snapshotListeners()
	d.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(p)
	}
}

func (d *Driver) snapshotListeners() []Listener {
	ids := make([]uint64, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = d.listeners[id]
	}
	return out
}

// Run ticks the driver at fps until ctx is done or the driver is destroyed.
func (d *Driver) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.stop:
			return ErrDestroyed
		case now := <-ticker.C:
			d.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Progress is the last smoothed progress value.
func (d *Driver) Progress() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.progress
}

// RawProgress is the last unsmoothed region progress.
func (d *Driver) RawProgress() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

func (d *Driver) Offset() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.smoother.Offset()
}

func (d *Driver) Region() Region {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.region
}

// ScrollTo animates toward the offset that corresponds to progress.
func (d *Driver) ScrollTo(progress float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.smoother.ScrollTo(d.region.Offset(progress))
}

// Jump moves to progress immediately, spring included.
func (d *Driver) Jump(progress float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.smoother.Jump(d.region.Offset(progress))
	if d.spring != nil {
		d.spring.Reset(d.region.Progress(d.smoother.Offset()))
	}
}

func (d *Driver) Wheel(dx, dy float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.smoother.Wheel(dx, dy)
}

func (d *Driver) Touch(dx, dy float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.smoother.Touch(dx, dy)
}

// SetViewport rebuilds the region for a new viewport size. The pixel
// offset is kept, as a browser keeps scrollY across a resize.
func (d *Driver) SetViewport(w, h int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.region = NewRegion(d.regionTop, d.factor, d.extent(w, h))
	d.smoother.SetLimit(d.region.Limit())
}
