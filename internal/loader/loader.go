// Package loader fetches a frame sequence in bounded, strictly ordered
// batches and publishes an immutable snapshot after each one.
package loader

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scrollreel/internal/source"
)

const (
	DefaultBatchSize   = 5
	DefaultSettleDelay = 800 * time.Millisecond
)

// Batch is the half-open index range [Start, End).
type Batch struct {
	Start, End int
}

func (b Batch) Size() int {
	return b.End - b.Start
}

// Batches partitions [0,n) into consecutive batches of size; the final
// batch holds the remainder.
func Batches(n, size int) []Batch {
	if n <= 0 || size <= 0 {
		return nil
	}
	batches := make([]Batch, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		batches = append(batches, Batch{Start: start, End: min(start+size, n)})
	}
	return batches
}

type Option func(*Loader)

func WithBatchSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.batchSize = n
		}
	}
}

func WithSettleDelay(d time.Duration) Option {
	return func(l *Loader) {
		if d >= 0 {
			l.settle = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithPublishHook registers fn to run after every publish, on the loading
// goroutine, in batch order.
func WithPublishHook(fn func(*Snapshot)) Option {
	return func(l *Loader) {
		l.hook = fn
	}
}

type Loader struct {
	src       source.Source
	batchSize int
	settle    time.Duration
	logger    *slog.Logger
	hook      func(*Snapshot)

	current   atomic.Pointer[Snapshot]
	ready     chan struct{}
	readyOnce sync.Once
}

func New(src source.Source, opts ...Option) *Loader {
	l := &Loader{
		src:       src,
		batchSize: DefaultBatchSize,
		settle:    DefaultSettleDelay,
		logger:    slog.Default(),
		ready:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.current.Store(emptySnapshot(src.Len()))
	return l
}

// Snapshot returns the most recently published snapshot. Before the first
// batch settles it is an empty snapshot of length N.
func (l *Loader) Snapshot() *Snapshot {
	return l.current.Load()
}

// Ready is closed once the first batch has settled and the settle delay
// has elapsed.
func (l *Loader) Ready() <-chan struct{} {
	return l.ready
}

func (l *Loader) BatchSize() int {
	return l.batchSize
}

// Load fetches every batch in order. Within a batch all fetches run
// concurrently and the batch always settles: a failed frame is logged and
// left as a hole. Cancelling ctx stops further batches from starting.
func (l *Loader) Load(ctx context.Context) error {
	n := l.src.Len()
	batches := Batches(n, l.batchSize)
	start := time.Now()

	l.logger.Info("loading frame sequence", "frames", n, "batches", len(batches), "batch_size", l.batchSize)

	for k, b := range batches {
		if err := ctx.Err(); err != nil {
			l.logger.Debug("frame loading cancelled", "batch", k)
			return err
		}

		prev := l.current.Load()
		frames := slices.Clone(prev.frames)
		loaded := prev.loaded + l.loadBatch(ctx, b, frames)

		snap := &Snapshot{frames: frames, loaded: loaded, batches: k + 1}
		l.current.Store(snap)
		if l.hook != nil {
			l.hook(snap)
		}

		l.logger.Debug("batch settled", "batch", k, "start", b.Start, "end", b.End, "loaded", loaded)
		if k == 0 {
			time.AfterFunc(l.settle, l.markReady)
		}
	}

	if len(batches) == 0 {
		l.markReady()
	}

	final := l.current.Load()
	l.logger.Info("frame sequence loaded",
		"loaded", final.loaded,
		"missing", n-final.loaded,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// loadBatch fills frames[b.Start:b.End] in place. Each goroutine owns one
// slot, so no locking is needed.
func (l *Loader) loadBatch(ctx context.Context, b Batch, frames []*gg.ImageBuf) int {
	var g errgroup.Group
	g.SetLimit(b.Size())

	var ok atomic.Int32
	for i := b.Start; i < b.End; i++ {
		g.Go(func() error {
			img, err := l.src.Fetch(ctx, i)
			if err != nil {
				l.logger.Warn("frame failed to load", "index", i, "error", err)
				return nil
			}
			frames[i] = gg.ImageBufFromImage(img)
			ok.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return int(ok.Load())
}

func (l *Loader) markReady() {
	l.readyOnce.Do(func() {
		close(l.ready)
	})
}
