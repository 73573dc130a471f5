package loader

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeSource struct {
	n        int
	fail     map[int]bool
	delay    time.Duration
	inFlight atomic.Int32
	maxSeen  atomic.Int32

	mu      sync.Mutex
	fetched []int
}

func (f *fakeSource) Len() int { return f.n }

func (f *fakeSource) Fetch(ctx context.Context, index int) (image.Image, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if cur <= seen || f.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.fetched = append(f.fetched, index)
	f.mu.Unlock()

	if f.fail[index] {
		return nil, errors.New("boom")
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 3)), nil
}

func (f *fakeSource) Close() error { return nil }

func TestBatches(t *testing.T) {
	batches := Batches(144, 5)
	if len(batches) != 29 {
		t.Fatalf("expected 29 batches, got %d", len(batches))
	}
	for k, b := range batches[:28] {
		if b.Size() != 5 {
			t.Errorf("batch %d: expected size 5, got %d", k, b.Size())
		}
		if b.Start != k*5 {
			t.Errorf("batch %d: expected start %d, got %d", k, k*5, b.Start)
		}
	}
	last := batches[28]
	if last.Size() != 4 || last.End != 144 {
		t.Errorf("last batch: expected [140,144), got [%d,%d)", last.Start, last.End)
	}

	if Batches(0, 5) != nil || Batches(10, 0) != nil {
		t.Error("expected nil for degenerate input")
	}
	if got := Batches(3, 5); len(got) != 1 || got[0].Size() != 3 {
		t.Errorf("short sequence: %v", got)
	}
}

func TestLoadPublishesInBatchOrder(t *testing.T) {
	src := &fakeSource{n: 144, delay: time.Millisecond}

	var published []int
	var loadedCounts []int
	l := New(src,
		WithBatchSize(5),
		WithSettleDelay(0),
		WithPublishHook(func(s *Snapshot) {
			published = append(published, s.Batches())
			loadedCounts = append(loadedCounts, s.Loaded())
		}),
	)

	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(published) != 29 {
		t.Fatalf("expected 29 publish events, got %d", len(published))
	}
	for k, b := range published {
		if b != k+1 {
			t.Errorf("publish %d reported %d settled batches", k, b)
		}
	}
	for k := 1; k < len(loadedCounts); k++ {
		if loadedCounts[k] < loadedCounts[k-1] {
			t.Errorf("loaded count shrank at publish %d", k)
		}
	}
	if peak := src.maxSeen.Load(); peak > 5 {
		t.Errorf("in-flight fetches exceeded batch size: %d", peak)
	}

	snap := l.Snapshot()
	if snap.Loaded() != 144 || !snap.Complete(5) {
		t.Errorf("expected complete snapshot, got loaded=%d batches=%d", snap.Loaded(), snap.Batches())
	}
}

func TestFailedFrameLeavesHole(t *testing.T) {
	// image 37 (1-based) is index 36
	src := &fakeSource{n: 144, fail: map[int]bool{36: true}}
	l := New(src, WithSettleDelay(0))

	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	snap := l.Snapshot()
	if _, ok := snap.Frame(36); ok {
		t.Error("expected hole at index 36")
	}
	if _, ok := snap.Frame(35); !ok {
		t.Error("expected frame at index 35")
	}
	if _, ok := snap.Frame(37); !ok {
		t.Error("expected frame at index 37")
	}
	if snap.Loaded() != 143 {
		t.Errorf("expected 143 loaded, got %d", snap.Loaded())
	}
	if snap.Batches() != 29 {
		t.Errorf("failure must not stop later batches, got %d settled", snap.Batches())
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	src := &fakeSource{n: 12}
	var first *Snapshot
	l := New(src, WithBatchSize(4), WithSettleDelay(0), WithPublishHook(func(s *Snapshot) {
		if first == nil {
			first = s
		}
	}))

	if err := l.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if first.Loaded() != 4 || first.Batches() != 1 {
		t.Errorf("first snapshot changed: loaded=%d batches=%d", first.Loaded(), first.Batches())
	}
	if _, ok := first.Frame(4); ok {
		t.Error("first snapshot gained a frame from a later batch")
	}
	if _, ok := l.Snapshot().Frame(4); !ok {
		t.Error("latest snapshot should hold frame 4")
	}
}

func TestInitialSnapshotIsEmpty(t *testing.T) {
	l := New(&fakeSource{n: 144})
	snap := l.Snapshot()
	if snap.Len() != 144 {
		t.Errorf("expected len 144, got %d", snap.Len())
	}
	if snap.Loaded() != 0 {
		t.Errorf("expected nothing loaded, got %d", snap.Loaded())
	}
	if _, ok := snap.Frame(0); ok {
		t.Error("expected hole before loading")
	}
}

func TestReadyAfterFirstBatchAndSettleDelay(t *testing.T) {
	src := &fakeSource{n: 10}
	settle := 50 * time.Millisecond

	var readyAtFirstPublish bool
	var l *Loader
	l = New(src, WithBatchSize(5), WithSettleDelay(settle), WithPublishHook(func(s *Snapshot) {
		if s.Batches() == 1 {
			select {
			case <-l.Ready():
				readyAtFirstPublish = true
			default:
			}
		}
	}))

	start := time.Now()
	if err := l.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if readyAtFirstPublish {
		t.Error("ready fired before the first batch settled")
	}

	select {
	case <-l.Ready():
		if elapsed := time.Since(start); elapsed < settle {
			t.Errorf("ready fired after %v, before settle delay %v", elapsed, settle)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ready never fired")
	}
}

func TestLoadStopsOnCancel(t *testing.T) {
	src := &fakeSource{n: 20}
	ctx, cancel := context.WithCancel(context.Background())

	l := New(src, WithBatchSize(5), WithSettleDelay(0), WithPublishHook(func(s *Snapshot) {
		if s.Batches() == 2 {
			cancel()
		}
	}))

	err := l.Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := l.Snapshot().Batches(); got != 2 {
		t.Errorf("expected 2 settled batches, got %d", got)
	}
}
