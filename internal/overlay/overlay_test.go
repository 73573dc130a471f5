package overlay

import (
	"math"
	"testing"

	"github.com/gogpu/gg"

	"github.com/ivlev/scrollreel/internal/analyzer"
)

func TestInterpolate(t *testing.T) {
	input := []float64{0, 0.1, 0.25, 0.35}
	output := []float64{0, 1, 1, 0}

	tests := []struct {
		p        float64
		expected float64
	}{
		{-1, 0},
		{0, 0},
		{0.05, 0.5},
		{0.1, 1},
		{0.2, 1},
		{0.3, 0.5},
		{0.35, 0},
		{2, 0},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := Interpolate(input, output, tt.p); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Interpolate(%.2f) = %.4f, expected %.4f", tt.p, got, tt.expected)
		}
	}

	if got := Interpolate(nil, nil, 0.5); got != 0 {
		t.Errorf("empty curve should yield 0, got %f", got)
	}
}

func TestControllerWindows(t *testing.T) {
	c := NewController(DefaultSegments())

	tests := []struct {
		name     string
		p        float64
		expected [3]float64
	}{
		{"top", 0, [3]float64{0, 0, 0}},
		{"first hold", 0.2, [3]float64{1, 0, 0}},
		{"first boundary", 0.35, [3]float64{0, 0, 0}},
		{"middle", 0.5, [3]float64{0, 1, 0}},
		{"second boundary", 0.7, [3]float64{0, 0, 0}},
		{"third hold", 0.85, [3]float64{0, 0, 1}},
		{"bottom", 1, [3]float64{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			states := c.Evaluate(tt.p)
			if len(states) != 3 {
				t.Fatalf("expected 3 states, got %d", len(states))
			}
			for i, st := range states {
				if math.Abs(st.Opacity-tt.expected[i]) > 1e-9 {
					t.Errorf("block %d opacity = %.3f, expected %.3f", i+1, st.Opacity, tt.expected[i])
				}
			}
		})
	}
}

func TestControllerOffsets(t *testing.T) {
	c := NewController(DefaultSegments())

	if got := c.Evaluate(0.05)[0].Offset; math.Abs(got-25) > 1e-9 {
		t.Errorf("entering offset = %.2f, expected 25", got)
	}
	if got := c.Evaluate(0.2)[0].Offset; got != 0 {
		t.Errorf("hold offset = %.2f, expected 0", got)
	}
	if got := c.Evaluate(0.3)[0].Offset; math.Abs(got+25) > 1e-9 {
		t.Errorf("leaving offset = %.2f, expected -25", got)
	}
}

func TestAtMostOneBlockFullyVisible(t *testing.T) {
	c := NewController(DefaultSegments())
	for i := 0; i <= 1000; i++ {
		visible := 0
		for _, st := range c.Evaluate(float64(i) / 1000) {
			if st.Visible() {
				visible++
			}
		}
		if visible > 1 {
			t.Fatalf("%d blocks visible at p=%.3f", visible, float64(i)/1000)
		}
	}
}

func TestSegmentHold(t *testing.T) {
	segs := DefaultSegments()
	expected := []float64{0.175, 0.525, 0.85}
	for i, s := range segs {
		if math.Abs(s.Hold()-expected[i]) > 1e-9 {
			t.Errorf("segment %d hold = %.3f, expected %.3f", i, s.Hold(), expected[i])
		}
	}
}

func TestPainterSkipsHiddenBlocks(t *testing.T) {
	segs := DefaultSegments()
	segs[2].CTA = "https://example.com/buy"
	p, err := NewPainter(segs, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	dc := gg.NewContext(320, 180)
	defer dc.Close()
	dc.ClearWithColor(gg.Black)

	if err := p.Paint(dc, NewController(segs).Evaluate(0)); err != nil {
		t.Fatal(err)
	}
	data := dc.ResizeTarget().Data()
	for i := 0; i < len(data); i += 4 {
		if data[i] != 0 || data[i+1] != 0 || data[i+2] != 0 {
			t.Fatal("hidden blocks must not touch the surface")
		}
	}
}

func TestPainterDrawsVisibleBlock(t *testing.T) {
	segs := DefaultSegments()
	segs[2].CTA = "https://example.com/buy"
	p, err := NewPainter(segs, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	dc := gg.NewContext(640, 360)
	defer dc.Close()
	dc.ClearWithColor(gg.Black)

	if err := p.Paint(dc, NewController(segs).Evaluate(0.85)); err != nil {
		t.Fatal(err)
	}

	band := Layout(640, 360, true)
	if analyzer.MeanLuma(dc.ResizeTarget(), band) == 0 {
		t.Error("expected light text in the block band on a black surface")
	}
	if len(p.qr) != 1 {
		t.Errorf("expected one cached call-to-action code, got %d", len(p.qr))
	}
}

func TestNewPainterRejectsUnknownTheme(t *testing.T) {
	segs := DefaultSegments()
	segs[0].Theme = "neon"
	if _, err := NewPainter(segs, nil); err == nil {
		t.Error("expected error for unknown theme")
	}
}
