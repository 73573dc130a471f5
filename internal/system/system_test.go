package system

import (
	"image"
	"strings"
	"testing"
	"time"
)

func TestPickEncoder(t *testing.T) {
	tests := []struct {
		list     string
		expected string
	}{
		{" V....D h264_nvenc  NVIDIA NVENC H.264 encoder", "h264_nvenc"},
		{" V....D h264_videotoolbox\n V....D h264_nvenc", "h264_videotoolbox"},
		{" V....D libx264  libx264 H.264", "libx264"},
		{"", "libx264"},
	}
	for _, tt := range tests {
		if got := pickEncoder(tt.list); got != tt.expected {
			t.Errorf("pickEncoder(%q) = %s, expected %s", tt.list, got, tt.expected)
		}
	}
}

func TestImagePool(t *testing.T) {
	p := NewImagePool()
	rect := image.Rect(0, 0, 64, 32)

	img := p.Get(rect)
	if img.Rect != rect {
		t.Fatalf("expected %v, got %v", rect, img.Rect)
	}
	p.Put(img)
	p.Put(nil)
	p.Put(image.NewRGBA(image.Rect(0, 0, 1, 1))) // unknown size is dropped

	other := p.Get(image.Rect(0, 0, 16, 16))
	if other.Rect.Dx() != 16 {
		t.Errorf("expected a 16px wide buffer, got %v", other.Rect)
	}
}

func TestStatsString(t *testing.T) {
	s := Stats{RSS: 50 << 20, Elapsed: 2 * time.Second, Frames: 1200, SystemTotal: 8 << 30}
	if s.FPS() != 600 {
		t.Errorf("FPS = %f, expected 600", s.FPS())
	}
	out := s.String()
	if !strings.Contains(out, "1,200 frames") || !strings.Contains(out, "MB") {
		t.Errorf("unexpected stats line: %s", out)
	}
}

func TestReadStats(t *testing.T) {
	s := ReadStats(time.Now().Add(-time.Second), 10)
	if s.Frames != 10 || s.Elapsed < time.Second {
		t.Errorf("unexpected stats: %+v", s)
	}
}
