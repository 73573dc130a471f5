package video

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildFFmpegArgs(t *testing.T) {
	tests := []struct {
		encoder  string
		quality  int
		expected string
	}{
		{"libx264", 0, "-crf 20"},
		{"libx264", 28, "-crf 28"},
		{"h264_nvenc", 0, "-cq 23"},
		{"h264_videotoolbox", 60, "-b:v 6000k"},
	}

	for _, tt := range tests {
		args := strings.Join(buildFFmpegArgs(EncoderParams{
			Width: 1280, Height: 720, FPS: 30, Encoder: tt.encoder, Quality: tt.quality,
		}, "out.mp4"), " ")

		if !strings.Contains(args, tt.expected) {
			t.Errorf("%s: args should contain %q: %s", tt.encoder, tt.expected, args)
		}
		if !strings.Contains(args, "-video_size 1280x720") || !strings.Contains(args, "-framerate 30") {
			t.Errorf("missing input geometry: %s", args)
		}
		if !strings.HasSuffix(args, "out.mp4") {
			t.Errorf("output path should be last: %s", args)
		}
	}
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	var buf bytes.Buffer
	if err := writeRawRGBA(&buf, img); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 3*2*4 {
		t.Fatalf("expected 24 bytes, got %d", buf.Len())
	}
	if got := buf.Bytes()[20:24]; !bytes.Equal(got, []byte{9, 8, 7, 255}) {
		t.Errorf("last pixel = %v", got)
	}

	// Sub-images are repacked
	buf.Reset()
	if err := writeRawRGBA(&buf, img.SubImage(image.Rect(1, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 2*2*4 {
		t.Errorf("expected 16 bytes, got %d", buf.Len())
	}
}

func TestLetterbox(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	letterbox(dst, src)

	if c := dst.RGBAAt(5, 50); c.R != 0 {
		t.Errorf("side bar should be black, got %v", c)
	}
	if c := dst.RGBAAt(100, 50); c.R < 250 {
		t.Errorf("centre should be white, got %v", c)
	}
}

func TestPNGSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	s, err := NewPNGSink(dir)
	if err != nil {
		t.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 3; i++ {
		if err := s.WriteFrame(img); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"00001.png", "00002.png", "00003.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if s.Written() != 3 {
		t.Errorf("Written() = %d, expected 3", s.Written())
	}
}
