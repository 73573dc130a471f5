package source

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPaths(t *testing.T) {
	paths := Paths("/sequence/", ".png", 144)
	if len(paths) != 144 {
		t.Fatalf("expected 144 paths, got %d", len(paths))
	}
	if paths[0] != "/sequence/00001.png" {
		t.Errorf("first path: %s", paths[0])
	}
	if paths[143] != "/sequence/00144.png" {
		t.Errorf("last path: %s", paths[143])
	}
	if paths[36] != "/sequence/00037.png" {
		t.Errorf("index 36 should map to 00037, got %s", paths[36])
	}
	if Paths("x", "png", 0) != nil {
		t.Error("expected nil for empty sequence")
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "00001.png"), 8, 4)
	// 00002.png deliberately missing

	src := NewFileSource(dir, "png", 2)
	if src.Len() != 2 {
		t.Fatalf("expected len 2, got %d", src.Len())
	}

	img, err := src.Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("Fetch(0) failed: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}

	if _, err := src.Fetch(context.Background(), 1); err == nil {
		t.Error("expected error for missing frame")
	}
	if _, err := src.Fetch(context.Background(), 5); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestHTTPSource(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "00001.png"), 4, 4)
	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, "png", 2, time.Second)
	defer src.Close()

	if _, err := src.Fetch(context.Background(), 0); err != nil {
		t.Fatalf("Fetch(0) failed: %v", err)
	}
	if _, err := src.Fetch(context.Background(), 1); err == nil {
		t.Error("expected 404 to surface as error")
	}
}
