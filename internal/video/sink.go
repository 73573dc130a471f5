// Package video writes composed frames to an output.
package video

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Sink consumes composed frames in presentation order.
type Sink interface {
	WriteFrame(img image.Image) error
	Close() error
}

// PNGSink writes each frame to {dir}/{n:05d}.png, counting from 1.
type PNGSink struct {
	dir     string
	n       int
	encoder png.Encoder
}

func NewPNGSink(dir string) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}
	return &PNGSink{dir: dir, encoder: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
}

func (s *PNGSink) WriteFrame(img image.Image) error {
	s.n++
	path := filepath.Join(s.dir, fmt.Sprintf("%05d.png", s.n))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.encoder.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Written is the number of frames written so far.
func (s *PNGSink) Written() int { return s.n }

func (s *PNGSink) Close() error { return nil }
