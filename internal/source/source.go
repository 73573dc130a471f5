package source

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/ivlev/scrollreel/internal/config"
)

// Source fetches the still images of a frame sequence by 0-based index.
// Fetch must be safe for concurrent calls on distinct indices.
type Source interface {
	Len() int
	Fetch(ctx context.Context, index int) (image.Image, error)
	Close() error
}

// FramePath returns the address of frame index (0-based) in a sequence:
// {base}/{index+1 zero-padded to 5 digits}.{ext}.
func FramePath(base, ext string, index int) string {
	base = strings.TrimRight(base, "/")
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s/%05d.%s", base, index+1, ext)
}

// Paths returns the ordered addresses of an n-frame sequence.
func Paths(base, ext string, n int) []string {
	if n <= 0 {
		return nil
	}
	paths := make([]string, n)
	for i := range paths {
		paths[i] = FramePath(base, ext, i)
	}
	return paths
}

// New builds the Source described by the sequence configuration.
func New(seq config.Sequence) (Source, error) {
	switch seq.Source {
	case "file", "":
		return NewFileSource(seq.Base, seq.Ext, seq.Count), nil
	case "http":
		timeout := time.Duration(seq.Timeout * float64(time.Second))
		return NewHTTPSource(seq.Base, seq.Ext, seq.Count, timeout), nil
	case "pdf":
		return NewFitzPDFSource(seq.Base, seq.DPI)
	default:
		return nil, fmt.Errorf("unknown sequence source: %s", seq.Source)
	}
}

func checkIndex(index, n int) error {
	if index < 0 || index >= n {
		return fmt.Errorf("frame index %d out of range [0,%d)", index, n)
	}
	return nil
}
