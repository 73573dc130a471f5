package source

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"
)

// FileSource reads frames from the local filesystem.
type FileSource struct {
	paths []string
}

func NewFileSource(base, ext string, n int) *FileSource {
	return &FileSource{paths: Paths(base, ext, n)}
}

func (s *FileSource) Len() int {
	return len(s.paths)
}

func (s *FileSource) Path(index int) string {
	return s.paths[index]
}

func (s *FileSource) Fetch(ctx context.Context, index int) (image.Image, error) {
	if err := checkIndex(index, len(s.paths)); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *FileSource) Close() error {
	return nil
}
