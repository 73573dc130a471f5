package loader

import "github.com/gogpu/gg"

// Snapshot is an immutable view of the loaded frame set. A nil slot is a
// frame that has not loaded (yet, or ever).
type Snapshot struct {
	frames  []*gg.ImageBuf
	loaded  int
	batches int
}

func emptySnapshot(n int) *Snapshot {
	return &Snapshot{frames: make([]*gg.ImageBuf, n)}
}

// Len is the sequence length N, independent of how many frames loaded.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

// Frame returns the paintable frame at index, or false for a hole.
func (s *Snapshot) Frame(index int) (*gg.ImageBuf, bool) {
	if s == nil || index < 0 || index >= len(s.frames) {
		return nil, false
	}
	img := s.frames[index]
	return img, img != nil
}

// Loaded is the number of frames present.
func (s *Snapshot) Loaded() int {
	if s == nil {
		return 0
	}
	return s.loaded
}

// Batches is the number of batches settled when this snapshot was published.
func (s *Snapshot) Batches() int {
	if s == nil {
		return 0
	}
	return s.batches
}

// Complete reports whether every batch has settled.
func (s *Snapshot) Complete(batchSize int) bool {
	return s.Batches() == len(Batches(s.Len(), batchSize))
}
