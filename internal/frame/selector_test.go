package frame

import (
	"math"
	"testing"
)

func TestIndex(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		n        int
		expected int
	}{
		{"start", 0, 144, 0},
		{"end", 1, 144, 143},
		{"middle", 0.5, 144, 72},
		{"rounds down", 0.0034, 144, 0},
		{"rounds up", 0.0036, 144, 1},
		{"below range", -0.2, 144, 0},
		{"above range", 1.7, 144, 143},
		{"nan", math.NaN(), 144, 0},
		{"single frame", 0.9, 1, 0},
		{"empty", 0.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Index(tt.progress, tt.n); got != tt.expected {
				t.Errorf("Index(%v, %d) = %d, expected %d", tt.progress, tt.n, got, tt.expected)
			}
		})
	}
}

func TestIndexIsMonotonic(t *testing.T) {
	prev := 0
	for i := 0; i <= 1000; i++ {
		got := Index(float64(i)/1000, 144)
		if got < prev {
			t.Fatalf("index decreased at step %d: %d < %d", i, got, prev)
		}
		prev = got
	}
	if prev != 143 {
		t.Errorf("expected to end on 143, got %d", prev)
	}
}

func TestSelectorReportsChanges(t *testing.T) {
	s := NewSelector(144)

	if i, changed := s.Select(0); i != 0 || !changed {
		t.Errorf("first select: got (%d, %v), expected (0, true)", i, changed)
	}
	if _, changed := s.Select(0.001); changed {
		t.Error("expected no change within the same frame")
	}
	if i, changed := s.Select(0.5); i != 72 || !changed {
		t.Errorf("got (%d, %v), expected (72, true)", i, changed)
	}
	if s.Last() != 72 {
		t.Errorf("Last() = %d, expected 72", s.Last())
	}
}
