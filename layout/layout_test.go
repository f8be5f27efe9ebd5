package layout

import (
	"errors"
	"testing"

	"mdimport/document"
)

func TestFlow(t *testing.T) {
	d := New(2, 4, false)
	if err := d.Flow(document.NewStory("abcdefghij")); err != nil {
		t.Fatalf("Flow() error = %v", err)
	}
	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}
	last := d.Pages[2].Frames[0]
	if last.Start != 8 || last.End != 10 {
		t.Errorf("last frame = [%d:%d], want [8:10]", last.Start, last.End)
	}
}

func TestTrimTrailing(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		min     int
		facing  bool
		removed int
		pages   int
	}{
		{"plain", "abcdefghij", 6, false, 3, 3},
		{"facing adds page back", "abcdefghij", 6, true, 2, 4},
		{"facing even", "abcdefgh", 6, true, 4, 2},
		{"trailing whitespace", "abcd\n\n\n  ", 5, false, 4, 1},
		{"nothing to remove", "abcdefghij", 1, false, 0, 3},
		{"blank story", "\n  \n", 3, false, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.min, 4, tt.facing)
			n, err := d.Trim(document.NewStory(tt.text))
			if err != nil {
				t.Fatalf("Trim() error = %v", err)
			}
			if n != tt.removed || d.Len() != tt.pages {
				t.Errorf("Trim() = %d, %d pages, want %d, %d pages", n, d.Len(), tt.removed, tt.pages)
			}
		})
	}
}

func TestTrimLongestFlow(t *testing.T) {
	d := New(8, 4, false)
	if err := d.Flow(document.NewStory("ab")); err != nil {
		t.Fatal(err)
	}
	if err := d.Flow(document.NewStory("abcdefghijkl")); err != nil {
		t.Fatal(err)
	}
	if n := d.TrimTrailing(); n != 5 || d.Len() != 3 {
		t.Errorf("TrimTrailing() = %d, %d pages, want 5, 3 pages", n, d.Len())
	}
}

func TestTrimCapacity(t *testing.T) {
	_, err := New(1, 0, false).Trim(document.NewStory("x"))
	if !errors.Is(err, ErrCapacity) {
		t.Errorf("Trim() error = %v, want ErrCapacity", err)
	}
}
