// Package layout approximates placement of story text on pages so pages
// following the end of text can be found and removed.
package layout

import (
	"errors"
	"fmt"

	"mdimport/document"
)

var ErrCapacity = errors.New("page capacity must be positive")

// Frame holds part of a threaded story: global offsets [Start, End).
type Frame struct {
	Story      *document.Story
	Start, End int
}

func (f *Frame) contains(offset int) bool {
	return f.Start <= offset && offset < f.End
}

type Page struct {
	Frames []*Frame
}

// Side of a page in a facing pages document.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

// Document is a sequence of pages, every page has room for Capacity runes
// of each flow threaded through it.
type Document struct {
	Pages       []*Page
	MinPages    int
	Capacity    int
	FacingPages bool
}

func New(minPages, capacity int, facing bool) *Document {
	return &Document{MinPages: minPages, Capacity: capacity, FacingPages: facing}
}

func (d *Document) Len() int {
	return len(d.Pages)
}

// SideOf returns side of the page at index, first page is a right hand one.
func (d *Document) SideOf(index int) Side {
	if index%2 == 0 {
		return SideRight
	}
	return SideLeft
}

// Flow threads story through frames, one frame per page, adding pages as
// needed. Pages beyond the end of text keep empty frames of the flow.
func (d *Document) Flow(story *document.Story) error {
	if d.Capacity <= 0 {
		return ErrCapacity
	}

	size := story.Size()
	need := max((size+d.Capacity-1)/d.Capacity, d.MinPages, 1)
	for len(d.Pages) < need {
		d.Pages = append(d.Pages, &Page{})
	}
	for i, page := range d.Pages {
		start := min(i*d.Capacity, size)
		end := min(start+d.Capacity, size)
		page.Frames = append(page.Frames, &Frame{Story: story, Start: start, End: end})
	}
	return nil
}

// TrimTrailing finds the longest flow, the page holding its last
// significant character and removes every page after it. With facing pages
// a blank page is added back when the document would end on a right hand
// page. Returns number of pages removed.
func (d *Document) TrimTrailing() int {
	longest := d.longest()
	if longest == nil {
		return 0
	}

	last := longest.Size() - 1
	for last >= 0 {
		r, _ := longest.RuneAt(last)
		if r != ' ' && r != '\n' && r != '\r' && r != '\t' {
			break
		}
		last--
	}
	if last < 0 {
		return 0
	}

	end := -1
	for i, page := range d.Pages {
		for _, f := range page.Frames {
			if f.Story == longest && f.contains(last) {
				end = i
			}
		}
	}
	if end < 0 || end+1 >= len(d.Pages) {
		return 0
	}

	removed := len(d.Pages) - end - 1
	d.Pages = d.Pages[:end+1]
	if d.FacingPages && d.SideOf(len(d.Pages)-1) == SideRight {
		d.Pages = append(d.Pages, &Page{})
		removed--
	}
	return removed
}

func (d *Document) longest() *document.Story {
	var (
		out  *document.Story
		size int
	)
	for _, page := range d.Pages {
		for _, f := range page.Frames {
			if s := f.Story.Size(); out == nil || s > size {
				out, size = f.Story, s
			}
		}
	}
	return out
}

// Trim lays story out on a fresh set of pages and removes trailing ones.
func (d *Document) Trim(story *document.Story) (int, error) {
	d.Pages = nil
	if err := d.Flow(story); err != nil {
		return 0, fmt.Errorf("unable to lay out story: %w", err)
	}
	return d.TrimTrailing(), nil
}
