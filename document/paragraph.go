package document

import (
	"errors"
	"fmt"
	"strings"

	"mdimport/styles"
)

// AnchorRune marks footnote position in paragraph text.
const AnchorRune = '\uFFFC'

var (
	ErrOutOfRange    = errors.New("position out of range")
	ErrAnchorInRange = errors.New("range contains footnote anchor")
)

// Footnote is attached to an anchor rune, its body is a separate story.
type Footnote struct {
	ID   string
	Body *Story
}

type cell struct {
	r     rune
	style *styles.Style
	note  *Footnote
}

// Paragraph is a run of text with a paragraph style and per character
// styles. Offsets are in runes.
type Paragraph struct {
	Style *styles.Style
	cells []cell
}

// Run is a maximal piece of paragraph sharing character style. Anchors are
// always separate runs.
type Run struct {
	Text  string
	Style *styles.Style
	Note  *Footnote
}

func NewParagraph(text string) *Paragraph {
	p := &Paragraph{cells: make([]cell, 0, len(text))}
	for _, r := range text {
		p.cells = append(p.cells, cell{r: r})
	}
	return p
}

func (p *Paragraph) Len() int {
	return len(p.cells)
}

func (p *Paragraph) Text() string {
	var sb strings.Builder
	sb.Grow(len(p.cells))
	for _, c := range p.cells {
		sb.WriteRune(c.r)
	}
	return sb.String()
}

func (p *Paragraph) Runes() []rune {
	out := make([]rune, len(p.cells))
	for i, c := range p.cells {
		out[i] = c.r
	}
	return out
}

// RuneAt returns rune at offset or 0 when offset is outside paragraph.
func (p *Paragraph) RuneAt(i int) rune {
	if i < 0 || i >= len(p.cells) {
		return 0
	}
	return p.cells[i].r
}

func (p *Paragraph) CharStyle(i int) *styles.Style {
	if i < 0 || i >= len(p.cells) {
		return nil
	}
	return p.cells[i].style
}

// Footnote returns footnote anchored at offset, if any.
func (p *Paragraph) Footnote(i int) *Footnote {
	if i < 0 || i >= len(p.cells) {
		return nil
	}
	return p.cells[i].note
}

// Footnotes returns anchored footnotes in text order.
func (p *Paragraph) Footnotes() []*Footnote {
	var out []*Footnote
	for _, c := range p.cells {
		if c.note != nil {
			out = append(out, c.note)
		}
	}
	return out
}

func (p *Paragraph) checkRange(start, end int) error {
	if start < 0 || end < start || end > len(p.cells) {
		return fmt.Errorf("[%d:%d] in paragraph of %d: %w", start, end, len(p.cells), ErrOutOfRange)
	}
	return nil
}

func (p *Paragraph) hasAnchor(start, end int) bool {
	for _, c := range p.cells[start:end] {
		if c.note != nil {
			return true
		}
	}
	return false
}

// StyleRange applies character style to [start, end).
func (p *Paragraph) StyleRange(start, end int, s *styles.Style) error {
	if err := p.checkRange(start, end); err != nil {
		return err
	}
	for i := start; i < end; i++ {
		p.cells[i].style = s
	}
	return nil
}

// Delete removes [start, end) together with any anchored footnotes.
func (p *Paragraph) Delete(start, end int) error {
	if err := p.checkRange(start, end); err != nil {
		return err
	}
	p.cells = append(p.cells[:start], p.cells[end:]...)
	return nil
}

// Insert puts text at offset, new characters take character style of the
// preceding character.
func (p *Paragraph) Insert(off int, text string) error {
	if err := p.checkRange(off, off); err != nil {
		return err
	}
	var style *styles.Style
	if off > 0 {
		style = p.cells[off-1].style
	}
	p.insertCells(off, cellsOf(text, style))
	return nil
}

// Replace swaps [start, end) for text. New characters take character style
// of the first replaced character. Ranges holding anchors are refused.
func (p *Paragraph) Replace(start, end int, text string) error {
	if err := p.checkRange(start, end); err != nil {
		return err
	}
	if p.hasAnchor(start, end) {
		return ErrAnchorInRange
	}
	var style *styles.Style
	switch {
	case start < len(p.cells):
		style = p.cells[start].style
	case start > 0:
		style = p.cells[start-1].style
	}
	repl := cellsOf(text, style)
	p.cells = append(p.cells[:start], append(repl, p.cells[end:]...)...)
	return nil
}

// Unwrap removes delimiters around inner range: [outerStart, innerStart) and
// [innerEnd, outerEnd). Inner characters keep their attributes.
func (p *Paragraph) Unwrap(outerStart, innerStart, innerEnd, outerEnd int) error {
	if outerStart > innerStart || innerStart > innerEnd || innerEnd > outerEnd {
		return fmt.Errorf("unwrap [%d [%d:%d] %d]: %w", outerStart, innerStart, innerEnd, outerEnd, ErrOutOfRange)
	}
	if err := p.checkRange(outerStart, outerEnd); err != nil {
		return err
	}
	if p.hasAnchor(outerStart, innerStart) || p.hasAnchor(innerEnd, outerEnd) {
		return ErrAnchorInRange
	}
	if err := p.Delete(innerEnd, outerEnd); err != nil {
		return err
	}
	return p.Delete(outerStart, innerStart)
}

// ReplaceAll replaces every occurrence of old not overlapping anchors and
// returns number of replacements.
func (p *Paragraph) ReplaceAll(old, new string) int {
	pattern := []rune(old)
	if len(pattern) == 0 || len(pattern) > len(p.cells) {
		return 0
	}

	var found []int
	for i := 0; i+len(pattern) <= len(p.cells); {
		if p.matchAt(i, pattern) && !p.hasAnchor(i, i+len(pattern)) {
			found = append(found, i)
			i += len(pattern)
			continue
		}
		i++
	}
	// from the end so earlier offsets stay valid
	for i := len(found) - 1; i >= 0; i-- {
		_ = p.Replace(found[i], found[i]+len(pattern), new)
	}
	return len(found)
}

func (p *Paragraph) matchAt(i int, pattern []rune) bool {
	for j, r := range pattern {
		if p.cells[i+j].r != r {
			return false
		}
	}
	return true
}

// Runs splits paragraph into style runs.
func (p *Paragraph) Runs() []Run {
	var (
		out []Run
		sb  strings.Builder
		cur *styles.Style
	)
	flush := func() {
		if sb.Len() > 0 {
			out = append(out, Run{Text: sb.String(), Style: cur})
			sb.Reset()
		}
	}
	for _, c := range p.cells {
		if c.note != nil {
			flush()
			out = append(out, Run{Text: string(c.r), Style: c.style, Note: c.note})
			continue
		}
		if c.style != cur {
			flush()
			cur = c.style
		}
		sb.WriteRune(c.r)
	}
	flush()
	return out
}

func (p *Paragraph) insertCells(off int, cells []cell) {
	p.cells = append(p.cells[:off], append(cells, p.cells[off:]...)...)
}

func (p *Paragraph) clone() *Paragraph {
	c := &Paragraph{Style: p.Style, cells: make([]cell, len(p.cells))}
	copy(c.cells, p.cells)
	for i := range c.cells {
		if n := c.cells[i].note; n != nil {
			c.cells[i].note = &Footnote{ID: n.ID, Body: n.Body.Clone()}
		}
	}
	return c
}

func cellsOf(text string, style *styles.Style) []cell {
	out := make([]cell, 0, len(text))
	for _, r := range text {
		out = append(out, cell{r: r, style: style})
	}
	return out
}
