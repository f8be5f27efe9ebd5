// Package document implements in-memory text flow the markup engine works
// on: an ordered arena of paragraphs with character styles and footnotes.
package document

import (
	"fmt"
	"strings"
)

// Scope selects part of the document for search and replace.
type Scope int

const (
	ScopeMain      Scope = iota // story paragraphs, footnote bodies excluded
	ScopeFootnotes              // footnote bodies only
	ScopeAll
)

// Pos addresses character by paragraph index and rune offset.
type Pos struct {
	Para int
	Off  int
}

// Story is a single text flow. It is not safe for concurrent use.
type Story struct {
	paras []*Paragraph
}

// NewStory splits text into paragraphs on line breaks.
func NewStory(text string) *Story {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	s := &Story{paras: make([]*Paragraph, 0, len(lines))}
	for _, l := range lines {
		s.paras = append(s.paras, NewParagraph(l))
	}
	return s
}

func (s *Story) Len() int {
	return len(s.paras)
}

// Paragraph returns paragraph handle or nil.
func (s *Story) Paragraph(i int) *Paragraph {
	if i < 0 || i >= len(s.paras) {
		return nil
	}
	return s.paras[i]
}

// Paragraphs returns snapshot of paragraph handles. Removing paragraphs from
// the story does not change the snapshot.
func (s *Story) Paragraphs() []*Paragraph {
	return append([]*Paragraph(nil), s.paras...)
}

func (s *Story) Remove(i int) error {
	if i < 0 || i >= len(s.paras) {
		return fmt.Errorf("paragraph %d of %d: %w", i, len(s.paras), ErrOutOfRange)
	}
	s.paras = append(s.paras[:i], s.paras[i+1:]...)
	return nil
}

func (s *Story) InsertParagraph(i int, p *Paragraph) error {
	if i < 0 || i > len(s.paras) {
		return fmt.Errorf("paragraph %d of %d: %w", i, len(s.paras), ErrOutOfRange)
	}
	s.paras = append(s.paras[:i], append([]*Paragraph{p}, s.paras[i:]...)...)
	return nil
}

// Text returns plain text, paragraphs joined with line feeds.
func (s *Story) Text() string {
	lines := make([]string, len(s.paras))
	for i, p := range s.paras {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// Size is length of the story in global offsets: every paragraph boundary
// counts as a single character.
func (s *Story) Size() int {
	if len(s.paras) == 0 {
		return 0
	}
	n := len(s.paras) - 1
	for _, p := range s.paras {
		n += p.Len()
	}
	return n
}

// Offset converts position to global offset.
func (s *Story) Offset(pos Pos) int {
	off := pos.Off
	for i := 0; i < pos.Para && i < len(s.paras); i++ {
		off += s.paras[i].Len() + 1
	}
	return off
}

// Pos converts global offset to position. Offset of paragraph boundary maps
// to the end of the preceding paragraph.
func (s *Story) Pos(offset int) (Pos, error) {
	if offset < 0 {
		return Pos{}, fmt.Errorf("offset %d: %w", offset, ErrOutOfRange)
	}
	for i, p := range s.paras {
		if offset <= p.Len() {
			return Pos{Para: i, Off: offset}, nil
		}
		offset -= p.Len() + 1
	}
	return Pos{}, fmt.Errorf("offset beyond story end: %w", ErrOutOfRange)
}

// RuneAt returns character at global offset, paragraph boundaries read as
// line feeds.
func (s *Story) RuneAt(offset int) (rune, bool) {
	pos, err := s.Pos(offset)
	if err != nil {
		return 0, false
	}
	p := s.paras[pos.Para]
	if pos.Off == p.Len() {
		if pos.Para == len(s.paras)-1 {
			return 0, false
		}
		return '\n', true
	}
	return p.RuneAt(pos.Off), true
}

// InsertFootnote puts anchor for footnote at global offset.
func (s *Story) InsertFootnote(offset int, fn *Footnote) error {
	if fn == nil || fn.Body == nil {
		return fmt.Errorf("footnote without body at %d", offset)
	}
	pos, err := s.Pos(offset)
	if err != nil {
		return err
	}
	s.paras[pos.Para].insertCells(pos.Off, []cell{{r: AnchorRune, note: fn}})
	return nil
}

// Footnotes returns every footnote in document order.
func (s *Story) Footnotes() []*Footnote {
	var out []*Footnote
	for _, p := range s.paras {
		out = append(out, p.Footnotes()...)
	}
	return out
}

// ReplaceAll replaces plain text occurrences within scope and returns number
// of replacements. Matches never span paragraphs.
func (s *Story) ReplaceAll(scope Scope, old, new string) int {
	n := 0
	if scope == ScopeMain || scope == ScopeAll {
		for _, p := range s.paras {
			n += p.ReplaceAll(old, new)
		}
	}
	if scope == ScopeFootnotes || scope == ScopeAll {
		for _, fn := range s.Footnotes() {
			n += fn.Body.ReplaceAll(ScopeAll, old, new)
		}
	}
	return n
}

// Clone makes deep copy including footnote bodies.
func (s *Story) Clone() *Story {
	if s == nil {
		return nil
	}
	c := &Story{paras: make([]*Paragraph, len(s.paras))}
	for i, p := range s.paras {
		c.paras[i] = p.clone()
	}
	return c
}
