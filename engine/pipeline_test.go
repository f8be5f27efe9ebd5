package engine

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"

	"mdimport/common"
	"mdimport/document"
	"mdimport/mapping"
	"mdimport/styles"
)

func testRegistry() *styles.Registry {
	group := func(names ...string) *styles.Group {
		g := &styles.Group{}
		for _, n := range names {
			g.Styles = append(g.Styles, &styles.Style{Name: n})
		}
		return g
	}
	return styles.New(
		group("[Basic Paragraph]", "Body", "Heading 1", "Heading 2", "Blockquote", "Bullet", "Footnote"),
		group("Italic", "Bold", "Bold Italic", "Underline", "Small Caps", "Subscript", "Superscript"),
	)
}

type fakeTrimmer struct {
	removed int
	err     error
	calls   int
}

func (f *fakeTrimmer) Trim(*document.Story) (int, error) {
	f.calls++
	return f.removed, f.err
}

func name(s *styles.Style) string {
	if s == nil {
		return ""
	}
	return s.Name
}

const source = `# Title

Some **bold** text with \* star and a note[^1].


> A quote---with dash
- item ~2~

[^1]: Note *italic* \_x\_
continued`

func TestRun(t *testing.T) {
	reg := testRegistry()
	m := mapping.Guess(reg, language.English)
	p := New(reg, m, nil, nil, zaptest.NewLogger(t))

	src := document.NewStory(source)
	story, res, err := p.Run(src)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []struct{ text, style string }{
		{"Title", "Heading 1"},
		{"Some bold text with * star and a note\uFFFC.", "Body"},
		{"A quote—with dash", "Blockquote"},
		{"item 2", "Bullet"},
	}
	if story.Len() != len(want) {
		t.Fatalf("Run() produced %d paragraphs: %q", story.Len(), story.Text())
	}
	for i, w := range want {
		p := story.Paragraph(i)
		if p.Text() != w.text || name(p.Style) != w.style {
			t.Errorf("paragraph %d = %q/%q, want %q/%q", i, p.Text(), name(p.Style), w.text, w.style)
		}
	}
	if got := name(story.Paragraph(1).CharStyle(5)); got != "Bold" {
		t.Errorf("bold run style = %q", got)
	}
	if got := name(story.Paragraph(3).CharStyle(5)); got != "Subscript" {
		t.Errorf("subscript run style = %q", got)
	}

	fns := story.Footnotes()
	if len(fns) != 1 {
		t.Fatalf("Footnotes() = %d, want 1", len(fns))
	}
	body := fns[0].Body
	if got, want := body.Text(), "Note italic _x_\ncontinued"; got != want {
		t.Errorf("footnote body = %q, want %q", got, want)
	}
	if name(body.Paragraph(0).Style) != "Footnote" {
		t.Errorf("footnote style = %q", name(body.Paragraph(0).Style))
	}
	if got := name(body.Paragraph(0).CharStyle(5)); got != "Italic" {
		t.Errorf("footnote italic style = %q", got)
	}

	if res.FootnotesCreated != 1 || res.FootnotesMissing != 0 || res.PatternFailures != 0 || res.Rewrites == 0 {
		t.Errorf("Result = %+v", res)
	}
	if src.Text() != source {
		t.Error("Run() modified source story")
	}
}

func TestRunIdempotent(t *testing.T) {
	reg := testRegistry()
	m := mapping.Guess(reg, language.English)
	p := New(reg, m, nil, nil, zaptest.NewLogger(t))

	first, res, err := p.Run(document.NewStory("# Head\n\nText **b** _i_ x~2~ and[^n] -- ok\n\n[^n]: The *note*"))
	if err != nil || res.Rewrites == 0 {
		t.Fatalf("Run() = %+v, %v", res, err)
	}
	second, res, err := p.Run(first)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if res.Rewrites != 0 {
		t.Errorf("second Run() made %d rewrites", res.Rewrites)
	}
	if second.Text() != first.Text() || len(second.Footnotes()) != 1 {
		t.Errorf("second Run() changed text: %q -> %q", first.Text(), second.Text())
	}
}

func TestRunEmptyCatalogue(t *testing.T) {
	reg := styles.New(&styles.Group{Styles: []*styles.Style{{Name: "Body"}}}, &styles.Group{Styles: []*styles.Style{{Name: "[None]"}}})
	p := New(reg, mapping.Guess(reg, language.English), nil, nil, zaptest.NewLogger(t))

	_, _, err := p.Run(document.NewStory("text"))
	if !errors.Is(err, ErrStage) || !errors.Is(err, styles.ErrEmptyCatalogue) {
		t.Fatalf("Run() error = %v, want empty catalogue stage error", err)
	}
	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageInit {
		t.Errorf("Run() error = %#v", err)
	}
}

func TestRunTrim(t *testing.T) {
	reg := testRegistry()
	m := mapping.Guess(reg, language.English)

	tr := &fakeTrimmer{removed: 2}
	_, res, err := New(reg, m, nil, tr, zaptest.NewLogger(t)).Run(document.NewStory("text"))
	if err != nil || tr.calls != 0 || res.PagesRemoved != 0 {
		t.Errorf("trimmer used without request: calls %d, %+v, %v", tr.calls, res, err)
	}

	m.RemoveBlankPages = true
	_, res, err = New(reg, m, nil, tr, zaptest.NewLogger(t)).Run(document.NewStory("text"))
	if err != nil || tr.calls != 1 || res.PagesRemoved != 2 {
		t.Errorf("Run() = %+v, %v, calls %d", res, err, tr.calls)
	}
}

func TestRunRollback(t *testing.T) {
	reg := testRegistry()
	m := mapping.Guess(reg, language.English)
	m.RemoveBlankPages = true
	boom := errors.New("boom")

	src := document.NewStory("# Title\ntext[^1]\n[^1]: note")
	story, res, err := New(reg, m, nil, &fakeTrimmer{err: boom}, zaptest.NewLogger(t)).Run(src)

	var se *StageError
	if !errors.As(err, &se) || se.Stage != StageTrim || !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v", err)
	}
	if story != nil || res != nil {
		t.Error("Run() returned partial result")
	}
	if src.Len() != 3 || src.Paragraph(0).Text() != "# Title" || src.Paragraph(0).Style != nil {
		t.Errorf("source story changed: %q", src.Text())
	}
}

func TestRunMissingFootnoteAndUnmappedRole(t *testing.T) {
	reg := testRegistry()
	m := mapping.Guess(reg, language.English)
	m.Set(common.RoleBold, nil)

	story, res, err := New(reg, m, nil, nil, zaptest.NewLogger(t)).Run(document.NewStory("a **b** c[^z]"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	p := story.Paragraph(0)
	if p.Text() != "a b c[^z]" || p.CharStyle(2) != nil {
		t.Errorf("paragraph = %q, bold style %v", p.Text(), p.CharStyle(2))
	}
	if res.FootnotesMissing != 1 || res.FootnotesCreated != 0 {
		t.Errorf("Result = %+v", res)
	}
}

func TestRunEscapedPunctuationAfterNote(t *testing.T) {
	reg := testRegistry()
	m := mapping.Guess(reg, language.English)

	story, res, err := New(reg, m, nil, nil, zaptest.NewLogger(t)).Run(document.NewStory("word\\*[^a]\n[^a]: n"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got, want := story.Paragraph(0).Text(), "word\uFFFC*"; got != want {
		t.Errorf("paragraph = %q, want %q", got, want)
	}
	if res.FootnotesCreated != 1 {
		t.Errorf("Result = %+v", res)
	}
}

func TestRunKeepsSentinelLikeText(t *testing.T) {
	reg := testRegistry()
	m := mapping.Guess(reg, language.English)

	tests := []struct {
		in, want string
	}{
		{"literal §ESC§ text", "literal §ESC§ text"},
		{"x §ESC§HASH§ y \\#", "x §ESC§HASH§ y #"},
		{"§ESC§MARK§ and §", "§ESC§MARK§ and §"},
	}
	for _, tt := range tests {
		story, _, err := New(reg, m, nil, nil, zaptest.NewLogger(t)).Run(document.NewStory(tt.in))
		if err != nil {
			t.Fatalf("Run(%q) error = %v", tt.in, err)
		}
		if got := story.Text(); got != tt.want {
			t.Errorf("Run(%q) text = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStageErrorPanics(t *testing.T) {
	err := runStage("x", func() error { panic("broken") })
	var se *StageError
	if !errors.As(err, &se) || se.Stage != "x" || !errors.Is(err, ErrStage) {
		t.Errorf("runStage() = %v", err)
	}
}
