// Package engine runs markup transformation over a story: escape
// protection, paragraph and character classification, footnotes, cleanup
// and optional trimming of trailing pages.
package engine

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"mdimport/common"
	"mdimport/document"
	"mdimport/escape"
	"mdimport/footnote"
	"mdimport/mapping"
	"mdimport/markup"
	"mdimport/styles"
)

// Trimmer removes pages after the end of text and reports how many were
// removed.
type Trimmer interface {
	Trim(story *document.Story) (int, error)
}

// Result summarizes a successful run.
type Result struct {
	Rewrites         int
	PatternFailures  int
	FootnotesCreated int
	FootnotesMissing int
	PagesRemoved     int
}

// Pipeline is configured once and may run over many stories, one at a time.
type Pipeline struct {
	registry *styles.Registry
	mapping  *mapping.Mapping
	guard    *escape.Guard
	trimmer  Trimmer
	log      *zap.Logger
}

// New creates pipeline. Trimmer may be nil, it is only used when mapping
// asks for blank page removal.
func New(reg *styles.Registry, m *mapping.Mapping, g *escape.Guard, trimmer Trimmer, log *zap.Logger) *Pipeline {
	if g == nil {
		g = escape.Default()
	}
	return &Pipeline{
		registry: reg,
		mapping:  m,
		guard:    g,
		trimmer:  trimmer,
		log:      log.Named("engine"),
	}
}

// Run processes a copy of the story and returns it. On error the source
// story is unchanged and no partial result is returned.
func (p *Pipeline) Run(src *document.Story) (*document.Story, *Result, error) {
	if err := p.registry.Validate(); err != nil {
		return nil, nil, &StageError{Stage: StageInit, Err: err}
	}

	story := src.Clone()
	res := &Result{}
	cls := markup.NewClassifier(p.mapping, p.log)

	stages := []struct {
		name string
		fn   func() error
	}{
		{StageReset, func() error {
			p.reset(story)
			return nil
		}},
		{StageBlocks, func() error {
			cls.Blocks(story)
			return nil
		}},
		{StageInlines, func() error {
			cls.Inlines(story, true)
			return nil
		}},
		{StageFootnotes, func() error {
			notes := footnote.Collect(story, p.log)
			st := footnote.Resolve(story, notes, p.mapping.Style(common.RoleNote), p.log)
			res.FootnotesCreated, res.FootnotesMissing = st.Created, st.Missing
			res.Rewrites += st.Created
			return nil
		}},
		{StageCleanup, func() error {
			n, err := cleanup(story, p.guard)
			res.Rewrites += n
			return err
		}},
		{StageFootnoteStyles, func() error {
			for _, fn := range story.Footnotes() {
				cls.Inlines(fn.Body, false)
			}
			return nil
		}},
		{StageFootnoteEscapes, func() error {
			return release(story, document.ScopeFootnotes, p.guard)
		}},
		{StageTrim, func() error {
			if !p.mapping.RemoveBlankPages || p.trimmer == nil {
				return nil
			}
			n, err := p.trimmer.Trim(story)
			res.PagesRemoved = n
			return err
		}},
	}

	for _, s := range stages {
		if err := runStage(s.name, s.fn); err != nil {
			p.log.Debug("Stage failed", zap.String("stage", s.name), zap.Error(err))
			return nil, nil, err
		}
		p.log.Debug("Stage completed", zap.String("stage", s.name))
	}

	res.Rewrites += cls.Rewrites
	res.PatternFailures = cls.Failures
	return story, res, nil
}

func runStage(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &StageError{Stage: name, Err: fmt.Errorf("panic: %v\n%s", r, debug.Stack())}
		}
	}()
	if err := fn(); err != nil {
		return &StageError{Stage: name, Err: err}
	}
	return nil
}

// reset protects escapes and gives normal style to every paragraph without
// one.
func (p *Pipeline) reset(story *document.Story) {
	protect(story, p.guard)
	normal := p.mapping.Style(common.RoleNormal)
	if normal == nil {
		return
	}
	for _, para := range story.Paragraphs() {
		if para.Style == nil {
			para.Style = normal
		}
	}
}
