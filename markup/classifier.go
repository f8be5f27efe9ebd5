package markup

import (
	"fmt"
	"runtime/debug"
	"unicode/utf8"

	"go.uber.org/zap"

	"mdimport/common"
	"mdimport/document"
	"mdimport/mapping"
	"mdimport/styles"
)

// ClassifyBlock rewrites every paragraph matching block pattern to its
// captured text and assigns style to it. Nil style only strips markup.
// Returns number of rewritten paragraphs.
func ClassifyBlock(story *document.Story, p Pattern, style *styles.Style) (int, error) {
	re, err := p.Compile()
	if err != nil {
		return 0, fmt.Errorf("pattern %s: %w", p.Name, err)
	}

	n := 0
	paras := story.Paragraphs()
	for i := len(paras) - 1; i >= 0; i-- {
		para := paras[i]
		text := para.Text()
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil || len(loc) < 4 || loc[2] < 0 {
			continue
		}
		start, inStart, inEnd, end := runeOffsets(text, loc[0], loc[2], loc[3], loc[1])
		if err := para.Unwrap(start, inStart, inEnd, end); err != nil {
			return n, fmt.Errorf("pattern %s, paragraph %d: %w", p.Name, i, err)
		}
		if style != nil {
			para.Style = style
		}
		n++
	}
	return n, nil
}

// ClassifyInline rewrites every span matching inline pattern to its captured
// text and applies character style to it. Paragraphs with skip[i] set are
// left alone. Spans never cross paragraphs. Returns number of rewrites.
func ClassifyInline(story *document.Story, p Pattern, style *styles.Style, skip []bool) (int, error) {
	re, err := p.Compile()
	if err != nil {
		return 0, fmt.Errorf("pattern %s: %w", p.Name, err)
	}

	n := 0
	paras := story.Paragraphs()
	for i := len(paras) - 1; i >= 0; i-- {
		if i < len(skip) && skip[i] {
			continue
		}
		para := paras[i]
		text := para.Text()
		matches := re.FindAllStringSubmatchIndex(text, -1)
		// last match first so earlier offsets stay put
		for j := len(matches) - 1; j >= 0; j-- {
			loc := matches[j]
			if len(loc) < 4 || loc[2] < 0 || loc[2] == loc[3] {
				continue
			}
			start, inStart, inEnd, end := runeOffsets(text, loc[0], loc[2], loc[3], loc[1])
			if err := para.Unwrap(start, inStart, inEnd, end); err != nil {
				return n, fmt.Errorf("pattern %s, paragraph %d: %w", p.Name, i, err)
			}
			if style != nil {
				if err := para.StyleRange(start, start+inEnd-inStart, style); err != nil {
					return n, fmt.Errorf("pattern %s, paragraph %d: %w", p.Name, i, err)
				}
			}
			n++
		}
	}
	return n, nil
}

// DefinitionRuns marks paragraphs belonging to footnote definitions: every
// definition paragraph and all paragraphs after it, up to the next
// definition or the end of story.
func DefinitionRuns(story *document.Story) []bool {
	marks := make([]bool, story.Len())
	in := false
	for i, para := range story.Paragraphs() {
		if FootnoteDefinition.MatchString(para.Text()) {
			in = true
		}
		marks[i] = in
	}
	return marks
}

// runeOffsets converts ascending byte offsets into text to rune offsets.
func runeOffsets(text string, a, b, c, d int) (int, int, int, int) {
	ra := utf8.RuneCountInString(text[:a])
	rb := ra + utf8.RuneCountInString(text[a:b])
	rc := rb + utf8.RuneCountInString(text[b:c])
	rd := rc + utf8.RuneCountInString(text[c:d])
	return ra, rb, rc, rd
}

// Stats accumulates classifier results over a run.
type Stats struct {
	Rewrites int
	Failures int
}

// Classifier applies pattern tables with styles taken from mapping. A
// failing pattern is logged and skipped, the rest of the table still runs.
type Classifier struct {
	mapping *mapping.Mapping
	log     *zap.Logger

	Stats
}

func NewClassifier(m *mapping.Mapping, log *zap.Logger) *Classifier {
	return &Classifier{mapping: m, log: log.Named("markup")}
}

// Blocks applies block patterns in precedence order.
func (c *Classifier) Blocks(story *document.Story) {
	for _, p := range blockPatterns {
		c.apply(p, func() (int, error) {
			return ClassifyBlock(story, p, c.mapping.Style(p.Role))
		})
	}
}

// Inlines applies inline patterns and subscript pairing. When
// skipDefinitions is set footnote definition runs are not touched, they are
// styled after their content is moved into footnotes.
func (c *Classifier) Inlines(story *document.Story, skipDefinitions bool) {
	var skip []bool
	if skipDefinitions {
		skip = DefinitionRuns(story)
	}
	for _, p := range inlinePatterns {
		c.apply(p, func() (int, error) {
			return ClassifyInline(story, p, c.mapping.Style(p.Role), skip)
		})
	}
	c.apply(Pattern{Name: "subscript", Role: common.RoleSubscript}, func() (int, error) {
		return Subscript(story, c.mapping.Style(common.RoleSubscript), skip)
	})
}

// Patterns applies arbitrary patterns, block patterns are recognized by
// their role kind.
func (c *Classifier) Patterns(story *document.Story, patterns []Pattern) {
	for _, p := range patterns {
		c.apply(p, func() (int, error) {
			if p.Role.Kind() == common.StyleKindParagraph {
				return ClassifyBlock(story, p, c.mapping.Style(p.Role))
			}
			return ClassifyInline(story, p, c.mapping.Style(p.Role), nil)
		})
	}
}

func (c *Classifier) apply(p Pattern, fn func() (int, error)) {
	n, err := func() (n int, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("pattern %s panicked: %v", p.Name, r)
				c.log.Debug("Pattern panic", zap.ByteString("stack", debug.Stack()))
			}
		}()
		return fn()
	}()
	c.Rewrites += n
	if err != nil {
		c.Failures++
		c.log.Warn("Pattern failed, skipping", zap.String("pattern", p.Name), zap.Stringer("role", p.Role), zap.Error(err))
		return
	}
	if n > 0 {
		c.log.Debug("Pattern applied", zap.String("pattern", p.Name), zap.Int("rewrites", n))
	}
}
