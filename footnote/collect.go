// Package footnote turns footnote definitions and references written in
// markup into footnotes anchored in the story.
package footnote

import (
	"regexp"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"mdimport/document"
	"mdimport/markup"
)

// Table maps footnote id to its content, paragraphs of the content are
// separated by line feeds.
type Table map[string]string

// IDs returns ids in natural order.
func (t Table) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Sort(natural.StringSlice(ids))
	return ids
}

var trailingEmpty = regexp.MustCompile(`(\n\s*)+$`)

// Collect extracts footnote definitions from story. A definition absorbs
// every following paragraph up to the next definition or the end of story,
// trailing empty paragraphs are dropped from its content. All paragraphs of
// the definition are removed. When ids repeat the earliest definition wins.
func Collect(story *document.Story, log *zap.Logger) Table {
	log = log.Named("footnote")

	notes := make(Table)
	paras := story.Paragraphs()
	for i := len(paras) - 1; i >= 0; i-- {
		m := markup.FootnoteDefinition.FindStringSubmatch(paras[i].Text())
		if m == nil {
			continue
		}
		id, content := m[1], m[2]

		// paragraphs after this one are intact: removal only ever happened
		// starting at the next definition
		j := i + 1
		for ; j < len(paras); j++ {
			next := paras[j].Text()
			if markup.FootnoteDefinition.MatchString(next) {
				break
			}
			content += "\n" + next
		}
		content = trailingEmpty.ReplaceAllString(content, "")

		if _, ok := notes[id]; ok {
			log.Warn("Duplicate footnote definition, later one is dropped", zap.String("id", id), zap.Int("paragraph", i))
		}
		notes[id] = content

		for k := j - 1; k >= i; k-- {
			if err := story.Remove(k); err != nil {
				log.Warn("Unable to remove footnote definition paragraph", zap.String("id", id), zap.Int("paragraph", k), zap.Error(err))
			}
		}
		log.Debug("Footnote definition collected", zap.String("id", id), zap.Int("paragraphs", j-i))
	}
	return notes
}
