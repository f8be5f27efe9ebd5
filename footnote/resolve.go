package footnote

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"mdimport/document"
	"mdimport/escape"
	"mdimport/markup"
	"mdimport/styles"
)

// Stats reports outcome of reference resolution.
type Stats struct {
	References int
	Created    int
	Missing    int
	Failed     int
}

type reference struct {
	id         string
	para       int
	start, end int // global offsets of the marker
}

// Resolve replaces every [^id] reference in story with a footnote holding
// content from the table. References are processed from the end of the
// story. Unknown ids are logged and the marker is kept as text. The note
// style, when set, goes to the first paragraph of each footnote.
func Resolve(story *document.Story, notes Table, noteStyle *styles.Style, log *zap.Logger) Stats {
	log = log.Named("footnote")

	refs := findReferences(story)
	st := Stats{References: len(refs)}

	for i := len(refs) - 1; i >= 0; i-- {
		ref := refs[i]
		content, ok := notes[ref.id]
		if !ok {
			st.Missing++
			log.Warn("No definition found for footnote", zap.String("id", ref.id), zap.Int("paragraph", ref.para))
			continue
		}

		pos, err := story.Pos(ref.start)
		if err == nil {
			err = story.Paragraph(pos.Para).Delete(pos.Off, pos.Off+ref.end-ref.start)
		}
		if err != nil {
			st.Failed++
			log.Warn("Unable to remove footnote reference", zap.String("id", ref.id), zap.Error(err))
			continue
		}

		at := anchorOffset(story, ref.start, refs[:i])
		body := document.NewStory(content)
		if noteStyle != nil {
			body.Paragraph(0).Style = noteStyle
		}
		if err := story.InsertFootnote(at, &document.Footnote{ID: ref.id, Body: body}); err != nil {
			st.Failed++
			log.Warn("Unable to insert footnote", zap.String("id", ref.id), zap.Int("offset", at), zap.Error(err))
			continue
		}
		st.Created++

		// earlier markers between anchor and this reference moved by one
		for k := range refs[:i] {
			if refs[k].start >= at {
				refs[k].start++
				refs[k].end++
			}
		}
	}

	log.Debug("Footnotes resolved",
		zap.Int("references", st.References),
		zap.Int("created", st.Created),
		zap.Int("missing", st.Missing),
		zap.Int("failed", st.Failed))
	return st
}

func findReferences(story *document.Story) []reference {
	var refs []reference
	base := 0
	for i, para := range story.Paragraphs() {
		text := para.Text()
		for _, loc := range markup.FootnoteReference.FindAllStringSubmatchIndex(text, -1) {
			start := base + utf8.RuneCountInString(text[:loc[0]])
			refs = append(refs, reference{
				id:    text[loc[2]:loc[3]],
				para:  i,
				start: start,
				end:   start + utf8.RuneCountInString(text[loc[0]:loc[1]]),
			})
		}
		base += para.Len() + 1
	}
	return refs
}

// anchorOffset finds where footnote for a reference removed at offset goes:
// back over everything that is not a letter or digit, so the note sticks to
// the preceding word, then forward over combining marks so it does not split
// an accented character. Pending reference markers and escape sentinels are
// stepped over as a whole, every escaped character is punctuation.
func anchorOffset(story *document.Story, offset int, pending []reference) int {
	at := offset
	for at > 0 {
		if ref, ok := endingAt(pending, at); ok {
			at = ref.start
			continue
		}
		if n := sentinelEndingAt(story, at); n > 0 {
			at -= n
			continue
		}
		r, ok := story.RuneAt(at - 1)
		if ok && isAlnum(r) {
			break
		}
		at--
	}
	for {
		r, ok := story.RuneAt(at)
		if !ok || !isCombining(r) {
			break
		}
		at++
	}
	return at
}

var sentinels = func() [][]rune {
	var out [][]rune
	for _, s := range escape.Default().Sentinels() {
		out = append(out, []rune(s))
	}
	return out
}()

// sentinelEndingAt returns length in runes of escape sentinel ending right
// before offset, zero when there is none.
func sentinelEndingAt(story *document.Story, at int) int {
	pos, err := story.Pos(at)
	if err != nil {
		return 0
	}
	runes := story.Paragraph(pos.Para).Runes()[:pos.Off]
	for _, s := range sentinels {
		if len(runes) >= len(s) && slices.Equal(runes[len(runes)-len(s):], s) {
			return len(s)
		}
	}
	return 0
}

func endingAt(refs []reference, offset int) (reference, bool) {
	for i := len(refs) - 1; i >= 0; i-- {
		if refs[i].end == offset {
			return refs[i], true
		}
	}
	return reference{}, false
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isCombining(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}
