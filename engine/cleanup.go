package engine

import (
	"mdimport/document"
	"mdimport/escape"
)

var dashes = []struct{ old, new string }{
	{"---", "—"},
	{"–-", "—"},
}

// cleanup collapses runs of paragraph breaks, normalizes dashes and releases
// escapes in the main flow. Footnote bodies are not touched. Returns number
// of changes made.
func cleanup(story *document.Story, g *escape.Guard) (int, error) {
	n := 0

	paras := story.Paragraphs()
	for i := len(paras) - 1; i > 0; i-- {
		if paras[i].Len() != 0 {
			continue
		}
		if err := story.Remove(i); err != nil {
			return n, err
		}
		n++
	}

	for _, d := range dashes {
		n += story.ReplaceAll(document.ScopeMain, d.old, d.new)
	}

	return n, release(story, document.ScopeMain, g)
}
