package engine

import (
	"fmt"

	"mdimport/document"
	"mdimport/escape"
)

// protect swaps escape sequences for sentinels keeping character styles.
// Sentinel marks of the source go first, so later sentinels are never
// confused with source text.
func protect(story *document.Story, g *escape.Guard) {
	story.ReplaceAll(document.ScopeAll, escape.Reserved.Seq, escape.Reserved.Sentinel)
	for _, e := range g.Entries() {
		story.ReplaceAll(document.ScopeAll, e.Seq, e.Sentinel)
	}
}

// release turns sentinels within scope into the characters they protect and
// fails if a cut sentinel survives. Reserved sentinels go last, marks they
// bring back are source text.
func release(story *document.Story, scope document.Scope, g *escape.Guard) error {
	for _, e := range g.Entries() {
		story.ReplaceAll(scope, e.Sentinel, e.Literal())
	}
	for i, text := range scopeTexts(story, scope) {
		if escape.Broken(text) {
			return fmt.Errorf("escape sentinel left in text block %d", i)
		}
	}
	story.ReplaceAll(scope, escape.Reserved.Sentinel, escape.Reserved.Literal())
	return nil
}

func scopeTexts(story *document.Story, scope document.Scope) []string {
	var out []string
	if scope == document.ScopeMain || scope == document.ScopeAll {
		out = append(out, story.Text())
	}
	if scope == document.ScopeFootnotes || scope == document.ScopeAll {
		for _, fn := range story.Footnotes() {
			out = append(out, fn.Body.Text())
		}
	}
	return out
}
