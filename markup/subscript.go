package markup

import (
	"fmt"

	"mdimport/document"
	"mdimport/styles"
)

// Subscript styles text between consecutive pairs of subscript delimiters
// and removes the delimiters. Delimiters are paired in document order, pairs
// are processed from the last one. A pair spanning paragraphs or enclosing
// nothing is left as is, as is an unpaired trailing delimiter. Paragraphs
// with skip[i] set do not take part in pairing.
func Subscript(story *document.Story, style *styles.Style, skip []bool) (int, error) {
	var found []document.Pos
	paras := story.Paragraphs()
	for i, para := range paras {
		if i < len(skip) && skip[i] {
			continue
		}
		for off, r := range para.Runes() {
			if r == SubscriptDelimiter {
				found = append(found, document.Pos{Para: i, Off: off})
			}
		}
	}

	n := 0
	for pair := len(found)/2 - 1; pair >= 0; pair-- {
		first, second := found[2*pair], found[2*pair+1]
		if first.Para != second.Para || second.Off <= first.Off+1 {
			continue
		}
		para := paras[first.Para]
		if style != nil {
			if err := para.StyleRange(first.Off+1, second.Off, style); err != nil {
				return n, fmt.Errorf("subscript pair at %d:%d: %w", first.Para, first.Off, err)
			}
		}
		if err := para.Unwrap(first.Off, first.Off+1, second.Off, second.Off+1); err != nil {
			return n, fmt.Errorf("subscript pair at %d:%d: %w", first.Para, first.Off, err)
		}
		n++
	}
	return n, nil
}
