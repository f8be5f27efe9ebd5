package content

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"mdimport/common"
	"mdimport/utils/debug"
)

// String returns a readable tree of the whole Content starting with processed
// story. It exists solely for manual inspection during debugging.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "Content %q id=%s lang=%s", c.SrcName, c.ID, c.Language)
	tw.Line(1, "Title: %q", c.Title)
	tw.Line(1, "Pages: %d", c.Pages)
	if c.Result != nil {
		tw.Line(1, "Rewrites=%d failures=%d footnotes=%d missing=%d removed_pages=%d",
			c.Result.Rewrites, c.Result.PatternFailures, c.Result.FootnotesCreated,
			c.Result.FootnotesMissing, c.Result.PagesRemoved)
	}

	if c.Mapping != nil {
		tw.Line(0, "Mapping (%s) %s", c.MappingSource.Kind, c.MappingSource.Path)
		for _, role := range common.RoleValues() {
			tw.Line(1, "%s => %s", role, c.Mapping.Style(role))
		}
		tw.Line(1, "removeBlankPages => %t", c.Mapping.RemoveBlankPages)
	}

	if c.Story != nil {
		notes := make(map[string]int)
		for _, fn := range c.Story.Footnotes() {
			notes[fn.ID]++
		}
		if len(notes) > 0 {
			tw.Line(0, "Footnotes index: %d", len(notes))
			keys := slices.Collect(maps.Keys(notes))
			sort.Sort(natural.StringSlice(keys))
			for _, k := range keys {
				tw.Line(1, "Footnote[%q] references=%d", k, notes[k])
			}
		}
	}

	return tw.String() + "\n" + c.Story.String()
}
