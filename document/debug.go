package document

import (
	"mdimport/utils/debug"
)

// String returns readable tree of the story with styles and footnotes. It
// exists solely for debugging.
func (s *Story) String() string {
	if s == nil {
		return "<nil Story>"
	}
	tw := debug.NewTreeWriter()
	s.dump(tw, 0)
	return tw.String()
}

func (s *Story) dump(tw *debug.TreeWriter, depth int) {
	tw.Line(depth, "Story (%d paragraphs)", len(s.paras))
	for i, p := range s.paras {
		tw.Line(depth+1, "Paragraph[%d] style=%s", i, p.Style)
		for _, r := range p.Runs() {
			if r.Note != nil {
				tw.Line(depth+2, "Footnote id=%q", r.Note.ID)
				r.Note.Body.dump(tw, depth+3)
				continue
			}
			tw.TextBlock(depth+2, "Run style="+r.Style.String(), r.Text)
		}
	}
}
