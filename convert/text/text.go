// Package text writes processed document as plain UTF-8 text with numbered
// footnote markers and notes collected at the end.
package text

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"mdimport/common"
	"mdimport/content"
	"mdimport/document"
)

const notesSeparator = "* * *"

// Generate writes text document to outputPath.
func Generate(ctx context.Context, c *content.Content, outputPath string, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Debug("Generating text", zap.String("output", outputPath))

	if err := os.WriteFile(outputPath, []byte(Render(c)), 0644); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	return nil
}

type renderer struct {
	c     *content.Content
	sb    strings.Builder
	notes []*document.Footnote
}

// Render returns text of the document.
func Render(c *content.Content) string {
	r := &renderer{c: c}
	r.story(c.Story, "")

	if len(r.notes) > 0 {
		r.sb.WriteString("\n" + notesSeparator + "\n\n")
		for i := 0; i < len(r.notes); i++ {
			r.story(r.notes[i].Body, "["+strconv.Itoa(i+1)+"] ")
		}
	}
	return r.sb.String()
}

// story writes paragraphs, lead goes in front of the first one.
func (r *renderer) story(s *document.Story, lead string) {
	for i, p := range s.Paragraphs() {
		if i == 0 {
			r.sb.WriteString(lead)
		}
		r.sb.WriteString(r.prefix(p))
		for _, run := range p.Runs() {
			if run.Note != nil {
				r.notes = append(r.notes, run.Note)
				r.sb.WriteString("[" + strconv.Itoa(len(r.notes)) + "]")
				continue
			}
			r.sb.WriteString(run.Text)
		}
		r.sb.WriteByte('\n')
	}
}

func (r *renderer) prefix(p *document.Paragraph) string {
	if p.Style == nil {
		return ""
	}
	role, ok := r.c.Mapping.RoleOf(p.Style)
	if !ok {
		return ""
	}
	switch role {
	case common.RoleBulletlist:
		return "• "
	case common.RoleQuote:
		return "    "
	}
	return ""
}
