// Package xhtml writes processed document as a single XHTML 1.1 file.
package xhtml

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"mdimport/common"
	"mdimport/content"
	"mdimport/document"
	"mdimport/misc"
	"mdimport/styles"
)

// Generate writes XHTML document to outputPath.
func Generate(ctx context.Context, c *content.Content, outputPath string, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Debug("Generating XHTML", zap.String("output", outputPath))

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer f.Close()

	if _, err := Build(c).WriteTo(f); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	return f.Sync()
}

type note struct {
	num int
	fn  *document.Footnote
}

type builder struct {
	c     *content.Content
	notes []note
	// paragraph contents are filled after structure is indented, so
	// indentation never leaks into mixed text
	fills []func()
}

// Build renders content as XHTML tree.
func Build(c *content.Content) *etree.Document {
	b := &builder{c: c}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.1//EN" "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd"`)

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xml:lang", c.Language.String())

	head := html.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("http-equiv", "Content-Type")
	meta.CreateAttr("content", "text/html; charset=utf-8")
	b.meta(head, "generator", misc.GetAppName()+" "+misc.GetVersion())
	b.meta(head, "identifier", "urn:uuid:"+c.ID.String())
	b.meta(head, "pages", strconv.Itoa(c.Pages))
	head.CreateElement("title").SetText(c.Title)
	if css := c.Registry.Stylesheet(); len(css) > 0 {
		style := head.CreateElement("style")
		style.CreateAttr("type", "text/css")
		style.SetText(string(css))
	}

	body := html.CreateElement("body")
	b.story(body, c.Story)

	// footnote bodies may reference further notes, list grows while walking
	if len(b.notes) > 0 {
		section := body.CreateElement("div")
		section.CreateAttr("class", "footnotes")
		for i := 0; i < len(b.notes); i++ {
			n := b.notes[i]
			div := section.CreateElement("div")
			div.CreateAttr("id", noteID(n.num))
			div.CreateAttr("class", "footnote")
			back := b.story(div, n.fn.Body)
			b.fills = append(b.fills, func() {
				a := etree.NewElement("a")
				a.CreateAttr("href", "#"+refID(n.num))
				a.SetText(strconv.Itoa(n.num) + ".")
				if back == nil {
					div.InsertChildAt(0, a)
					return
				}
				back.InsertChildAt(0, a)
				back.InsertChildAt(1, etree.NewText(" "))
			})
		}
	}

	doc.Indent(2)
	for _, fill := range b.fills {
		fill()
	}
	return doc
}

func (b *builder) meta(head *etree.Element, name, value string) {
	m := head.CreateElement("meta")
	m.CreateAttr("name", name)
	m.CreateAttr("content", value)
}

// story appends paragraphs of s to parent and returns element of the first
// paragraph, nil for empty story.
func (b *builder) story(parent *etree.Element, s *document.Story) *etree.Element {
	var (
		first *etree.Element
		list  *etree.Element
	)
	for _, p := range s.Paragraphs() {
		tag, class := b.element(p.Style)

		container := parent
		switch tag {
		case "li":
			if list == nil {
				list = parent.CreateElement("ul")
			}
			container = list
		case "blockquote":
			list = nil
			container = parent.CreateElement("blockquote")
			if class != "" {
				container.CreateAttr("class", class)
			}
			tag = "p"
		default:
			list = nil
		}

		el := container.CreateElement(tag)
		if class != "" {
			el.CreateAttr("class", class)
		}
		if first == nil {
			first = el
		}
		runs := p.Runs()
		nums := make([]int, len(runs))
		for i, r := range runs {
			if r.Note != nil {
				nums[i] = len(b.notes) + 1
				b.notes = append(b.notes, note{num: nums[i], fn: r.Note})
			}
		}
		b.fills = append(b.fills, func() { b.runs(el, runs, nums) })
	}
	return first
}

// runs fills paragraph element, nums holds note numbers for anchor runs.
func (b *builder) runs(el *etree.Element, runs []document.Run, nums []int) {
	for i, r := range runs {
		if r.Note != nil {
			num := nums[i]
			a := el.CreateElement("a")
			a.CreateAttr("id", refID(num))
			a.CreateAttr("href", "#"+noteID(num))
			a.CreateAttr("class", "noteref")
			a.CreateElement("sup").SetText(strconv.Itoa(num))
			continue
		}
		if r.Style == nil {
			el.CreateText(r.Text)
			continue
		}
		span := el.CreateElement("span")
		span.CreateAttr("class", className(r.Style))
		span.SetText(r.Text)
	}
}

// element decides tag for paragraph style: stylesheet element when known,
// otherwise element of the role the style is mapped to.
func (b *builder) element(s *styles.Style) (string, string) {
	if s == nil {
		return "p", ""
	}
	class := className(s)
	if s.Element != "" && s.Element != "div" && s.Element != "aside" {
		return s.Element, class
	}
	role, ok := b.c.Mapping.RoleOf(s)
	if !ok {
		return "p", class
	}
	switch role {
	case common.RoleH1, common.RoleH2, common.RoleH3, common.RoleH4, common.RoleH5, common.RoleH6:
		return role.String(), class
	case common.RoleQuote:
		return "blockquote", class
	case common.RoleBulletlist:
		return "li", class
	}
	return "p", class
}

func className(s *styles.Style) string {
	if s.Class != "" {
		return s.Class
	}
	return slug.Make(s.Name)
}

func refID(n int) string {
	return "ref-" + strconv.Itoa(n)
}

func noteID(n int) string {
	return "note-" + strconv.Itoa(n)
}
