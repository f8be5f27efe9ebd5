package styles

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
	"golang.org/x/net/html/atom"

	"mdimport/common"
)

var selectorRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)?(?:\.([A-Za-z_][A-Za-z0-9_-]*))?$`)

// elementKind classifies HTML element selector into style category.
func elementKind(element string) (common.StyleKind, bool) {
	switch atom.Lookup([]byte(strings.ToLower(element))) {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Blockquote, atom.Li, atom.Div, atom.Aside:
		return common.StyleKindParagraph, true
	case atom.Span, atom.Em, atom.Strong, atom.I, atom.B, atom.U,
		atom.Sup, atom.Sub, atom.Small:
		return common.StyleKindCharacter, true
	}
	return 0, false
}

// displayName turns class name into style name: "small-caps" -> "small caps".
func displayName(class string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(class)
}

// ParseCSS builds registry from stylesheet. Only simple selectors are
// considered: "element.class" or bare "element" for known block and inline
// elements. Element decides the style kind, class (or element when there is
// no class) becomes the style name. Rules inside @-blocks are ignored.
func ParseCSS(data []byte, log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("css")

	paragraph, character := &Group{}, &Group{}
	index := make(map[string]*Style)

	p := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, chunk := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("unable to parse stylesheet: %w", err)
			}
			r := New(paragraph, character)
			r.stylesheet = data
			return r, nil

		case css.BeginAtRuleGrammar:
			log.Debug("Skipping @-rule block", zap.ByteString("rule", chunk))
			skipAtRuleBlock(p)

		case css.BeginRulesetGrammar:
			selectors := selectorList(chunk, p.Values())
			decls := declarations(p)

			for _, sel := range selectors {
				m := selectorRe.FindStringSubmatch(sel)
				if m == nil || (m[1] == "" && m[2] == "") {
					log.Debug("Skipping complex selector", zap.String("selector", sel))
					continue
				}
				element, class := strings.ToLower(m[1]), m[2]
				if element == "" {
					log.Debug("Skipping selector without element", zap.String("selector", sel))
					continue
				}
				kind, ok := elementKind(element)
				if !ok {
					log.Debug("Skipping selector for unsupported element", zap.String("selector", sel))
					continue
				}

				name := element
				if class != "" {
					name = displayName(class)
				}
				key := kind.String() + "|" + name
				if s, exists := index[key]; exists {
					s.Declarations = append(s.Declarations, decls...)
					continue
				}
				s := &Style{Name: name, Element: element, Class: class, Declarations: append([]Declaration(nil), decls...)}
				index[key] = s
				if kind == common.StyleKindParagraph {
					paragraph.Styles = append(paragraph.Styles, s)
				} else {
					character.Styles = append(character.Styles, s)
				}
			}
		}
	}
}

func selectorList(chunk []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(chunk)
	for _, v := range values {
		sb.Write(v.Data)
	}
	var out []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func declarations(p *css.Parser) []Declaration {
	var out []Declaration
	for {
		gt, _, chunk := p.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return out
		case css.DeclarationGrammar:
			var sb strings.Builder
			for _, v := range p.Values() {
				sb.Write(v.Data)
			}
			out = append(out, Declaration{Property: string(chunk), Value: strings.TrimSpace(sb.String())})
		}
	}
}

func skipAtRuleBlock(p *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar:
			depth++
		case css.EndAtRuleGrammar:
			depth--
		}
	}
}
