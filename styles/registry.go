// Package styles provides the catalogue of paragraph and character styles
// available to the markup engine.
package styles

import (
	"errors"
	"fmt"
	"strings"

	"mdimport/common"
)

// ErrEmptyCatalogue is returned when registry has no usable paragraph or
// character styles.
var ErrEmptyCatalogue = errors.New("style catalogue is empty")

// Declaration is a single stylesheet property.
type Declaration struct {
	Property string
	Value    string
}

// Style is a named document style.
type Style struct {
	Name  string
	Kind  common.StyleKind
	Group string // slash separated path of enclosing groups, empty for top level

	// Rendering hints, only set for styles coming from stylesheets.
	Element      string
	Class        string
	Declarations []Declaration
}

func (s *Style) String() string {
	if s == nil {
		return "<none>"
	}
	if s.Group != "" {
		return s.Group + "/" + s.Name
	}
	return s.Name
}

// Group is a possibly nested collection of styles as host documents keep
// them.
type Group struct {
	Name   string
	Styles []*Style
	Groups []*Group
}

// Registry is a flattened catalogue. Hidden entries are excluded.
type Registry struct {
	paragraph  []*Style
	character  []*Style
	stylesheet []byte
}

// IsHidden reports if style name is reserved by the host and must not be
// offered to the engine.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, "[")
}

// New flattens paragraph and character groups into a registry. Styles of a
// group go before styles of its subgroups.
func New(paragraph, character *Group) *Registry {
	return &Registry{
		paragraph: flatten(paragraph, common.StyleKindParagraph, "", nil),
		character: flatten(character, common.StyleKindCharacter, "", nil),
	}
}

func flatten(g *Group, kind common.StyleKind, path string, out []*Style) []*Style {
	if g == nil {
		return out
	}
	for _, s := range g.Styles {
		if s == nil || s.Name == "" || IsHidden(s.Name) {
			continue
		}
		s.Kind = kind
		s.Group = path
		out = append(out, s)
	}
	for _, sub := range g.Groups {
		if sub == nil {
			continue
		}
		p := sub.Name
		if path != "" {
			p = path + "/" + sub.Name
		}
		out = flatten(sub, kind, p, out)
	}
	return out
}

// Catalogue returns ordered styles of requested kind.
func (r *Registry) Catalogue(kind common.StyleKind) []*Style {
	switch kind {
	case common.StyleKindParagraph:
		return append([]*Style(nil), r.paragraph...)
	case common.StyleKindCharacter:
		return append([]*Style(nil), r.character...)
	}
	return nil
}

// Names returns display names of requested kind in catalogue order.
func (r *Registry) Names(kind common.StyleKind) []string {
	list := r.Catalogue(kind)
	names := make([]string, 0, len(list))
	for _, s := range list {
		names = append(names, s.Name)
	}
	return names
}

// Find returns first style of the kind with exactly this name or nil.
func (r *Registry) Find(kind common.StyleKind, name string) *Style {
	for _, s := range r.list(kind) {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// First returns first style of the kind or nil when catalogue is empty.
func (r *Registry) First(kind common.StyleKind) *Style {
	if l := r.list(kind); len(l) > 0 {
		return l[0]
	}
	return nil
}

// Validate makes sure both catalogues have something to offer.
func (r *Registry) Validate() error {
	if len(r.paragraph) == 0 {
		return fmt.Errorf("paragraph styles: %w", ErrEmptyCatalogue)
	}
	if len(r.character) == 0 {
		return fmt.Errorf("character styles: %w", ErrEmptyCatalogue)
	}
	return nil
}

// Stylesheet returns stylesheet registry was built from, nil if registry
// was not loaded from CSS.
func (r *Registry) Stylesheet() []byte {
	return r.stylesheet
}

func (r *Registry) list(kind common.StyleKind) []*Style {
	if kind == common.StyleKindCharacter {
		return r.character
	}
	return r.paragraph
}
