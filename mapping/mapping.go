// Package mapping connects semantic roles of the markup engine to styles of
// the document registry.
package mapping

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mdimport/common"
	"mdimport/styles"
)

// Mapping is resolved once per run, engine never looks styles up by name.
type Mapping struct {
	styles map[common.Role]*styles.Style

	// RemoveBlankPages requests trimming of pages after the end of text.
	RemoveBlankPages bool
}

func New() *Mapping {
	return &Mapping{styles: make(map[common.Role]*styles.Style)}
}

// Style returns style mapped to role, nil means "strip markup, no style".
func (m *Mapping) Style(role common.Role) *styles.Style {
	if m == nil {
		return nil
	}
	return m.styles[role]
}

func (m *Mapping) Set(role common.Role, s *styles.Style) {
	if s == nil {
		delete(m.styles, role)
		return
	}
	m.styles[role] = s
}

// RoleOf finds paragraph or character role style is mapped to. Normal role
// has priority since fallbacks tend to map several roles to the same style.
func (m *Mapping) RoleOf(s *styles.Style) (common.Role, bool) {
	if s == nil {
		return "", false
	}
	if m.styles[common.RoleNormal] == s {
		return common.RoleNormal, true
	}
	for _, r := range common.RoleValues() {
		if m.styles[r] == s {
			return r, true
		}
	}
	return "", false
}

// Guess builds mapping from registry names. For every role synonyms are
// tried in order against case folded style names, when nothing matches
// first style of the category is used.
func Guess(reg *styles.Registry, tag language.Tag) *Mapping {
	fold := cases.Fold()
	m := New()
	for _, role := range common.RoleValues() {
		catalogue := reg.Catalogue(role.Kind())
		m.Set(role, pick(catalogue, Synonyms(tag, role), fold))
	}
	return m
}

func pick(catalogue []*styles.Style, synonyms []string, fold cases.Caser) *styles.Style {
	if len(catalogue) == 0 {
		return nil
	}
	names := make([]string, len(catalogue))
	for i, s := range catalogue {
		names[i] = fold.String(s.Name)
	}
	for _, syn := range synonyms {
		want := fold.String(syn)
		for i, name := range names {
			if name == want {
				return catalogue[i]
			}
		}
	}
	return catalogue[0]
}
