package mapping

import (
	"slices"

	"golang.org/x/text/language"

	"mdimport/common"
)

var locales = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(locales)

var synonyms = map[language.Tag]map[common.Role][]string{
	language.English: {
		common.RoleH1:          {"heading 1", "h1"},
		common.RoleH2:          {"heading 2", "h2"},
		common.RoleH3:          {"heading 3", "h3"},
		common.RoleH4:          {"heading 4", "h4"},
		common.RoleH5:          {"heading 5", "h5"},
		common.RoleH6:          {"heading 6", "h6"},
		common.RoleQuote:       {"blockquote", "quote"},
		common.RoleBulletlist:  {"bullet", "bulleted list", "ul"},
		common.RoleNormal:      {"body", "body text", "normal", "standard"},
		common.RoleItalic:      {"italic", "em"},
		common.RoleBold:        {"bold", "strong"},
		common.RoleBolditalic:  {"bold italic", "strong em", "bold-italic"},
		common.RoleUnderline:   {"underline"},
		common.RoleSmallcaps:   {"small caps", "smallcaps"},
		common.RoleSubscript:   {"subscript"},
		common.RoleSuperscript: {"superscript"},
		common.RoleNote:        {"note", "footnote"},
	},
	language.French: {
		common.RoleH1:          {"titre 1"},
		common.RoleH2:          {"titre 2"},
		common.RoleH3:          {"titre 3"},
		common.RoleH4:          {"titre 4"},
		common.RoleH5:          {"titre 5"},
		common.RoleH6:          {"titre 6"},
		common.RoleQuote:       {"citation"},
		common.RoleBulletlist:  {"liste", "liste à puce", "liste à puces"},
		common.RoleNormal:      {"texte", "texte standard", "corps de texte"},
		common.RoleItalic:      {"italique"},
		common.RoleBold:        {"gras"},
		common.RoleBolditalic:  {"gras italique", "gras-italique"},
		common.RoleUnderline:   {"souligne", "souligné"},
		common.RoleSmallcaps:   {"petites capitales", "petite cap"},
		common.RoleSubscript:   {"indice"},
		common.RoleSuperscript: {"exposant"},
		common.RoleNote:        {"note", "notes de bas de page"},
	},
}

// Locales lists languages with synonym tables.
func Locales() []language.Tag {
	return slices.Clone(locales)
}

// Synonyms returns ordered candidate style names for role: synonyms of the
// best matching locale first, then synonyms of all other locales.
func Synonyms(tag language.Tag, role common.Role) []string {
	_, idx, _ := matcher.Match(tag)

	var out []string
	add := func(names []string) {
		for _, n := range names {
			if !slices.Contains(out, n) {
				out = append(out, n)
			}
		}
	}
	add(synonyms[locales[idx]][role])
	for i, l := range locales {
		if i != idx {
			add(synonyms[l][role])
		}
	}
	return out
}
