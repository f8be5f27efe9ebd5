// Package common keeps enumerations shared between the engine packages, the
// configuration and the command line.
package common

//go:generate go tool go-enum --marshal --names --values

// Semantic category a marked up span is classified into.
// ENUM(h1, h2, h3, h4, h5, h6, quote, bulletlist, normal, italic, bold, bolditalic, underline, smallcaps, subscript, superscript, note)
type Role string

// Kind returns category of styles role could be mapped to.
func (r Role) Kind() StyleKind {
	switch r {
	case RoleH1, RoleH2, RoleH3, RoleH4, RoleH5, RoleH6, RoleQuote, RoleBulletlist, RoleNormal, RoleNote:
		return StyleKindParagraph
	default:
		return StyleKindCharacter
	}
}

// HeadingLevel returns 1..6 for heading roles and 0 for everything else.
func (r Role) HeadingLevel() int {
	switch r {
	case RoleH1:
		return 1
	case RoleH2:
		return 2
	case RoleH3:
		return 3
	case RoleH4:
		return 4
	case RoleH5:
		return 5
	case RoleH6:
		return 6
	}
	return 0
}

// Category of document styles.
// ENUM(paragraph, character)
type StyleKind int

// Specification of requested output type.
// ENUM(xhtml, txt)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtXhtml:
		return ".xhtml"
	case OutputFmtTxt:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
