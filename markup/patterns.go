// Package markup classifies markup spans of a story and replaces them with
// paragraph and character styles.
package markup

import (
	"regexp"

	"mdimport/common"
)

// Pattern is a single classification rule. Group 1 of the expression is the
// text kept after rewriting.
type Pattern struct {
	Name string
	Expr string
	Role common.Role
}

// Compile returns the compiled expression.
func (p Pattern) Compile() (*regexp.Regexp, error) {
	return regexp.Compile(p.Expr)
}

// Block patterns are matched against paragraph text from its start, heading
// patterns anchor exact number of markers so they never overlap.
var blockPatterns = []Pattern{
	{"h1", `^# (.+)`, common.RoleH1},
	{"h2", `^## (.+)`, common.RoleH2},
	{"h3", `^### (.+)`, common.RoleH3},
	{"h4", `^#### (.+)`, common.RoleH4},
	{"h5", `^##### (.+)`, common.RoleH5},
	{"h6", `^###### (.+)`, common.RoleH6},
	{"quote", `^>[ \t]?(.+)`, common.RoleQuote},
	{"bullet", `^[-*+] (.+)`, common.RoleBulletlist},
}

// Inline patterns in order of application. Combined emphasis has to go first
// or plain bold and italic would eat its delimiters.
var inlinePatterns = []Pattern{
	{"bold-italic", `\*\*\*([^*]+)\*\*\*`, common.RoleBolditalic},
	{"bold-italic-underscore", `___([^_]+)___`, common.RoleBolditalic},
	{"bold-italic-mixed-1", `\*\*_([^_*]+)_\*\*`, common.RoleBolditalic},
	{"bold-italic-mixed-2", `__\*([^*_]+)\*__`, common.RoleBolditalic},
	{"bold-italic-mixed-3", `\*__([^_*]+)__\*`, common.RoleBolditalic},
	{"bold-italic-mixed-4", `_\*\*([^*_]+)\*\*_`, common.RoleBolditalic},
	{"bold", `\*\*([^*]+)\*\*`, common.RoleBold},
	{"bold-underscore", `__([^_]+)__`, common.RoleBold},
	{"italic", `\*([^*]+)\*`, common.RoleItalic},
	{"italic-underscore", `_([^_]+)_`, common.RoleItalic},
	{"underline", `\[([^\]]+)\]\{\.underline\}`, common.RoleUnderline},
	{"smallcaps", `\[([^\]]+)\]\{\.smallcaps\}`, common.RoleSmallcaps},
	{"superscript", `\^([^\^\r\]]+)\^`, common.RoleSuperscript},
}

// SubscriptDelimiter pairs around subscript text. It is handled by Subscript
// rather than by a pattern.
const SubscriptDelimiter = '~'

var (
	// FootnoteReference matches [^id] anywhere in text.
	FootnoteReference = regexp.MustCompile(`\[\^([^\]]+)\]`)
	// FootnoteDefinition matches [^id]: content at paragraph start.
	FootnoteDefinition = regexp.MustCompile(`^\[\^([^\]]+)\]:\s*(.+)`)
)

// BlockPatterns returns block rules in precedence order.
func BlockPatterns() []Pattern {
	return append([]Pattern(nil), blockPatterns...)
}

// InlinePatterns returns inline rules in precedence order.
func InlinePatterns() []Pattern {
	return append([]Pattern(nil), inlinePatterns...)
}
