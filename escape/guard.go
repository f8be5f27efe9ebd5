// Package escape protects backslash escaped markup characters from the
// classifier by swapping them for sentinel tokens and brings them back later.
package escape

import "strings"

// Entry pairs two character escape sequence with its sentinel token.
type Entry struct {
	Seq      string
	Sentinel string
}

// Literal returns escaped character without backslash.
func (e Entry) Literal() string {
	return strings.TrimPrefix(e.Seq, `\`)
}

// Table is an ordered set of escape entries. Order matters: an entry must come
// before any entry whose sequence could overlap with it.
type Table []Entry

// SentinelMark delimits parts of every sentinel. Text never carries a bare
// mark while protected: marks already present in source are themselves
// replaced with the reserved sentinel.
const SentinelMark = "§"

// SentinelPrefix starts every sentinel, custom tables must use it too.
const SentinelPrefix = SentinelMark + "ESC" + SentinelMark

// Reserved protects sentinel marks found in source. It is applied before and
// released after every table entry.
var Reserved = Entry{Seq: SentinelMark, Sentinel: SentinelPrefix + "MARK" + SentinelMark}

var defaultTable = Table{
	{`\\`, "§ESC§BACKSLASH§"},
	{`\*`, "§ESC§ASTERISK§"},
	{`\#`, "§ESC§HASH§"},
	{`\$`, "§ESC§DOLLAR§"},
	{`\'`, "§ESC§APOSTROPHE§"},
	{`\[`, "§ESC§BRACKET§OPEN§"},
	{`\]`, "§ESC§BRACKET§CLOSE§"},
	{`\^`, "§ESC§CIRCUMFLEX§"},
	{`\_`, "§ESC§UNDERSCORE§"},
	{"\\`", "§ESC§BACKTICK§"},
	{`\|`, "§ESC§PIPE§"},
	{`\~`, "§ESC§TILDE§"},
}

// DefaultTable returns a copy of the fixed escape table: backslash itself
// followed by the markup characters.
func DefaultTable() Table {
	return append(Table(nil), defaultTable...)
}

// Guard performs protection and restoration for a single table. It is
// immutable and safe for concurrent use.
type Guard struct {
	table    Table
	protect  *strings.Replacer
	restore  *strings.Replacer
	literals *strings.Replacer
}

// New builds guard for the table, table is copied.
func New(table Table) *Guard {
	g := &Guard{table: append(Table(nil), table...)}

	protect := make([]string, 0, 2*len(table)+2)
	restore := make([]string, 0, 2*len(table)+2)
	literals := make([]string, 0, 2*len(table)+2)
	for _, e := range append(Table{Reserved}, g.table...) {
		protect = append(protect, e.Seq, e.Sentinel)
		restore = append(restore, e.Sentinel, e.Seq)
		literals = append(literals, e.Sentinel, e.Literal())
	}
	g.protect = strings.NewReplacer(protect...)
	g.restore = strings.NewReplacer(restore...)
	g.literals = strings.NewReplacer(literals...)
	return g
}

// Default returns guard for DefaultTable.
func Default() *Guard {
	return New(defaultTable)
}

// Protect replaces every escape sequence with its sentinel. Sentinel marks
// already present in text are protected as well, so Restore(Protect(x)) == x
// for any x.
func (g *Guard) Protect(text string) string {
	if !strings.Contains(text, `\`) && !strings.Contains(text, SentinelMark) {
		return text
	}
	return g.protect.Replace(text)
}

// Restore is the exact inverse of Protect: sentinels become escape sequences
// again.
func (g *Guard) Restore(text string) string {
	if !g.HasSentinels(text) {
		return text
	}
	return g.restore.Replace(text)
}

// Release replaces sentinels with the characters they protect, dropping the
// escaping backslash. This is what final output needs.
func (g *Guard) Release(text string) string {
	if !g.HasSentinels(text) {
		return text
	}
	return g.literals.Replace(text)
}

// HasSentinels reports if text contains any sentinel of the table or the
// reserved one.
func (g *Guard) HasSentinels(text string) bool {
	for _, s := range g.Sentinels() {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// Broken reports if protected text with table sentinels already released
// still has marks outside of reserved sentinels, which means some sentinel
// was cut by an edit.
func Broken(text string) bool {
	return strings.Contains(strings.ReplaceAll(text, Reserved.Sentinel, ""), SentinelMark)
}

// Sentinels returns reserved sentinel followed by sentinels of the table.
func (g *Guard) Sentinels() []string {
	out := make([]string, 0, len(g.table)+1)
	out = append(out, Reserved.Sentinel)
	for _, e := range g.table {
		out = append(out, e.Sentinel)
	}
	return out
}

// Entries returns a copy of the guard table.
func (g *Guard) Entries() Table {
	return append(Table(nil), g.table...)
}
