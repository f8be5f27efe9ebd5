package config

import (
	"os"
	"strings"
	"unicode"
)

const badFileName = "_untitled_"

// CleanFileName removes characters not allowed in file names on current
// platform along with control characters titles may carry from sources.
func CleanFileName(in string) string {
	reserved := reservedChars + string(os.PathSeparator) + string(os.PathListSeparator)
	out := strings.Map(func(sym rune) rune {
		switch {
		case unicode.IsControl(sym):
			return -1
		case strings.ContainsRune(reserved, sym):
			return -1
		}
		return sym
	}, in)
	out = trimFileName(strings.TrimSpace(out))
	if len(out) == 0 {
		out = badFileName
	}
	return out
}
