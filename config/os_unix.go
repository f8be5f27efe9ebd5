//go:build !windows

package config

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const reservedChars = ""

// no hidden files
func trimFileName(name string) string {
	return strings.TrimLeft(name, ".")
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
