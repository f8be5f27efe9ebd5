package styles

import (
	_ "embed"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

//go:embed default.css
var defaultStylesheet []byte

// DefaultStylesheet returns embedded stylesheet used when nothing else was
// configured.
func DefaultStylesheet() []byte {
	return defaultStylesheet
}

// Load builds registry from stylesheet data. Data is treated as YAML
// description when name has .yaml or .yml extension, as CSS otherwise.
func Load(name string, data []byte, log *zap.Logger) (*Registry, error) {
	if isYAML(name) {
		return LoadYAML(data)
	}
	return ParseCSS(data, log)
}

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
