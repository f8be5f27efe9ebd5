package mapping

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"mdimport/styles"
)

// Ext is extension of persisted mapping records.
const Ext = ".mdconfig"

// DefaultDiscoveryDepth is how deep below document folder discovery looks.
const DefaultDiscoveryDepth = 3

// ErrNoConfig is returned by Discover when nothing was found.
var ErrNoConfig = errors.New("no mapping configuration found")

// Load reads record from file and resolves it against registry.
func Load(path string, reg *styles.Registry) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read mapping configuration: %w", err)
	}
	rec, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse mapping configuration %q: %w", path, err)
	}
	return Deserialize(rec, reg), nil
}

// Save writes mapping record to file.
func Save(path string, m *Mapping) error {
	data, err := Marshal(Serialize(m))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write mapping configuration: %w", err)
	}
	return nil
}

// Discover looks for mapping configuration starting at dir: files of a folder
// first, then its subfolders, both in natural order, down to depth levels
// below dir. First file found is returned.
func Discover(dir string, depth int) (string, error) {
	if path := discover(dir, depth, 0); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("%s: %w", dir, ErrNoConfig)
}

func discover(dir string, maxDepth, depth int) string {
	if depth > maxDepth {
		return ""
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var files, dirs []string
	for _, e := range entries {
		switch {
		case e.IsDir():
			dirs = append(dirs, e.Name())
		case e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), Ext):
			files = append(files, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(files))
	sort.Sort(natural.StringSlice(dirs))

	if len(files) > 0 {
		return filepath.Join(dir, files[0])
	}
	for _, d := range dirs {
		if path := discover(filepath.Join(dir, d), maxDepth, depth+1); path != "" {
			return path
		}
	}
	return ""
}

// Source tells where mapping for a run came from.
type Source struct {
	Kind string // "file", "discovered" or "guessed"
	Path string
}

// Resolve picks mapping for a document: explicit file, then discovered file
// (when discoveryDepth is not negative), then guess. Broken records are
// logged and treated as absent.
func Resolve(explicit, docDir string, discoveryDepth int, reg *styles.Registry, guess func() *Mapping, log *zap.Logger) (*Mapping, Source) {
	if explicit != "" {
		m, err := Load(explicit, reg)
		if err == nil {
			return m, Source{Kind: "file", Path: explicit}
		}
		log.Warn("Unable to use mapping configuration, guessing", zap.String("file", explicit), zap.Error(err))
	} else if discoveryDepth >= 0 && docDir != "" {
		if path, err := Discover(docDir, discoveryDepth); err == nil {
			m, err := Load(path, reg)
			if err == nil {
				return m, Source{Kind: "discovered", Path: path}
			}
			log.Warn("Unable to use discovered mapping configuration, guessing", zap.String("file", path), zap.Error(err))
		}
	}
	return guess(), Source{Kind: "guessed"}
}
