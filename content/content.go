// Package content prepares a single source document: decodes text, builds
// style catalogue and mapping, runs markup engine and lays result out on
// pages.
package content

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"mdimport/common"
	"mdimport/document"
	"mdimport/engine"
	"mdimport/layout"
	"mdimport/mapping"
	"mdimport/misc"
	"mdimport/state"
	"mdimport/styles"
)

// Content is a processed document ready to be written out.
type Content struct {
	SrcName  string
	ID       uuid.UUID
	Title    string
	Language language.Tag

	Registry      *styles.Registry
	Mapping       *mapping.Mapping
	MappingSource mapping.Source

	Story  *document.Story
	Result *engine.Result
	Pages  int

	WorkDir string
}

// LoadRegistry builds style catalogue from stylesheet kept in environment.
func LoadRegistry(env *state.LocalEnv, log *zap.Logger) (*styles.Registry, error) {
	reg, err := styles.Load(env.DefaultStyleName, env.DefaultStyle, log)
	if err != nil {
		return nil, fmt.Errorf("unable to load styles from %q: %w", env.DefaultStyleName, err)
	}
	return reg, nil
}

// Prepare reads source text and runs it through markup engine. srcName is
// used for reporting and title, srcDir is where mapping discovery starts
// (empty disables discovery).
func Prepare(ctx context.Context, r io.Reader, srcName, srcDir string, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	data, err := ReadSource(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read source: %w", err)
	}
	text, err := Decode(data, env.CodePage, log)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate document UUID: %w", err)
	}

	reg, err := LoadRegistry(env, log)
	if err != nil {
		return nil, err
	}

	lang := env.Language()
	doc := &env.Cfg.Document
	m, src := mapping.Resolve(env.MappingFile(), srcDir, doc.Mapping.DiscoveryDepth(), reg,
		func() *mapping.Mapping { return mapping.Guess(reg, lang) }, log)
	log.Debug("Style mapping selected", zap.String("source", src.Kind), zap.String("path", src.Path))

	pages := layout.New(doc.Layout.Pages, doc.Layout.PageCapacity, doc.Layout.FacingPages)
	story, res, err := engine.New(reg, m, nil, pages, log).Run(document.NewStory(text))
	if err != nil {
		return nil, err
	}
	if pages.Len() == 0 {
		if err := pages.Flow(story); err != nil {
			return nil, err
		}
	}

	c := &Content{
		SrcName:       srcName,
		ID:            id,
		Title:         title(story, m.Style(common.RoleH1), srcName),
		Language:      lang,
		Registry:      reg,
		Mapping:       m,
		MappingSource: src,
		Story:         story,
		Result:        res,
		Pages:         pages.Len(),
	}

	if res.PatternFailures > 0 || res.FootnotesMissing > 0 {
		log.Warn("Document processed with problems",
			zap.Int("pattern_failures", res.PatternFailures), zap.Int("missing_footnotes", res.FootnotesMissing))
	}

	// Save source and processed story for debugging
	if env.Rpt != nil {
		tmpDir, err := os.MkdirTemp("", misc.GetAppName()+"-")
		if err != nil {
			return nil, fmt.Errorf("unable to create temporary directory: %w", err)
		}
		env.Rpt.Store(fmt.Sprintf("%s-%s", misc.GetAppName(), id), tmpDir)
		c.WorkDir = tmpDir

		base := filepath.Base(filepath.FromSlash(srcName))
		if err := os.WriteFile(filepath.Join(tmpDir, base+"_source"), []byte(text), 0644); err != nil {
			return nil, fmt.Errorf("unable to write source for debugging: %w", err)
		}
		if err := os.WriteFile(filepath.Join(tmpDir, base+"_prepared"), []byte(c.String()), 0644); err != nil {
			return nil, fmt.Errorf("unable to write prepared doc for debugging: %w", err)
		}
	}
	return c, nil
}

// title returns text of the first heading paragraph, or base name of the
// source when there is none.
func title(story *document.Story, heading *styles.Style, srcName string) string {
	if heading != nil {
		for _, p := range story.Paragraphs() {
			if p.Style != heading {
				continue
			}
			t := strings.TrimSpace(strings.ReplaceAll(p.Text(), string(document.AnchorRune), ""))
			if t != "" {
				return t
			}
		}
	}
	return BaseName(srcName)
}
