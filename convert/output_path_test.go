package convert

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"

	"mdimport/common"
	"mdimport/config"
	"mdimport/content"
	"mdimport/state"
)

func setupTestEnvForOutputPath(t *testing.T, noDirs bool, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Document.FileNameTransliterate = transliterate
	cfg.Document.OutputNameTemplate = template

	return &state.LocalEnv{
		Log:    logger,
		Cfg:    cfg,
		NoDirs: noDirs,
	}
}

var testDocumentID = uuid.MustParse("0190f5c2-6a4e-7c3b-9d2e-3f4a5b6c7d8e")

func setupTestContentForPath(t *testing.T) *content.Content {
	t.Helper()
	return &content.Content{
		SrcName:  "notes/testdoc.md",
		ID:       testDocumentID,
		Title:    "Test Document",
		Language: language.English,
		Pages:    3,
	}
}

func TestBuildOutputPath(t *testing.T) {
	tests := []struct {
		name          string
		noDirs        bool
		transliterate bool
		template      string
		src           string
		format        common.OutputFmt
		want          string
	}{
		{"no dirs", true, false, "", "docs/author/doc.md", common.OutputFmtXhtml, filepath.Join("/output", "doc.xhtml")},
		{"with dirs", false, false, "", "docs/author/doc.md", common.OutputFmtXhtml, filepath.Join("/output", "docs", "author", "doc.xhtml")},
		{"text format", true, false, "", "doc.markdown", common.OutputFmtTxt, filepath.Join("/output", "doc.txt")},
		{"compressed source", true, false, "", "doc.md.xz", common.OutputFmtTxt, filepath.Join("/output", "doc.txt")},
		{"transliterate", true, true, "", "Книга.md", common.OutputFmtXhtml, filepath.Join("/output", "kniga.xhtml")},
		{"template", true, false, "{{ .Title }}", "doc.md", common.OutputFmtXhtml, filepath.Join("/output", "Test Document.xhtml")},
		{"template with dirs", true, false, "{{ .Language }}/{{ .SourceFile }}-{{ .Pages }}", "doc.md", common.OutputFmtTxt, filepath.Join("/output", "en", "testdoc-3.txt")},
		{"template transliterated", true, true, "{{ .Format }}/{{ .Title }}", "doc.md", common.OutputFmtXhtml, filepath.Join("/output", "xhtml", "test-document.xhtml")},
		{"broken template falls back", true, false, "{{ .Missing ", "doc.md", common.OutputFmtXhtml, filepath.Join("/output", "doc.xhtml")},
		{"empty template result falls back", true, false, "{{ if false }}x{{ end }}", "doc.md", common.OutputFmtXhtml, filepath.Join("/output", "doc.xhtml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupTestContentForPath(t)
			env := setupTestEnvForOutputPath(t, tt.noDirs, tt.transliterate, tt.template)

			if got := buildOutputPath(c, tt.src, "/output", tt.format, env); got != tt.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	got := splitAndCleanPath(filepath.Join("a", "b", "c"))
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("splitAndCleanPath() = %v, want [a b c]", got)
	}
	if got := splitAndCleanPath(""); len(got) != 0 {
		t.Errorf("splitAndCleanPath(\"\") = %v, want empty", got)
	}
}
