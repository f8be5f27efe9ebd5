package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"mdimport/common"
	"mdimport/config"
	"mdimport/mapping"
	"mdimport/state"
	"mdimport/styles"
)

const sampleSource = "# Sample\n\nSome *text*[^1].\n\n[^1]: A note."

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected output %s: %v", path, err)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("unexpected output %s", path)
	}
}

func TestProcess_NonExistentPath(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := filepath.Join(t.TempDir(), "missing", "a.md")
	if err := process(ctx, src, t.TempDir(), common.OutputFmtXhtml, env.Log); err == nil {
		t.Error("process() expected error for non-existent path")
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, env := setupTestEnv(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	src := writeFile(t, filepath.Join(t.TempDir(), "a.md"), []byte(sampleSource))
	if err := process(ctx, src, t.TempDir(), common.OutputFmtXhtml, env.Log); !errors.Is(err, context.Canceled) {
		t.Errorf("process() error = %v, want context.Canceled", err)
	}
}

func TestProcess_SingleFile(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "a.md"), []byte(sampleSource))
	dst := t.TempDir()

	if err := process(ctx, src, dst, common.OutputFmtTxt, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := "Sample\nSome text[1].\n"; !strings.HasPrefix(string(data), want) {
		t.Errorf("output = %q, want prefix %q", data, want)
	}
}

func TestProcess_FileWithTail(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "a.md"), []byte(sampleSource))
	if err := process(ctx, filepath.Join(src, "more"), t.TempDir(), common.OutputFmtTxt, env.Log); err == nil {
		t.Error("process() expected error for path below regular file")
	}
}

func TestProcess_NotSource(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "cover.png"), pngHead)
	if err := process(ctx, src, t.TempDir(), common.OutputFmtTxt, env.Log); err == nil {
		t.Error("process() expected error for non text input")
	}
}

func TestProcess_Directory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "notes", "a.md"), []byte(sampleSource))
	writeFile(t, filepath.Join(src, "b.txt.xz"), xzData(t, sampleSource))
	writeFile(t, filepath.Join(src, "fake.md"), pngHead)
	writeFile(t, filepath.Join(src, "readme.html"), []byte("<p>skip</p>"))
	dst := t.TempDir()

	if err := process(ctx, src, dst, common.OutputFmtXhtml, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	assertExists(t, filepath.Join(dst, "notes", "a.xhtml"))
	assertExists(t, filepath.Join(dst, "b.xhtml"))
	assertMissing(t, filepath.Join(dst, "fake.xhtml"))
	assertMissing(t, filepath.Join(dst, "readme.xhtml"))
}

func TestProcess_DirectoryNoDirs(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "notes", "deep", "a.md"), []byte(sampleSource))
	dst := t.TempDir()

	if err := process(ctx, src, dst, common.OutputFmtTxt, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	assertExists(t, filepath.Join(dst, "a.txt"))
}

func TestProcess_DirectoryWithTail(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := filepath.Join(t.TempDir(), "missing.md")
	// parent exists and is a directory, so tail can not be resolved
	if err := process(ctx, src, t.TempDir(), common.OutputFmtTxt, env.Log); err == nil {
		t.Error("process() expected error for missing file in existing directory")
	}
}

func TestProcess_Archive(t *testing.T) {
	ctx, env := setupTestEnv(t)
	arc := writeFile(t, filepath.Join(t.TempDir(), "books.zip"), zipData(t, map[string][]byte{
		"book/ch1.md":   []byte(sampleSource),
		"book/ch2.md":   []byte("# Second"),
		"other/x.md":    []byte("# Other"),
		"book/logo.png": pngHead,
	}))

	t.Run("whole archive", func(t *testing.T) {
		dst := t.TempDir()
		if err := process(ctx, arc, dst, common.OutputFmtTxt, env.Log); err != nil {
			t.Fatalf("process() error = %v", err)
		}
		assertExists(t, filepath.Join(dst, "book", "ch1.txt"))
		assertExists(t, filepath.Join(dst, "book", "ch2.txt"))
		assertExists(t, filepath.Join(dst, "other", "x.txt"))
		assertMissing(t, filepath.Join(dst, "book", "logo.txt"))
	})

	t.Run("path inside archive", func(t *testing.T) {
		dst := t.TempDir()
		if err := process(ctx, filepath.Join(arc, "book"), dst, common.OutputFmtTxt, env.Log); err != nil {
			t.Fatalf("process() error = %v", err)
		}
		assertExists(t, filepath.Join(dst, "book", "ch1.txt"))
		assertMissing(t, filepath.Join(dst, "other", "x.txt"))
	})
}

func TestProcessDocument_Overwrite(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dst := t.TempDir()
	out := writeFile(t, filepath.Join(dst, "a.txt"), []byte("old"))

	err := processDocument(ctx, strings.NewReader(sampleSource), "a.md", "", dst, common.OutputFmtTxt, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("processDocument() error = %v, want already exists", err)
	}

	env.Overwrite = true
	if err := processDocument(ctx, strings.NewReader(sampleSource), "a.md", "", dst, common.OutputFmtTxt, env.Log); err != nil {
		t.Fatalf("processDocument() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) == "old" {
		t.Error("output was not overwritten")
	}
}

func TestProcessDocument_EmptyCatalogue(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.DefaultStyle = []byte("p.body { margin: 0; }")
	dst := t.TempDir()

	err := processDocument(ctx, strings.NewReader(sampleSource), "a.md", "", dst, common.OutputFmtTxt, env.Log)
	if !errors.Is(err, styles.ErrEmptyCatalogue) {
		t.Errorf("processDocument() error = %v, want ErrEmptyCatalogue", err)
	}
	assertMissing(t, filepath.Join(dst, "a.txt"))
}

func newCommand(action cli.ActionFunc, out *bytes.Buffer) *cli.Command {
	return &cli.Command{
		Name:   "test",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "to"},
			&cli.StringFlag{Name: "stylesheet"},
			&cli.StringFlag{Name: "mapping"},
			&cli.StringFlag{Name: "locale"},
			&cli.StringFlag{Name: "force-zip-cp"},
			&cli.BoolFlag{Name: "nodirs"},
			&cli.BoolFlag{Name: "overwrite"},
		},
		Action: action,
	}
}

func TestRun(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "a.md"), []byte(sampleSource))
	css := writeFile(t, filepath.Join(t.TempDir(), "book.css"), []byte("p.body { margin: 0 }\nh1.title { font-weight: bold }\nspan.em { font-style: italic }\n"))
	dst := t.TempDir()

	cmd := newCommand(Run, &bytes.Buffer{})
	args := []string{"test", "--to", "txt", "--stylesheet", css, "--locale", "fr", "--force-zip-cp", "windows-1251", "--overwrite", src, dst}
	if err := cmd.Run(ctx, args); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertExists(t, filepath.Join(dst, "a.txt"))
	if env.DefaultStyleName != "book.css" {
		t.Errorf("DefaultStyleName = %q, want book.css", env.DefaultStyleName)
	}
	if env.Cfg.Document.Locale != "fr" {
		t.Errorf("Locale = %q, want fr", env.Cfg.Document.Locale)
	}
	if env.CodePage == nil {
		t.Error("CodePage was not set")
	}
	if !env.Overwrite {
		t.Error("Overwrite was not set")
	}
}

func TestRun_NoSource(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	cmd := newCommand(Run, &bytes.Buffer{})
	if err := cmd.Run(ctx, []string{"test"}); err == nil {
		t.Error("Run() expected error without source")
	}
}

func TestGuess(t *testing.T) {
	ctx, env := setupTestEnv(t)

	t.Run("stdout", func(t *testing.T) {
		var out bytes.Buffer
		if err := newCommand(Guess, &out).Run(ctx, []string{"test"}); err != nil {
			t.Fatalf("Guess() error = %v", err)
		}
		rec, err := mapping.Unmarshal(out.Bytes())
		if err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if name, present := rec.Name(common.RoleNormal); !present || name == nil {
			t.Errorf("normal role is not mapped in %q", out.String())
		}
	})

	t.Run("directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := newCommand(Guess, &bytes.Buffer{}).Run(ctx, []string{"test", dir}); err != nil {
			t.Fatalf("Guess() error = %v", err)
		}
		base := strings.TrimSuffix(env.DefaultStyleName, filepath.Ext(env.DefaultStyleName))
		assertExists(t, filepath.Join(dir, base+mapping.Ext))
	})
}

func TestListStyles(t *testing.T) {
	reg := styles.New(
		&styles.Group{Styles: []*styles.Style{{Name: "Body", Kind: common.StyleKindParagraph, Element: "p", Class: "body"}}},
		&styles.Group{Name: "Inline", Styles: []*styles.Style{{Name: "Emphasis", Kind: common.StyleKindCharacter}}},
	)

	var out bytes.Buffer
	if err := listStyles(&out, "test.css", reg.Catalogue); err != nil {
		t.Fatalf("listStyles() error = %v", err)
	}
	for _, want := range []string{"Styles from test.css", "paragraph (1):", "  Body [p.body]", "character (1):", "Emphasis"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("listStyles() output %q does not contain %q", out.String(), want)
		}
	}
}
