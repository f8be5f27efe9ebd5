package archive

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func makeZip(t *testing.T, names ...string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(f)
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", name, err)
		}
		if strings.HasSuffix(name, "/") {
			continue
		}
		if _, err := fw.Write([]byte("content of " + name)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip writer: %v", err)
	}
	f.Close()
	return zipPath
}

func collect(t *testing.T, zipPath string, match MatchFunc) []string {
	t.Helper()
	var visited []string
	err := Walk(zipPath, match, func(archive string, file *zip.File) error {
		if archive != zipPath {
			t.Errorf("archive = %q, want %q", archive, zipPath)
		}
		visited = append(visited, file.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	return visited
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t,
		"book/chapter1.md",
		"book/chapter2.MARKDOWN",
		"book/cover.png",
		"notes.txt",
		"Book/upper.md",
		"book/sub/",
	)

	tests := []struct {
		name  string
		match MatchFunc
		want  []string
	}{
		{"all", nil, []string{"book/chapter1.md", "book/chapter2.MARKDOWN", "book/cover.png", "notes.txt", "Book/upper.md"}},
		{"empty prefix", Prefix(""), []string{"book/chapter1.md", "book/chapter2.MARKDOWN", "book/cover.png", "notes.txt", "Book/upper.md"}},
		{"prefix", Prefix("book/"), []string{"book/chapter1.md", "book/chapter2.MARKDOWN", "book/cover.png"}},
		{"prefix is case sensitive", Prefix("Book/"), []string{"Book/upper.md"}},
		{"all conditions", All(Prefix("book/"), func(name string) bool { return path.Ext(name) == ".md" }), []string{"book/chapter1.md"}},
		{"no match", Prefix("missing/"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collect(t, zipPath, tt.match); !slices.Equal(got, tt.want) {
				t.Errorf("visited = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	zipPath := makeZip(t, "a.md", "b.md", "c.md")
	stop := errors.New("stop")

	count := 0
	err := Walk(zipPath, nil, func(string, *zip.File) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("Walk() error = %v, want %v", err, stop)
	}
	if count != 2 {
		t.Errorf("visited %d files, want 2", count)
	}
}

func TestWalk_FileContent(t *testing.T) {
	zipPath := makeZip(t, "doc.md")

	err := Walk(zipPath, nil, func(_ string, file *zip.File) error {
		rc, err := file.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return err
		}
		if string(data) != "content of doc.md" {
			t.Errorf("content = %q", data)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	if err := Walk("/nonexistent/file.zip", nil, func(string, *zip.File) error { return nil }); err == nil {
		t.Error("Expected error for nonexistent file")
	}

	bad := filepath.Join(t.TempDir(), "bad.zip")
	if err := os.WriteFile(bad, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Walk(bad, nil, func(string, *zip.File) error { return nil }); err == nil {
		t.Error("Expected error for invalid zip")
	}
}

func TestWalk_UnsafePath(t *testing.T) {
	zipPath := makeZip(t, "ok.md", "../escape.md")

	err := Walk(zipPath, nil, func(string, *zip.File) error { return nil })
	if err == nil {
		t.Error("Expected error for path traversal entry")
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"doc.md", true},
		{"dir/doc.md", true},
		{"dir/..doc.md", true},
		{"../doc.md", false},
		{"dir/../../doc.md", false},
		{"/etc/passwd", false},
		{`\windows\doc.md`, false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
