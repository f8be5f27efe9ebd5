package convert

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"mdimport/content"
)

// enough for any signature filetype knows about
const headSize = 8192

func readHead(r io.Reader) ([]byte, error) {
	buf := make([]byte, headSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

func readFileHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readHead(f)
}

// isArchiveFile checks if file has zip extension and zip signature.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	head, err := readFileHead(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// isSourceData rejects data with known binary signatures, xz streams are
// accepted since sources may be compressed.
func isSourceData(head []byte) bool {
	if len(head) == 0 {
		return true
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return false
	}
	return kind == filetype.Unknown || kind.Extension == "xz"
}

// isSourceFile checks if file looks like text source by name and content.
func isSourceFile(path string) (bool, error) {
	if !content.IsSourceName(path) {
		return false, nil
	}
	head, err := readFileHead(path)
	if err != nil {
		return false, err
	}
	return isSourceData(head), nil
}

// isSourceInArchive does the same for archive entry.
func isSourceInArchive(f *zip.File) (bool, error) {
	if !content.IsSourceName(f.Name) {
		return false, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, err
	}
	defer r.Close()

	head, err := readHead(r)
	if err != nil {
		return false, err
	}
	return isSourceData(head), nil
}
