package content

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"github.com/ulikunitz/xz"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var sourceExts = []string{".md", ".markdown", ".txt"}

// IsSourceName reports if file name looks like text source, possibly xz
// compressed.
func IsSourceName(name string) bool {
	name = strings.ToLower(name)
	name = strings.TrimSuffix(name, ".xz")
	return slices.Contains(sourceExts, filepath.Ext(name))
}

// BaseName strips directories and source extensions from name.
func BaseName(name string) string {
	name = filepath.Base(filepath.FromSlash(name))
	if strings.EqualFold(filepath.Ext(name), ".xz") {
		name = name[:len(name)-3]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ReadSource reads all data transparently decompressing xz streams.
func ReadSource(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !filetype.Is(data, "xz") {
		return data, nil
	}
	xr, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to open xz stream: %w", err)
	}
	if data, err = io.ReadAll(xr); err != nil {
		return nil, fmt.Errorf("unable to decompress xz stream: %w", err)
	}
	return data, nil
}

var boms = [][]byte{
	{0xEF, 0xBB, 0xBF},
	{0xFE, 0xFF},
	{0xFF, 0xFE},
}

func hasBOM(data []byte) bool {
	return slices.ContainsFunc(boms, func(bom []byte) bool {
		return bytes.HasPrefix(data, bom)
	})
}

// Decode turns raw source into NFC normalized text with LF line breaks.
// Byte order mark wins, then valid UTF-8, then fallback code page when
// given, and finally whatever charset detection guesses.
func Decode(data []byte, fallback encoding.Encoding, log *zap.Logger) (string, error) {
	var (
		out  = data
		name = "utf-8"
		err  error
	)
	switch {
	case hasBOM(data):
		name = "bom"
		out, _, err = transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	case utf8.Valid(data):
	case fallback != nil:
		name = "forced"
		out, err = fallback.NewDecoder().Bytes(data)
	default:
		var enc encoding.Encoding
		enc, name, _ = charset.DetermineEncoding(data, "text/plain")
		out, err = enc.NewDecoder().Bytes(data)
	}
	if err != nil {
		return "", fmt.Errorf("unable to decode source (%s): %w", name, err)
	}
	log.Debug("Source decoded", zap.String("encoding", name), zap.Int("bytes", len(data)))

	text := norm.NFC.String(string(out))
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text), nil
}
