package convert

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mdimport/common"
	"mdimport/content"
	"mdimport/convert/text"
	"mdimport/convert/xhtml"
)

// generate writes content in requested format.
func generate(ctx context.Context, c *content.Content, format common.OutputFmt, outputPath string, log *zap.Logger) error {
	switch format {
	case common.OutputFmtXhtml:
		return xhtml.Generate(ctx, c, outputPath, log)
	case common.OutputFmtTxt:
		return text.Generate(ctx, c, outputPath, log)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}
