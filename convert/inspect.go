package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mdimport/common"
	"mdimport/content"
	"mdimport/mapping"
	"mdimport/state"
	"mdimport/styles"
)

// Guess writes mapping guessed from style catalogue names. Without
// destination record goes to stdout, directory destination gets file named
// after stylesheet.
func Guess(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("guess")

	if err := applyDocumentFlags(env, cmd, log); err != nil {
		return err
	}

	reg, err := content.LoadRegistry(env, log)
	if err != nil {
		return err
	}
	if err := reg.Validate(); err != nil {
		return err
	}

	m := mapping.Guess(reg, env.Language())

	dst := cmd.Args().Get(0)
	if len(dst) == 0 {
		data, err := mapping.Marshal(mapping.Serialize(m))
		if err != nil {
			return err
		}
		_, err = cmd.Root().Writer.Write(data)
		return err
	}

	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		base := strings.TrimSuffix(env.DefaultStyleName, filepath.Ext(env.DefaultStyleName))
		dst = filepath.Join(dst, base+mapping.Ext)
	}
	if err := mapping.Save(dst, m); err != nil {
		return err
	}
	log.Info("Mapping guessed", zap.String("to", dst), zap.Stringer("locale", env.Language()))
	return nil
}

// Styles lists style catalogue as markup engine sees it.
func Styles(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("styles")

	if err := applyDocumentFlags(env, cmd, log); err != nil {
		return err
	}

	reg, err := content.LoadRegistry(env, log)
	if err != nil {
		return err
	}
	return listStyles(cmd.Root().Writer, env.DefaultStyleName, reg.Catalogue)
}

func listStyles(w io.Writer, name string, catalogue func(common.StyleKind) []*styles.Style) error {
	if _, err := fmt.Fprintf(w, "Styles from %s\n", name); err != nil {
		return err
	}
	for _, kind := range common.StyleKindValues() {
		list := catalogue(kind)
		if _, err := fmt.Fprintf(w, "\n%s (%d):\n", kind, len(list)); err != nil {
			return err
		}
		for _, s := range list {
			line := "  " + s.String()
			if s.Element != "" || s.Class != "" {
				line += fmt.Sprintf(" [%s.%s]", s.Element, s.Class)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
