package host

import (
	"context"
	"strings"

	"bennypowers.dev/classwrap/internal/parser"
)

// Builtin returns a registry with the tree-sitter backed capabilities:
// babel (JS/JSX), html and css.
func Builtin() *Registry {
	return NewRegistry(
		treeSitter("babel", parser.JavaScript),
		treeSitter("html", parser.HTML),
		treeSitter("css", parser.CSS),
	)
}

func treeSitter(name string, lang parser.Language) Capability {
	parse := func(ctx context.Context, text string) (*parser.Tree, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tree, err := parser.Parse(lang, text)
		if err != nil {
			return nil, err
		}
		if row, col, bad := tree.ErrorPosition(); bad {
			tree.Close()
			return nil, NewSyntaxError(name, int(row)+1, int(col)+1) //nolint:gosec // G115: positions are bounded by file size
		}
		return tree, nil
	}

	// The built-in printer does not re-layout code. It verifies the text
	// parses and normalizes the end of the file.
	printText := func(ctx context.Context, text string, _ PrintOptions) (string, error) {
		tree, err := parse(ctx, text)
		if err != nil {
			return "", err
		}
		tree.Close()
		if text == "" {
			return "", nil
		}
		return strings.TrimRight(text, "\n") + "\n", nil
	}

	return Capability{Name: name, Language: lang, Parse: parse, Print: printText}
}
