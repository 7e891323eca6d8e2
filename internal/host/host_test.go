package host_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"bennypowers.dev/classwrap/internal/host"
	"bennypowers.dev/classwrap/internal/parser/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := host.Builtin()
	assert.Equal(t, []string{"babel", "css", "html"}, r.Names())

	c, err := r.Resolve("babel")
	require.NoError(t, err)
	assert.Equal(t, "babel", c.Name)

	_, err = r.Resolve("typescript")
	require.Error(t, err)
	assert.True(t, errors.Is(err, host.ErrMissingCapability))

	var missing *host.MissingCapabilityError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "typescript", missing.Parser)
	assert.Equal(t, []string{"babel", "css", "html"}, missing.Available)
	assert.Contains(t, err.Error(), `"typescript"`)
}

func TestBuiltinPrint(t *testing.T) {
	ctx := context.Background()
	c, err := host.Builtin().Resolve("babel")
	require.NoError(t, err)

	out, err := c.Print(ctx, "cn('a b')\n\n\n", host.PrintOptions{})
	require.NoError(t, err)
	assert.Equal(t, "cn('a b')\n", out)

	out, err = c.Print(ctx, "cn('a b')", host.PrintOptions{})
	require.NoError(t, err)
	assert.Equal(t, "cn('a b')\n", out)

	_, err = c.Print(ctx, "const a = ;\n", host.PrintOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, host.ErrSyntax))
	var syntax *host.SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, "babel", syntax.Parser)
	assert.Equal(t, 1, syntax.Line)
}

func TestBuiltinParse(t *testing.T) {
	c, err := host.Builtin().Resolve("html")
	require.NoError(t, err)

	tree, err := c.Parse(context.Background(), `<p class="a b">x</p>`)
	require.NoError(t, err)
	defer tree.Close()
	assert.Len(t, tree.Occurrences(common.NewMatcher(nil, nil)), 1)
}

func TestBuiltinRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := host.Builtin().Resolve("css")
	require.NoError(t, err)
	_, err = c.Print(ctx, ".a{}", host.PrintOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithPrinter(t *testing.T) {
	upper := func(_ context.Context, text string, _ host.PrintOptions) (string, error) {
		return "printed:" + text, nil
	}
	r := host.Builtin().WithPrinter(upper)

	c, err := r.Resolve("css")
	require.NoError(t, err)
	out, err := c.Print(context.Background(), "x", host.PrintOptions{})
	require.NoError(t, err)
	assert.Equal(t, "printed:x", out)

	orig, err := host.Builtin().Resolve("css")
	require.NoError(t, err)
	out, err = orig.Print(context.Background(), ".a {}", host.PrintOptions{})
	require.NoError(t, err)
	assert.Equal(t, ".a {}\n", out)
}

func TestExecPrinter(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	p, err := host.NewExecPrinter("sh -c 'cat' --")
	require.NoError(t, err)
	assert.Equal(t, "sh", p.Command)

	echo := &host.ExecPrinter{Command: "sh", Args: []string{"-c", "cat"}}
	out, err := echo.Print(context.Background(), "<p class=\"a\"></p>\n", host.PrintOptions{Parser: "html"})
	require.NoError(t, err)
	assert.Equal(t, "<p class=\"a\"></p>\n", out)

	fail := &host.ExecPrinter{Command: "sh", Args: []string{"-c", "echo broken >&2; exit 2"}}
	_, err = fail.Print(context.Background(), "x", host.PrintOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	_, err = host.NewExecPrinter("   ")
	assert.Error(t, err)
}

func TestPrintOptionsFlags(t *testing.T) {
	flags := host.PrintOptions{
		Filepath:    "src/app.jsx",
		Parser:      "babel",
		PrintWidth:  100,
		TabWidth:    4,
		SingleQuote: true,
	}.Flags()
	assert.Equal(t, []string{
		"--stdin-filepath", "src/app.jsx",
		"--parser", "babel",
		"--print-width", "100",
		"--tab-width", "4",
		"--single-quote",
		"--end-of-line", "lf",
	}, flags)
}

func TestInferParser(t *testing.T) {
	tests := map[string]string{
		"index.html":      "html",
		"page.HTM":        "html",
		"app.jsx":         "babel",
		"lib/util.mjs":    "babel",
		"styles/main.css": "css",
		"app.tsx":         "typescript",
		"App.vue":         "vue",
		"README.md":       "",
		"Makefile":        "",
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, want, host.InferParser(path))
			assert.Equal(t, want != "", host.Supported(path))
		})
	}
}
