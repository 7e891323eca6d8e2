package css_test

import (
	"testing"

	"bennypowers.dev/classwrap/internal/parser/common"
	"bennypowers.dev/classwrap/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

func TestWalk(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "apply in rule",
			source: ".btn {\n  @apply px-4 py-2 rounded;\n}\n",
			want:   []string{"px-4 py-2 rounded"},
		},
		{
			name:   "apply spanning lines",
			source: ".btn {\n  @apply px-4\n         py-2;\n}\n",
			want:   []string{"px-4\n         py-2"},
		},
		{
			name:   "apply without semicolon",
			source: ".a { @apply font-bold }",
			want:   []string{"font-bold"},
		},
		{
			name:   "utility syntax",
			source: ".a { @apply w-1/2 hover:bg-red-500 [&>*]:p-2; }\n.b { @apply m-0; }",
			want:   []string{"w-1/2 hover:bg-red-500 [&>*]:p-2", "m-0"},
		},
		{
			name:   "other at-rules",
			source: "@media screen { .a { color: red; } }\n@import 'x.css';",
			want:   []string{},
		},
		{
			name:   "ignored rule",
			source: "/* prettier-ignore */\n.a { @apply p-2 m-2; }\n.b { @apply p-4; }",
			want:   []string{"p-4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occs, err := css.Occurrences([]byte(tt.source))
			require.NoError(t, err)

			got := make([]string, len(occs))
			for i, o := range occs {
				got[i] = tt.source[o.Start:o.End]
				assert.Equal(t, got[i], o.Content())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyIsExemptFromSyntaxChecks(t *testing.T) {
	source := []byte(".a { @apply w-1/2 hover:p-2; }\n")

	p := css.AcquireParser()
	defer css.ReleaseParser(p)

	tree, err := p.Parse(source)
	require.NoError(t, err)
	defer tree.Close()

	skip := func(n *sitter.Node) bool { return css.IsApply(n, source) }
	assert.Nil(t, common.FirstError(tree.RootNode(), skip))
}
