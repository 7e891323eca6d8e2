package html_test

import (
	"testing"

	"bennypowers.dev/classwrap/internal/classname"
	"bennypowers.dev/classwrap/internal/parser/common"
	"bennypowers.dev/classwrap/internal/parser/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "class attributes",
			source: `<div class="a b"><span className="c">x</span><p id="d e"></p></div>`,
			want:   []string{`"a b"`, `"c"`},
		},
		{
			name:   "single quoted",
			source: `<p class='x y'>z</p>`,
			want:   []string{`'x y'`},
		},
		{
			name:   "custom attribute",
			source: `<p tw="x y">z</p>`,
			want:   []string{`"x y"`},
		},
		{
			name:   "unquoted and empty values",
			source: `<p class=x>z</p><p class="">z</p>`,
			want:   []string{`""`},
		},
		{
			name:   "ignored element",
			source: "<!-- prettier-ignore -->\n<div class=\"a b\"></div>\n<div class=\"c\"></div>",
			want:   []string{`"c"`},
		},
		{
			name:   "script body",
			source: "<div class=\"a\"></div>\n<script>\n  const className = 'p q';\n</script>",
			want:   []string{`"a"`, `'p q'`},
		},
		{
			name:   "module script",
			source: "<script type=\"module\">cn('m n')</script>",
			want:   []string{`'m n'`},
		},
		{
			name:   "non-js script",
			source: "<script type=\"text/template\">cn('m n')</script>",
			want:   []string{},
		},
		{
			name:   "style body",
			source: "<style>\n  .a { @apply m-2 p-2; }\n</style>",
			want:   []string{`m-2 p-2`},
		},
	}

	m := common.NewMatcher([]string{"tw"}, []string{"cn"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occs, err := html.Occurrences([]byte(tt.source), m)
			require.NoError(t, err)

			got := make([]string, len(occs))
			for i, o := range occs {
				got[i] = tt.source[o.Start:o.End]
				for _, p := range o.Parts {
					assert.Equal(t, p.Text, tt.source[p.Start:p.End], "part offsets map onto the document")
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalkSyntaxes(t *testing.T) {
	source := "<p class=\"a\"></p><script>cn('b')</script><style>.x { @apply c; }</style>"
	occs, err := html.Occurrences([]byte(source), common.NewMatcher(nil, []string{"cn"}))
	require.NoError(t, err)
	require.Len(t, occs, 3)

	assert.Equal(t, classname.SyntaxHTML, occs[0].Syntax)
	assert.Equal(t, classname.KindAttribute, occs[0].Kind)
	assert.Equal(t, classname.SyntaxJSX, occs[1].Syntax)
	assert.Equal(t, classname.KindStringLiteral, occs[1].Kind)
	assert.Equal(t, classname.SyntaxCSS, occs[2].Syntax)
	assert.Equal(t, classname.KindCSSApply, occs[2].Kind)
}
