package classname_test

import (
	"testing"

	"bennypowers.dev/classwrap/internal/classname"
	"github.com/stretchr/testify/assert"
)

func TestSplitSegment(t *testing.T) {
	ms := classname.SplitSegment("  lorem ipsum  ", true, true)

	assert.Equal(t, []classname.Marker{
		{Text: "  ", Space: true, Boundary: true},
		{Text: "lorem"},
		{Text: " ", Space: true},
		{Text: "ipsum"},
		{Text: "  ", Space: true, Boundary: true},
	}, ms)

	inner := classname.SplitSegment(" a ", false, false)
	assert.False(t, inner[0].Boundary, "whitespace next to an expression is a separator")
	assert.False(t, inner[2].Boundary)

	assert.Nil(t, classname.SplitSegment("", true, true))
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		parts    []classname.Part
		leading  string
		tokens   []string
		trailing string
	}{
		{
			name:     "boundary whitespace is preserved",
			parts:    []classname.Part{{Text: "  lorem   ipsum  "}},
			leading:  "  ",
			tokens:   []string{"lorem", "ipsum"},
			trailing: "  ",
		},
		{
			name: "expressions glue to adjacent text",
			parts: []classname.Part{
				{Text: "p-2 w-"},
				{Text: "size", Expr: true},
				{Text: "-4 rounded"},
			},
			tokens: []string{"p-2", "w-${size}-4", "rounded"},
		},
		{
			name: "expressions separated by whitespace are their own token",
			parts: []classname.Part{
				{Text: "a "},
				{Text: "b", Expr: true},
				{Text: " c"},
			},
			tokens: []string{"a", "${b}", "c"},
		},
		{
			name:   "line breaks separate tokens",
			parts:  []classname.Part{{Text: "a\n    b\tc"}},
			tokens: []string{"a", "b", "c"},
		},
		{
			name:   "non-ASCII whitespace stays inside the token",
			parts:  []classname.Part{{Text: "a\u00a0b c"}},
			tokens: []string{"a\u00a0b", "c"},
		},
		{
			name:    "whitespace only",
			parts:   []classname.Part{{Text: "   "}},
			leading: "   ",
			tokens:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := classname.Tokenize(tt.parts)
			assert.Equal(t, tt.leading, s.Leading)
			assert.Equal(t, tt.tokens, s.Tokens())
			assert.Equal(t, tt.trailing, s.Trailing)
		})
	}
}

func TestWordWidthUsesSingleLineExpressions(t *testing.T) {
	s := classname.Tokenize([]classname.Part{
		{Text: "cond ? `a\n      b` : ''", Expr: true},
	})
	// ${cond ? `a b` : ''}
	assert.Equal(t, 20, s.Words[0].Width(2))
}
