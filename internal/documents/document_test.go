package documents_test

import (
	"testing"

	"bennypowers.dev/classwrap/internal/documents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestNewDocument(t *testing.T) {
	doc := documents.NewDocument("file:///src/app.jsx", "javascriptreact", 3, "<a />")

	assert.Equal(t, "file:///src/app.jsx", doc.URI())
	assert.Equal(t, "javascriptreact", doc.LanguageID())
	assert.Equal(t, 3, doc.Version())
	assert.Equal(t, "<a />", doc.Content())
}

func TestDocument_SetContent(t *testing.T) {
	doc := documents.NewDocument("file:///a.html", "html", 2, "old")

	require.NoError(t, doc.SetContent("same version", 2))
	require.NoError(t, doc.SetContent("new", 5))
	assert.Equal(t, "new", doc.Content())
	assert.Equal(t, 5, doc.Version())

	err := doc.SetContent("stale", 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stale")
	assert.Equal(t, "new", doc.Content())
}

func TestDocument_Parser(t *testing.T) {
	tests := []struct {
		uri, languageID, want string
	}{
		{"file:///a.html", "html", "html"},
		{"file:///a.jsx", "javascriptreact", "babel"},
		{"file:///a.js", "javascript", "babel"},
		{"file:///a.css", "css", "css"},
		{"file:///a.tsx", "typescriptreact", "typescript"},
		{"file:///a.htm", "plaintext", "html"},
		{"file:///a.md", "markdown", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			doc := documents.NewDocument(tt.uri, tt.languageID, 1, "")
			assert.Equal(t, tt.want, doc.Parser())
		})
	}
}

func TestDocument_Ranges(t *testing.T) {
	doc := documents.NewDocument("file:///a.html", "html", 1, "<p>\n  <b class=\"颜色\"></b>\n</p>")

	assert.Equal(t, 6, doc.Offset(protocol.Position{Line: 1, Character: 2}))
	assert.Equal(t, len(doc.Content()), doc.Offset(protocol.Position{Line: 7, Character: 0}))

	r := doc.FullRange()
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, r.Start)
	assert.Equal(t, protocol.Position{Line: 2, Character: 4}, r.End)
	assert.Equal(t, "/a.html", doc.Path())
}
