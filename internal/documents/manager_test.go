package documents_test

import (
	"sync"
	"testing"

	"bennypowers.dev/classwrap/internal/documents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func change(startLine, startChar, endLine, endChar uint32, text string) protocol.TextDocumentContentChangeEvent {
	return protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: startLine, Character: startChar},
			End:   protocol.Position{Line: endLine, Character: endChar},
		},
		Text: text,
	}
}

func TestManagerOpenClose(t *testing.T) {
	manager := documents.NewManager()
	uri := "file:///index.html"

	assert.Nil(t, manager.Get(uri))
	require.NoError(t, manager.DidOpen(uri, "html", 1, `<p class="a b"></p>`))

	doc := manager.Get(uri)
	require.NotNil(t, doc)
	assert.Equal(t, `<p class="a b"></p>`, doc.Content())
	assert.Len(t, manager.GetAll(), 1)

	require.NoError(t, manager.DidClose(uri))
	assert.Nil(t, manager.Get(uri))
	assert.Error(t, manager.DidClose(uri))
}

func TestManagerChanges(t *testing.T) {
	tests := []struct {
		name    string
		content string
		changes []any
		want    string
	}{
		{
			name:    "full update",
			content: `<p class="a"></p>`,
			changes: []any{protocol.TextDocumentContentChangeEventWhole{Text: `<p class="b"></p>`}},
			want:    `<p class="b"></p>`,
		},
		{
			name:    "full update without range",
			content: "a",
			changes: []any{protocol.TextDocumentContentChangeEvent{Text: "b"}},
			want:    "b",
		},
		{
			name:    "replace within a line",
			content: `<p class="px-4 py-2"></p>`,
			changes: []any{change(0, 10, 0, 14, "px-8")},
			want:    `<p class="px-8 py-2"></p>`,
		},
		{
			name:    "insert",
			content: "<p class=\"a\">\n</p>",
			changes: []any{change(0, 11, 0, 11, " b")},
			want:    "<p class=\"a b\">\n</p>",
		},
		{
			name:    "delete across lines",
			content: "<p class=\"a\n    b\"></p>",
			changes: []any{change(0, 11, 1, 4, " ")},
			want:    `<p class="a b"></p>`,
		},
		{
			name:    "batch applied in order",
			content: "abc",
			changes: []any{change(0, 0, 0, 1, "x"), change(0, 1, 0, 2, "y")},
			want:    "xyc",
		},
		{
			name:    "UTF-16 surrogate pairs",
			content: `<p class="👍 a"></p>`,
			changes: []any{change(0, 13, 0, 14, "b")},
			want:    `<p class="👍 b"></p>`,
		},
		{
			name:    "CJK",
			content: "颜色 a",
			changes: []any{change(0, 3, 0, 4, "b")},
			want:    "颜色 b",
		},
		{
			name:    "insert at EOF",
			content: "a\n",
			changes: []any{change(1, 0, 1, 0, "b")},
			want:    "a\nb",
		},
		{
			name:    "insert past the last line",
			content: "a",
			changes: []any{change(1, 0, 1, 0, "b")},
			want:    "ab",
		},
		{
			name:    "empty document",
			content: "",
			changes: []any{change(0, 0, 0, 0, "a")},
			want:    "a",
		},
		{
			name:    "character past the line end clamps",
			content: "ab\ncd",
			changes: []any{change(0, 10, 0, 10, "!")},
			want:    "ab!\ncd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := documents.NewManager()
			uri := "file:///a.html"
			require.NoError(t, manager.DidOpen(uri, "html", 1, tt.content))
			require.NoError(t, manager.DidChange(uri, 2, tt.changes))

			doc := manager.Get(uri)
			assert.Equal(t, tt.want, doc.Content())
			assert.Equal(t, 2, doc.Version())
		})
	}
}

func TestManagerChangeErrors(t *testing.T) {
	manager := documents.NewManager()
	uri := "file:///a.html"

	assert.Error(t, manager.DidChange(uri, 2, nil), "unknown document")

	require.NoError(t, manager.DidOpen(uri, "html", 5, "one\ntwo"))
	assert.Error(t, manager.DidChange(uri, 6, []any{change(5, 0, 5, 0, "x")}), "line out of bounds")
	assert.Error(t, manager.DidChange(uri, 6, []any{change(1, 2, 0, 1, "x")}), "reversed range")
	assert.Error(t, manager.DidChange(uri, 6, []any{"nonsense"}), "unknown change type")
	assert.Error(t, manager.DidChange(uri, 4, []any{change(0, 0, 0, 0, "x")}), "stale version")

	assert.Equal(t, "one\ntwo", manager.Get(uri).Content())
	assert.Equal(t, 5, manager.Get(uri).Version())
}

func TestManagerSnapshot(t *testing.T) {
	manager := documents.NewManager()
	uri := "file:///a.css"
	require.NoError(t, manager.DidOpen(uri, "css", 1, "a"))

	snap, ok := manager.Snapshot(uri)
	require.True(t, ok)
	require.NoError(t, manager.DidChange(uri, 2, []any{change(0, 0, 0, 1, "b")}))
	assert.Equal(t, "a", snap.Content())
	assert.Equal(t, "b", manager.Get(uri).Content())

	_, ok = manager.Snapshot("file:///missing.css")
	assert.False(t, ok)
}

func TestManagerConcurrentAccess(t *testing.T) {
	manager := documents.NewManager()
	uri := "file:///a.css"
	require.NoError(t, manager.DidOpen(uri, "css", 0, ""))

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = manager.DidChange(uri, i, []any{protocol.TextDocumentContentChangeEventWhole{Text: "x"}})
		}()
		go func() {
			defer wg.Done()
			_, _ = manager.Snapshot(uri)
		}()
	}
	wg.Wait()
	assert.Equal(t, "x", manager.Get(uri).Content())
}
