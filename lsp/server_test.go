package lsp

import (
	"encoding/json"
	"strings"
	"testing"

	"bennypowers.dev/classwrap/lsp/methods/textDocument"
	"bennypowers.dev/classwrap/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// call sends one message through the server's handler, as glsp would
func call(t *testing.T, h glsp.Handler, methodName string, params any) any {
	t.Helper()
	raw, err := json.Marshal(params)
	require.NoError(t, err)
	result, validMethod, validParams, err := h.Handle(&glsp.Context{Method: methodName, Params: raw})
	require.True(t, validMethod, methodName)
	require.True(t, validParams, methodName)
	require.NoError(t, err, methodName)
	return result
}

func TestServer_Roots(t *testing.T) {
	s := newServer(t)

	s.SetRootURI("file:///workspace")
	s.SetRootPath("/workspace")
	assert.Equal(t, "file:///workspace", s.RootURI())
	assert.Equal(t, "/workspace", s.RootPath())
}

func TestServer_Documents(t *testing.T) {
	s := newServer(t)

	_ = s.DocumentManager().DidOpen("file:///a.css", "css", 1, ".a { }")
	_ = s.DocumentManager().DidOpen("file:///b.html", "html", 1, "<p></p>")

	assert.Len(t, s.AllDocuments(), 2)
	assert.Equal(t, "<p></p>", s.Document("file:///b.html").Content())
}

func TestServer_SetConfig(t *testing.T) {
	s := newServer(t)
	builtin := s.Formatter()
	require.NotNil(t, builtin)

	s.SetConfig(types.ServerConfig{HostCommand: "prettier", Options: map[string]any{"printWidth": 100}})
	assert.Equal(t, "prettier", s.GetConfig().HostCommand)
	assert.NotSame(t, builtin, s.Formatter())

	s.SetConfig(types.ServerConfig{HostCommand: "   "})
	assert.NotNil(t, s.Formatter(), "unusable host command falls back to the built-in printers")
}

func TestServer_GLSPContext(t *testing.T) {
	s := newServer(t)
	assert.Nil(t, s.GLSPContext())

	ctx := &glsp.Context{}
	s.SetGLSPContext(ctx)
	assert.Same(t, ctx, s.GLSPContext())
}

func TestServer_FormattingSession(t *testing.T) {
	s := newServer(t)
	h := s.handler
	uri := "file:///site/index.html"
	long := strings.Repeat("px-4 py-2 ", 12)

	result := call(t, h, "initialize", protocol.InitializeParams{})
	require.IsType(t, protocol.InitializeResult{}, result)

	call(t, h, "workspace/didChangeConfiguration", protocol.DidChangeConfigurationParams{
		Settings: map[string]any{"classwrap": map[string]any{"options": map[string]any{"printWidth": 40}}},
	})
	assert.InDelta(t, 40, s.GetConfig().Options["printWidth"], 0)

	call(t, h, "textDocument/didOpen", protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "html", Version: 1, Text: `<p class="a"></p>`},
	})
	call(t, h, "textDocument/didChange", map[string]any{
		"textDocument":   map[string]any{"uri": uri, "version": 2},
		"contentChanges": []any{map[string]any{"text": `<p class="` + long + `"></p>`}},
	})
	assert.Contains(t, s.Document(uri).Content(), long)

	result = call(t, h, "textDocument/formatting", protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Options:      protocol.FormattingOptions{"tabSize": 2, "insertSpaces": true},
	})
	edits, ok := result.([]protocol.TextEdit)
	require.True(t, ok)
	require.Len(t, edits, 1)
	assert.Greater(t, strings.Count(edits[0].NewText, "\n"), 2)

	result = call(t, h, textDocument.MethodDiff, textDocument.DiffParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	diff, ok := result.(*textDocument.DiffResult)
	require.True(t, ok)
	assert.Contains(t, diff.Diff, "--- /site/index.html")

	call(t, h, "textDocument/didClose", protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.Nil(t, s.Document(uri))
}

func TestCustomHandler_InvalidDiffParams(t *testing.T) {
	s := newServer(t)
	_, validMethod, validParams, err := s.handler.Handle(&glsp.Context{
		Method: textDocument.MethodDiff,
		Params: []byte(`{invalid json`),
	})

	assert.True(t, validMethod)
	assert.False(t, validParams)
	assert.Error(t, err)
}
