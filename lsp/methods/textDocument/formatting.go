package textDocument

import (
	"errors"
	"fmt"

	"bennypowers.dev/classwrap/internal/config"
	"bennypowers.dev/classwrap/internal/documents"
	"bennypowers.dev/classwrap/internal/format"
	"bennypowers.dev/classwrap/internal/host"
	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/lsp/methods/workspace"
	"bennypowers.dev/classwrap/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Formatting handles the textDocument/formatting request
func Formatting(req *types.RequestContext, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	return formatDocument(req, params.TextDocument.URI, params.Options, nil)
}

// RangeFormatting handles the textDocument/rangeFormatting request. Only
// class names inside the range are rewritten, but the host formats the
// whole document.
func RangeFormatting(req *types.RequestContext, params *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error) {
	return formatDocument(req, params.TextDocument.URI, params.Options, &params.Range)
}

// formatDocument formats an open document and returns a single edit that
// replaces all of it, or no edits when nothing changed
func formatDocument(req *types.RequestContext, uri string, editor protocol.FormattingOptions, r *protocol.Range) ([]protocol.TextEdit, error) {
	doc, ok := req.Server.DocumentManager().Snapshot(uri)
	if !ok {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	opts, err := req.Server.GetConfig().OptionsFor(doc.Path(), editorOptions(editor))
	switch {
	case errors.Is(err, config.ErrInvalidOption), errors.Is(err, config.ErrConfigFile):
		req.AddWarning(err)
		return nil, nil
	case err != nil:
		return nil, err
	}
	if opts.Parser == "" {
		opts.Parser = doc.Parser()
	}
	if r != nil {
		opts.RangeStart, opts.RangeEnd = doc.Offset(r.Start), doc.Offset(r.End)
	}

	formatted, err := req.Server.Formatter().Format(req.Context(), doc.Path(), doc.Content(), opts)
	switch {
	case errors.Is(err, host.ErrMissingCapability), errors.Is(err, config.ErrInvalidOption):
		// Not ours to format; the editor may have other formatters
		req.AddWarning(err)
		return nil, nil
	case errors.Is(err, format.ErrHost):
		// The document does not parse, typically mid-edit
		log.Debug("Not formatting %s: %v", uri, err)
		return nil, nil
	case err != nil:
		workspace.ShowMessage(req.GLSP, protocol.MessageTypeError, err.Error())
		return nil, err
	}

	return documentEdits(doc, formatted), nil
}

// documentEdits replaces the whole document with formatted
func documentEdits(doc *documents.Document, formatted string) []protocol.TextEdit {
	if formatted == doc.Content() {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{{
		Range:   doc.FullRange(),
		NewText: formatted,
	}}
}

// editorOptions converts the editor's formatting options to config keys
func editorOptions(editor protocol.FormattingOptions) map[string]any {
	out := map[string]any{}
	if v, ok := editor[protocol.FormattingOptionTabSize]; ok {
		out["tabWidth"] = v
	}
	if v, ok := editor[protocol.FormattingOptionInsertSpaces].(bool); ok {
		out["useTabs"] = !v
	}
	return out
}
