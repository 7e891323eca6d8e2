package textDocument

import (
	"fmt"

	"bennypowers.dev/classwrap/internal/format"
	"bennypowers.dev/classwrap/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// MethodDiff previews formatting without applying it
const MethodDiff = "classwrap/diff"

// DiffParams are the params of a classwrap/diff request
type DiffParams struct {
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`
}

// DiffResult is the unified diff formatting the document would apply.
// Diff is empty when the document is already formatted.
type DiffResult struct {
	Diff string `json:"diff"`
}

// Diff handles the classwrap/diff request
func Diff(req *types.RequestContext, params *DiffParams) (*DiffResult, error) {
	uri := params.TextDocument.URI
	doc, ok := req.Server.DocumentManager().Snapshot(uri)
	if !ok {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	edits, err := formatDocument(req, uri, nil, nil)
	if err != nil {
		return nil, err
	}
	if len(edits) == 0 {
		return &DiffResult{}, nil
	}
	return &DiffResult{Diff: format.Diff(doc.Path(), doc.Content(), edits[0].NewText)}, nil
}
