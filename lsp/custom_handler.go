package lsp

import (
	"encoding/json"

	"bennypowers.dev/classwrap/lsp/methods/textDocument"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler wraps protocol.Handler to add methods that are not part of
// LSP 3.16, such as classwrap/diff
type CustomHandler struct {
	*protocol.Handler // Pointer to avoid copying embedded mutex
	server            *Server
}

// Handle implements glsp.Handler interface
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	if context.Method == textDocument.MethodDiff {
		var params textDocument.DiffParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}
		result, err := method(h.server, textDocument.MethodDiff, textDocument.Diff)(context, &params)
		return result, true, true, err
	}

	return h.Handler.Handle(context)
}
