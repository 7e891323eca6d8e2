package lifecycle

import (
	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Kept for notifications sent outside a request
	req.Server.SetGLSPContext(req.GLSP)
	return nil
}
