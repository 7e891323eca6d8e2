package lifecycle

import (
	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/internal/parser"
	"bennypowers.dev/classwrap/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")
	parser.ClosePools()
	return nil
}
