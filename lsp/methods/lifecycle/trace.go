package lifecycle

import (
	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles the $/setTrace notification. A verbose trace turns on
// debug logging.
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	log.Info("Trace level set to: %s", params.Value)
	if params.Value == protocol.TraceValueVerbose {
		log.SetLevel(log.LevelDebug)
	}
	return nil
}
