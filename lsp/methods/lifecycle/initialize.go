package lifecycle

import (
	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/internal/uriutil"
	"bennypowers.dev/classwrap/internal/version"
	"bennypowers.dev/classwrap/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to clients in the initialize result
const ServerName = "classwrap"

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	switch {
	case params.RootURI != nil:
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
	case params.RootPath != nil:
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
	}
	if root := req.Server.RootPath(); root != "" {
		log.Info("Workspace root: %s", root)
	}

	if params.InitializationOptions != nil {
		if err := applyInitializationOptions(req, params.InitializationOptions); err != nil {
			req.AddWarning(err)
		}
	}

	syncKind := protocol.TextDocumentSyncKindFull
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: boolPtr(true),
				Change:    &syncKind,
			},
			DocumentFormattingProvider:      true,
			DocumentRangeFormattingProvider: true,
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: strPtr(version.Get()),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
