package lsp

import (
	"sync"

	"bennypowers.dev/classwrap/internal/documents"
	"bennypowers.dev/classwrap/internal/format"
	"bennypowers.dev/classwrap/internal/host"
	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/internal/parser"
	"bennypowers.dev/classwrap/lsp/methods/lifecycle"
	"bennypowers.dev/classwrap/lsp/methods/textDocument"
	"bennypowers.dev/classwrap/lsp/methods/workspace"
	"bennypowers.dev/classwrap/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server is the classwrap language server
type Server struct {
	documents  *documents.Manager
	builtin    *host.Registry
	handler    glsp.Handler
	glspServer *server.Server
	context    *glsp.Context
	rootURI    string             // Workspace root URI
	rootPath   string             // Workspace root path (file system)
	config     types.ServerConfig // Server configuration
	formatter  *format.Formatter  // Rebuilt when the configuration changes
	configMu   sync.RWMutex       // Protects the workspace root, config, formatter and context
}

// NewServer creates a new classwrap LSP server
func NewServer() (*Server, error) {
	s := &Server{
		documents: documents.NewManager(),
		builtin:   host.Builtin(),
		config:    types.DefaultConfig(),
	}
	s.formatter = format.New(s.builtin)

	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentFormatting:          method(s, "textDocument/formatting", textDocument.Formatting),
		TextDocumentRangeFormatting:     method(s, "textDocument/rangeFormatting", textDocument.RangeFormatting),
	}

	s.handler = &CustomHandler{
		Handler: &protocolHandler,
		server:  s,
	}
	s.glspServer = server.NewServer(s.handler, lifecycle.ServerName, false)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases the parser pools. It is safe to call Close multiple times.
func (s *Server) Close() error {
	parser.ClosePools()
	return nil
}

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// GetConfig returns a snapshot of the server configuration
func (s *Server) GetConfig() types.ServerConfig {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config
}

// SetConfig replaces the server configuration and rebuilds the formatter.
// A host command that cannot be used falls back to the built-in printers.
func (s *Server) SetConfig(config types.ServerConfig) {
	registry := s.builtin
	if config.HostCommand != "" {
		printer, err := host.NewExecPrinter(config.HostCommand)
		if err != nil {
			workspace.LogWarning(s.GLSPContext(), "Ignoring hostCommand: %v", err)
		} else {
			log.Info("Printing through %s", config.HostCommand)
			registry = s.builtin.WithPrinter(printer.Print)
		}
	}

	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.config = config
	s.formatter = format.New(registry)
}

// Formatter returns the formatter for the current configuration
func (s *Server) Formatter() *format.Formatter {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.formatter
}

// GLSPContext returns the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}
