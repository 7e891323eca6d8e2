package types

import (
	"bennypowers.dev/classwrap/internal/documents"
	"bennypowers.dev/classwrap/internal/format"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Configuration
	GetConfig() ServerConfig
	SetConfig(config ServerConfig)

	// Formatter returns the formatter for the current configuration
	Formatter() *format.Formatter

	// LSP context (for notifications to the client)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)
}
