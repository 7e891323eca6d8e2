package testutil

import (
	"bennypowers.dev/classwrap/internal/documents"
	"bennypowers.dev/classwrap/internal/format"
	"bennypowers.dev/classwrap/internal/host"
	"bennypowers.dev/classwrap/lsp/types"
	"github.com/tliron/glsp"
)

// MockServerContext implements types.ServerContext for testing.
// The formatter uses the built-in host capabilities unless Registry is set.
type MockServerContext struct {
	docs        *documents.Manager
	rootURI     string
	rootPath    string
	config      types.ServerConfig
	glspContext *glsp.Context

	// Registry replaces the built-in host capabilities
	Registry *host.Registry

	// SetConfigCalled tracks configuration updates
	SetConfigCalled bool
}

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:   documents.NewManager(),
		config: types.DefaultConfig(),
	}
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// GetConfig returns the server configuration
func (m *MockServerContext) GetConfig() types.ServerConfig {
	return m.config
}

// SetConfig sets the server configuration
func (m *MockServerContext) SetConfig(config types.ServerConfig) {
	m.SetConfigCalled = true
	m.config = config
}

// Formatter returns a formatter over Registry, or the built-in capabilities
func (m *MockServerContext) Formatter() *format.Formatter {
	if m.Registry != nil {
		return format.New(m.Registry)
	}
	return format.New(host.Builtin())
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}
