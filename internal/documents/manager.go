package documents

import (
	"fmt"
	"strings"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Manager tracks the documents open in the editor
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get retrieves a document by URI
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns all managed documents
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

// Snapshot returns a copy of the document, safe to read while edits
// continue to arrive
func (m *Manager) Snapshot(uri string) (*Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[uri]
	if !ok {
		return nil, false
	}
	clone := *doc
	return &clone, true
}

// DidOpen handles the textDocument/didOpen notification
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[uri] = NewDocument(uri, languageID, version, content)
	return nil
}

// DidClose handles the textDocument/didClose notification
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	delete(m.documents, uri)
	return nil
}

// DidChange handles the textDocument/didChange notification
func (m *Manager) DidChange(uri string, version int, changes []any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return fmt.Errorf("document not found: %s", uri)
	}

	content := doc.Content()
	for _, change := range changes {
		var err error
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				content = c.Text
				continue
			}
			content, err = applyIncrementalChange(content, *c.Range, c.Text)
		default:
			err = fmt.Errorf("unsupported content change %T", change)
		}
		if err != nil {
			return fmt.Errorf("failed to apply changes: %w", err)
		}
	}

	if err := doc.SetContent(content, version); err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	return nil
}

// applyIncrementalChange replaces the text in r. Positions count UTF-16
// code units, as LSP requires.
func applyIncrementalChange(content string, r protocol.Range, text string) (string, error) {
	lines := strings.Count(content, "\n") + 1
	// One line past the end is allowed for insertion at EOF
	if int(r.Start.Line) > lines || int(r.End.Line) > lines {
		return "", fmt.Errorf("range %d:%d-%d:%d out of bounds (total lines: %d)",
			r.Start.Line, r.Start.Character, r.End.Line, r.End.Character, lines)
	}

	doc := Document{content: content}
	start, end := doc.Offset(r.Start), doc.Offset(r.End)
	if start > end {
		return "", fmt.Errorf("range start %d:%d is after its end %d:%d",
			r.Start.Line, r.Start.Character, r.End.Line, r.End.Character)
	}

	var b strings.Builder
	b.Grow(len(content) - (end - start) + len(text))
	b.WriteString(content[:start])
	b.WriteString(text)
	b.WriteString(content[end:])
	return b.String(), nil
}
