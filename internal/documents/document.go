package documents

import (
	"fmt"

	"bennypowers.dev/classwrap/internal/host"
	"bennypowers.dev/classwrap/internal/position"
	"bennypowers.dev/classwrap/internal/uriutil"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// languageParsers maps LSP language identifiers to host parser names
var languageParsers = map[string]string{
	"html":            "html",
	"css":             "css",
	"javascript":      "babel",
	"javascriptreact": "babel",
	"typescript":      "typescript",
	"typescriptreact": "typescript",
	"vue":             "vue",
	"svelte":          "svelte",
}

// Document is an open text document the editor owns
type Document struct {
	uri        string
	languageID string
	content    string
	version    int
}

// NewDocument creates a new document
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// Path returns the file system path of the document
func (d *Document) Path() string {
	return uriutil.URIToPath(d.uri)
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Parser returns the host parser name for the document. The language
// identifier wins over the file extension; "" means neither is known.
func (d *Document) Parser() string {
	if p, ok := languageParsers[d.languageID]; ok {
		return p
	}
	return host.InferParser(d.Path())
}

// Version returns the document's version
func (d *Document) Version() int {
	return d.version
}

// Content returns the document's current content
func (d *Document) Content() string {
	return d.content
}

// Offset converts an LSP position into a byte offset in the content
func (d *Document) Offset(pos protocol.Position) int {
	return position.LSPToOffset(d.content, pos.Line, pos.Character)
}

// FullRange covers the whole content
func (d *Document) FullRange() protocol.Range {
	line, char := position.End(d.content)
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: line, Character: char},
	}
}

// SetContent updates the document's content and version.
// Updates older than the current version are rejected.
func (d *Document) SetContent(content string, version int) error {
	if version < d.version {
		return fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	d.content = content
	d.version = version
	return nil
}
