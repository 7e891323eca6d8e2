package js

import (
	"fmt"
	"sync"

	"bennypowers.dev/classwrap/internal/classname"
	"bennypowers.dev/classwrap/internal/parser/common"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Parser parses JavaScript and JSX with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// Parse parses source into a tree. The caller closes the tree.
func (p *Parser) Parse(source []byte) (*sitter.Tree, error) {
	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, common.ErrNoTree
	}
	return tree, nil
}

// Occurrences parses source with a pooled parser and walks it
func Occurrences(source []byte, m *common.Matcher) ([]*classname.Occurrence, error) {
	p := AcquireParser()
	defer ReleaseParser(p)

	tree, err := p.Parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return Walk(tree.RootNode(), source, m), nil
}
