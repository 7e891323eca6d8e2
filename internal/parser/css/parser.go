package css

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/classwrap/internal/classname"
	"bennypowers.dev/classwrap/internal/parser/common"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// ApplyKeyword introduces a class-name list in CSS
const ApplyKeyword = "@apply"

// Parser parses CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
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
func Occurrences(source []byte) ([]*classname.Occurrence, error) {
	p := AcquireParser()
	defer ReleaseParser(p)

	tree, err := p.Parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return Walk(tree.RootNode(), source), nil
}

// Walk finds the preludes of @apply rules, in source order
func Walk(root *sitter.Node, source []byte) []*classname.Occurrence {
	var out []*classname.Occurrence
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil || ignored(n, source) {
			return
		}
		if n.Kind() == "at_keyword" && common.Text(n, source) == ApplyKeyword {
			if occ := prelude(source, int(n.EndByte())); occ != nil {
				out = append(out, occ)
			}
			return
		}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(root)
	return out
}

// IsApply reports whether n is an @apply rule, or an error region holding
// one. Utility class syntax (w-1/2, [&>*]:p-2) is not valid CSS, so these
// regions are exempt from syntax checks.
func IsApply(n *sitter.Node, source []byte) bool {
	switch n.Kind() {
	case "at_rule", "ERROR":
		return strings.Contains(common.Text(n, source), ApplyKeyword)
	}
	return false
}

// prelude scans the class list that follows an @apply keyword ending at
// from. The list ends at ';' or at the closing brace of the block.
func prelude(source []byte, from int) *classname.Occurrence {
	end := from
	for end < len(source) && source[end] != ';' && source[end] != '}' {
		if source[end] == '{' {
			return nil
		}
		end++
	}

	cs, ce := from, end
	for cs < ce && classname.IsSpace(source[cs]) {
		cs++
	}
	for ce > cs && classname.IsSpace(source[ce-1]) {
		ce--
	}
	if cs == ce {
		return nil
	}

	return &classname.Occurrence{
		Kind:         classname.KindCSSApply,
		Syntax:       classname.SyntaxCSS,
		Start:        cs,
		End:          ce,
		ContentStart: cs,
		Parts:        []classname.Part{{Text: string(source[cs:ce]), Start: cs, End: ce}},
	}
}

func ignored(n *sitter.Node, source []byte) bool {
	prev := n.PrevNamedSibling()
	return prev != nil && prev.Kind() == "comment" && common.IsIgnoreComment(common.Text(prev, source))
}
