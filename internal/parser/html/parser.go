package html

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/classwrap/internal/classname"
	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/internal/parser/common"
	"bennypowers.dev/classwrap/internal/parser/css"
	"bennypowers.dev/classwrap/internal/parser/js"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser parses HTML with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
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

// scriptTypes are the <script type> values whose body is JavaScript
var scriptTypes = map[string]bool{
	"":                       true,
	"module":                 true,
	"text/javascript":        true,
	"application/javascript": true,
	"text/babel":             true,
	"text/jsx":               true,
}

// Walk finds class-name occurrences in an HTML tree: quoted values of
// recognized attributes, plus occurrences inside <script> and <style>
// bodies, in source order.
func Walk(root *sitter.Node, source []byte, m *common.Matcher) []*classname.Occurrence {
	w := &walker{src: source, m: m}
	w.visit(root)
	return w.out
}

type walker struct {
	src   []byte
	m     *common.Matcher
	depth int
	out   []*classname.Occurrence
}

func (w *walker) visit(n *sitter.Node) {
	if n == nil || w.ignored(n) {
		return
	}

	switch n.Kind() {
	case "attribute":
		if occ := w.attribute(n); occ != nil {
			w.out = append(w.out, occ)
		}
		return
	case "script_element":
		if scriptTypes[strings.ToLower(attributeValue(n, w.src, "type"))] {
			w.embedded(n, func(body []byte) ([]*classname.Occurrence, error) {
				return js.Occurrences(body, w.m)
			})
		}
		return
	case "style_element":
		w.embedded(n, css.Occurrences)
		return
	}

	for i := uint(0); i < n.NamedChildCount(); i++ {
		w.visit(n.NamedChild(i))
	}
}

func (w *walker) ignored(n *sitter.Node) bool {
	prev := n.PrevNamedSibling()
	return prev != nil && prev.Kind() == "comment" && common.IsIgnoreComment(common.Text(prev, w.src))
}

func (w *walker) attribute(n *sitter.Node) *classname.Occurrence {
	var name, value *sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		switch c := n.NamedChild(i); c.Kind() {
		case "attribute_name":
			name = c
		case "quoted_attribute_value":
			value = c
		}
	}
	if name == nil || value == nil || !w.m.Attribute(common.Text(name, w.src)) {
		return nil
	}

	start, end := int(value.StartByte()), int(value.EndByte())
	if end-start < 2 {
		return nil
	}
	cs, ce := start+1, end-1
	return &classname.Occurrence{
		Kind:         classname.KindAttribute,
		Syntax:       classname.SyntaxHTML,
		Start:        start,
		End:          end,
		ContentStart: cs,
		Parts:        []classname.Part{{Text: string(w.src[cs:ce]), Start: cs, End: ce}},
		Delimiter:    classname.Delimiter(w.src[start]),
	}
}

// embedded walks the raw text body of a <script> or <style> element as its
// own document and maps the results back onto this one
func (w *walker) embedded(n *sitter.Node, walk func([]byte) ([]*classname.Occurrence, error)) {
	if w.depth >= common.MaxEmbedDepth {
		return
	}
	var body *sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c.Kind() == "raw_text" {
			body = c
		}
	}
	if body == nil {
		return
	}

	w.depth++
	defer func() { w.depth-- }()

	occs, err := walk(w.src[body.StartByte():body.EndByte()])
	if err != nil {
		log.Debug("Failed to walk %s at byte %d: %v", n.Kind(), body.StartByte(), err)
		return
	}
	for _, occ := range occs {
		occ.Shift(int(body.StartByte()))
		w.out = append(w.out, occ)
	}
}

// attributeValue returns the value of the named attribute on an element's
// start tag, without quotes
func attributeValue(element *sitter.Node, source []byte, name string) string {
	var tag *sitter.Node
	for i := uint(0); i < element.NamedChildCount(); i++ {
		if c := element.NamedChild(i); c.Kind() == "start_tag" {
			tag = c
			break
		}
	}
	if tag == nil {
		return ""
	}
	for i := uint(0); i < tag.NamedChildCount(); i++ {
		attr := tag.NamedChild(i)
		if attr.Kind() != "attribute" {
			continue
		}
		var attrName, value string
		for j := uint(0); j < attr.NamedChildCount(); j++ {
			switch c := attr.NamedChild(j); c.Kind() {
			case "attribute_name":
				attrName = common.Text(c, source)
			case "attribute_value", "quoted_attribute_value":
				value = strings.Trim(common.Text(c, source), `"'`)
			}
		}
		if strings.EqualFold(attrName, name) {
			return value
		}
	}
	return ""
}
