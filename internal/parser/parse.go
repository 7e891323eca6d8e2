package parser

import (
	"fmt"

	"bennypowers.dev/classwrap/internal/classname"
	"bennypowers.dev/classwrap/internal/parser/common"
	"bennypowers.dev/classwrap/internal/parser/css"
	"bennypowers.dev/classwrap/internal/parser/html"
	"bennypowers.dev/classwrap/internal/parser/js"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Language selects a grammar
type Language int

const (
	// UnknownLanguage is the zero value, indicating no grammar
	UnknownLanguage Language = iota
	// JavaScript covers JS and JSX
	JavaScript
	// HTML covers HTML documents with embedded <script> and <style>
	HTML
	// CSS covers stylesheets
	CSS
)

func (l Language) String() string {
	switch l {
	case JavaScript:
		return "javascript"
	case HTML:
		return "html"
	case CSS:
		return "css"
	default:
		return "unknown"
	}
}

// Tree is a parsed document. Trees are built fresh for every pass and
// closed when the pass is done.
type Tree struct {
	lang   Language
	source []byte
	tree   *sitter.Tree
}

// Parse parses source with the grammar for lang
func Parse(lang Language, source string) (*Tree, error) {
	src := []byte(source)
	var (
		tree *sitter.Tree
		err  error
	)
	switch lang {
	case JavaScript:
		p := js.AcquireParser()
		defer js.ReleaseParser(p)
		tree, err = p.Parse(src)
	case HTML:
		p := html.AcquireParser()
		defer html.ReleaseParser(p)
		tree, err = p.Parse(src)
	case CSS:
		p := css.AcquireParser()
		defer css.ReleaseParser(p)
		tree, err = p.Parse(src)
	default:
		return nil, fmt.Errorf("no grammar for %s", lang)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", lang, err)
	}
	return &Tree{lang: lang, source: src, tree: tree}, nil
}

// Language returns the grammar the tree was parsed with
func (t *Tree) Language() Language {
	return t.lang
}

// Occurrences walks the tree and returns its class-name occurrences in
// source order
func (t *Tree) Occurrences(m *common.Matcher) []*classname.Occurrence {
	root := t.tree.RootNode()
	switch t.lang {
	case JavaScript:
		return js.Walk(root, t.source, m)
	case HTML:
		return html.Walk(root, t.source, m)
	case CSS:
		return css.Walk(root, t.source)
	}
	return nil
}

// ErrorPosition returns the zero-based row and byte column of the first
// syntax error, if any
func (t *Tree) ErrorPosition() (row, column uint, ok bool) {
	var skip func(*sitter.Node) bool
	if t.lang == CSS {
		skip = func(n *sitter.Node) bool { return css.IsApply(n, t.source) }
	}
	n := common.FirstError(t.tree.RootNode(), skip)
	if n == nil {
		return 0, 0, false
	}
	p := n.StartPosition()
	return p.Row, p.Column, true
}

// Close releases the tree
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// ClosePools closes the pooled parsers of every grammar
func ClosePools() {
	js.ClosePool()
	html.ClosePool()
	css.ClosePool()
}
