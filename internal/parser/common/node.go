package common

import (
	"errors"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrNoTree is returned when tree-sitter produces no tree, which happens
// when parsing is cancelled
var ErrNoTree = errors.New("parser produced no tree")

// IgnoreMarkers are the comment contents that exclude the next node
var IgnoreMarkers = []string{"prettier-ignore", "classwrap-ignore"}

// Text returns the source text of node
func Text(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}

// IsIgnoreComment reports whether a comment's text asks to leave the
// following node alone
func IsIgnoreComment(text string) bool {
	for _, m := range IgnoreMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// FirstError returns the first ERROR or MISSING node in document order, or
// nil when the tree parsed cleanly. Subtrees for which skip returns true are
// not searched; skip may be nil.
func FirstError(root *sitter.Node, skip func(*sitter.Node) bool) *sitter.Node {
	if root == nil || (!root.HasError() && !root.IsMissing()) {
		return nil
	}
	if skip != nil && skip(root) {
		return nil
	}
	if root.IsError() || root.IsMissing() {
		return root
	}
	for i := uint(0); i < root.ChildCount(); i++ {
		if n := FirstError(root.Child(i), skip); n != nil {
			return n
		}
	}
	return nil
}

// MaxEmbedDepth bounds how deeply embedded regions (a <script> body inside
// HTML) are walked
const MaxEmbedDepth = 4
