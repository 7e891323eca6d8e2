package js

import (
	"strings"

	"bennypowers.dev/classwrap/internal/classname"
	"bennypowers.dev/classwrap/internal/parser/common"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Walk finds the class-name occurrences in a JS/JSX tree, in source order.
//
// Recognized positions are JSX attributes, arguments of recognized
// functions (including tagged templates), and variables or object
// properties named like a recognized attribute. Inside those positions the
// walker follows parentheses, the alternative branch of ternaries, the right
// operand of &&, || and ??, arrays, object keys, nested recognized calls and
// template substitutions.
func Walk(root *sitter.Node, source []byte, m *common.Matcher) []*classname.Occurrence {
	w := &walker{src: source, m: m}
	w.visit(root)
	return w.out
}

type walker struct {
	src []byte
	m   *common.Matcher
	out []*classname.Occurrence
}

func (w *walker) visit(n *sitter.Node) {
	if n == nil || w.ignored(n) {
		return
	}

	switch n.Kind() {
	case "jsx_attribute":
		if w.attribute(n) {
			return
		}
	case "call_expression":
		if w.call(n, &w.out) {
			return
		}
	case "variable_declarator":
		if w.named(n.ChildByFieldName("name"), n.ChildByFieldName("value")) {
			return
		}
	case "pair":
		if w.named(n.ChildByFieldName("key"), n.ChildByFieldName("value")) {
			return
		}
	}

	for i := uint(0); i < n.NamedChildCount(); i++ {
		w.visit(n.NamedChild(i))
	}
}

// ignored reports whether an ignore comment directly precedes n
func (w *walker) ignored(n *sitter.Node) bool {
	for prev := n.PrevNamedSibling(); prev != nil; prev = prev.PrevNamedSibling() {
		switch prev.Kind() {
		case "comment":
			return common.IsIgnoreComment(common.Text(prev, w.src))
		case "jsx_expression":
			// {/* prettier-ignore */}
			c := prev.NamedChild(0)
			return prev.NamedChildCount() == 1 && c.Kind() == "comment" &&
				common.IsIgnoreComment(common.Text(c, w.src))
		case "jsx_text":
			if strings.TrimSpace(common.Text(prev, w.src)) == "" {
				continue
			}
		}
		return false
	}
	return false
}

func (w *walker) attribute(n *sitter.Node) bool {
	name, value := n.NamedChild(0), n.NamedChild(1)
	if name == nil || value == nil || !w.m.Attribute(common.Text(name, w.src)) {
		return false
	}
	switch value.Kind() {
	case "string":
		occ := w.literal(value, classname.KindAttribute)
		w.out = append(w.out, occ)
	case "jsx_expression":
		w.collect(value, &w.out)
	}
	return true
}

// named handles `name = value` shapes whose name is a class-name attribute
func (w *walker) named(name, value *sitter.Node) bool {
	if name == nil || value == nil {
		return false
	}
	var key string
	switch name.Kind() {
	case "identifier", "property_identifier":
		key = common.Text(name, w.src)
	case "string":
		key = strings.Trim(common.Text(name, w.src), `"'`)
	default:
		return false
	}
	if !w.m.Attribute(key) {
		return false
	}
	w.collect(value, &w.out)
	return true
}

// call collects the arguments of a recognized function call
func (w *walker) call(n *sitter.Node, out *[]*classname.Occurrence) bool {
	fn, args := n.ChildByFieldName("function"), n.ChildByFieldName("arguments")
	if fn == nil || args == nil || !w.m.Function(common.Text(fn, w.src)) {
		return false
	}
	if args.Kind() == "template_string" {
		*out = append(*out, w.template(args, classname.KindTaggedTemplate))
		return true
	}
	for i := uint(0); i < args.NamedChildCount(); i++ {
		w.collect(args.NamedChild(i), out)
	}
	return true
}

// collect finds occurrences in an expression that sits in a class-name
// position
func (w *walker) collect(n *sitter.Node, out *[]*classname.Occurrence) {
	if n == nil || w.ignored(n) {
		return
	}

	switch n.Kind() {
	case "string":
		*out = append(*out, w.literal(n, classname.KindStringLiteral))

	case "template_string":
		*out = append(*out, w.template(n, classname.KindTemplateLiteral))

	case "parenthesized_expression", "jsx_expression":
		for i := uint(0); i < n.NamedChildCount(); i++ {
			w.collect(n.NamedChild(i), out)
		}

	case "ternary_expression":
		w.collect(n.ChildByFieldName("alternative"), out)

	case "binary_expression":
		op := n.ChildByFieldName("operator")
		if op == nil {
			return
		}
		switch op.Kind() {
		case "&&", "||", "??":
			w.collect(n.ChildByFieldName("right"), out)
		}

	case "array":
		for i := uint(0); i < n.NamedChildCount(); i++ {
			el := n.NamedChild(i)
			if el.Kind() == "string" && !w.ignored(el) {
				*out = append(*out, w.literal(el, classname.KindArrayElement))
				continue
			}
			w.collect(el, out)
		}

	case "object":
		w.objectKeys(n, out)

	case "call_expression":
		w.call(n, out)
	}
}

// objectKeys collects the keys of a conditional class map. Values are
// conditions and are not visited.
func (w *walker) objectKeys(n *sitter.Node, out *[]*classname.Occurrence) {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		pair := n.NamedChild(i)
		if pair.Kind() != "pair" || w.ignored(pair) {
			continue
		}
		key := pair.ChildByFieldName("key")
		if key == nil {
			continue
		}
		switch key.Kind() {
		case "string":
			*out = append(*out, w.literal(key, classname.KindObjectKey))
		case "computed_property_name":
			inner := key.NamedChild(0)
			if inner == nil || inner.Kind() != "template_string" {
				continue
			}
			occ := w.template(inner, classname.KindObjectKey)
			occ.Start, occ.End = int(key.StartByte()), int(key.EndByte())
			occ.Computed = true
			*out = append(*out, occ)
		}
	}
}

// literal builds an occurrence for a quoted string node
func (w *walker) literal(n *sitter.Node, kind classname.Kind) *classname.Occurrence {
	start, end := int(n.StartByte()), int(n.EndByte())
	cs, ce := start+1, max(end-1, start+1)
	return &classname.Occurrence{
		Kind:         kind,
		Syntax:       classname.SyntaxJSX,
		Start:        start,
		End:          end,
		ContentStart: cs,
		Parts:        []classname.Part{{Text: string(w.src[cs:ce]), Start: cs, End: ce}},
		Delimiter:    classname.Delimiter(w.src[start]),
	}
}

// template builds an occurrence for a template_string node, splitting it
// into literal parts and ${...} expression parts. Expressions are searched
// for nested occurrences.
func (w *walker) template(n *sitter.Node, kind classname.Kind) *classname.Occurrence {
	start, end := int(n.StartByte()), int(n.EndByte())
	occ := &classname.Occurrence{
		Kind:         kind,
		Syntax:       classname.SyntaxJSX,
		Start:        start,
		End:          end,
		ContentStart: start + 1,
		Delimiter:    classname.Backtick,
	}

	pos := start + 1
	text := func(to int) {
		if to > pos {
			occ.Parts = append(occ.Parts, classname.Part{Text: string(w.src[pos:to]), Start: pos, End: to})
		}
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		sub := n.NamedChild(i)
		if sub.Kind() != "template_substitution" {
			continue
		}
		text(int(sub.StartByte()))

		es, ee := int(sub.StartByte())+2, int(sub.EndByte())-1
		part := classname.Part{Text: string(w.src[es:ee]), Expr: true, Start: es, End: ee}
		for j := uint(0); j < sub.NamedChildCount(); j++ {
			w.collect(sub.NamedChild(j), &part.Nested)
		}
		occ.Parts = append(occ.Parts, part)
		pos = int(sub.EndByte())
	}
	text(end - 1)

	return occ
}
