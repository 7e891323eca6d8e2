package classname

import "fmt"

// Kind identifies the syntactic construct that holds class-name content
type Kind int

const (
	// KindUnknown is the zero value, indicating an uninitialized occurrence
	KindUnknown Kind = iota
	// KindAttribute is a plain quoted attribute value (HTML or JSX) whose
	// quotes may contain raw line breaks
	KindAttribute
	// KindStringLiteral is a JS string literal in a class-name position
	KindStringLiteral
	// KindTemplateLiteral is an untagged JS template literal
	KindTemplateLiteral
	// KindTaggedTemplate is the template part of tw`...`-style tagged templates
	KindTaggedTemplate
	// KindObjectKey is the key of a conditional class map entry
	KindObjectKey
	// KindArrayElement is a string literal inside a list-of-classes array
	KindArrayElement
	// KindCSSApply is the prelude of a CSS @apply at-rule
	KindCSSApply
)

var kindNames = [...]string{
	KindUnknown:         "unknown",
	KindAttribute:       "attribute",
	KindStringLiteral:   "string literal",
	KindTemplateLiteral: "template literal",
	KindTaggedTemplate:  "tagged template",
	KindObjectKey:       "object key",
	KindArrayElement:    "array element",
	KindCSSApply:        "@apply",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Syntax identifies the grammar an occurrence was found in
type Syntax int

const (
	SyntaxHTML Syntax = iota
	SyntaxJSX
	SyntaxCSS
)

// Delimiter is the character that opens and closes a literal
type Delimiter byte

const (
	NoDelimiter Delimiter = 0
	DoubleQuote Delimiter = '"'
	SingleQuote Delimiter = '\''
	Backtick    Delimiter = '`'
)

func (d Delimiter) String() string {
	if d == NoDelimiter {
		return ""
	}
	return string(rune(d))
}

// Part is one piece of an occurrence's content: either literal source text
// or an embedded ${...} expression.
type Part struct {
	// Text is the source text of the part. For expressions it excludes the
	// surrounding ${ and }.
	Text string
	// Expr marks an embedded expression
	Expr bool
	// Start and End are byte offsets of Text in the document
	Start, End int
	// Nested holds class-name occurrences found inside an expression part.
	// They are rewritten before the enclosing occurrence.
	Nested []*Occurrence
}

// Occurrence is one located instance of class-name content in a document.
// Occurrences are built fresh from each pass's tree and never reused.
type Occurrence struct {
	Kind   Kind
	Syntax Syntax

	// Start and End delimit the text replaced when the occurrence is
	// rewritten, including delimiters (quotes, backticks, brackets).
	Start, End int
	// ContentStart is the byte offset of the first content character
	ContentStart int

	Parts []Part

	// Delimiter is the quote that delimits the original literal
	Delimiter Delimiter
	// Computed marks an object key already written as [`...`]
	Computed bool

	// LineIndent is the indentation of the line the occurrence starts on
	LineIndent string
	// IndentLevel is LineIndent measured in indent units
	IndentLevel int
	// Column is the display column at which the content starts
	Column int
}

// Depth returns the nesting depth of the occurrence: 1 when no expression
// part holds nested occurrences.
func (o *Occurrence) Depth() int {
	d := 0
	for _, p := range o.Parts {
		for _, n := range p.Nested {
			d = max(d, n.Depth())
		}
	}
	return d + 1
}

// HasExpressions reports whether any part is an embedded expression
func (o *Occurrence) HasExpressions() bool {
	for _, p := range o.Parts {
		if p.Expr {
			return true
		}
	}
	return false
}

// Content returns the occurrence's content as it appears in source,
// rendering expressions as ${...}.
func (o *Occurrence) Content() string {
	var s string
	for _, p := range o.Parts {
		if p.Expr {
			s += "${" + p.Text + "}"
		} else {
			s += p.Text
		}
	}
	return s
}

func (o *Occurrence) String() string {
	return fmt.Sprintf("%s@%d:%d", o.Kind, o.Start, o.End)
}

// Shift moves every offset of the occurrence, its parts and its nested
// occurrences by delta. Sub-walks of embedded regions use it to map
// region-relative offsets onto the enclosing document.
func (o *Occurrence) Shift(delta int) {
	o.Start += delta
	o.End += delta
	o.ContentStart += delta
	for i := range o.Parts {
		p := &o.Parts[i]
		p.Start += delta
		p.End += delta
		for _, n := range p.Nested {
			n.Shift(delta)
		}
	}
}
