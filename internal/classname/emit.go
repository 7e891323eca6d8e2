package classname

import (
	"strings"

	"bennypowers.dev/classwrap/internal/position"
)

// Locate fills in the position-dependent fields of occ and its nested
// occurrences from the document text. Content whose leading whitespace
// holds a line break starts on a line of its own, and is measured from
// there.
func (o *Occurrence) Locate(src string, s Settings) {
	o.LineIndent = position.Indent(src, o.Start)
	o.Column = position.Column(src, o.ContentStart, s.TabWidth)
	if lead := o.leading(); hasBreak(lead) {
		o.LineIndent = lead[strings.LastIndexAny(lead, "\n\r")+1:]
		o.Column = position.LastLineWidth(lead, s.TabWidth)
	}
	if unit := position.Width(s.IndentUnit(), s.TabWidth); unit > 0 {
		o.IndentLevel = position.Width(o.LineIndent, s.TabWidth) / unit
	}
	for _, p := range o.Parts {
		for _, n := range p.Nested {
			n.Locate(src, s)
		}
	}
}

// leading returns the whitespace that opens the content
func (o *Occurrence) leading() string {
	if len(o.Parts) == 0 || o.Parts[0].Expr {
		return ""
	}
	text := o.Parts[0].Text
	i := 0
	for i < len(text) && IsSpace(text[i]) {
		i++
	}
	return text[:i]
}

// Rewrite computes the replacement for src[occ.Start:occ.End]. The boolean
// reports whether the replacement differs from the current text. Nested
// occurrences are rewritten first and spliced into their expressions.
func Rewrite(src string, occ *Occurrence, s Settings) (string, bool) {
	current := src[occ.Start:occ.End]
	parts := rewriteExpressions(src, occ, s)
	stream := Tokenize(parts)
	if len(stream.Words) == 0 {
		return current, false
	}

	e := emitter{occ: occ, s: s, parts: parts, stream: stream}
	out := e.emit()
	return out, out != current
}

// Render writes packed lines back out, joining words with single spaces and
// starting every continuation line with indent.
func Render(s Stream, lines []Line, indent string) string {
	var b strings.Builder
	b.WriteString(s.Leading)
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
			b.WriteString(indent)
		}
		for j, w := range l.Words {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w.Render())
		}
	}
	b.WriteString(s.Trailing)
	return b.String()
}

type emitter struct {
	occ    *Occurrence
	s      Settings
	parts  []Part
	stream Stream
}

// pack lays the content out for content starting shift columns to the
// right of where it starts now. The shift anticipates a delimiter change
// that moves the content, so that the next pass sees the same budget.
func (e *emitter) pack(shift int) ([]Line, Budget) {
	b := EffectiveWidth(e.s, e.occ.Column+shift, e.occ.LineIndent)
	b.Reserve = 1
	if e.occ.Kind == KindObjectKey {
		b.Reserve = 2
	}
	return Pack(e.stream, b, e.s.TabWidth), b
}

// original renders the parts as they are, with rewritten expressions
func (e *emitter) original() string {
	var b strings.Builder
	for _, p := range e.parts {
		if p.Expr {
			b.WriteString("${")
			b.WriteString(p.Text)
			b.WriteString("}")
		} else {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// spansLines reports whether the literal text holds a line break
func (e *emitter) spansLines() bool {
	for _, p := range e.parts {
		if !p.Expr && strings.ContainsAny(p.Text, "\n\r") {
			return true
		}
	}
	return false
}

// flat is the content to emit when no wrapping is needed: the original text
// when it is already on one line, otherwise the content joined onto one.
func (e *emitter) flat(lines []Line) string {
	if !e.spansLines() {
		return e.original()
	}
	return Render(e.stream, []Line{{Words: allWords(lines)}}, "")
}

func (e *emitter) emit() string {
	occ := e.occ
	lines, b := e.pack(0)
	wrapped := len(lines) > 1

	switch occ.Kind {
	case KindAttribute:
		if wrapped && e.s.SyntaxTransformation && occ.Syntax == SyntaxJSX {
			lines, b = e.pack(1)
			return "{`" + EscapeTemplate(Render(e.stream, lines, b.Indent)) + "`}"
		}
		q := e.attributeQuote().String()
		if wrapped {
			return q + Render(e.stream, lines, b.Indent) + q
		}
		return q + e.flat(lines) + q

	case KindStringLiteral, KindArrayElement:
		if wrapped {
			return "`" + Requote(Render(e.stream, lines, b.Indent), occ.Delimiter, Backtick) + "`"
		}
		return e.requote(e.original(), occ.Delimiter, e.s.SingleQuote)

	case KindTemplateLiteral, KindTaggedTemplate:
		if wrapped {
			return "`" + Render(e.stream, lines, b.Indent) + "`"
		}
		return "`" + e.flat(lines) + "`"

	case KindObjectKey:
		return e.emitObjectKey(lines, wrapped)

	case KindCSSApply:
		if wrapped {
			return Render(e.stream, lines, b.Indent)
		}
		return e.flat(lines)
	}

	return e.original()
}

// emitObjectKey writes a wrapped key as a computed template key, because
// plain keys cannot span lines, and a short key as a quoted string.
func (e *emitter) emitObjectKey(lines []Line, wrapped bool) string {
	occ := e.occ
	if occ.Computed {
		if wrapped {
			_, b := e.pack(0)
			return "[`" + Render(e.stream, lines, b.Indent) + "`]"
		}
		content := e.flat(lines)
		if occ.HasExpressions() {
			return "[`" + content + "`]"
		}
		return e.requote(content, Backtick, e.s.SingleQuote)
	}

	if wrapped {
		lines, b := e.pack(1)
		if len(lines) > 1 {
			return "[`" + Requote(Render(e.stream, lines, b.Indent), occ.Delimiter, Backtick) + "`]"
		}
	}
	return e.requote(e.original(), occ.Delimiter, e.s.SingleQuote)
}

// attributeQuote keeps HTML attribute quotes as they are. JSX attribute
// strings have no escape sequences, so they switch to the configured JSX
// quote only when the content does not contain it.
func (e *emitter) attributeQuote() Delimiter {
	q := e.occ.Delimiter
	if e.occ.Syntax != SyntaxJSX {
		return q
	}
	want := DoubleQuote
	if e.s.JSXSingleQuote {
		want = SingleQuote
	}
	if want != q && !strings.Contains(e.original(), want.String()) {
		return want
	}
	return q
}

// requote re-delimits single-line content with the quote that needs the
// fewest escapes, preferring the configured quote on ties.
func (e *emitter) requote(content string, from Delimiter, preferSingle bool) string {
	to := Resolve(content, from, Candidates(preferSingle, false))
	return to.String() + Requote(content, from, to) + to.String()
}

func rewriteExpressions(src string, occ *Occurrence, s Settings) []Part {
	parts := make([]Part, len(occ.Parts))
	for i, p := range occ.Parts {
		parts[i] = p
		if !p.Expr || len(p.Nested) == 0 {
			continue
		}
		text := p.Text
		for j := len(p.Nested) - 1; j >= 0; j-- {
			n := p.Nested[j]
			repl, changed := Rewrite(src, n, s)
			if !changed {
				continue
			}
			text = text[:n.Start-p.Start] + repl + text[n.End-p.Start:]
		}
		parts[i].Text = text
	}
	return parts
}

func allWords(lines []Line) []Word {
	var ws []Word
	for _, l := range lines {
		ws = append(ws, l.Words...)
	}
	return ws
}
