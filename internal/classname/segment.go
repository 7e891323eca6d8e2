package classname

import (
	"strings"

	"bennypowers.dev/classwrap/internal/position"
)

// Marker is a run of either whitespace or non-whitespace characters within
// one literal segment.
type Marker struct {
	Text  string
	Space bool
	// Boundary marks whitespace at the very start of the first segment or the
	// very end of the last segment of an occurrence. Boundary whitespace is
	// content and survives re-packing verbatim.
	Boundary bool
}

// IsSpace reports whether c separates class-name tokens. Only ASCII
// whitespace counts; other Unicode spaces are treated as token characters.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// SplitSegment splits one literal segment into alternating token and
// whitespace markers. No whitespace is collapsed here.
func SplitSegment(text string, first, last bool) []Marker {
	var ms []Marker
	for i := 0; i < len(text); {
		space := IsSpace(text[i])
		j := i + 1
		for j < len(text) && IsSpace(text[j]) == space {
			j++
		}
		ms = append(ms, Marker{Text: text[i:j], Space: space})
		i = j
	}
	if len(ms) == 0 {
		return nil
	}
	if first && ms[0].Space {
		ms[0].Boundary = true
	}
	if last && ms[len(ms)-1].Space {
		ms[len(ms)-1].Boundary = true
	}
	return ms
}

// Atom is a piece of a Word: literal text or an embedded expression
type Atom struct {
	Text string
	Expr bool
}

// Word is a token: a maximal run of non-whitespace atoms. An expression
// glued to literal text (as in ${size}-4) belongs to the same word.
type Word struct {
	Atoms []Atom
}

// Render returns the word as source text
func (w Word) Render() string {
	var b strings.Builder
	for _, a := range w.Atoms {
		if a.Expr {
			b.WriteString("${")
			b.WriteString(a.Text)
			b.WriteString("}")
		} else {
			b.WriteString(a.Text)
		}
	}
	return b.String()
}

// Width returns the display width of the word. Expressions are measured in
// their single-line form so that a wrapped nested class name does not change
// the layout of the enclosing one.
func (w Word) Width(tabWidth int) int {
	n := 0
	for _, a := range w.Atoms {
		if a.Expr {
			n += 3 + position.Width(collapseBreaks(a.Text), tabWidth)
		} else {
			n += position.Width(a.Text, tabWidth)
		}
	}
	return n
}

// Stream is the tokenized content of an occurrence
type Stream struct {
	Leading  string
	Words    []Word
	Trailing string
}

// Tokenize turns an occurrence's parts into words, keeping the whole
// occurrence's leading and trailing whitespace aside.
func Tokenize(parts []Part) Stream {
	var s Stream
	var cur Word
	flush := func() {
		if len(cur.Atoms) > 0 {
			s.Words = append(s.Words, cur)
			cur = Word{}
		}
	}

	for i, p := range parts {
		if p.Expr {
			cur.Atoms = append(cur.Atoms, Atom{Text: p.Text, Expr: true})
			continue
		}
		ms := SplitSegment(p.Text, i == 0, i == len(parts)-1)
		for j, m := range ms {
			switch {
			case !m.Space:
				cur.Atoms = append(cur.Atoms, Atom{Text: m.Text})
			case m.Boundary && i == 0 && j == 0:
				s.Leading = m.Text
			case m.Boundary:
				flush()
				s.Trailing = m.Text
			default:
				flush()
			}
		}
	}
	flush()
	return s
}

// Tokens returns the rendered text of every word, in order
func (s Stream) Tokens() []string {
	out := make([]string, len(s.Words))
	for i, w := range s.Words {
		out[i] = w.Render()
	}
	return out
}

// collapseBreaks replaces each whitespace run containing a line break with
// a single space.
func collapseBreaks(s string) string {
	if !strings.ContainsAny(s, "\n\r") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if !IsSpace(s[i]) {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && IsSpace(s[j]) {
			j++
		}
		run := s[i:j]
		if strings.ContainsAny(run, "\n\r") {
			b.WriteByte(' ')
		} else {
			b.WriteString(run)
		}
		i = j
	}
	return b.String()
}
