package classname

import "strings"

// Candidates returns the delimiters available for a JS string context, in
// order of preference. Backtick is offered last and only when allowed.
func Candidates(preferSingle, allowBacktick bool) []Delimiter {
	ds := []Delimiter{DoubleQuote, SingleQuote}
	if preferSingle {
		ds = []Delimiter{SingleQuote, DoubleQuote}
	}
	if allowBacktick {
		ds = append(ds, Backtick)
	}
	return ds
}

// Escapes counts the escape sequences raw content, written in source between
// from delimiters, would need between to delimiters. Escapes unrelated to
// the delimiter (\n, \\, \u...) are the same for every delimiter and are not
// counted.
func Escapes(raw string, from, to Delimiter) int {
	n := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			i++
			c = raw[i]
			if c == '\\' {
				continue
			}
		}
		switch {
		case c == byte(to):
			n++
		case to == Backtick && c == '$' && i+1 < len(raw) && raw[i+1] == '{':
			n++
		}
	}
	return n
}

// Resolve picks the candidate that needs the fewest escapes for raw content
// currently delimited by from. Ties go to the earlier candidate.
func Resolve(raw string, from Delimiter, candidates []Delimiter) Delimiter {
	best, bestN := NoDelimiter, -1
	for _, d := range candidates {
		if n := Escapes(raw, from, d); bestN < 0 || n < bestN {
			best, bestN = d, n
		}
	}
	return best
}

// Requote converts raw content written between from delimiters into content
// valid between to delimiters. Escaped copies of the old delimiter lose
// their backslash when the new delimiter does not need it, and unescaped
// copies of the new delimiter gain one. Moving into a template literal also
// escapes ${.
func Requote(raw string, from, to Delimiter) string {
	if from == to {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw) + 4)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			n := raw[i+1]
			i++
			switch {
			case n == byte(from) && n != byte(to):
				b.WriteByte(n)
			case n == '$' && from == Backtick && to != Backtick:
				b.WriteByte('$')
			default:
				b.WriteByte('\\')
				b.WriteByte(n)
			}
			continue
		}
		switch {
		case c == byte(to):
			b.WriteByte('\\')
			b.WriteByte(c)
		case to == Backtick && c == '$' && i+1 < len(raw) && raw[i+1] == '{':
			b.WriteString(`\$`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// EscapeTemplate escapes text that has no escape sequences of its own, such
// as a JSX attribute string, for use inside a template literal.
func EscapeTemplate(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 4)
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\\' || c == '`':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '$' && i+1 < len(text) && text[i+1] == '{':
			b.WriteString(`\$`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
