package position

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Width returns the display width of s in terminal columns. Tabs count as
// tabWidth columns and wide runes (CJK, emoji) as two.
func Width(s string, tabWidth int) int {
	if !strings.ContainsRune(s, '\t') {
		return uniseg.StringWidth(s)
	}
	w := 0
	for i, part := range strings.Split(s, "\t") {
		if i > 0 {
			w += tabWidth
		}
		w += uniseg.StringWidth(part)
	}
	return w
}

// LineStart returns the byte offset of the first character of the line
// containing offset.
func LineStart(text string, offset int) int {
	return strings.LastIndexByte(text[:offset], '\n') + 1
}

// Column returns the display column of offset within its line
func Column(text string, offset, tabWidth int) int {
	return Width(text[LineStart(text, offset):offset], tabWidth)
}

// Indent returns the leading spaces and tabs of the line containing offset
func Indent(text string, offset int) string {
	start := LineStart(text, offset)
	end := start
	for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return text[start:end]
}

// LastLineWidth returns the display width of the text after the last line
// break in s, or of s itself when it holds no line break.
func LastLineWidth(s string, tabWidth int) int {
	return Width(s[strings.LastIndexByte(s, '\n')+1:], tabWidth)
}
