package classname

import (
	"strings"

	"bennypowers.dev/classwrap/internal/position"
)

// Line is one output line of packed words
type Line struct {
	Words []Word
	// Width is the display width of the line's content, including boundary
	// whitespace on the first and last line that shares the line with words
	Width int
}

// Pack fills lines greedily from left to right. A word joins the current
// line when the line plus a separating space plus the word fits the budget;
// otherwise it starts a new line. A word wider than the budget sits alone on
// its line, unsplit. Packing never fails.
//
// Leading whitespace that ends in a line break starts the content on a line
// of its own; the budget's column is then that line's, and the whitespace
// is not counted again. Likewise trailing whitespace holding a line break
// moves the closing syntax off the last line, so nothing is reserved.
//
// A single returned line means no wrapping is necessary.
func Pack(s Stream, b Budget, tabWidth int) []Line {
	if len(s.Words) == 0 {
		return nil
	}

	var lines []Line
	cur := Line{}
	if !hasBreak(s.Leading) {
		cur.Width = position.Width(s.Leading, tabWidth)
	}
	limit := b.First

	for _, w := range s.Words {
		ww := w.Width(tabWidth)
		switch {
		case len(cur.Words) == 0:
			cur.Words = append(cur.Words, w)
			cur.Width += ww
		case cur.Width+1+ww <= limit:
			cur.Words = append(cur.Words, w)
			cur.Width += 1 + ww
		default:
			lines = append(lines, cur)
			cur = Line{Words: []Word{w}, Width: ww}
			limit = b.Rest
		}
	}
	lines = append(lines, cur)

	// The closing syntax has to fit after the last line. If it does not and
	// the line has a word to spare, that word moves down.
	last := &lines[len(lines)-1]
	tail := 0
	if !hasBreak(s.Trailing) {
		tail = position.Width(s.Trailing, tabWidth) + b.Reserve
	}
	if last.Width+tail > limit && len(last.Words) > 1 {
		moved := last.Words[len(last.Words)-1]
		mw := moved.Width(tabWidth)
		last.Words = last.Words[:len(last.Words)-1]
		last.Width -= 1 + mw
		lines = append(lines, Line{Words: []Word{moved}, Width: mw})
	}
	if !hasBreak(s.Trailing) {
		lines[len(lines)-1].Width += position.Width(s.Trailing, tabWidth)
	}

	return lines
}

func hasBreak(s string) bool {
	return strings.ContainsAny(s, "\n\r")
}

// Fits reports whether the stream can stay on a single line
func Fits(s Stream, b Budget, tabWidth int) bool {
	return len(Pack(s, b, tabWidth)) <= 1
}
