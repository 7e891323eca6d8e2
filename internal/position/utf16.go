package position

import (
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16ToByteOffset converts a UTF-16 code unit offset within a single line
// to a byte offset. Offsets that land inside a surrogate pair are clamped to
// the start of the rune; offsets past the end clamp to len(line).
func UTF16ToByteOffset(line string, col int) int {
	units, off := 0, 0
	for off < len(line) && units < col {
		r, size := utf8.DecodeRuneInString(line[off:])
		n := 1
		if r != utf8.RuneError || size != 1 {
			n = utf16.RuneLen(r)
		}
		if n == 2 && units+1 == col {
			break
		}
		units += n
		off += size
	}
	return off
}

// ByteOffsetToUTF16 converts a byte offset within a single line to a UTF-16
// code unit offset. A byte offset in the middle of a rune counts only the
// runes that end before it.
func ByteOffsetToUTF16(line string, byteOffset int) int {
	byteOffset = min(max(byteOffset, 0), len(line))
	units := 0
	for off := 0; off < byteOffset; {
		r, size := utf8.DecodeRuneInString(line[off:])
		if off+size > byteOffset {
			break
		}
		units += utf16.RuneLen(r)
		off += size
	}
	return units
}

// StringLengthUTF16 returns the length of s in UTF-16 code units
func StringLengthUTF16(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// OffsetToLSP converts a byte offset in text into a zero-based line number and
// UTF-16 character offset, as used by LSP positions.
func OffsetToLSP(text string, offset int) (line, character uint32) {
	offset = min(max(offset, 0), len(text))
	before := text[:offset]
	l := strings.Count(before, "\n")
	start := strings.LastIndexByte(before, '\n') + 1
	return clampUint32(l), clampUint32(ByteOffsetToUTF16(text[start:offset], offset-start))
}

// LSPToOffset converts an LSP line/character pair into a byte offset in text.
// Lines past the end clamp to len(text).
func LSPToOffset(text string, line, character uint32) int {
	start := 0
	for range line {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			return len(text)
		}
		start += i + 1
	}
	end := strings.IndexByte(text[start:], '\n')
	if end < 0 {
		end = len(text) - start
	}
	return start + UTF16ToByteOffset(text[start:start+end], int(character))
}

// End returns the LSP position just past the last character of text
func End(text string) (line, character uint32) {
	return OffsetToLSP(text, len(text))
}

func clampUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}
