package format

import (
	"strings"

	"bennypowers.dev/classwrap/internal/config"
)

// DetectEndOfLine returns the first line ending in text, LF when there is
// none
func DetectEndOfLine(text string) config.EndOfLine {
	i := strings.IndexAny(text, "\r\n")
	switch {
	case i < 0 || text[i] == '\n':
		return config.LF
	case i+1 < len(text) && text[i+1] == '\n':
		return config.CRLF
	default:
		return config.CR
	}
}

// normalizeEOL converts every line ending to LF
func normalizeEOL(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
}

// convertEOL converts LF line endings to eol
func convertEOL(text string, eol config.EndOfLine) string {
	switch eol {
	case config.CRLF:
		return strings.ReplaceAll(text, "\n", "\r\n")
	case config.CR:
		return strings.ReplaceAll(text, "\n", "\r")
	default:
		return text
	}
}

// normalizedOffset maps a byte offset in text onto normalizeEOL(text)
func normalizedOffset(text string, offset int) int {
	offset = min(max(offset, 0), len(text))
	return len(normalizeEOL(text[:offset]))
}
