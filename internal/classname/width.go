package classname

import (
	"fmt"
	"strings"

	"bennypowers.dev/classwrap/internal/position"
)

// EndingPosition controls how the wrap width of class-name lines is measured
type EndingPosition string

const (
	// Relative measures every line from the column where the content starts
	// and aligns continuation lines to that column. The alignment is not
	// counted against the width.
	Relative EndingPosition = "relative"
	// Absolute measures every line from column 0, so continuation lines pay
	// for their own indentation.
	Absolute EndingPosition = "absolute"
	// AbsoluteWithIndent uses the relative budget but indents continuation
	// lines one unit deeper than the enclosing construct.
	AbsoluteWithIndent EndingPosition = "absolute-with-indent"
)

// EndingPositions lists the accepted policies
var EndingPositions = []EndingPosition{Relative, Absolute, AbsoluteWithIndent}

// ParseEndingPosition validates a policy name
func ParseEndingPosition(s string) (EndingPosition, error) {
	for _, p := range EndingPositions {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown ending position %q", s)
}

// Settings are the formatting knobs the wrapping engine consumes
type Settings struct {
	PrintWidth           int
	TabWidth             int
	UseTabs              bool
	SingleQuote          bool
	JSXSingleQuote       bool
	EndingPosition       EndingPosition
	SyntaxTransformation bool
}

// DefaultSettings mirrors the defaults of the configuration layer
func DefaultSettings() Settings {
	return Settings{
		PrintWidth:     80,
		TabWidth:       2,
		EndingPosition: Relative,
	}
}

// IndentUnit returns one level of indentation
func (s Settings) IndentUnit() string {
	if s.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", s.TabWidth)
}

// Budget is the column budget for one packed occurrence
type Budget struct {
	// First is the width available to the first line's content
	First int
	// Rest is the width available to each continuation line's content
	Rest int
	// Reserve is the width of the closing syntax that must fit after the
	// last line's content
	Reserve int
	// Indent is written at the start of every continuation line
	Indent string
}

// EffectiveWidth computes the budget for content that starts at column on a
// line indented by lineIndent. It depends on nothing else.
//
// Only the absolute policy is bounded by the physical line. The other two
// give every line the full print width measured from where its content
// starts, so a deeply nested class list may end past column printWidth.
func EffectiveWidth(s Settings, column int, lineIndent string) Budget {
	nested := lineIndent + s.IndentUnit()

	switch s.EndingPosition {
	case Absolute:
		return Budget{
			First:  s.PrintWidth - column,
			Rest:   s.PrintWidth - position.Width(nested, s.TabWidth),
			Indent: nested,
		}
	case AbsoluteWithIndent:
		return Budget{First: s.PrintWidth, Rest: s.PrintWidth, Indent: nested}
	default:
		pad := max(column-position.Width(lineIndent, s.TabWidth), 0)
		return Budget{
			First:  s.PrintWidth,
			Rest:   s.PrintWidth,
			Indent: lineIndent + strings.Repeat(" ", pad),
		}
	}
}
