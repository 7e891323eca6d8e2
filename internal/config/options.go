package config

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"bennypowers.dev/classwrap/internal/classname"
	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/internal/parser/common"
)

// EndOfLine selects the line ending of formatted output
type EndOfLine string

const (
	LF   EndOfLine = "lf"
	CRLF EndOfLine = "crlf"
	CR   EndOfLine = "cr"
	// Auto keeps the line ending found first in the input
	Auto EndOfLine = "auto"
)

// Unbounded is the RangeEnd of a whole-document format
const Unbounded = math.MaxInt

// Options is the complete option set of a format invocation
type Options struct {
	PrintWidth     int
	TabWidth       int
	UseTabs        bool
	SingleQuote    bool
	JSXSingleQuote bool
	EndOfLine      EndOfLine
	// Parser names the host capability; empty means infer from the path
	Parser string
	// RangeStart and RangeEnd limit which class names are rewritten
	RangeStart int
	RangeEnd   int

	CustomAttributes     []string
	CustomFunctions      []string
	EndingPosition       classname.EndingPosition
	SyntaxTransformation bool
}

// Defaults returns the default options
func Defaults() Options {
	return Options{
		PrintWidth:     80,
		TabWidth:       2,
		EndOfLine:      LF,
		RangeEnd:       Unbounded,
		EndingPosition: classname.Relative,
	}
}

// Validate checks every option value
func (o Options) Validate() error {
	if o.PrintWidth < 1 {
		return NewInvalidOptionError("printWidth", o.PrintWidth, "must be positive")
	}
	if o.TabWidth < 1 {
		return NewInvalidOptionError("tabWidth", o.TabWidth, "must be positive")
	}
	switch o.EndOfLine {
	case LF, CRLF, CR, Auto:
	default:
		return NewInvalidOptionError("endOfLine", o.EndOfLine, "must be one of lf, crlf, cr, auto")
	}
	if _, err := classname.ParseEndingPosition(string(o.EndingPosition)); err != nil {
		return NewInvalidOptionError("endingPosition", o.EndingPosition, "must be one of relative, absolute, absolute-with-indent")
	}
	if o.RangeStart < 0 {
		return NewInvalidOptionError("rangeStart", o.RangeStart, "must not be negative")
	}
	if o.RangeEnd < o.RangeStart {
		return NewInvalidOptionError("rangeEnd", o.RangeEnd, "must not be before rangeStart")
	}
	for _, names := range []struct {
		option string
		values []string
	}{
		{"customAttributes", o.CustomAttributes},
		{"customFunctions", o.CustomFunctions},
	} {
		for _, v := range names.values {
			if v == "" || strings.ContainsAny(v, " \t\r\n") {
				return NewInvalidOptionError(names.option, fmt.Sprintf("%q", v), "names must be non-empty and contain no whitespace")
			}
		}
	}
	return nil
}

// Settings returns the wrapping engine's view of the options
func (o Options) Settings() classname.Settings {
	return classname.Settings{
		PrintWidth:           o.PrintWidth,
		TabWidth:             o.TabWidth,
		UseTabs:              o.UseTabs,
		SingleQuote:          o.SingleQuote,
		JSXSingleQuote:       o.JSXSingleQuote,
		EndingPosition:       o.EndingPosition,
		SyntaxTransformation: o.SyntaxTransformation,
	}
}

// Matcher returns the attribute and function names to look for
func (o Options) Matcher() *common.Matcher {
	return common.NewMatcher(o.CustomAttributes, o.CustomFunctions)
}

// Ranged reports whether a range limits the format
func (o Options) Ranged() bool {
	return o.RangeStart > 0 || o.RangeEnd != Unbounded
}

// Apply sets options from a decoded config map, as found in config files,
// LSP settings and CLI flags. Unknown keys are ignored; they usually belong
// to the host formatter or its other plugins.
func (o *Options) Apply(m map[string]any) error {
	for key, value := range m {
		var err error
		switch key {
		case "printWidth":
			o.PrintWidth, err = toInt(key, value)
		case "tabWidth":
			o.TabWidth, err = toInt(key, value)
		case "useTabs":
			o.UseTabs, err = toBool(key, value)
		case "singleQuote":
			o.SingleQuote, err = toBool(key, value)
		case "jsxSingleQuote":
			o.JSXSingleQuote, err = toBool(key, value)
		case "syntaxTransformation":
			o.SyntaxTransformation, err = toBool(key, value)
		case "endOfLine":
			var s string
			s, err = toString(key, value)
			o.EndOfLine = EndOfLine(s)
		case "endingPosition":
			var s string
			s, err = toString(key, value)
			o.EndingPosition = classname.EndingPosition(s)
		case "parser":
			o.Parser, err = toString(key, value)
		case "rangeStart":
			o.RangeStart, err = toInt(key, value)
		case "rangeEnd":
			o.RangeEnd, err = toInt(key, value)
		case "customAttributes":
			o.CustomAttributes, err = toList(key, value)
		case "customFunctions":
			o.CustomFunctions, err = toList(key, value)
		case "overrides", "$schema":
		default:
			log.Debug("Ignoring option %s", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func toInt(key string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return math.MaxInt, nil
		}
		return int(v), nil
	case float64:
		if math.IsInf(v, 1) || v > math.MaxInt {
			return math.MaxInt, nil
		}
		if v != math.Trunc(v) {
			return 0, NewInvalidOptionError(key, v, "must be an integer")
		}
		return int(v), nil
	}
	return 0, NewInvalidOptionError(key, value, "must be an integer")
}

func toBool(key string, value any) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return false, NewInvalidOptionError(key, value, "must be a boolean")
}

func toString(key string, value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", NewInvalidOptionError(key, value, "must be a string")
}

// toList accepts a comma separated string or an array of strings
func toList(key string, value any) ([]string, error) {
	var items []string
	switch v := value.(type) {
	case string:
		items = strings.Split(v, ",")
	case []string:
		items = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, NewInvalidOptionError(key, value, "must be a list of strings")
			}
			items = append(items, s)
		}
	default:
		return nil, NewInvalidOptionError(key, value, "must be a string or a list of strings")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" && !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out, nil
}
