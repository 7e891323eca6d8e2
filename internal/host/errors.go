package host

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for error type checking
var (
	// ErrMissingCapability indicates no parser/printer is registered for a parser name
	ErrMissingCapability = errors.New("missing parser capability")

	// ErrSyntax indicates the host could not parse the text
	ErrSyntax = errors.New("syntax error")
)

// MissingCapabilityError represents a request for a parser nobody provides
type MissingCapabilityError struct {
	Parser    string
	Available []string
}

func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("no capability for parser %q (available: %s)\nSuggestion: Set the parser option or install a host that provides it",
		e.Parser, strings.Join(e.Available, ", "))
}

func (e *MissingCapabilityError) Unwrap() error {
	return ErrMissingCapability
}

// NewMissingCapabilityError creates a new missing capability error
func NewMissingCapabilityError(parser string, available []string) error {
	return &MissingCapabilityError{
		Parser:    parser,
		Available: available,
	}
}

// SyntaxError represents a parse failure at a one-based line and column
type SyntaxError struct {
	Parser string
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error at %d:%d", e.Parser, e.Line, e.Column)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(parser string, line, column int) error {
	return &SyntaxError{
		Parser: parser,
		Line:   line,
		Column: column,
	}
}
