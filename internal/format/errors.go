package format

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrSecondPassFailed indicates the host could not format the text after
	// class names were rewritten
	ErrSecondPassFailed = errors.New("second formatting pass failed")

	// ErrHost indicates the host failed before any class name was rewritten
	ErrHost = errors.New("host formatter failed")

	// ErrNotIdempotent indicates formatting the output again changed it
	ErrNotIdempotent = errors.New("formatting is not idempotent")
)

// SecondPassError represents a host failure on rewritten text. It is never
// recovered from: the rewrite produced something the host rejects.
type SecondPassError struct {
	Parser    string
	Rewritten string
	Err       error
}

func (e *SecondPassError) Error() string {
	return fmt.Sprintf("%s: second pass failed on rewritten text: %v\nSuggestion: Report the input that produced this; set the log level to debug to see the rewritten text",
		e.Parser, e.Err)
}

func (e *SecondPassError) Unwrap() []error {
	return []error{ErrSecondPassFailed, e.Err}
}

// NewSecondPassError creates a new second pass error
func NewSecondPassError(parser, rewritten string, err error) error {
	return &SecondPassError{
		Parser:    parser,
		Rewritten: rewritten,
		Err:       err,
	}
}

// HostError represents a host failure in a pass other than the second
type HostError struct {
	Pass   int
	Parser string
	Err    error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("%s: pass %d failed: %v", e.Parser, e.Pass, e.Err)
}

func (e *HostError) Unwrap() []error {
	return []error{ErrHost, e.Err}
}

// NewHostError creates a new host error
func NewHostError(pass int, parser string, err error) error {
	return &HostError{
		Pass:   pass,
		Parser: parser,
		Err:    err,
	}
}

// NotIdempotentError represents output that changes when formatted again
type NotIdempotentError struct {
	Path string
	Diff string
}

func (e *NotIdempotentError) Error() string {
	return fmt.Sprintf("formatting %s twice gives different results:\n%s", e.Path, e.Diff)
}

func (e *NotIdempotentError) Unwrap() error {
	return ErrNotIdempotent
}

// NewNotIdempotentError creates a new not idempotent error
func NewNotIdempotentError(path, diff string) error {
	return &NotIdempotentError{
		Path: path,
		Diff: diff,
	}
}
