package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrInvalidOption indicates an option has an unusable value
	ErrInvalidOption = errors.New("invalid option")

	// ErrConfigFile indicates a config file could not be read or decoded
	ErrConfigFile = errors.New("invalid config file")
)

// InvalidOptionError represents an option value that fails validation
type InvalidOptionError struct {
	Option string
	Value  any
	Reason string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid value %v for option %s: %s", e.Value, e.Option, e.Reason)
}

func (e *InvalidOptionError) Unwrap() error {
	return ErrInvalidOption
}

// NewInvalidOptionError creates a new invalid option error
func NewInvalidOptionError(option string, value any, reason string) error {
	return &InvalidOptionError{
		Option: option,
		Value:  value,
		Reason: reason,
	}
}

// FileError represents a config file that could not be loaded
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to load config %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{ErrConfigFile, e.Err}
}

// NewFileError creates a new config file error
func NewFileError(path string, err error) error {
	return &FileError{
		Path: path,
		Err:  err,
	}
}
