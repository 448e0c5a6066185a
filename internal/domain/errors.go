package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a DataError.
type ErrorKind string

const (
	KindConfig ErrorKind = "config"
	KindPath   ErrorKind = "path"
	KindParse  ErrorKind = "parse"
	KindMode   ErrorKind = "mode"
	KindEmpty  ErrorKind = "empty"
)

// DataError is the error type returned for invalid input data or configuration.
type DataError struct {
	Kind       ErrorKind
	Source     string // offending file or directory, if known
	Line       int
	Message    string
	Suggestion string
	Cause      error

	wrapped error // original error when re-attributed by WrapSource
}

func (e *DataError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		fmt.Fprintf(&b, "Parsing '%s' failed: ", e.Source)
	}
	b.WriteString(e.Detail())
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (hint: %s)", e.Suggestion)
	}
	return b.String()
}

// Detail returns the message without the source prefix.
func (e *DataError) Detail() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "Line %d: ", e.Line)
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		if e.Message != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *DataError) Unwrap() error {
	if e.Cause == nil {
		return e.wrapped
	}
	return e.Cause
}

// NewError creates a new DataError.
func NewError(kind ErrorKind, source string, line int, message string, cause error) *DataError {
	return &DataError{
		Kind:    kind,
		Source:  source,
		Line:    line,
		Message: message,
		Cause:   cause,
	}
}

// NewErrorWithSuggestion creates a new DataError carrying a hint for the user.
func NewErrorWithSuggestion(kind ErrorKind, source string, line int, message, suggestion string, cause error) *DataError {
	e := NewError(kind, source, line, message, cause)
	e.Suggestion = suggestion
	return e
}

// Errorf creates a DataError without source context.
func Errorf(kind ErrorKind, format string, args ...any) *DataError {
	return NewError(kind, "", 0, fmt.Sprintf(format, args...), nil)
}

// WrapSource attributes err to source. The message of a wrapped DataError is
// kept but its own source prefix is replaced so only one prefix is shown.
func WrapSource(source string, err error) *DataError {
	var de *DataError
	if errors.As(err, &de) {
		return &DataError{
			Kind:       de.Kind,
			Source:     source,
			Message:    de.Detail(),
			Suggestion: de.Suggestion,
			wrapped:    err,
		}
	}
	return &DataError{Kind: KindParse, Source: source, Message: err.Error(), wrapped: err}
}
