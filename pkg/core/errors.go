package core

import (
	"errors"
	"fmt"
)

// FormatError reports malformed .clustering input. Line and Content are
// filled in by the reader; codec helpers leave them empty.
type FormatError struct {
	Line    int    // 1-based line number, 0 if unknown
	Content string // offending line
	Msg     string
	Err     error
}

func (e *FormatError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, msg, e.Content)
	}
	if e.Content != "" {
		return fmt.Sprintf("%s: %q", msg, e.Content)
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err (or anything it wraps) is a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// ValidationError represents an error found during cluster validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}
