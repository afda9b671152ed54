package syntax

import (
	"errors"
	"fmt"
)

// ErrMalformedPattern is wrapped by every syntax error.
var ErrMalformedPattern = errors.New("malformed pattern")

// Error describes a malformed pattern.
type Error struct {
	// Pattern is the full pattern text
	Pattern string

	// Offset is the byte offset of the offending fragment
	Offset int

	// Message describes the problem
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("malformed pattern %q at offset %d: %s", e.Pattern, e.Offset, e.Message)
}

// Unwrap returns ErrMalformedPattern
func (e *Error) Unwrap() error {
	return ErrMalformedPattern
}
