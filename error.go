package lexdfa

import (
	"errors"
	"fmt"

	"github.com/coregx/lexdfa/dfa/eager"
)

// Sentinel errors, usable with errors.Is on anything returned by New, Add
// and NewWithConfig.
var (
	// ErrMalformedPattern indicates that a pattern could not be parsed.
	ErrMalformedPattern = eager.ErrMalformedPattern

	// ErrNotSupported indicates a construct the automaton cannot be built
	// from, such as a group.
	ErrNotSupported = eager.ErrNotSupported

	// ErrDeterminismViolation indicates that a pattern would make some input
	// rune match two transitions of one state.
	ErrDeterminismViolation = eager.ErrDeterminismViolation

	// ErrIdentifierConflict indicates that a state already accepts for a
	// different rule.
	ErrIdentifierConflict = eager.ErrIdentifierConflict

	// ErrStateLimitExceeded indicates that Config.MaxStates or
	// Config.MaxRepeat would be exceeded.
	ErrStateLimitExceeded = eager.ErrStateLimitExceeded

	// ErrInvalidConfig indicates that the configuration is invalid.
	ErrInvalidConfig = eager.ErrInvalidConfig
)

// ErrNoToken is returned by Tokenize when no rule matches at some offset.
var ErrNoToken = errors.New("lexdfa: no rule matches")

// CompileError describes a pattern that could not be added to an automaton.
type CompileError struct {
	Pattern string
	Rule    string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("lexdfa: cannot add `%s`: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("lexdfa: cannot add `%s` as %s: %v", e.Pattern, e.Rule, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// TokenError reports the offset at which Tokenize found no matching rule.
type TokenError struct {
	Offset int
}

// Error implements the error interface.
func (e *TokenError) Error() string {
	return fmt.Sprintf("%v at offset %d", ErrNoToken, e.Offset)
}

// Unwrap returns ErrNoToken.
func (e *TokenError) Unwrap() error {
	return ErrNoToken
}
