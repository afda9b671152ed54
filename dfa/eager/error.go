package eager

import "fmt"

// Error types for automaton construction. Every failure aborts the Build or
// AddNext call that produced it; none of them is recovered internally.

// ErrMalformedPattern indicates that a pattern could not be parsed.
// The DFAError returned by Build carries the *syntax.Error as its Cause.
var ErrMalformedPattern = &DFAError{
	Kind:    MalformedPattern,
	Message: "malformed pattern",
}

// ErrNotSupported indicates that a pattern uses syntax the builder cannot
// turn into states. Groups are tokenized but never built.
var ErrNotSupported = &DFAError{
	Kind:    NotSupported,
	Message: "not supported",
}

// ErrDeterminismViolation indicates that a transition would make some input
// rune match two different outgoing transitions of one state.
var ErrDeterminismViolation = &DFAError{
	Kind:    DeterminismViolation,
	Message: "determinism violation",
}

// ErrIdentifierConflict indicates that a state already carries a different
// rule identifier.
var ErrIdentifierConflict = &DFAError{
	Kind:    IdentifierConflict,
	Message: "identifier conflict",
}

// ErrStateLimitExceeded indicates that Config.MaxStates or Config.MaxRepeat
// would be exceeded.
var ErrStateLimitExceeded = &DFAError{
	Kind:    StateLimitExceeded,
	Message: "DFA state limit exceeded",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid DFA configuration",
}

// ErrorKind classifies DFA errors into categories
type ErrorKind uint8

const (
	// MalformedPattern indicates invalid pattern syntax
	MalformedPattern ErrorKind = iota

	// NotSupported indicates a construct the builder does not implement
	NotSupported

	// DeterminismViolation indicates ambiguous outgoing transitions
	DeterminismViolation

	// IdentifierConflict indicates a second rule identifier for one state
	IdentifierConflict

	// StateLimitExceeded indicates too many states or repetitions
	StateLimitExceeded

	// InvalidConfig indicates configuration validation failed
	InvalidConfig
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case MalformedPattern:
		return "MalformedPattern"
	case NotSupported:
		return "NotSupported"
	case DeterminismViolation:
		return "DeterminismViolation"
	case IdentifierConflict:
		return "IdentifierConflict"
	case StateLimitExceeded:
		return "StateLimitExceeded"
	case InvalidConfig:
		return "InvalidConfig"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred while building the automaton
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *DFAError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func errorf(kind ErrorKind, format string, args ...any) *DFAError {
	return &DFAError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
