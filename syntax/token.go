// Package syntax turns pattern text into the linear traces consumed by the
// automaton builder.
//
// Compilation of a pattern runs in four stages, each exposed on its own so it
// can be inspected and tested in isolation:
//
//	Tokenize  pattern text        -> []Token  (literals, escapes, classes, operators, groups)
//	Combine   []Token             -> []Entry  (quantifiers folded into their operand)
//	Split     []Entry             -> []Trace  (one trace per top-level alternative)
//	Finalize  []Trace             -> []Trace  (per-entry "a match may end here" flag)
//
// Parse runs all four stages.
//
// Supported syntax: literal runes, the wildcard '.', escapes (\t \n \v \f \r
// \0, escaped metacharacters, \xHH, \uHHHH, \cX, three-digit octal \NNN up to
// 255), bracketed classes with ranges and leading '^' negation, the
// quantifiers + * ? {m} {m,n}, alternation | and parenthesized groups. Groups
// are tokenized and split but are not buildable into an automaton.
package syntax

import "fmt"

// Kind classifies a token or entry.
type Kind uint8

const (
	// KindLiteral is a single unescaped rune (including the wildcard '.')
	KindLiteral Kind = iota

	// KindEscaped is an escape sequence such as \n or \x41
	KindEscaped

	// KindClass is a bracketed character class
	KindClass

	// KindQuantifier is one of + * ? {m,n}; it only appears in Tokenize output
	KindQuantifier

	// KindAlternation is the | operator
	KindAlternation

	// KindGroup is a parenthesized sub-pattern
	KindGroup
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindEscaped:
		return "Escaped"
	case KindClass:
		return "Class"
	case KindQuantifier:
		return "Quantifier"
	case KindAlternation:
		return "Alternation"
	case KindGroup:
		return "Group"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Quant identifies a quantifier operator.
type Quant uint8

const (
	// QuantNone means the entry must occur exactly once
	QuantNone Quant = iota

	// QuantPlus is +, one or more
	QuantPlus

	// QuantStar is *, zero or more
	QuantStar

	// QuantBounded is {m} or {m,n}
	QuantBounded

	// QuantOptional is ?, zero or one
	QuantOptional
)

// String returns the quantifier name.
func (q Quant) String() string {
	switch q {
	case QuantNone:
		return "None"
	case QuantPlus:
		return "Plus"
	case QuantStar:
		return "Star"
	case QuantBounded:
		return "Bounded"
	case QuantOptional:
		return "Optional"
	default:
		return fmt.Sprintf("Quant(%d)", q)
	}
}

// Mandatory reports whether the quantifier clears the "may be final" flag for
// everything before it: no quantifier, Plus and Bounded do; Star and Optional
// do not.
func (q Quant) Mandatory() bool {
	return q == QuantNone || q == QuantPlus || q == QuantBounded
}

// Token is one lexical unit of a pattern.
type Token struct {
	// Text is the exact pattern text consumed for this token
	Text string

	Kind Kind

	// Offset is the byte offset of Text within the full pattern
	Offset int

	// Symbol is the compiled transition symbol for Literal, Escaped and Class tokens
	Symbol Symbol

	// Quant, Min and Max describe a KindQuantifier token.
	// Max is -1 for the unbounded + and *.
	Quant Quant
	Min   int
	Max   int

	// Sub holds the tokenized interior of a KindGroup token
	Sub []Token
}

// Entry is a token with its quantifier folded in.
type Entry struct {
	Text   string
	Kind   Kind
	Offset int
	Symbol Symbol

	// Quantifier is the verbatim quantifier text, empty when Quant is QuantNone
	Quantifier string
	Quant      Quant
	Min        int
	Max        int

	// Sub is the combined interior of a group (Combine output)
	Sub []Entry

	// Alts are the alternatives of a group (Split output)
	Alts []Trace

	// Final reports that a match may conclude right after this entry (Finalize output)
	Final bool
}

// String renders the entry back in pattern notation.
func (e Entry) String() string {
	return e.Text + e.Quantifier
}

// Trace is one linear alternative of a pattern.
type Trace []Entry

// String renders the trace back in pattern notation.
func (t Trace) String() string {
	s := ""
	for _, e := range t {
		s += e.String()
	}
	return s
}
