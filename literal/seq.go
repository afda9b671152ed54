// Package literal extracts the literal byte prefixes that every match of a
// built automaton must start with.
//
// The prefixes feed the prefilter package: instead of starting the automaton
// at every haystack offset, a search jumps straight to the next place where
// one of the prefixes occurs.
//
// Key concepts:
//   - A Literal is a concrete byte sequence that every match through it starts with
//   - A Seq is a set of alternative literals covering every possible match
//   - Minimize drops literals made redundant by a shorter prefix
package literal

import (
	"bytes"
	"slices"
)

// Literal is a byte sequence extracted from the automaton.
// Complete reports that the literal is itself a whole match and no longer
// match can extend it.
//
// Example:
//   - Rule "if"        → Literal{[]byte("if"), true}
//   - Rule "if[a-z]+"  → Literal{[]byte("if"), false}
type Literal struct {
	// Bytes contains the UTF-8 encoded prefix.
	Bytes []byte

	// Complete indicates that the literal ends in an accepting state with no
	// outgoing transitions.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq is a set of alternative literals. A nil or empty Seq means that no
// useful literal set exists.
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// MinLen returns the length of the shortest literal, or 0 for an empty
// sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	n := s.literals[0].Len()
	for _, lit := range s.literals[1:] {
		n = min(n, lit.Len())
	}
	return n
}

// Minimize removes literals that have a shorter literal of the sequence as
// prefix. Any haystack position where the longer literal starts also starts
// the shorter one, so the shorter one alone finds every candidate.
//
// The remaining literals are ordered by length, then bytewise.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foobar"), true),
//	    literal.NewLiteral([]byte("foo"), true),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1 (only "foo" remains)
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	slices.SortFunc(s.literals, func(a, b Literal) int {
		if a.Len() != b.Len() {
			return a.Len() - b.Len()
		}
		return bytes.Compare(a.Bytes, b.Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := slices.ContainsFunc(kept, func(k Literal) bool {
			return bytes.HasPrefix(current.Bytes, k.Bytes)
		})
		if !redundant {
			kept = append(kept, current)
		}
	}
	s.literals = kept
}
