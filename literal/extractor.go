package literal

import (
	"slices"
	"unicode/utf8"

	"github.com/coregx/lexdfa/dfa/eager"
)

// Config configures literal extraction limits.
//
// These limits keep extraction cheap and the resulting prefilter selective:
//   - MaxLiterals: gives up on automata whose first runes branch widely
//   - MaxLiteralLen: stops extending a prefix once it is long enough to be selective
//   - MaxClassSize: expands small classes like [+-] but not [a-z]
type Config struct {
	// MaxLiterals limits the number of extracted literals. When more would be
	// needed, no prefixes are returned at all. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length in bytes of each literal. Default: 16.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// Classes with more runes end a prefix. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 16,
		MaxClassSize:  10,
	}
}

// Extractor extracts literal prefixes from a built automaton.
//
// Algorithm overview:
//  1. Give up if the root accepts (the empty match needs no prefix)
//  2. Walk depth-first from the root, spelling out every rune of every
//     single-rune or small-class transition
//  3. End a prefix at an accepting state, at a self-loop, at a large class or
//     wildcard, or at MaxLiteralLen bytes
//  4. Give up if the root itself has a large class or wildcard, or if more
//     than MaxLiterals prefixes are needed
//
// Every match of the automaton starts with one of the returned literals.
//
// Example:
//
//	root, _ := builder.Build("if|else|[0-9]+", "TOKEN", nil)
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(root)
//	// prefixes = ["0" "1" ... "9" "if" "else"]
type Extractor struct {
	config Config
}

// New creates a new literal extractor with the given configuration.
func New(config Config) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns the minimized prefixes of every match starting at
// root, or an empty Seq when no bounded prefix set exists.
func (e *Extractor) ExtractPrefixes(root *eager.State) *Seq {
	x := extraction{config: e.config}
	if root == nil || root.IsAccepting() || root.NumTransitions() == 0 || !x.spellable(root) {
		return NewSeq()
	}
	if !x.expand(root, nil) {
		return NewSeq()
	}

	seq := NewSeq(x.out...)
	seq.Minimize()
	return seq
}

type extraction struct {
	config Config
	out    []Literal
}

// spellable reports whether every transition of s can be spelled out rune by
// rune without looping back to s.
func (x *extraction) spellable(s *eager.State) bool {
	for _, t := range s.Transitions() {
		if t.Target == s || t.Symbol.Set.Runes(x.config.MaxClassSize) == nil {
			return false
		}
	}
	return true
}

// expand emits the prefixes of every match leaving s, which must be
// spellable, with prefix path. It reports false once MaxLiterals is exceeded.
func (x *extraction) expand(s *eager.State, path []byte) bool {
	for _, t := range s.Transitions() {
		for _, r := range t.Symbol.Set.Runes(x.config.MaxClassSize) {
			next := utf8.AppendRune(slices.Clone(path), r)
			if !x.follow(t.Target, next) {
				return false
			}
		}
	}
	return true
}

// follow extends path through s, ending the prefix where s accepts, where
// the prefix is long enough, or where s cannot be spelled out.
func (x *extraction) follow(s *eager.State, path []byte) bool {
	if s.IsAccepting() || s.NumTransitions() == 0 || len(path) >= x.config.MaxLiteralLen || !x.spellable(s) {
		return x.emit(NewLiteral(path, s.IsAccepting() && s.NumTransitions() == 0))
	}
	return x.expand(s, path)
}

func (x *extraction) emit(lit Literal) bool {
	if len(x.out) >= x.config.MaxLiterals {
		return false
	}
	x.out = append(x.out, lit)
	return true
}
