package syntax

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/lexdfa/charclass"
)

// SymbolKind classifies a transition symbol.
type SymbolKind uint8

const (
	// SymbolLiteral matches exactly one rune (a literal or an escape)
	SymbolLiteral SymbolKind = iota

	// SymbolClass matches the runes of a bracketed class
	SymbolClass

	// SymbolAny is the wildcard '.'
	SymbolAny
)

// Symbol is a compiled symbol-pattern: the label of one automaton transition.
type Symbol struct {
	// Text is the pattern fragment the symbol was compiled from
	Text string

	Kind SymbolKind

	// Set holds every rune the symbol matches
	Set charclass.Set
}

// ParseSymbol compiles a single symbol-pattern: one literal rune, the
// wildcard '.', one escape sequence or one bracketed class.
func ParseSymbol(text string) (Symbol, error) {
	fail := func(offset int, msg string) (Symbol, error) {
		return Symbol{}, &Error{Pattern: text, Offset: offset, Message: msg}
	}

	switch {
	case text == "":
		return fail(0, "empty symbol")

	case text == ".":
		return Symbol{Text: text, Kind: SymbolAny, Set: charclass.Any()}, nil

	case text[0] == '\\':
		esc, ok := ScanEscape(text)
		if !ok {
			return fail(0, "trailing backslash")
		}
		if esc != text {
			return fail(len(esc), "trailing text after escape")
		}
		return Symbol{Text: text, Kind: SymbolLiteral, Set: charclass.Single(DecodeEscape(esc))}, nil

	case text[0] == '[':
		class, ok := ScanClass(text)
		if !ok {
			return fail(0, "missing closing ]")
		}
		if class != text {
			return fail(len(class), "trailing text after class")
		}
		set, err := parseClass(text)
		if err != nil {
			return Symbol{}, err
		}
		return Symbol{Text: text, Kind: SymbolClass, Set: set}, nil
	}

	r, size := utf8.DecodeRuneInString(text)
	if size != len(text) {
		return fail(size, "more than one rune")
	}
	return Symbol{Text: text, Kind: SymbolLiteral, Set: charclass.Single(r)}, nil
}

// MustParseSymbol is like ParseSymbol but panics on error.
func MustParseSymbol(text string) Symbol {
	s, err := ParseSymbol(text)
	if err != nil {
		panic(err)
	}
	return s
}

// Key returns the canonical form of the symbol. Two symbols with the same
// key match exactly the same runes.
func (s Symbol) Key() string {
	if s.Kind == SymbolAny {
		return "."
	}
	return s.Set.Key()
}

// IsClass reports whether the symbol can match more than one rune.
// The wildcard is not a class.
func (s Symbol) IsClass() bool {
	if s.Kind == SymbolAny {
		return false
	}
	_, single := s.Set.Rune()
	return !single
}

// Matches reports whether r is accepted by the symbol.
func (s Symbol) Matches(r rune) bool {
	return s.Set.Contains(r)
}

// String returns the original pattern text.
func (s Symbol) String() string {
	return s.Text
}

// parseClass expands a bracketed class into a rune set.
func parseClass(text string) (charclass.Set, error) {
	inner := text[1 : len(text)-1]
	base := 1
	negate := false
	if inner != "" && inner[0] == '^' {
		negate = true
		inner = inner[1:]
		base++
	}
	if inner == "" {
		if negate {
			return charclass.All(), nil
		}
		return charclass.Set{}, &Error{Pattern: text, Offset: 0, Message: "empty character class"}
	}

	var ranges []charclass.Range
	for i := 0; i < len(inner); {
		lo, n := classAtom(inner[i:])
		i += n

		// a '-' between two atoms forms a range; at either end it is literal
		if i+1 < len(inner) && inner[i] == '-' {
			hi, m := classAtom(inner[i+1:])
			if hi < lo {
				return charclass.Set{}, &Error{
					Pattern: text,
					Offset:  base + i,
					Message: fmt.Sprintf("invalid class range %q", inner[i-n:i+1+m]),
				}
			}
			i += 1 + m
			ranges = append(ranges, charclass.Range{Lo: lo, Hi: hi})
			continue
		}
		ranges = append(ranges, charclass.Range{Lo: lo, Hi: lo})
	}

	set := charclass.New(ranges...)
	if negate {
		set = set.Negate()
	}
	return set, nil
}

// classAtom decodes one rune or escape at the start of s and returns it with
// the number of bytes consumed. s is never empty.
func classAtom(s string) (rune, int) {
	if s[0] == '\\' {
		// ScanClass guarantees escapes inside a class are complete
		esc, _ := ScanEscape(s)
		return DecodeEscape(esc), len(esc)
	}
	r, size := utf8.DecodeRuneInString(s)
	return r, size
}
