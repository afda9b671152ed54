package lexdfa

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/lexdfa/prefilter"
)

// Match is one match of a rule in a haystack: haystack[Start:End] was
// accepted with rule identifier Rule.
type Match struct {
	Start int
	End   int
	Rule  string
}

// Len returns the length of the match in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Bytes returns the matched bytes of haystack.
func (m Match) Bytes(haystack []byte) []byte {
	return haystack[m.Start:m.End]
}

// String returns a human-readable representation of the match.
func (m Match) String() string {
	return fmt.Sprintf("Match[%d:%d] %s", m.Start, m.End, m.Rule)
}

// Find returns the leftmost match in haystack, extended as far as possible,
// or nil if no rule matches anywhere.
func (d *DFA) Find(haystack []byte) *Match {
	return d.findAt(haystack, 0, prefilter.NewTracker(d.prefilter))
}

// FindString is like Find but for a string haystack.
func (d *DFA) FindString(haystack string) *Match {
	return d.Find([]byte(haystack))
}

// FindAll returns every non-overlapping leftmost-longest match in haystack.
// After an empty match the search resumes one rune later; an empty match
// directly after a previous match is dropped.
func (d *DFA) FindAll(haystack []byte) []Match {
	var out []Match
	tracker := prefilter.NewTracker(d.prefilter)
	for pos := 0; pos <= len(haystack); {
		m := d.findAt(haystack, pos, tracker)
		if m == nil {
			break
		}
		if m.Len() > 0 || len(out) == 0 || out[len(out)-1].End != m.Start {
			out = append(out, *m)
		}
		if m.End > m.Start {
			pos = m.End
		} else {
			pos = m.End + runeLen(haystack, m.End)
		}
	}

	if tracker != nil {
		candidates, confirms, efficiency, active := tracker.Stats()
		d.logger.Debug("search finished",
			"matches", len(out),
			"candidates", candidates,
			"confirms", confirms,
			"efficiency", efficiency,
			"prefilter_active", active)
	}
	return out
}

// Tokenize splits the whole input into consecutive longest matches. It
// stops at the first offset where no rule matches a non-empty token and
// returns the tokens found so far with a *TokenError, which wraps
// ErrNoToken.
func (d *DFA) Tokenize(input []byte) ([]Match, error) {
	var out []Match
	for pos := 0; pos < len(input); {
		end, rule, ok := d.longestAt(input, pos)
		if !ok || end == pos {
			return out, &TokenError{Offset: pos}
		}
		out = append(out, Match{Start: pos, End: end, Rule: rule})
		pos = end
	}
	return out, nil
}

// findAt returns the leftmost match starting at or after at. While tracker
// is active, only offsets it reports as candidates are tried.
func (d *DFA) findAt(haystack []byte, at int, tracker *prefilter.Tracker) *Match {
	for pos := at; pos <= len(haystack); {
		if tracker.IsActive() {
			cand := tracker.Find(haystack, pos)
			if cand < 0 {
				return nil
			}
			pos = cand
			if inner := tracker.Inner(); inner.IsComplete() {
				tracker.ConfirmMatch()
				return &Match{Start: pos, End: pos + inner.LiteralLen(), Rule: d.literalRule}
			}
		}

		if end, rule, ok := d.longestAt(haystack, pos); ok {
			if tracker != nil {
				tracker.ConfirmMatch()
			}
			return &Match{Start: pos, End: end, Rule: rule}
		}
		pos += runeLen(haystack, pos)
	}
	return nil
}

// longestAt runs the automaton from pos and returns the end of the longest
// accepted prefix with the identifier of its state.
func (d *DFA) longestAt(haystack []byte, pos int) (end int, rule string, ok bool) {
	s := d.root
	if s.IsAccepting() {
		end, rule, ok = pos, s.Identifier(), true
	}
	for i := pos; i < len(haystack); {
		r, size := utf8.DecodeRune(haystack[i:])
		if s = s.Next(r); s == nil {
			break
		}
		i += size
		if s.IsAccepting() {
			end, rule, ok = i, s.Identifier(), true
		}
	}
	return end, rule, ok
}

func runeLen(haystack []byte, pos int) int {
	if pos >= len(haystack) {
		return 1
	}
	_, size := utf8.DecodeRune(haystack[pos:])
	return size
}
