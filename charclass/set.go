// Package charclass provides normalized rune interval sets.
//
// A Set is the canonical form of every transition symbol in the automaton:
// a single literal is a one-rune set, a bracketed class is the union of its
// singletons and ranges, and the wildcard is everything except newline.
// Because sets are kept sorted and merged, two symbols that accept the same
// runes compare equal regardless of how they were spelled in the pattern
// (`a`, `\x61` and `[a]` are one set), and overlap testing reduces to
// interval intersection.
package charclass

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Range is an inclusive rune interval [Lo, Hi].
type Range struct {
	Lo rune
	Hi rune
}

// Contains reports whether c falls inside the range.
func (r Range) Contains(c rune) bool {
	return r.Lo <= c && c <= r.Hi
}

// Set is an immutable, normalized set of runes.
//
// The zero value is the empty set.
type Set struct {
	// ranges is sorted by Lo, non-overlapping and non-adjacent
	ranges []Range
}

// New returns the normalized union of the given ranges.
// Ranges with Lo > Hi are swapped.
func New(ranges ...Range) Set {
	if len(ranges) == 0 {
		return Set{}
	}

	rs := make([]Range, len(ranges))
	for i, r := range ranges {
		if r.Lo > r.Hi {
			r.Lo, r.Hi = r.Hi, r.Lo
		}
		rs[i] = r
	}
	slices.SortFunc(rs, func(a, b Range) int {
		if a.Lo != b.Lo {
			return int(a.Lo - b.Lo)
		}
		return int(a.Hi - b.Hi)
	})

	// Merge overlapping and adjacent intervals in place
	out := rs[:1]
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return Set{ranges: out}
}

// Single returns the set containing exactly r.
func Single(r rune) Set {
	return Set{ranges: []Range{{Lo: r, Hi: r}}}
}

// Any returns the wildcard set: every rune except '\n'.
func Any() Set {
	return Set{ranges: []Range{{Lo: 0, Hi: '\n' - 1}, {Lo: '\n' + 1, Hi: unicode.MaxRune}}}
}

// All returns the set of every rune.
func All() Set {
	return Set{ranges: []Range{{Lo: 0, Hi: unicode.MaxRune}}}
}

// Ranges returns the normalized intervals. The slice must not be modified.
func (s Set) Ranges() []Range {
	return s.ranges
}

// IsEmpty reports whether the set contains no runes.
func (s Set) IsEmpty() bool {
	return len(s.ranges) == 0
}

// Rune returns the only member of a one-rune set.
func (s Set) Rune() (rune, bool) {
	if len(s.ranges) == 1 && s.ranges[0].Lo == s.ranges[0].Hi {
		return s.ranges[0].Lo, true
	}
	return 0, false
}

// Size returns the number of runes in the set.
func (s Set) Size() int {
	n := 0
	for _, r := range s.ranges {
		n += int(r.Hi-r.Lo) + 1
	}
	return n
}

// Runes returns the members of the set in ascending order, or nil if the set
// holds more than limit runes.
func (s Set) Runes(limit int) []rune {
	if s.Size() > limit {
		return nil
	}
	out := make([]rune, 0, s.Size())
	for _, r := range s.ranges {
		for c := r.Lo; c <= r.Hi; c++ {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether c is a member of the set.
func (s Set) Contains(c rune) bool {
	_, found := slices.BinarySearchFunc(s.ranges, c, func(r Range, c rune) int {
		switch {
		case r.Hi < c:
			return -1
		case r.Lo > c:
			return 1
		default:
			return 0
		}
	})
	return found
}

// Overlaps reports whether s and o share at least one rune.
func (s Set) Overlaps(o Set) bool {
	i, j := 0, 0
	for i < len(s.ranges) && j < len(o.ranges) {
		a, b := s.ranges[i], o.ranges[j]
		if a.Lo <= b.Hi && b.Lo <= a.Hi {
			return true
		}
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return false
}

// Equal reports whether both sets hold exactly the same runes.
func (s Set) Equal(o Set) bool {
	return slices.Equal(s.ranges, o.ranges)
}

// Negate returns the complement of s over [0, unicode.MaxRune].
func (s Set) Negate() Set {
	out := make([]Range, 0, len(s.ranges)+1)
	next := rune(0)
	for _, r := range s.ranges {
		if r.Lo > next {
			out = append(out, Range{Lo: next, Hi: r.Lo - 1})
		}
		next = r.Hi + 1
	}
	if next <= unicode.MaxRune {
		out = append(out, Range{Lo: next, Hi: unicode.MaxRune})
	}
	return Set{ranges: out}
}

// Key returns a canonical encoding of the set. Equal sets have equal keys.
func (s Set) Key() string {
	var b strings.Builder
	for i, r := range s.ranges {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(r.Lo), 16))
		if r.Hi != r.Lo {
			b.WriteByte('-')
			b.WriteString(strconv.FormatInt(int64(r.Hi), 16))
		}
	}
	return b.String()
}

// String renders the set in bracket notation, e.g. [0-9_a-z].
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range s.ranges {
		writeRune(&b, r.Lo)
		if r.Hi != r.Lo {
			b.WriteByte('-')
			writeRune(&b, r.Hi)
		}
	}
	b.WriteByte(']')
	return b.String()
}

func writeRune(b *strings.Builder, r rune) {
	switch {
	case r == '\\' || r == ']' || r == '[' || r == '-' || r == '^':
		b.WriteByte('\\')
		b.WriteRune(r)
	case unicode.IsPrint(r) && utf8.ValidRune(r):
		b.WriteRune(r)
	case r <= 0xFF:
		b.WriteString(`\x`)
		b.WriteString(strconv.FormatInt(int64(r)|0x100, 16)[1:])
	default:
		q := strconv.QuoteRuneToASCII(r)
		b.WriteString(q[1 : len(q)-1])
	}
}
