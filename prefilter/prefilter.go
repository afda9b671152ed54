// Package prefilter finds candidate match positions for an automaton using
// the literal prefixes every match must start with.
//
// A prefilter lets a search skip every haystack offset where no match can
// begin. The automaton then only runs at the returned candidates.
//
// The strategy is selected from the extracted prefixes:
//   - Single byte → memchr (bytes.IndexByte)
//   - Single substring → memmem (bytes.Index)
//   - Several single bytes → byte set table
//   - Several literals → Aho-Corasick automaton
//
// Example usage:
//
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(root)
//	pf := prefilter.NewBuilder(prefixes).Build()
//	if pf != nil {
//	    pos := pf.Find(haystack, 0)
//	}
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/lexdfa/literal"
)

// Prefilter finds candidate positions where a match may start.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or -1
	// if there is none. A candidate is a position where one of the literals
	// begins; the caller must still run the automaton there unless
	// IsComplete reports true.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is always a whole match of
	// exactly LiteralLen bytes.
	IsComplete() bool

	// LiteralLen returns the match length when IsComplete is true, and 0
	// otherwise.
	LiteralLen() int

	// HeapBytes returns the heap memory held by the prefilter.
	HeapBytes() int
}

// Builder selects and constructs a prefilter for a literal sequence.
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a prefilter builder for the given prefixes. prefixes
// may be nil.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build constructs the best prefilter for the prefixes, or returns nil when
// there are none. The automaton must then be tried at every offset.
//
// Selection:
//  1. No literals → nil
//  2. One literal of one byte → memchr
//  3. One longer literal → memmem
//  4. Only one-byte literals → byte set
//  5. Otherwise → Aho-Corasick, or nil if the automaton cannot be built
func (b *Builder) Build() Prefilter {
	seq := b.prefixes
	if seq.IsEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], lit.Complete)
		}
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	if maxLen(seq) == 1 {
		return newByteSetPrefilter(seq)
	}

	return newAhoCorasickPrefilter(seq)
}

func maxLen(seq *literal.Seq) int {
	n := 0
	for i := 0; i < seq.Len(); i++ {
		n = max(n, seq.Get(i).Len())
	}
	return n
}

// memchrPrefilter searches for a single byte.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using bytes.IndexByte.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

// memmemPrefilter searches for a single substring.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter copies needle, which must be longer than one byte.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	return &memmemPrefilter{
		needle:   bytes.Clone(needle),
		complete: complete,
	}
}

// Find implements Prefilter.Find using bytes.Index.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

// ahoCorasickPrefilter searches for any of several literals at once.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	patterns int
	bytes    int
}

func newAhoCorasickPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	total := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		total += lit.Len()
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{
		auto:     auto,
		patterns: seq.Len(),
		bytes:    total,
	}
}

// Find implements Prefilter.Find with the leftmost literal occurrence.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsComplete implements Prefilter.IsComplete. Literals of different lengths
// never give a fixed match length.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return false
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes implements Prefilter.HeapBytes. The automaton does not report
// its size, so this is the literal bytes it was built from.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.bytes
}
