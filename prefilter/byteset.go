package prefilter

import "github.com/coregx/lexdfa/literal"

// byteSetPrefilter finds the next byte belonging to a small set, such as the
// digits that start a number rule.
//
// Finding a byte of the set is only a candidate: the automaton must still
// run there.
type byteSetPrefilter struct {
	member [256]bool
	count  int
}

// newByteSetPrefilter builds a table from a sequence of one-byte literals.
func newByteSetPrefilter(seq *literal.Seq) Prefilter {
	p := &byteSetPrefilter{}
	for i := 0; i < seq.Len(); i++ {
		b := seq.Get(i).Bytes[0]
		if !p.member[b] {
			p.member[b] = true
			p.count++
		}
	}
	return p
}

// Find returns the index of the first member byte at or after start.
func (p *byteSetPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		return -1
	}
	for i := start; i < len(haystack); i++ {
		if p.member[haystack[i]] {
			return i
		}
	}
	return -1
}

// IsComplete returns false: the set spans several literals.
func (p *byteSetPrefilter) IsComplete() bool {
	return false
}

// LiteralLen returns 0 because the match length depends on the automaton.
func (p *byteSetPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes returns the size of the membership table.
func (p *byteSetPrefilter) HeapBytes() int {
	return len(p.member)
}
