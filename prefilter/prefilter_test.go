package prefilter

import (
	"testing"

	"github.com/coregx/lexdfa/literal"
)

func seqOf(complete bool, lits ...string) *literal.Seq {
	out := make([]literal.Literal, len(lits))
	for i, s := range lits {
		out[i] = literal.NewLiteral([]byte(s), complete)
	}
	return literal.NewSeq(out...)
}

func TestBuilderSelection(t *testing.T) {
	tests := []struct {
		name string
		seq  *literal.Seq
		want string
	}{
		{name: "nil sequence", seq: nil, want: "nil"},
		{name: "empty sequence", seq: literal.NewSeq(), want: "nil"},
		{name: "single byte", seq: seqOf(false, "x"), want: "memchr"},
		{name: "single substring", seq: seqOf(true, "hello"), want: "memmem"},
		{name: "digits", seq: seqOf(false, "0", "1", "2", "3"), want: "byteset"},
		{name: "keywords", seq: seqOf(true, "if", "else", "for"), want: "ahocorasick"},
		{name: "mixed lengths", seq: seqOf(false, "+", "if"), want: "ahocorasick"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := NewBuilder(tt.seq).Build()
			var got string
			switch pf.(type) {
			case nil:
				got = "nil"
			case *memchrPrefilter:
				got = "memchr"
			case *memmemPrefilter:
				got = "memmem"
			case *byteSetPrefilter:
				got = "byteset"
			case *ahoCorasickPrefilter:
				got = "ahocorasick"
			default:
				got = "unknown"
			}
			if got != tt.want {
				t.Errorf("Build() selected %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPrefilterFind(t *testing.T) {
	tests := []struct {
		name     string
		seq      *literal.Seq
		haystack string
		start    int
		want     int
	}{
		{name: "memchr found", seq: seqOf(false, "="), haystack: "a == b", start: 0, want: 2},
		{name: "memchr from start", seq: seqOf(false, "="), haystack: "a == b", start: 3, want: 3},
		{name: "memchr past end", seq: seqOf(false, "="), haystack: "a == b", start: 6, want: -1},
		{name: "memchr missing", seq: seqOf(false, "="), haystack: "abc", start: 0, want: -1},
		{name: "memchr negative start", seq: seqOf(false, "a"), haystack: "abc", start: -1, want: -1},
		{name: "memmem found", seq: seqOf(true, "while"), haystack: "do while x", start: 0, want: 3},
		{name: "memmem skips earlier", seq: seqOf(true, "ab"), haystack: "ab ab", start: 1, want: 3},
		{name: "memmem missing", seq: seqOf(true, "while"), haystack: "whil", start: 0, want: -1},
		{name: "byteset found", seq: seqOf(false, "0", "5", "9"), haystack: "abc 95", start: 0, want: 4},
		{name: "byteset high byte", seq: seqOf(false, "\xff", "a"), haystack: "zz\xff", start: 0, want: 2},
		{name: "byteset missing", seq: seqOf(false, "0", "1"), haystack: "abc", start: 0, want: -1},
		{name: "byteset past end", seq: seqOf(false, "0", "1"), haystack: "01", start: 2, want: -1},
		{name: "ahocorasick first", seq: seqOf(true, "if", "else"), haystack: "x else if", start: 0, want: 2},
		{name: "ahocorasick from start", seq: seqOf(true, "if", "else"), haystack: "x else if", start: 3, want: 7},
		{name: "ahocorasick missing", seq: seqOf(true, "if", "else"), haystack: "for", start: 0, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := NewBuilder(tt.seq).Build()
			if pf == nil {
				t.Fatal("Build() returned nil")
			}
			if got := pf.Find([]byte(tt.haystack), tt.start); got != tt.want {
				t.Errorf("Find(%q, %d) = %d, want %d", tt.haystack, tt.start, got, tt.want)
			}
		})
	}
}

func TestPrefilterComplete(t *testing.T) {
	tests := []struct {
		name         string
		seq          *literal.Seq
		wantComplete bool
		wantLen      int
	}{
		{name: "complete byte", seq: seqOf(true, ";"), wantComplete: true, wantLen: 1},
		{name: "incomplete byte", seq: seqOf(false, "a"), wantComplete: false, wantLen: 0},
		{name: "complete substring", seq: seqOf(true, "return"), wantComplete: true, wantLen: 6},
		{name: "incomplete substring", seq: seqOf(false, "int"), wantComplete: false, wantLen: 0},
		{name: "byte set", seq: seqOf(true, "(", ")"), wantComplete: false, wantLen: 0},
		{name: "several literals", seq: seqOf(true, "if", "fi"), wantComplete: false, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pf := NewBuilder(tt.seq).Build()
			if pf.IsComplete() != tt.wantComplete {
				t.Errorf("IsComplete() = %v, want %v", pf.IsComplete(), tt.wantComplete)
			}
			if pf.LiteralLen() != tt.wantLen {
				t.Errorf("LiteralLen() = %d, want %d", pf.LiteralLen(), tt.wantLen)
			}
		})
	}
}

func TestHeapBytes(t *testing.T) {
	tests := []struct {
		name string
		seq  *literal.Seq
		want int
	}{
		{name: "memchr", seq: seqOf(false, "a"), want: 0},
		{name: "memmem", seq: seqOf(false, "abc"), want: 3},
		{name: "byteset", seq: seqOf(false, "a", "b"), want: 256},
		{name: "ahocorasick", seq: seqOf(false, "ab", "cde"), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewBuilder(tt.seq).Build().HeapBytes(); got != tt.want {
				t.Errorf("HeapBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMemmemCopiesNeedle(t *testing.T) {
	needle := []byte("abc")
	pf := NewBuilder(literal.NewSeq(literal.NewLiteral(needle, false))).Build()
	needle[0] = 'x'
	if got := pf.Find([]byte("abc"), 0); got != 0 {
		t.Errorf("Find after mutating the needle = %d, want 0", got)
	}
}
