package eager

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/lexdfa/syntax"
)

func newBuilder(t *testing.T, config Config) *Builder {
	t.Helper()
	b, err := NewBuilder(config)
	if err != nil {
		t.Fatalf("NewBuilder() error: %v", err)
	}
	return b
}

// buildAll merges every pattern into one automaton, using the pattern text
// as its rule identifier.
func buildAll(t *testing.T, patterns ...string) (*Builder, *State) {
	t.Helper()
	b := newBuilder(t, DefaultConfig())
	var root *State
	for _, p := range patterns {
		var err error
		root, err = b.Build(p, p, root)
		if err != nil {
			t.Fatalf("Build(%q) error: %v", p, err)
		}
	}
	return b, root
}

// run drives the automaton over input and returns the final state, or nil
// if some rune has no transition.
func run(root *State, input string) *State {
	cur := root
	for _, r := range input {
		cur = cur.Next(r)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func accepts(root *State, input string) bool {
	s := run(root, input)
	return s != nil && s.IsAccepting()
}

func TestBuildLiteral(t *testing.T) {
	for _, p := range []string{"a", "abc", "hello world", "tab\tsep", "héllo", "x-y_z"} {
		t.Run(p, func(t *testing.T) {
			_, root := buildAll(t, p)
			if !accepts(root, p) {
				t.Errorf("%q not accepted", p)
			}
			if accepts(root, p+"x") {
				t.Errorf("%q accepted", p+"x")
			}
			short := []rune(p)
			if accepts(root, string(short[:len(short)-1])) {
				t.Errorf("%q accepted", string(short[:len(short)-1]))
			}
		})
	}
}

func TestBuildPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a*", []string{"", "a", "aaaa"}, []string{"b", "ab"}},
		{"a+", []string{"a", "aaa"}, []string{"", "b", "ab"}},
		{"a?", []string{"", "a"}, []string{"aa", "b"}},
		{"a{2,3}", []string{"aa", "aaa"}, []string{"", "a", "aaaa"}},
		{"a{2}", []string{"aa"}, []string{"a", "aaa"}},
		{"a{3,1}", []string{"a", "aa", "aaa"}, []string{"", "aaaa"}},
		{"a{0,2}", []string{"", "a", "aa"}, []string{"aaa"}},
		{"ab?c", []string{"ac", "abc"}, []string{"ab", "abbc"}},
		{"ab*c", []string{"ac", "abc", "abbbc"}, []string{"ab", "a"}},
		{"ab+c", []string{"abc", "abbc"}, []string{"ac", "ab"}},
		{"a+b?", []string{"a", "aa", "ab", "aab"}, []string{"", "b", "abb"}},
		{"x{0,2}y", []string{"y", "xy", "xxy"}, []string{"", "x", "xxxy"}},
		{"x{1,2}y", []string{"xy", "xxy"}, []string{"y", "xxxy"}},
		{"[a-z][a-z0-9]*", []string{"a", "a1b2", "zz"}, []string{"", "1a", "A"}},
		{"a|b|cd", []string{"a", "b", "cd"}, []string{"", "c", "ab"}},
		{"ab|ac", []string{"ab", "ac"}, []string{"a", "ad"}},
		{"a.c", []string{"abc", "a-c", "aéc"}, []string{"ac", "a\nc"}},
		{".+", []string{"x", "any thing"}, []string{"", "a\nb"}},
		{`\d\.\x41`, []string{"d.A"}, []string{"dxA", "d.a"}},
		{"[^0-9]", []string{"a", "\n"}, []string{"5", ""}},
		{"a|", []string{"a"}, []string{"aa"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, root := buildAll(t, tt.pattern)
			for _, in := range tt.accept {
				if !accepts(root, in) {
					t.Errorf("%q does not accept %q", tt.pattern, in)
				}
			}
			for _, in := range tt.reject {
				if accepts(root, in) {
					t.Errorf("%q accepts %q", tt.pattern, in)
				}
			}
		})
	}
}

func TestBuildIdempotent(t *testing.T) {
	for _, p := range []string{"abc", "a+", "a*b", "[a-c]x", "ab|cd", "x{1,3}"} {
		t.Run(p, func(t *testing.T) {
			b, root := buildAll(t, p)
			size := b.Size()
			dump := Dump(root)

			if _, err := b.Build(p, p, root); err != nil {
				t.Fatalf("second Build(%q) error: %v", p, err)
			}
			if b.Size() != size {
				t.Errorf("Size() grew from %d to %d", size, b.Size())
			}
			if Dump(root) != dump {
				t.Errorf("automaton changed:\n%s\nwant:\n%s", Dump(root), dump)
			}
		})
	}
}

func TestBuildMultiPattern(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	root, err := b.Build("ab", "RULE1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build("ac", "RULE2", root); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"ab", "RULE1"},
		{"ac", "RULE2"},
		{"a", ""},
		{"ax", ""},
	}
	for _, tt := range tests {
		got := ""
		if s := run(root, tt.input); s != nil {
			got = s.Identifier()
		}
		if got != tt.want {
			t.Errorf("identifier after %q = %q, want %q", tt.input, got, tt.want)
		}
	}

	// "a" is shared, so only one new state for RULE2
	if b.Size() != 4 {
		t.Errorf("Size() = %d, want 4", b.Size())
	}
}

func TestBuildPrefixRules(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	root, err := b.Build("==", "EQ", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build("=", "ASSIGN", root); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build("=>", "ARROW", root); err != nil {
		t.Fatal(err)
	}

	for input, want := range map[string]string{"=": "ASSIGN", "==": "EQ", "=>": "ARROW"} {
		s := run(root, input)
		if s == nil || !s.IsAccepting() || s.Identifier() != want {
			t.Errorf("state after %q = %v, want accepting %s", input, s, want)
		}
	}
}

func TestBuildStarMarksAccepting(t *testing.T) {
	_, root := buildAll(t, "ab*")
	a := root.Next('a')
	if a == nil || !a.IsAccepting() || a.Identifier() != "ab*" {
		t.Fatalf("state after 'a' = %v, want accepting with identifier", a)
	}
	if a.Next('b') != a {
		t.Error("b* is not a self-loop")
	}
	if root.IsAccepting() {
		t.Error("root accepting for ab*")
	}
}

func TestBuildDeterminismViolation(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
	}{
		{name: "literal inside class", patterns: []string{"[a-c]", "b"}},
		{name: "class covering literal", patterns: []string{"b", "[a-c]"}},
		{name: "overlapping classes", patterns: []string{"[a-c]", "[c-e]"}},
		{name: "wildcard then literal", patterns: []string{".", "a"}},
		{name: "literal then wildcard", patterns: []string{"a", "."}},
		{name: "duplicate wildcard", patterns: []string{"a.", "a."}},
		{name: "star then continuation", patterns: []string{"a*", "ab"}},
		{name: "continuation then star", patterns: []string{"ab", "a*"}},
		{name: "plus then repeat", patterns: []string{"a+", "aa"}},
		{name: "within one pattern", patterns: []string{"a|[a-z]"}},
		{name: "star over existing transition", patterns: []string{"ab*b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder(t, DefaultConfig())
			var root *State
			var err error
			for _, p := range tt.patterns {
				var next *State
				next, err = b.Build(p, "R", root)
				if err != nil {
					break
				}
				root = next
			}
			if !errors.Is(err, ErrDeterminismViolation) {
				t.Fatalf("error = %v, want DeterminismViolation", err)
			}
			var dfaErr *DFAError
			if !errors.As(err, &dfaErr) || dfaErr.Kind != DeterminismViolation {
				t.Errorf("error kind = %v, want DeterminismViolation", err)
			}
		})
	}
}

func TestBuildIdentifierConflict(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	root, err := b.Build("abc", "R1", nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = b.Build("abc", "R2", root)
	if !errors.Is(err, ErrIdentifierConflict) {
		t.Fatalf("error = %v, want IdentifierConflict", err)
	}
	if got := run(root, "abc").Identifier(); got != "R1" {
		t.Errorf("identifier = %q, want R1 kept", got)
	}
}

func TestBuildGroupsNotSupported(t *testing.T) {
	tests := []struct {
		pattern string
		message string
	}{
		{"(ab)", "groups are not supported"},
		{"(a|b)*", "groups with * quantifier"},
		{"x(y)?", "groups with ? quantifier"},
		{"a|(b){2}", "groups with {2} quantifier"},
		{"a+(b)", "groups are not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			b := newBuilder(t, DefaultConfig())
			_, err := b.Build(tt.pattern, "G", nil)
			if !errors.Is(err, ErrNotSupported) {
				t.Fatalf("error = %v, want NotSupported", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err, tt.message)
			}
			if b.Size() != 0 {
				t.Errorf("Size() = %d after rolled back build, want 0", b.Size())
			}
		})
	}
}

func TestBuildMalformedPattern(t *testing.T) {
	for _, p := range []string{"[a", "(a", "a)", "*", "a|+", `a\`, "[z-a]", "a{99999999999999999999}"} {
		t.Run(p, func(t *testing.T) {
			b := newBuilder(t, DefaultConfig())
			_, err := b.Build(p, "M", nil)
			if !errors.Is(err, ErrMalformedPattern) {
				t.Fatalf("error = %v, want MalformedPattern", err)
			}
			if !errors.Is(err, syntax.ErrMalformedPattern) {
				t.Errorf("error does not wrap syntax.ErrMalformedPattern: %v", err)
			}
			var serr *syntax.Error
			if !errors.As(err, &serr) || serr.Pattern != p {
				t.Errorf("error does not carry the syntax error for %q: %v", p, err)
			}
		})
	}
}

func TestBuildAtomicRollback(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	root, err := b.Build("ab", "R1", nil)
	if err != nil {
		t.Fatal(err)
	}
	before := Dump(root)

	// the first alternative registers 'c'; the second conflicts with 'a'
	_, err = b.Build("ac|[a-z]", "R2", root)
	if !errors.Is(err, ErrDeterminismViolation) {
		t.Fatalf("error = %v, want DeterminismViolation", err)
	}

	if b.Size() != 3 {
		t.Errorf("Size() = %d after rollback, want 3", b.Size())
	}
	if got := Dump(root); got != before {
		t.Errorf("automaton after rollback:\n%s\nwant:\n%s", got, before)
	}
	if root.Next('a').HasNext('c') {
		t.Error("transition from the failed build survived")
	}

	// the rolled back id is handed out again
	if _, err := b.Build("ad", "R3", root); err != nil {
		t.Fatal(err)
	}
	if got := run(root, "ad").ID(); got != 3 {
		t.Errorf("new state id = %d, want 3", got)
	}
}

func TestBuildAtomicRollbackAccepting(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	root, err := b.Build("ab", "R1", nil)
	if err != nil {
		t.Fatal(err)
	}

	// a* marks the root accepting before its loop conflicts with 'a'
	if _, err := b.Build("a*", "R2", root); !errors.Is(err, ErrDeterminismViolation) {
		t.Fatalf("error = %v, want DeterminismViolation", err)
	}
	if root.IsAccepting() || root.Identifier() != "" {
		t.Errorf("root = %v, want non-accepting without identifier", root)
	}
}

func TestBuildNonAtomicKeepsPartialWork(t *testing.T) {
	b := newBuilder(t, DefaultConfig().WithAtomic(false))
	root, err := b.Build("ab", "R1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build("ac|[a-z]", "R2", root); err == nil {
		t.Fatal("expected DeterminismViolation")
	}
	if b.Size() != 4 {
		t.Errorf("Size() = %d, want 4", b.Size())
	}
	if !accepts(root, "ac") {
		t.Error("first alternative was not kept")
	}
}

func TestBuildStateLimit(t *testing.T) {
	b := newBuilder(t, DefaultConfig().WithMaxStates(3))
	root, err := b.Build("ab", "R", nil)
	if err != nil {
		t.Fatalf("Build(ab) error: %v", err)
	}
	_, err = b.Build("abc", "R2", root)
	if !errors.Is(err, ErrStateLimitExceeded) {
		t.Fatalf("error = %v, want StateLimitExceeded", err)
	}
	if b.Size() != 3 {
		t.Errorf("Size() = %d, want 3", b.Size())
	}
}

func TestBuildMaxRepeat(t *testing.T) {
	b := newBuilder(t, DefaultConfig().WithMaxRepeat(5))
	if _, err := b.Build("a{2,5}", "OK", nil); err != nil {
		t.Fatalf("Build(a{2,5}) error: %v", err)
	}
	if _, err := b.Build("b{6}", "BIG", nil); !errors.Is(err, ErrStateLimitExceeded) {
		t.Fatalf("error = %v, want StateLimitExceeded", err)
	}
}

func TestBuildIntoForeignRoot(t *testing.T) {
	root := NewState(10, false)
	leaf := NewState(11, true)
	if _, err := root.AddNext(syntax.MustParseSymbol("x"), leaf, "X"); err != nil {
		t.Fatal(err)
	}

	b := newBuilder(t, DefaultConfig())
	b.Reserve(MaxStateID(root) + 1)
	if _, err := b.Build("y", "Y", root); err != nil {
		t.Fatal(err)
	}
	if got := root.Next('y').ID(); got != 12 {
		t.Errorf("new state id = %d, want 12", got)
	}
	if got := root.Next('x').Identifier(); got != "X" {
		t.Errorf("existing transition lost its identifier: %q", got)
	}
}

func TestBuilderSizeMonotonic(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	steps := []struct {
		pattern string
		size    int
	}{
		{"ab", 3},
		{"ab", 3},
		{"ac", 4},
		{"a", 4},
		{"b+", 5},
	}

	var root *State
	for _, step := range steps {
		var err error
		root, err = b.Build(step.pattern, "", root)
		if err != nil {
			t.Fatalf("Build(%q) error: %v", step.pattern, err)
		}
		if b.Size() != step.size {
			t.Errorf("after %q Size() = %d, want %d", step.pattern, b.Size(), step.size)
		}
	}
}

func TestNewBuilderInvalidConfig(t *testing.T) {
	_, err := NewBuilder(DefaultConfig().WithMaxStates(0))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want InvalidConfig", err)
	}
}
