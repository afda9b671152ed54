// Package lexdfa compiles lexer rules into a single deterministic finite
// automaton and runs it over input text.
//
// Every rule is a pattern with a rule identifier. Patterns support literal
// runes, escapes, bracketed classes, the wildcard '.', the quantifiers
// + * ? {m} {m,n} and alternation. Groups are recognized but rejected with
// ErrNotSupported. All rules of one automaton share its initial state, so
// the automaton reports which rule accepted an input.
//
// The automaton is built without backtracking or subset construction: each
// pattern position becomes a state, and a rule that would make one input
// rune match two transitions of a state fails with ErrDeterminismViolation
// instead of being silently merged.
//
// Basic usage:
//
//	d := lexdfa.MustNew(`[a-z]+`, "IDENT").
//	    MustAdd(`[0-9]+`, "NUMBER").
//	    MustAdd(`\+|-`, "OP")
//
//	rule, ok := d.AcceptingID("abc") // "IDENT", true
//	tokens, err := d.Tokenize([]byte("x+42"))
//
// A DFA is not safe for concurrent use while rules are being added. Once
// built, Accepts, AcceptingID and the search methods may be called from
// multiple goroutines.
package lexdfa

import (
	"io"
	"log/slog"

	"github.com/coregx/lexdfa/dfa/eager"
	"github.com/coregx/lexdfa/literal"
	"github.com/coregx/lexdfa/prefilter"
)

// DFA is a deterministic automaton recognizing one or more rules.
type DFA struct {
	config  Config
	logger  *slog.Logger
	builder *eager.Builder
	root    *eager.State

	// rebuilt after every successful Add; nil when no prefixes exist
	prefilter prefilter.Prefilter

	// rule of the single complete prefix, used when the prefilter is complete
	literalRule string
}

// New compiles pattern into a new automaton whose accepting states carry
// rule. rule may be empty.
//
// Example:
//
//	d, err := lexdfa.New(`[0-9]+`, "NUMBER")
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(pattern, rule string) (*DFA, error) {
	return NewWithConfig(pattern, rule, DefaultConfig())
}

// MustNew is like New but panics if the pattern cannot be compiled.
func MustNew(pattern, rule string) *DFA {
	d, err := New(pattern, rule)
	if err != nil {
		panic(err)
	}
	return d
}

// NewWithConfig compiles pattern with a custom configuration.
func NewWithConfig(pattern, rule string, config Config) (*DFA, error) {
	d, err := Empty(config)
	if err != nil {
		return nil, err
	}
	if err := d.Add(pattern, rule); err != nil {
		return nil, err
	}
	return d, nil
}

// NewFromState compiles pattern into the automaton rooted at initial, which
// may have been built by another DFA or by hand with eager.NewState. New
// states get ids above every id reachable from initial.
//
// initial is shared, not copied: the returned DFA mutates it.
func NewFromState(pattern, rule string, initial *eager.State, config Config) (*DFA, error) {
	if initial == nil {
		return NewWithConfig(pattern, rule, config)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	builder, err := eager.NewBuilder(config.eager())
	if err != nil {
		return nil, err
	}
	builder.Reserve(eager.MaxStateID(initial) + 1)

	d := &DFA{
		config:  config,
		logger:  config.logger(),
		builder: builder,
		root:    initial,
	}
	if err := d.Add(pattern, rule); err != nil {
		return nil, err
	}
	return d, nil
}

// Empty creates an automaton with no rules. Its initial state accepts
// nothing until rules are added.
func Empty(config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	builder, err := eager.NewBuilder(config.eager())
	if err != nil {
		return nil, err
	}
	root, err := builder.NewState()
	if err != nil {
		return nil, err
	}
	return &DFA{
		config:  config,
		logger:  config.logger(),
		builder: builder,
		root:    root,
	}, nil
}

// Add merges pattern into the automaton, tagging its accepting states with
// rule. Adding the same pattern and rule twice changes nothing.
//
// On failure the error is a *CompileError. With Config.Atomic the automaton
// is left as it was; otherwise it should be discarded.
func (d *DFA) Add(pattern, rule string) error {
	if _, err := d.builder.Build(pattern, rule, d.root); err != nil {
		return &CompileError{Pattern: pattern, Rule: rule, Err: err}
	}
	d.logger.Debug("rule added",
		"pattern", pattern,
		"rule", rule,
		"states", d.Size())

	d.buildPrefilter()
	return nil
}

// MustAdd is like Add but panics on failure. It returns d for chaining.
func (d *DFA) MustAdd(pattern, rule string) *DFA {
	if err := d.Add(pattern, rule); err != nil {
		panic(err)
	}
	return d
}

// buildPrefilter selects a prefilter from the literal prefixes of the root.
func (d *DFA) buildPrefilter() {
	d.prefilter = nil
	d.literalRule = ""
	if !d.config.EnablePrefilter {
		return
	}

	prefixes := literal.New(d.config.literal()).ExtractPrefixes(d.root)
	pf := prefilter.NewBuilder(prefixes).Build()
	if pf == nil {
		d.logger.Debug("no prefilter", "prefixes", prefixes.Len())
		return
	}
	if pf.IsComplete() {
		d.literalRule, _ = d.AcceptingID(string(prefixes.Get(0).Bytes))
	}
	d.prefilter = pf
	d.logger.Debug("prefilter selected",
		"prefixes", prefixes.Len(),
		"min_len", prefixes.MinLen(),
		"complete", pf.IsComplete(),
		"heap_bytes", pf.HeapBytes())
}

// Size returns the number of states allocated so far. It never decreases.
func (d *DFA) Size() int {
	return d.builder.Size()
}

// Initial returns the initial state. It can seed another automaton through
// NewFromState.
func (d *DFA) Initial() *eager.State {
	return d.root
}

// Accepts reports whether the whole input is accepted by some rule.
func (d *DFA) Accepts(input string) bool {
	s := d.run(input)
	return s != nil && s.IsAccepting()
}

// AcceptingID returns the rule identifier of the state reached after the
// whole input. ok is false when the input leaves the automaton or the state
// reached carries no identifier.
func (d *DFA) AcceptingID(input string) (rule string, ok bool) {
	s := d.run(input)
	if s == nil || s.Identifier() == "" {
		return "", false
	}
	return s.Identifier(), true
}

// run drives the automaton over input and returns the state reached, or nil
// if some rune has no transition.
func (d *DFA) run(input string) *eager.State {
	s := d.root
	for _, r := range input {
		if s = s.Next(r); s == nil {
			return nil
		}
	}
	return s
}

// String lists every reachable state in breadth-first order.
func (d *DFA) String() string {
	return eager.Dump(d.root)
}

// WriteDOT writes the automaton as a Graphviz digraph.
func (d *DFA) WriteDOT(w io.Writer) error {
	return eager.WriteDOT(w, d.root)
}
