// Package eager builds a deterministic finite automaton directly from pattern
// traces, one state per pattern position, and merges further patterns into
// the same automaton on demand.
//
// Unlike a subset-construction DFA, no NFA is built: each entry of a trace
// produced by the syntax package is folded into the automaton in order, and
// every new transition is checked against the outgoing transitions already
// registered on its source state. Any transition that would let one input
// rune match two outgoing transitions is rejected, so the automaton is
// deterministic by construction and recognition never backtracks.
//
// Basic usage:
//
//	b, _ := eager.NewBuilder(eager.DefaultConfig())
//	root, err := b.Build("[a-z]+", "IDENT", nil)
//	root, err = b.Build("[0-9]+", "NUMBER", root)
package eager

import (
	"fmt"
	"strings"

	"github.com/coregx/lexdfa/syntax"
)

// StateID uniquely identifies a state within one automaton.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/unassigned state ID.
// States created by the builder carry it until their first incoming
// transition is registered.
const InvalidState StateID = 0xFFFFFFFF

// Transition is one outgoing edge of a state.
type Transition struct {
	Symbol syntax.Symbol
	Target *State
}

// State is a node of the automaton.
//
// Outgoing transitions are partitioned for lookup: single-rune symbols live
// in a rune map, multi-rune classes and the wildcard in a short ordered list
// consulted only when the map misses. Determinism guarantees that at most one
// of them matches any rune.
type State struct {
	id         StateID
	accepting  bool
	identifier string

	// order holds every transition in registration order
	order []*Transition

	// byKey indexes transitions by canonical symbol key
	byKey map[string]*Transition

	// literal indexes single-rune transitions by their rune
	literal map[rune]*Transition

	// ranged holds multi-rune class and wildcard transitions
	ranged []*Transition
}

// NewState creates a state with the given ID and no transitions.
func NewState(id StateID, accepting bool) *State {
	return &State{id: id, accepting: accepting}
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// IsAccepting returns true if a match may end in this state
func (s *State) IsAccepting() bool {
	return s.accepting
}

// Identifier returns the rule identifier attached to the state, or "".
func (s *State) Identifier() string {
	return s.identifier
}

// SetIdentifier attaches a rule identifier to the state. An empty id is
// ignored. A state keeps its first identifier: setting a different one fails
// with IdentifierConflict unless override is true.
func (s *State) SetIdentifier(id string, override bool) error {
	return s.setIdentifier(nil, id, override)
}

// HasNext reports whether some outgoing transition matches r.
func (s *State) HasNext(r rune) bool {
	return s.lookup(r) != nil
}

// Next returns the state reached on r, or nil if no transition matches.
func (s *State) Next(r rune) *State {
	if t := s.lookup(r); t != nil {
		return t.Target
	}
	return nil
}

// Transitions returns the outgoing transitions in registration order.
func (s *State) Transitions() []Transition {
	out := make([]Transition, len(s.order))
	for i, t := range s.order {
		out[i] = *t
	}
	return out
}

// NumTransitions returns the number of outgoing transitions.
func (s *State) NumTransitions() int {
	return len(s.order)
}

// AddNext registers a transition on sym from s to target and returns the
// state the transition leads to, which is an already registered state when
// an equal transition exists. id is attached to that state.
//
// The transition is rejected with DeterminismViolation when it would make
// some rune match two outgoing transitions of s.
func (s *State) AddNext(sym syntax.Symbol, target *State, id string) (*State, error) {
	return s.addNext(nil, sym, target, id)
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "State %d (Accepting = %t):", s.id, s.accepting)
	for _, t := range s.order {
		fmt.Fprintf(&b, "\n  %s -> %d", t.Symbol, t.Target.id)
	}
	return b.String()
}

func (s *State) lookup(r rune) *Transition {
	if t, ok := s.literal[r]; ok {
		return t
	}
	for _, t := range s.ranged {
		if t.Symbol.Matches(r) {
			return t
		}
	}
	return nil
}

func (s *State) hasWildcard() bool {
	for _, t := range s.ranged {
		if t.Symbol.Kind == syntax.SymbolAny {
			return true
		}
	}
	return false
}

// addNext implements the ordered case analysis behind AddNext. tx, when not
// nil, assigns ids to pending targets and journals every mutation.
func (s *State) addNext(tx *txn, sym syntax.Symbol, target *State, id string) (*State, error) {
	key := sym.Key()
	existing := s.byKey[key]

	// Case 1: the symbol already loops on s
	if existing != nil && existing.Target == s {
		if target != s {
			return nil, errorf(DeterminismViolation, "'%s' already defined to self on state %d", sym, s.id)
		}
		return s, s.setIdentifier(tx, id, false)
	}

	// Case 2: the wildcard shares a state with nothing
	if s.hasWildcard() || (sym.Kind == syntax.SymbolAny && len(s.order) > 0) {
		return nil, errorf(DeterminismViolation, "wildcard '.' clashes with other transitions on state %d (adding '%s')", s.id, sym)
	}

	// Case 3: an equal transition exists; merge into its target
	if existing != nil {
		next := existing.Target
		if target.accepting {
			tx.accept(next)
			if err := next.setIdentifier(tx, id, false); err != nil {
				return nil, err
			}
		}
		return next, nil
	}

	// Case 4: an existing class already covers part of sym
	for _, t := range s.ranged {
		if t.Symbol.Set.Overlaps(sym.Set) {
			return nil, errorf(DeterminismViolation, "'%s' already (partly) defined by '%s' on state %d", sym, t.Symbol, s.id)
		}
	}

	// Case 5: sym is a class covering an existing literal
	if sym.IsClass() {
		for _, t := range s.order {
			if r, single := t.Symbol.Set.Rune(); single && sym.Matches(r) {
				return nil, errorf(DeterminismViolation, "'%s' already defined in set '%s' on state %d", t.Symbol, sym, s.id)
			}
		}
	}

	// Case 6: register
	if target.id == InvalidState {
		if err := tx.assign(target); err != nil {
			return nil, err
		}
	}
	s.register(tx, &Transition{Symbol: sym, Target: target})
	return target, target.setIdentifier(tx, id, false)
}

func (s *State) register(tx *txn, t *Transition) {
	if s.byKey == nil {
		s.byKey = make(map[string]*Transition)
		s.literal = make(map[rune]*Transition)
	}

	key := t.Symbol.Key()
	s.order = append(s.order, t)
	s.byKey[key] = t
	r, single := t.Symbol.Set.Rune()
	if single && t.Symbol.Kind != syntax.SymbolAny {
		s.literal[r] = t
	} else {
		s.ranged = append(s.ranged, t)
	}

	// registrations on one state are undone newest first, so each undo pops
	// the tail of order and ranged
	tx.record(func() {
		s.order = s.order[:len(s.order)-1]
		delete(s.byKey, key)
		if single && t.Symbol.Kind != syntax.SymbolAny {
			delete(s.literal, r)
		} else {
			s.ranged = s.ranged[:len(s.ranged)-1]
		}
	})
}

func (s *State) setIdentifier(tx *txn, id string, override bool) error {
	if id == "" || id == s.identifier {
		return nil
	}
	if s.identifier != "" && !override {
		return errorf(IdentifierConflict, "state %d already identified as %q, cannot set %q", s.id, s.identifier, id)
	}
	prev := s.identifier
	s.identifier = id
	tx.record(func() { s.identifier = prev })
	return nil
}
