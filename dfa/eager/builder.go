package eager

import (
	"log/slog"

	"github.com/coregx/lexdfa/syntax"
)

// Builder folds pattern traces into an automaton and allocates its state ids.
//
// One Builder owns the id counter of one automaton: every Build call that
// merges into the same root must go through the same Builder. A Builder is
// not safe for concurrent use.
type Builder struct {
	config Config
	logger *slog.Logger

	// nextID is the id handed to the next registered state
	nextID StateID
}

// NewBuilder creates a builder with the given configuration.
func NewBuilder(config Config) (*Builder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Builder{config: config, logger: config.logger()}, nil
}

// Size returns the number of state ids allocated so far. It never decreases
// except when an atomic Build is rolled back.
func (b *Builder) Size() int {
	return int(b.nextID)
}

// Config returns the builder configuration.
func (b *Builder) Config() Config {
	return b.config
}

// Reserve makes sure the next allocated id is at least next. Use it before
// building into a root that was not created by this builder, typically with
// MaxStateID(root)+1.
func (b *Builder) Reserve(next StateID) {
	if next > b.nextID {
		b.nextID = next
	}
}

// NewState allocates a fresh non-accepting state, for use as a root.
func (b *Builder) NewState() (*State, error) {
	id, err := b.allocate()
	if err != nil {
		return nil, err
	}
	return NewState(id, false), nil
}

func (b *Builder) allocate() (StateID, error) {
	if uint32(b.nextID) >= b.config.MaxStates {
		return InvalidState, errorf(StateLimitExceeded, "more than %d states", b.config.MaxStates)
	}
	id := b.nextID
	b.nextID++
	return id, nil
}

// Build compiles pattern and merges every alternative of it into the
// automaton rooted at initial, tagging accepting states with id. A nil
// initial starts a new automaton. The root is returned.
//
// With Config.Atomic, a failed Build leaves the automaton and the id counter
// exactly as they were. Without it, transitions added before the failure
// remain and the automaton should be discarded.
func (b *Builder) Build(pattern, id string, initial *State) (*State, error) {
	traces, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &DFAError{
			Kind:    MalformedPattern,
			Message: "cannot parse pattern",
			Cause:   err,
		}
	}

	tx := &txn{b: b, journaling: b.config.Atomic}
	start := b.nextID
	root := initial
	if root == nil {
		root = &State{id: InvalidState}
		if err := tx.assign(root); err != nil {
			return nil, err
		}
	}

	for _, trace := range traces {
		if err := b.fold(tx, trace, root, id); err != nil {
			if tx.journaling {
				undone := tx.rollback()
				b.logger.Debug("build rolled back",
					"pattern", pattern,
					"rule", id,
					"operations", undone,
					"error", err)
			}
			return nil, err
		}
	}

	b.logger.Debug("pattern built",
		"pattern", pattern,
		"rule", id,
		"traces", len(traces),
		"new_states", int(b.nextID-start),
		"states", b.Size())
	return root, nil
}

// fold walks one trace from cur, creating or reusing a state per entry.
func (b *Builder) fold(tx *txn, trace syntax.Trace, cur *State, id string) error {
	for i, e := range trace {
		if e.Kind == syntax.KindGroup {
			return groupError(e)
		}

		switch e.Quant {
		case syntax.QuantNone:
			next, err := cur.addNext(tx, e.Symbol, pending(e.Final), ruleFor(e.Final, id))
			if err != nil {
				return err
			}
			cur = next

		case syntax.QuantStar:
			if e.Final {
				if err := acceptAt(tx, cur, id); err != nil {
					return err
				}
			}
			if err := selfLoop(tx, cur, e); err != nil {
				return err
			}

		case syntax.QuantPlus:
			next, err := cur.addNext(tx, e.Symbol, pending(e.Final), ruleFor(e.Final, id))
			if err != nil {
				return err
			}
			if err := selfLoop(tx, next, e); err != nil {
				return err
			}
			cur = next

		case syntax.QuantBounded, syntax.QuantOptional:
			return b.repeat(tx, e, trace[i+1:], cur, id)
		}
	}
	return nil
}

// repeat expands e{Min,Max} into Max chained states and folds rest from
// every position where enough repetitions have been consumed. It consumes
// the remainder of the trace.
func (b *Builder) repeat(tx *txn, e syntax.Entry, rest syntax.Trace, cur *State, id string) error {
	if e.Max > b.config.MaxRepeat {
		return errorf(StateLimitExceeded, "repetition '%s' exceeds the limit of %d", e, b.config.MaxRepeat)
	}

	if e.Min == 0 {
		if e.Final {
			if err := acceptAt(tx, cur, id); err != nil {
				return err
			}
		}
		if err := b.foldRest(tx, rest, cur, id); err != nil {
			return err
		}
	}

	for k := 1; k <= e.Max; k++ {
		final := k >= e.Min && e.Final
		next, err := cur.addNext(tx, e.Symbol, pending(final), ruleFor(final, id))
		if err != nil {
			return err
		}
		cur = next
		if k >= e.Min {
			if err := b.foldRest(tx, rest, cur, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// foldKey identifies the fold of a trace suffix from one state.
type foldKey struct {
	state *State
	entry *syntax.Entry
}

// foldRest folds rest from cur unless that exact suffix was already folded
// from cur during this build. Folding is idempotent, so repeated suffixes of
// nested repetitions such as a?a?a? are built once.
func (b *Builder) foldRest(tx *txn, rest syntax.Trace, cur *State, id string) error {
	if len(rest) == 0 {
		return nil
	}
	key := foldKey{state: cur, entry: &rest[0]}
	if _, done := tx.folded[key]; done {
		return nil
	}
	if tx.folded == nil {
		tx.folded = make(map[foldKey]struct{})
	}
	tx.folded[key] = struct{}{}
	return b.fold(tx, rest, cur, id)
}

// selfLoop adds the e.Symbol loop on s, failing if the symbol already leads
// somewhere else.
func selfLoop(tx *txn, s *State, e syntax.Entry) error {
	next, err := s.addNext(tx, e.Symbol, s, "")
	if err != nil {
		return err
	}
	if next != s {
		return errorf(DeterminismViolation, "'%s' cannot loop on state %d: '%s' already leads to state %d",
			e, s.id, e.Symbol, next.id)
	}
	return nil
}

func acceptAt(tx *txn, s *State, id string) error {
	tx.accept(s)
	return s.setIdentifier(tx, id, false)
}

// pending returns a state that receives an id only if a transition to it is
// actually registered.
func pending(accepting bool) *State {
	return &State{id: InvalidState, accepting: accepting}
}

func ruleFor(final bool, id string) string {
	if final {
		return id
	}
	return ""
}

func groupError(e syntax.Entry) error {
	if e.Quant == syntax.QuantNone {
		return errorf(NotSupported, "groups are not supported: '%s'", e)
	}
	return errorf(NotSupported, "groups with %s quantifier are not supported: '%s'", e.Quantifier, e)
}
