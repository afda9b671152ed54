package eager

// txn carries one Build call through the state layer. It hands out ids to
// pending states and, when the build is atomic, journals every mutation so
// that a failed build can be undone.
//
// A nil *txn is valid: it never journals and never assigns ids.
type txn struct {
	b *Builder

	// undo holds inverse operations, oldest first; nil when not journaling
	undo []func()

	journaling bool

	// folded records trace suffixes already folded from a state
	folded map[foldKey]struct{}
}

func (tx *txn) record(undo func()) {
	if tx == nil || !tx.journaling {
		return
	}
	tx.undo = append(tx.undo, undo)
}

// assign gives a pending state the next free id.
func (tx *txn) assign(s *State) error {
	if tx == nil || tx.b == nil {
		return nil
	}
	id, err := tx.b.allocate()
	if err != nil {
		return err
	}
	s.id = id
	tx.record(func() {
		s.id = InvalidState
		tx.b.nextID--
	})
	return nil
}

// accept marks s accepting.
func (tx *txn) accept(s *State) {
	if s.accepting {
		return
	}
	s.accepting = true
	tx.record(func() { s.accepting = false })
}

// rollback undoes every journaled mutation, newest first, and returns the
// number of operations undone.
func (tx *txn) rollback() int {
	n := len(tx.undo)
	for i := n - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
	return n
}
