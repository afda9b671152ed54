package eager

import (
	"strings"

	"github.com/coregx/lexdfa/internal/sparse"
)

// Walk calls fn for every state reachable from root exactly once,
// breadth-first, following transitions in registration order. Walking stops
// early when fn returns false.
//
// States are told apart by ID, so every reachable state must carry a unique
// id. States produced by a Builder always do.
func Walk(root *State, fn func(*State) bool) {
	if root == nil {
		return
	}
	seen := sparse.New(64)
	seen.Insert(uint32(root.id))
	queue := []*State{root}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if !fn(s) {
			return
		}
		for _, t := range s.order {
			if seen.Insert(uint32(t.Target.id)) {
				queue = append(queue, t.Target)
			}
		}
	}
}

// States returns every state reachable from root in breadth-first order.
func States(root *State) []*State {
	var out []*State
	Walk(root, func(s *State) bool {
		out = append(out, s)
		return true
	})
	return out
}

// MaxStateID returns the largest id reachable from root.
func MaxStateID(root *State) StateID {
	var hi StateID
	Walk(root, func(s *State) bool {
		if s.id > hi {
			hi = s.id
		}
		return true
	})
	return hi
}

// Dump renders every state reachable from root, one State.String block per
// state, in breadth-first order.
func Dump(root *State) string {
	var b strings.Builder
	Walk(root, func(s *State) bool {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s.String())
		return true
	})
	return b.String()
}
