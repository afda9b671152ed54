package eager

import (
	"bytes"
	"strings"
	"testing"
)

func TestWalkBreadthFirst(t *testing.T) {
	_, root := buildAll(t, "ab", "c", "ad")

	var ids []StateID
	for _, s := range States(root) {
		ids = append(ids, s.ID())
	}
	// root, then a and c, then b and d
	want := []StateID{0, 1, 3, 2, 4}
	if len(ids) != len(want) {
		t.Fatalf("States() ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("States() ids = %v, want %v", ids, want)
		}
	}
}

func TestWalkVisitsLoopsOnce(t *testing.T) {
	_, root := buildAll(t, "a*", "b+")
	visits := map[StateID]int{}
	Walk(root, func(s *State) bool {
		visits[s.ID()]++
		return true
	})
	if len(visits) != 2 {
		t.Errorf("visited %d states, want 2", len(visits))
	}
	for id, n := range visits {
		if n != 1 {
			t.Errorf("state %d visited %d times", id, n)
		}
	}
}

func TestWalkStopsEarly(t *testing.T) {
	_, root := buildAll(t, "abcdef")
	n := 0
	Walk(root, func(*State) bool {
		n++
		return n < 3
	})
	if n != 3 {
		t.Errorf("Walk visited %d states after stop, want 3", n)
	}

	Walk(nil, func(*State) bool {
		t.Error("Walk(nil) called fn")
		return true
	})
}

func TestMaxStateID(t *testing.T) {
	b, root := buildAll(t, "abc", "x{2}")
	if got, want := MaxStateID(root), StateID(b.Size()-1); got != want {
		t.Errorf("MaxStateID() = %d, want %d", got, want)
	}
	if got := MaxStateID(NewState(42, false)); got != 42 {
		t.Errorf("MaxStateID(single) = %d, want 42", got)
	}
}

func TestDump(t *testing.T) {
	_, root := buildAll(t, "a+")
	want := "State 0 (Accepting = false):\n  a -> 1\nState 1 (Accepting = true):\n  a -> 1"
	if got := Dump(root); got != want {
		t.Errorf("Dump() =\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteDOT(t *testing.T) {
	b := newBuilder(t, DefaultConfig())
	root, err := b.Build(`a"|b\n`, "QUOTE", nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteDOT(&buf, root); err != nil {
		t.Fatalf("WriteDOT() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"digraph DFA {",
		"rankdir=LR;",
		`q0 [shape=circle, label="0"];`,
		`q0 -> q1 [label="a"];`,
		`q1 -> q2 [label="\""];`,
		`q2 [shape=doublecircle, label="2\nQUOTE"];`,
		`q3 -> q4 [label="\\n"];`,
		"_start [shape=point]; _start -> q0;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("DOT output not closed:\n%s", out)
	}
}
