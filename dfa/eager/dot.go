package eager

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes a Graphviz rendering of the automaton rooted at root.
// Accepting states are drawn as double circles and labeled with their rule
// identifier.
func WriteDOT(w io.Writer, root *State) error {
	var b strings.Builder
	b.WriteString("digraph DFA {\n")
	b.WriteString("    rankdir=LR;\n")

	Walk(root, func(s *State) bool {
		shape := "circle"
		if s.accepting {
			shape = "doublecircle"
		}
		label := fmt.Sprint(s.id)
		if s.identifier != "" {
			label += `\n` + dotEscape(s.identifier)
		}
		fmt.Fprintf(&b, "    q%d [shape=%s, label=\"%s\"];\n", s.id, shape, label)
		for _, t := range s.order {
			fmt.Fprintf(&b, "    q%d -> q%d [label=\"%s\"];\n", s.id, t.Target.id, dotEscape(t.Symbol.String()))
		}
		return true
	})

	if root != nil {
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> q%d;\n", root.id)
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

var dotReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// dotEscape quotes text for use inside a double-quoted DOT attribute.
func dotEscape(text string) string {
	return dotReplacer.Replace(text)
}
