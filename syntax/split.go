package syntax

// Split cuts a combined sequence into traces at every top-level alternation.
// A group stays a single entry of its trace; its interior is split
// recursively into Entry.Alts and Entry.Sub is cleared.
//
// Empty alternatives ("a|" or "|b") produce empty traces. The result always
// holds at least one trace.
func Split(entries []Entry) []Trace {
	traces := []Trace{{}}
	for _, e := range entries {
		if e.Kind == KindAlternation {
			traces = append(traces, Trace{})
			continue
		}
		if e.Kind == KindGroup {
			e.Alts = Split(e.Sub)
			e.Sub = nil
		}
		last := len(traces) - 1
		traces[last] = append(traces[last], e)
	}
	return traces
}
