package syntax

// Finalize stamps Entry.Final on every entry of traces, walking each trace
// from back to front. final is the inherited flag: true for a whole pattern,
// whose end is always a legal match end.
//
// The flag carried to the preceding entry is cleared after any entry whose
// quantifier requires at least one occurrence (none, + and {m,n}); * and ?
// leave it unchanged. Group alternatives are finalized with the flag carried
// at the group's position.
//
// The input is not modified.
func Finalize(traces []Trace, final bool) []Trace {
	out := make([]Trace, len(traces))
	for i, trace := range traces {
		t := make(Trace, len(trace))
		copy(t, trace)

		carry := final
		for j := len(t) - 1; j >= 0; j-- {
			e := &t[j]
			e.Final = carry
			if e.Kind == KindGroup {
				e.Alts = Finalize(e.Alts, carry)
			}
			if carry && e.Quant.Mandatory() {
				carry = false
			}
		}
		out[i] = t
	}
	return out
}

// Parse runs Tokenize, Combine, Split and Finalize on a whole pattern.
func Parse(pattern string) ([]Trace, error) {
	tokens, err := Tokenize(pattern)
	if err != nil {
		return nil, err
	}
	entries, err := Combine(pattern, tokens)
	if err != nil {
		return nil, err
	}
	return Finalize(Split(entries), true), nil
}
