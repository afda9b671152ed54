package syntax

// Combine folds every quantifier token into the operand before it. Group
// interiors are combined first. Alternation tokens are passed through as
// KindAlternation entries for Split.
//
// A quantifier at the start of a sequence, right after '|' or right after
// another quantifier has nothing to repeat and is malformed.
func Combine(pattern string, tokens []Token) ([]Entry, error) {
	entries := make([]Entry, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case KindQuantifier:
			return nil, &Error{Pattern: pattern, Offset: tok.Offset, Message: "nothing to repeat before " + tok.Text}

		case KindAlternation:
			entries = append(entries, Entry{Text: tok.Text, Kind: KindAlternation, Offset: tok.Offset})
			continue
		}

		e := Entry{
			Text:   tok.Text,
			Kind:   tok.Kind,
			Offset: tok.Offset,
			Symbol: tok.Symbol,
		}
		if tok.Kind == KindGroup {
			sub, err := Combine(pattern, tok.Sub)
			if err != nil {
				return nil, err
			}
			e.Sub = sub
		}

		if i+1 < len(tokens) && tokens[i+1].Kind == KindQuantifier {
			q := tokens[i+1]
			e.Quantifier = q.Text
			e.Quant, e.Min, e.Max = q.Quant, q.Min, q.Max
			i++
		}
		entries = append(entries, e)
	}
	return entries, nil
}
