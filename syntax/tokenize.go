package syntax

import (
	"strconv"
	"unicode/utf8"
)

// Tokenize splits a pattern into tokens, consuming the longest applicable
// construct at each position: an escape, a class, an operator (+ * ? | or a
// brace quantifier), a group, or a single literal rune. Group interiors are
// tokenized recursively into Token.Sub.
//
// A '{' that does not start a well-formed {m} or {m,n} is a literal.
func Tokenize(pattern string) ([]Token, error) {
	t := tokenizer{pattern: pattern}
	return t.tokenize(0, len(pattern))
}

type tokenizer struct {
	pattern string
}

func (t *tokenizer) errorf(offset int, msg string) error {
	return &Error{Pattern: t.pattern, Offset: offset, Message: msg}
}

// tokenize scans pattern[start:end].
func (t *tokenizer) tokenize(start, end int) ([]Token, error) {
	var tokens []Token
	for pos := start; pos < end; {
		rest := t.pattern[pos:end]
		var tok Token
		var err error

		switch c := rest[0]; {
		case c == '\\':
			tok, err = t.escape(pos, rest)
		case c == '[':
			tok, err = t.class(pos, rest)
		case c == '+' || c == '*' || c == '?':
			tok = operator(pos, rest[:1])
		case c == '|':
			tok = Token{Text: "|", Kind: KindAlternation, Offset: pos}
		case c == '{' && braceLen(rest) > 0:
			tok, err = t.brace(pos, rest[:braceLen(rest)])
		case c == '(':
			tok, err = t.group(pos, end)
		case c == ')':
			err = t.errorf(pos, "unmatched )")
		default:
			tok, err = t.literal(pos, rest)
		}
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
		pos += len(tok.Text)
	}
	return tokens, nil
}

func (t *tokenizer) escape(pos int, rest string) (Token, error) {
	esc, ok := ScanEscape(rest)
	if !ok {
		return Token{}, t.errorf(pos, "trailing backslash")
	}
	sym, err := ParseSymbol(esc)
	if err != nil {
		return Token{}, t.errorf(pos, err.(*Error).Message)
	}
	return Token{Text: esc, Kind: KindEscaped, Offset: pos, Symbol: sym}, nil
}

func (t *tokenizer) class(pos int, rest string) (Token, error) {
	class, ok := ScanClass(rest)
	if !ok {
		return Token{}, t.errorf(pos, "missing closing ]")
	}
	sym, err := ParseSymbol(class)
	if err != nil {
		e := err.(*Error)
		return Token{}, t.errorf(pos+e.Offset, e.Message)
	}
	return Token{Text: class, Kind: KindClass, Offset: pos, Symbol: sym}, nil
}

func (t *tokenizer) literal(pos int, rest string) (Token, error) {
	r, size := utf8.DecodeRuneInString(rest)
	if r == utf8.RuneError && size <= 1 {
		return Token{}, t.errorf(pos, "invalid UTF-8")
	}
	sym, err := ParseSymbol(rest[:size])
	if err != nil {
		return Token{}, t.errorf(pos, err.(*Error).Message)
	}
	return Token{Text: rest[:size], Kind: KindLiteral, Offset: pos, Symbol: sym}, nil
}

func operator(pos int, text string) Token {
	tok := Token{Text: text, Kind: KindQuantifier, Offset: pos, Max: -1}
	switch text {
	case "+":
		tok.Quant, tok.Min = QuantPlus, 1
	case "*":
		tok.Quant = QuantStar
	case "?":
		tok.Quant, tok.Max = QuantOptional, 1
	}
	return tok
}

// brace parses a {m} or {m,n} quantifier. The two bounds are sorted so that
// Min <= Max.
func (t *tokenizer) brace(pos int, text string) (Token, error) {
	body := text[1 : len(text)-1]
	lo, hi := body, body
	for i := 0; i < len(body); i++ {
		if body[i] == ',' {
			lo, hi = body[:i], body[i+1:]
			break
		}
	}

	m, err := strconv.Atoi(lo)
	if err != nil {
		return Token{}, t.errorf(pos, "invalid repetition count "+strconv.Quote(lo))
	}
	n, err := strconv.Atoi(hi)
	if err != nil {
		return Token{}, t.errorf(pos, "invalid repetition count "+strconv.Quote(hi))
	}
	if m > n {
		m, n = n, m
	}
	return Token{Text: text, Kind: KindQuantifier, Offset: pos, Quant: QuantBounded, Min: m, Max: n}, nil
}

// group scans from the '(' at pos to its matching ')', skipping escapes and
// classes, and tokenizes the interior.
func (t *tokenizer) group(pos, end int) (Token, error) {
	depth := 0
	for i := pos; i < end; i++ {
		switch t.pattern[i] {
		case '\\':
			esc, ok := ScanEscape(t.pattern[i:end])
			if !ok {
				return Token{}, t.errorf(i, "trailing backslash")
			}
			i += len(esc) - 1
		case '[':
			if class, ok := ScanClass(t.pattern[i:end]); ok {
				i += len(class) - 1
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				sub, err := t.tokenize(pos+1, i)
				if err != nil {
					return Token{}, err
				}
				return Token{Text: t.pattern[pos : i+1], Kind: KindGroup, Offset: pos, Sub: sub}, nil
			}
		}
	}
	return Token{}, t.errorf(pos, "missing closing )")
}

// braceLen returns the length of a {m} or {m,n} prefix of s, or 0.
func braceLen(s string) int {
	i := 1
	digits := func() bool {
		j := i
		for i < len(s) && '0' <= s[i] && s[i] <= '9' {
			i++
		}
		return i > j
	}

	if !digits() {
		return 0
	}
	if i < len(s) && s[i] == ',' {
		i++
		if !digits() {
			return 0
		}
	}
	if i < len(s) && s[i] == '}' {
		return i + 1
	}
	return 0
}
