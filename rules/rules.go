// Package rules reads lexer rule files and compiles them into a single
// automaton.
//
// A rule file holds one rule per line:
//
//	# comment
//	IDENT  = [a-z_][a-z0-9_]*
//	NUMBER = [0-9]+
//	WS     = [ \t]+
//
// Everything after the first '=' up to the end of the line is the pattern,
// with surrounding blanks trimmed. Rules are added in file order; a name may
// appear on several lines to contribute several alternatives.
package rules

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/coregx/lexdfa"
)

// File is a parsed rule file.
type File struct {
	// Name is the name given to Parse or Load.
	Name string

	Rules []*Rule `parser:"@@*"`
}

// Rule is one NAME = pattern line.
type Rule struct {
	Pos     lexer.Position
	Name    string `parser:"@Ident '='"`
	Pattern string `parser:"@Pattern"`
}

// ruleLexer switches to a raw mode after '=' so that the pattern is taken
// verbatim up to the end of the line.
var ruleLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "EOL", Pattern: `\r?\n`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Assign", Pattern: `=`, Action: lexer.Push("Pattern")},
	},
	"Pattern": {
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "EOL", Pattern: `\r?\n`, Action: lexer.Pop()},
		{Name: "Pattern", Pattern: `[^\r\n]+`, Action: lexer.Pop()},
	},
})

var parser = participle.MustBuild[File](
	participle.Lexer(ruleLexer),
	participle.Elide("Comment", "Whitespace", "EOL"),
)

// Parse parses the rule file text. name is used in error positions.
func Parse(name, text string) (*File, error) {
	f, err := parser.ParseString(name, text)
	if err != nil {
		return nil, err
	}
	f.Name = name
	for _, r := range f.Rules {
		r.Pattern = strings.TrimRight(r.Pattern, " \t")
	}
	return f, nil
}

// Load reads and parses a rule file from r.
func Load(name string, r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rules: read %s: %w", name, err)
	}
	return Parse(name, string(data))
}

// Compile adds every rule of f, in file order, to a new automaton.
// The first rule that cannot be added aborts compilation with a *RuleError.
func (f *File) Compile(config lexdfa.Config) (*lexdfa.DFA, error) {
	d, err := lexdfa.Empty(config)
	if err != nil {
		return nil, err
	}
	for _, r := range f.Rules {
		if err := d.Add(r.Pattern, r.Name); err != nil {
			return nil, &RuleError{Pos: r.Pos, Rule: r.Name, Err: err}
		}
	}
	return d, nil
}

// Names returns the distinct rule names in order of first appearance.
func (f *File) Names() []string {
	seen := make(map[string]bool, len(f.Rules))
	var out []string
	for _, r := range f.Rules {
		if !seen[r.Name] {
			seen[r.Name] = true
			out = append(out, r.Name)
		}
	}
	return out
}

// RuleError reports a rule that could not be compiled.
type RuleError struct {
	Pos  lexer.Position
	Rule string
	Err  error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("%s:%d: rule %s: %v", e.Pos.Filename, e.Pos.Line, e.Rule, e.Err)
}

// Unwrap returns the underlying error.
func (e *RuleError) Unwrap() error {
	return e.Err
}
