// Command lexdfa compiles a rule file into an automaton and reports which
// rule accepts each input.
//
// Usage:
//
//	lexdfa -rules tokens.lex [-dot out.dot] [-tokenize] [-log-level debug] input...
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/coregx/lexdfa"
	"github.com/coregx/lexdfa/rules"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lexdfa", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rulesPath := fs.String("rules", "", "path to the rule file")
	dotPath := fs.String("dot", "", "write the automaton as Graphviz DOT to this file")
	tokenize := fs.Bool("tokenize", false, "split each input into tokens instead of matching it whole")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *rulesPath == "" {
		fmt.Fprintln(stderr, "lexdfa: -rules is required")
		fs.Usage()
		return 2
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: parseLogLevel(*logLevel),
	}))
	slog.SetDefault(logger)

	d, err := compile(*rulesPath, logger)
	if err != nil {
		fmt.Fprintf(stderr, "lexdfa: %v\n", err)
		return 1
	}
	logger.Info("rules compiled", "rules", *rulesPath, "states", d.Size())

	if *dotPath != "" {
		if err := writeDOT(d, *dotPath); err != nil {
			fmt.Fprintf(stderr, "lexdfa: %v\n", err)
			return 1
		}
	}

	for _, input := range fs.Args() {
		if *tokenize {
			printTokens(stdout, d, input)
			continue
		}
		if rule, ok := d.AcceptingID(input); ok {
			fmt.Fprintf(stdout, "%s\t%s\n", input, rule)
		} else if d.Accepts(input) {
			fmt.Fprintf(stdout, "%s\t(accepted)\n", input)
		} else {
			fmt.Fprintf(stdout, "%s\tno match\n", input)
		}
	}
	return 0
}

func compile(path string, logger *slog.Logger) (*lexdfa.DFA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file, err := rules.Load(path, f)
	if err != nil {
		return nil, err
	}

	config := lexdfa.DefaultConfig()
	config.Logger = logger
	return file.Compile(config)
}

func writeDOT(d *lexdfa.DFA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.WriteDOT(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printTokens(w io.Writer, d *lexdfa.DFA, input string) {
	data := []byte(input)
	tokens, err := d.Tokenize(data)
	for _, tok := range tokens {
		fmt.Fprintf(w, "%s\t%q\n", tok.Rule, tok.Bytes(data))
	}
	if err != nil {
		fmt.Fprintf(w, "error\t%v\n", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
