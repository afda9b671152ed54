package lexdfa

import (
	"log/slog"

	"github.com/coregx/lexdfa/dfa/eager"
	"github.com/coregx/lexdfa/literal"
)

// Config controls automaton construction and search.
//
// Example:
//
//	config := lexdfa.DefaultConfig()
//	config.EnablePrefilter = false // Try the automaton at every offset
//	d, err := lexdfa.NewWithConfig(`[a-z]+`, "IDENT", config)
type Config struct {
	// MaxStates caps the number of states of the automaton.
	// Default: 100,000
	MaxStates uint32

	// MaxRepeat is the largest upper bound accepted in a {m,n} quantifier.
	// Default: 1,000
	MaxRepeat int

	// Atomic makes New and Add all-or-nothing: a failed call leaves the
	// automaton exactly as it was.
	// Default: true
	Atomic bool

	// EnablePrefilter enables literal prefix search in Find, FindAll and
	// FindString. When false, the automaton is tried at every offset.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals limits the number of prefixes extracted for the prefilter.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen limits the length in bytes of each prefix.
	// Default: 16
	MaxLiteralLen int

	// Logger receives debug events about added rules, rollbacks and
	// prefilter selection. nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates:       100_000,
		MaxRepeat:       1_000,
		Atomic:          true,
		EnablePrefilter: true,
		MaxLiterals:     64,
		MaxLiteralLen:   16,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxStates: at least 1
//   - MaxRepeat: at least 1
//   - MaxLiterals: 1 to 1,000 (when EnablePrefilter)
//   - MaxLiteralLen: 1 to 64 (when EnablePrefilter)
func (c Config) Validate() error {
	if c.MaxStates < 1 {
		return &ConfigError{Field: "MaxStates", Message: "must be at least 1"}
	}
	if c.MaxRepeat < 1 {
		return &ConfigError{Field: "MaxRepeat", Message: "must be at least 1"}
	}

	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{Field: "MaxLiterals", Message: "must be between 1 and 1,000"}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 64 {
			return &ConfigError{Field: "MaxLiteralLen", Message: "must be between 1 and 64"}
		}
	}

	eagerConfig := c.eager()
	return eagerConfig.Validate()
}

func (c Config) eager() eager.Config {
	return eager.Config{
		MaxStates: c.MaxStates,
		MaxRepeat: c.MaxRepeat,
		Atomic:    c.Atomic,
		Logger:    c.Logger,
	}
}

func (c Config) literal() literal.Config {
	config := literal.DefaultConfig()
	config.MaxLiterals = c.MaxLiterals
	config.MaxLiteralLen = c.MaxLiteralLen
	return config
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "lexdfa: invalid config: " + e.Field + ": " + e.Message
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
