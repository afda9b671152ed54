package eager

import "log/slog"

// Config configures automaton construction.
type Config struct {
	// MaxStates is the maximum number of states a Builder may allocate,
	// counting the initial state.
	//
	// Default: 100,000 states
	MaxStates uint32

	// MaxRepeat is the largest upper bound accepted in a {m,n} quantifier.
	// Bounded repetition is expanded into one state per repetition, so this
	// caps the cost of a single entry.
	//
	// Default: 1,000
	MaxRepeat int

	// Atomic makes Build all-or-nothing: every mutation of a failed Build is
	// undone, including state ids handed out during the call.
	//
	// Default: true
	Atomic bool

	// Logger receives debug events about builds and rollbacks.
	// nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates: 100_000,
		MaxRepeat: 1_000,
		Atomic:    true,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.MaxStates == 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be > 0",
		}
	}

	if c.MaxStates >= uint32(InvalidState) {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be < InvalidState",
		}
	}

	if c.MaxRepeat <= 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxRepeat must be > 0",
		}
	}

	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates uint32) Config {
	c.MaxStates = maxStates
	return c
}

// WithMaxRepeat returns a new config with the specified repetition limit
func (c Config) WithMaxRepeat(maxRepeat int) Config {
	c.MaxRepeat = maxRepeat
	return c
}

// WithAtomic returns a new config with rollback on failure enabled/disabled
func (c Config) WithAtomic(enabled bool) Config {
	c.Atomic = enabled
	return c
}

// WithLogger returns a new config with the specified logger
func (c Config) WithLogger(logger *slog.Logger) Config {
	c.Logger = logger
	return c
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
