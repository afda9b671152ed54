package prefilter

// Tracker wraps a Prefilter and retires it when too few of its candidates
// turn out to be matches.
//
// A prefilter whose literals are frequent in the haystack costs more than
// it saves: every candidate still runs the automaton. The tracker counts
// candidates and confirmed matches, and once the ratio falls below the
// configured minimum it reports itself inactive. The caller then tries the
// automaton at every offset instead.
//
// A Tracker holds the statistics of one search and is not safe for
// concurrent use.
//
// Example usage:
//
//	tracker := prefilter.NewTracker(pf)
//	for tracker.IsActive() {
//	    pos := tracker.Find(haystack, start)
//	    if pos == -1 {
//	        break
//	    }
//	    if matchesAt(haystack, pos) {
//	        tracker.ConfirmMatch()
//	    }
//	    start = pos + 1
//	}
type Tracker struct {
	inner Prefilter

	candidates uint64
	confirms   uint64

	config         TrackerConfig
	lastCheckpoint uint64

	active bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is the number of candidates between two checks.
	// Default: 64
	CheckInterval uint64

	// MinEfficiency is the minimum ratio of confirms to candidates.
	// Default: 0.1 (10%)
	MinEfficiency float64

	// WarmupPeriod is the number of candidates seen before the first check.
	// Default: 128
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a tracker with the default configuration.
// Returns nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration.
// Returns nil if inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{
		inner:  inner,
		config: config,
		active: true,
	}
}

// Find returns the next candidate position, or -1 when there is none or the
// tracker is inactive.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.check()
	}
	return pos
}

// ConfirmMatch records that the last candidate was a match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the prefilter is still in use.
// A nil Tracker is never active.
func (t *Tracker) IsActive() bool {
	return t != nil && t.active
}

// Stats returns the tracking statistics.
func (t *Tracker) Stats() (candidates, confirms uint64, efficiency float64, active bool) {
	if t.candidates > 0 {
		efficiency = float64(t.confirms) / float64(t.candidates)
	}
	return t.candidates, t.confirms, efficiency, t.active
}

// Inner returns the wrapped prefilter.
func (t *Tracker) Inner() Prefilter {
	return t.inner
}

func (t *Tracker) check() {
	if t.candidates < t.config.WarmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.config.CheckInterval {
		return
	}
	t.lastCheckpoint = t.candidates

	if float64(t.confirms)/float64(t.candidates) < t.config.MinEfficiency {
		t.active = false
	}
}
