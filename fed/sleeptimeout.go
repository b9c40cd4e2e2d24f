package fed

import "time"

// DefaultSleepTimeout is the default wall-clock timeout for polling waits.
const DefaultSleepTimeout = 10 * time.Second

// DefaultSleepInterval is the default sleep between polls.
const DefaultSleepInterval = 25 * time.Millisecond

// SleepTimeout pairs a polling sleep interval with a wall-clock deadline.
// Callers sleep between checks of an external condition and bail out once the
// deadline passes. Used by the scenario runner for real-time pacing.
type SleepTimeout struct {
	timeout  time.Duration
	interval time.Duration
	deadline time.Time
}

// NewSleepTimeout creates a timeout with the given deadline and poll
// interval. Non-positive values fall back to the defaults. The deadline is
// armed immediately.
func NewSleepTimeout(timeout, interval time.Duration) *SleepTimeout {
	if timeout <= 0 {
		timeout = DefaultSleepTimeout
	}
	if interval <= 0 {
		interval = DefaultSleepInterval
	}
	s := &SleepTimeout{timeout: timeout, interval: interval}
	s.Reset()
	return s
}

// Reset re-arms the deadline relative to the current wall-clock time.
func (s *SleepTimeout) Reset() { s.deadline = time.Now().Add(s.timeout) }

// Sleep blocks for one poll interval.
func (s *SleepTimeout) Sleep() { time.Sleep(s.interval) }

// TimedOut reports whether the wall-clock deadline has passed.
func (s *SleepTimeout) TimedOut() bool { return !time.Now().Before(s.deadline) }
