package fed

import (
	"testing"
	"time"
)

func TestSleepTimeout_DeadlineExpires(t *testing.T) {
	st := NewSleepTimeout(20*time.Millisecond, time.Millisecond)
	if st.TimedOut() {
		t.Fatal("timed out immediately after arming")
	}
	for !st.TimedOut() {
		st.Sleep()
	}
	// Reset re-arms relative to now.
	st.Reset()
	if st.TimedOut() {
		t.Error("timed out immediately after reset")
	}
}

func TestSleepTimeout_DefaultsApplied(t *testing.T) {
	st := NewSleepTimeout(0, 0)
	if st.timeout != DefaultSleepTimeout {
		t.Errorf("timeout: got %v, want default", st.timeout)
	}
	if st.interval != DefaultSleepInterval {
		t.Errorf("interval: got %v, want default", st.interval)
	}
}
