// Package turntimer implements a running/paused elapsed-time tracker,
// grounded on the original driver's Timer class — used to budget
// time-sliced analysis across a turn.
package turntimer

import "time"

// Timer accumulates elapsed wall-clock time across alternating
// running/paused periods. The zero value is paused with zero elapsed
// time.
type Timer struct {
	running bool
	started time.Time
	elapsed time.Duration
}

// Resume starts (or resumes) the timer. No-op if already running.
func (t *Timer) Resume() {
	if t.running {
		return
	}
	t.running = true
	t.started = time.Now()
}

// Pause stops the timer, folding the running period into elapsed. No-op
// if already paused.
func (t *Timer) Pause() {
	if !t.running {
		return
	}
	t.elapsed += time.Since(t.started)
	t.running = false
}

// TogglePause flips the running state.
func (t *Timer) TogglePause() {
	if t.running {
		t.Pause()
	} else {
		t.Resume()
	}
}

// Elapsed returns total accumulated time, including the current running
// period if any.
func (t *Timer) Elapsed() time.Duration {
	if !t.running {
		return t.elapsed
	}
	return t.elapsed + time.Since(t.started)
}

// Running reports whether the timer is currently running.
func (t *Timer) Running() bool { return t.running }
