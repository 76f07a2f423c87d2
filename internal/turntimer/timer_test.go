package turntimer

import (
	"testing"
	"time"
)

func TestTimerAccumulatesAcrossPauses(t *testing.T) {
	var timer Timer
	timer.Resume()
	time.Sleep(5 * time.Millisecond)
	timer.Pause()
	first := timer.Elapsed()
	if first <= 0 {
		t.Fatalf("expected positive elapsed time after a run, got %v", first)
	}

	// Paused: elapsed should not grow.
	time.Sleep(5 * time.Millisecond)
	if timer.Elapsed() != first {
		t.Fatalf("elapsed time changed while paused: %v != %v", timer.Elapsed(), first)
	}

	timer.Resume()
	time.Sleep(5 * time.Millisecond)
	timer.Pause()
	if timer.Elapsed() <= first {
		t.Fatalf("expected elapsed time to grow after resuming: %v <= %v", timer.Elapsed(), first)
	}
}

func TestTogglePause(t *testing.T) {
	var timer Timer
	if timer.Running() {
		t.Fatalf("zero-value timer should start paused")
	}
	timer.TogglePause()
	if !timer.Running() {
		t.Fatalf("expected TogglePause to start the timer")
	}
	timer.TogglePause()
	if timer.Running() {
		t.Fatalf("expected TogglePause to pause the timer")
	}
}
