package engine

import "time"

// TimerMode selects whether a timer fires once or keeps wrapping.
type TimerMode int

const (
	Once TimerMode = iota
	Repeating
)

// Timer counts elapsed time toward a duration.
//
// A Once timer stays finished until Reset. A Repeating timer reports
// finished only on the tick its elapsed time wrapped past the duration.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     TimerMode
	finished bool
}

// NewTimer creates a stopped-at-zero timer.
func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{duration: d, mode: mode}
}

// Tick advances the timer by dt and reports whether it finished.
func (t *Timer) Tick(dt time.Duration) bool {
	if dt < 0 {
		dt = 0
	}

	if t.mode == Once {
		if t.finished {
			return true
		}
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.elapsed = t.duration
			t.finished = true
		}
		return t.finished
	}

	t.elapsed += dt
	t.finished = t.elapsed >= t.duration
	if t.finished {
		if t.duration > 0 {
			t.elapsed %= t.duration
		} else {
			t.elapsed = 0
		}
	}
	return t.finished
}

// Finished reports the result of the last Tick.
func (t *Timer) Finished() bool {
	return t.finished
}

// Reset rewinds the timer to zero elapsed.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
}

// SetDuration changes the target duration without touching elapsed time.
func (t *Timer) SetDuration(d time.Duration) {
	t.duration = d
}

// Duration returns the target duration.
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// Elapsed returns the time accumulated since the last reset or wrap.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}
