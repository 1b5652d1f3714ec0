package phase

import "time"

// Timer is the body of a timer-kind phase. It accumulates elapsed time
// across ticks and completes once the configured duration is reached.
//
// The final reported remaining value may be negative when the last tick
// overshoots the duration; the timer terminates strictly at or after the
// configured duration, never before.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
}

// NewTimer creates a Timer for the given duration.
func NewTimer(duration time.Duration) *Timer {
	return &Timer{duration: duration}
}

// Tick advances the timer by delta and returns the resulting status.
func (t *Timer) Tick(delta time.Duration) Status {
	t.elapsed += delta
	if t.elapsed >= t.duration {
		return StatusComplete
	}
	return StatusRunning
}

// Remaining returns duration minus accumulated elapsed time. It may be
// negative after the completing tick.
func (t *Timer) Remaining() time.Duration {
	return t.duration - t.elapsed
}

// Elapsed returns the accumulated elapsed time.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Done reports whether the timer has reached its duration.
func (t *Timer) Done() bool {
	return t.elapsed >= t.duration
}
