package bridge

import "time"

// Throttle coalesces a storm of notifications of one class. A notification
// arriving inside the window after the last processed one is not dropped:
// it is remembered and replayed by the next tick once the window is over,
// so the final state always reaches the hardware.
type Throttle struct {
	window  time.Duration
	last    time.Time
	pending bool
}

func NewThrottle(window time.Duration) *Throttle {
	return &Throttle{window: window}
}

// Allow reports whether a notification at now may be processed. A refused
// one is marked pending.
func (t *Throttle) Allow(now time.Time) bool {
	if t.last.IsZero() || now.Sub(t.last) > t.window {
		return true
	}
	t.pending = true
	return false
}

// Mark starts a new window at now.
func (t *Throttle) Mark(now time.Time) {
	t.last = now
}

// Pending reports whether a refused notification awaits replay.
func (t *Throttle) Pending() bool {
	return t.pending
}

// Flush runs fn for a pending notification once the window allows it.
func (t *Throttle) Flush(now time.Time, fn func()) {
	if !t.pending || !t.Allow(now) {
		return
	}
	t.pending = false
	fn()
}
