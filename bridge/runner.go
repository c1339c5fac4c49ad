package bridge

import (
	"context"
	rtdebug "runtime/debug"
	"time"

	"roto-bridge/debug"
)

// Runner owns the goroutine a Bridge runs on. Hardware messages, ticks and
// submitted closures are serialised through one channel.
type Runner struct {
	bridge  *Bridge
	tick    time.Duration
	inbox   chan func()
	updates chan Snapshot

	// Unhandled receives messages the bridge did not consume. It is called
	// on the runner goroutine.
	Unhandled func(raw []byte)
}

// NewRunner wraps b. A zero tick uses 500ms.
func NewRunner(b *Bridge, tick time.Duration) *Runner {
	if tick <= 0 {
		tick = 500 * time.Millisecond
	}
	return &Runner{
		bridge:  b,
		tick:    tick,
		inbox:   make(chan func(), 256),
		updates: make(chan Snapshot, 1),
	}
}

// Updates delivers a snapshot after every processed event. Stale snapshots
// are dropped when the reader falls behind.
func (r *Runner) Updates() <-chan Snapshot {
	return r.updates
}

// Post queues an inbound MIDI message. It is safe to call from the MIDI
// driver's goroutine; raw is copied.
func (r *Runner) Post(raw []byte) {
	msg := append([]byte(nil), raw...)
	r.inbox <- func() {
		if !r.bridge.HandleMessage(msg) && r.Unhandled != nil {
			r.Unhandled(msg)
		}
	}
}

// Do runs fn on the bridge goroutine and waits for it to finish or for ctx
// to end.
func (r *Runner) Do(ctx context.Context, fn func(b *Bridge)) error {
	done := make(chan struct{})
	select {
	case r.inbox <- func() { defer close(done); fn(r.bridge) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the bridge and processes events until ctx is done (blocking -
// run in goroutine). The bridge is closed on return.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.step(r.bridge.Start)
	defer r.bridge.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-r.inbox:
			r.step(fn)
		case <-ticker.C:
			r.step(r.bridge.Tick)
		}
	}
}

// step runs one event. A panic in a handler is logged and the engine keeps
// running.
func (r *Runner) step(fn func()) {
	defer func() {
		if v := recover(); v != nil {
			debug.Log("runner", "panic: %v\n%s", v, rtdebug.Stack())
		}
	}()
	fn()
	r.publish()
}

func (r *Runner) publish() {
	s := r.bridge.Snapshot()
	select {
	case r.updates <- s:
		return
	default:
	}
	// Replace the unread snapshot with the newer one.
	select {
	case <-r.updates:
	default:
	}
	select {
	case r.updates <- s:
	default:
	}
}
