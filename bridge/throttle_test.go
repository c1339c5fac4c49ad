package bridge

import (
	"testing"
	"time"
)

func TestThrottle(t *testing.T) {
	base := time.Unix(0, 0)
	at := func(ms int) time.Time { return base.Add(time.Duration(ms) * time.Millisecond) }

	th := NewThrottle(150 * time.Millisecond)
	if !th.Allow(at(0)) {
		t.Fatalf("first notification refused")
	}
	if !th.Allow(at(10)) {
		t.Fatalf("refused without a mark")
	}
	th.Mark(at(10))
	if th.Allow(at(100)) {
		t.Fatalf("allowed inside the window")
	}
	if !th.Pending() {
		t.Fatalf("refused notification not pending")
	}

	calls := 0
	th.Flush(at(150), func() { calls++ })
	if calls != 0 {
		t.Fatalf("flushed inside the window")
	}
	th.Flush(at(200), func() { calls++ })
	if calls != 1 || th.Pending() {
		t.Fatalf("flush: calls = %d, pending = %v", calls, th.Pending())
	}
	th.Flush(at(400), func() { calls++ })
	if calls != 1 {
		t.Fatalf("flushed without a pending notification")
	}
}
