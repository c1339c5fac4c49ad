package bridge

import (
	"context"
	"sync"
	"testing"
	"time"

	"roto-bridge/sysex"
)

// lockedRecorder is a recorder that may be read from the test goroutine.
type lockedRecorder struct {
	mu sync.Mutex
	recorder
}

func (r *lockedRecorder) SendSysex(m sysex.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recorder.SendSysex(m)
}

func (r *lockedRecorder) SendCC(channel, cc, value uint8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recorder.SendCC(channel, cc, value)
}

func TestRunner(t *testing.T) {
	song := newSong(3)
	out := &lockedRecorder{}
	r := NewRunner(New(song, out, Options{}), 10*time.Millisecond)

	var (
		mu        sync.Mutex
		unhandled [][]byte
	)
	r.Unhandled = func(raw []byte) {
		mu.Lock()
		unhandled = append(unhandled, raw)
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	r.Post(frame(sysex.GroupGeneral, sysex.RotoDAWConnected))
	r.Post([]byte{0xF8})

	var connected bool
	err := r.Do(ctx, func(b *Bridge) { connected = b.ctx.connected })
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !connected {
		t.Fatalf("bridge not connected after ROTO_DAW_CONNECTED")
	}

	select {
	case s := <-r.Updates():
		if !s.Connected || s.TotalTracks != 3 {
			t.Fatalf("snapshot = %+v", s)
		}
	case <-time.After(time.Second):
		t.Fatalf("no snapshot published")
	}

	// A panicking closure does not stop the runner.
	if err := r.Do(ctx, func(b *Bridge) { panic("boom") }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if err := r.Do(ctx, func(b *Bridge) {}); err != nil {
		t.Fatalf("Do after panic: %v", err)
	}

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(unhandled) != 1 || unhandled[0][0] != 0xF8 {
		t.Fatalf("unhandled = %v, want the clock byte", unhandled)
	}
	if song.Listeners() != 0 {
		t.Fatalf("runner left %d listeners", song.Listeners())
	}
}
