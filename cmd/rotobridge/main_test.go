package main

import (
	"context"
	"testing"
	"time"

	"roto-bridge/midi"
	"roto-bridge/sysex"
)

func TestDemoSetLoads(t *testing.T) {
	song, err := loadSong("")
	if err != nil {
		t.Fatalf("demo set: %v", err)
	}
	if got := len(song.Tracks()); got != 10 {
		t.Errorf("demo set has %d tracks, want 10", got)
	}
	if got := len(song.ReturnTracks()); got != 2 {
		t.Errorf("demo set has %d returns, want 2", got)
	}
	if sel := song.SelectedTrack(); sel == nil || sel.Name() != "Bass" {
		t.Errorf("selected track = %v, want Bass", sel)
	}
}

func TestLoadThemeDefault(t *testing.T) {
	th, err := loadTheme("")
	if err != nil {
		t.Fatal(err)
	}
	if th.Tracks.Name != "Live" {
		t.Errorf("default palette = %q", th.Tracks.Name)
	}
}

type probeController struct {
	msgs chan []byte
	sent []sysex.Message
}

func (p *probeController) ID() string                   { return "probe" }
func (p *probeController) Type() midi.ControllerType    { return midi.ControllerRoto }
func (p *probeController) Messages() <-chan []byte      { return p.msgs }
func (p *probeController) SendCC(ch, cc, v uint8) error { return nil }
func (p *probeController) Close() error                 { return nil }

func (p *probeController) SendSysex(m sysex.Message) error {
	p.sent = append(p.sent, m)
	return nil
}

func TestProbeAnswersPing(t *testing.T) {
	c := &probeController{msgs: make(chan []byte, 2)}
	c.msgs <- sysex.New(sysex.GroupGeneral, sysex.PingDAW).Encode()
	c.msgs <- []byte{0xBF, 12, 1}
	close(c.msgs)

	if err := probe(context.Background(), c, time.Second); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if len(c.sent) != 2 {
		t.Fatalf("probe sent %d frames, want 2", len(c.sent))
	}
	if c.sent[0].Command != sysex.DAWStarted || c.sent[1].Command != sysex.DAWPingResponse {
		t.Errorf("probe sent %v", c.sent)
	}
}
