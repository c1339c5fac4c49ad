package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"roto-bridge/binding"
	"roto-bridge/bridge"
	"roto-bridge/midi"
	"roto-bridge/session/memdaw"
	"roto-bridge/theme"
)

func startRunner(t *testing.T) (*bridge.Runner, *memdaw.Song) {
	t.Helper()
	song := memdaw.New()
	song.AddTrack(memdaw.NewTrack("Drums", 14), memdaw.NewTrack("Bass", 2))
	b := bridge.New(song, &midi.Switch{}, bridge.Options{})
	r := bridge.NewRunner(b, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return r, song
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func snapshot(t *testing.T, r *bridge.Runner) bridge.Snapshot {
	t.Helper()
	var s bridge.Snapshot
	if err := r.Do(context.Background(), func(b *bridge.Bridge) { s = b.Snapshot() }); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestViewShowsTracks(t *testing.T) {
	r, _ := startRunner(t)
	m := NewModel(r, nil, theme.New(nil), binding.DefaultLayout)

	if !strings.Contains(m.View(), "starting") {
		t.Fatalf("view before first snapshot = %q", m.View())
	}

	next, _ := m.Update(SnapshotMsg(snapshot(t, r)))
	view := next.View()
	for _, want := range []string{"Drums", "Bass", "MIXER/ALL", "tracks 1-2 of 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestKeysDriveTheBridge(t *testing.T) {
	r, song := startRunner(t)
	var m tea.Model = NewModel(r, nil, theme.New(nil), binding.DefaultLayout)

	m, _ = m.Update(key("c"))
	if s := snapshot(t, r); !s.Connected {
		t.Fatalf("c did not connect the bridge")
	}

	m, _ = m.Update(key(" "))
	if s := snapshot(t, r); !s.Playing {
		t.Errorf("space did not start playback")
	}

	// Button 1 mutes track 1 in the default MUTE button mode.
	m.Update(key("1"))
	snapshot(t, r)
	if !song.Track(0).Mute() {
		t.Errorf("button 1 did not mute track 1")
	}

	m, _ = m.Update(key("tab"))
	if s := snapshot(t, r); s.Mode.Active != bridge.ModePlugin {
		t.Errorf("tab left mode at %v", s.Mode)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Errorf("q returned no command")
	}
}
