package session_test

import (
	"testing"

	"roto-bridge/session"
	"roto-bridge/session/memdaw"
)

func TestMirrorTrackLists(t *testing.T) {
	s := memdaw.New()
	a, b := memdaw.NewTrack("A", 1), memdaw.NewTrack("B", 2)
	ret := memdaw.NewTrack("A-Reverb", 3)
	s.AddTrack(a, b)
	s.AddReturnTrack(ret)
	m := session.NewMirror(s)

	mr := m.Tracks(session.MasterReturn, false)
	if len(mr) != 2 || mr[0].Name() != "A-Reverb" || !m.IsMaster(mr[1]) {
		t.Fatalf("master/return list = %v", names(mr))
	}

	tests := []struct {
		track session.Track
		class session.ChannelClass
		index int
	}{
		{a, session.Audio, 0},
		{b, session.Audio, 1},
		{ret, session.MasterReturn, 0},
		{s.MasterTrack(), session.MasterReturn, 1},
	}
	for _, tt := range tests {
		class, idx, ok := m.Locate(tt.track)
		if !ok || class != tt.class || idx != tt.index {
			t.Errorf("Locate(%s) = %v %d %v, want %v %d", tt.track.Name(), class, idx, ok, tt.class, tt.index)
		}
	}
	if _, _, ok := m.Locate(memdaw.NewTrack("stray", 0)); ok {
		t.Error("Locate found a track outside the song")
	}
}

func TestExpandDevicesNested(t *testing.T) {
	leaf := func(n string) *memdaw.Device { return memdaw.NewDevice("Eq8", n) }
	inner := memdaw.NewRack("AudioEffectGroupDevice", "inner", memdaw.NewChain(leaf("c"), leaf("d")))
	outer := memdaw.NewRack("AudioEffectGroupDevice", "outer",
		memdaw.NewChain(leaf("a"), inner),
		memdaw.NewChain(leaf("b")),
	)
	tr := memdaw.NewTrack("T", 0, outer, leaf("e"))

	// Chains of a rack are concatenated before descending further.
	want := []string{"outer", "a", "inner", "c", "d", "b", "e"}
	got := session.ExpandDevices(tr)
	if len(got) != len(want) {
		t.Fatalf("got %d devices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name() != want[i] {
			t.Errorf("device %d = %s, want %s", i, got[i].Name(), want[i])
		}
	}
	if session.ExpandDevices(nil) != nil {
		t.Error("nil track should expand to nothing")
	}
}

func TestSubscriptionsRetain(t *testing.T) {
	s := memdaw.New()
	a, b := memdaw.NewTrack("A", 1), memdaw.NewTrack("B", 2)
	s.AddTrack(a, b)

	subs := session.NewSubscriptions(s)
	calls := 0
	for _, tr := range []*memdaw.Track{a, b} {
		subs.Add(tr.ID(), session.AttrName, func() { calls++ })
		subs.Add(tr.ID(), session.AttrColor, func() { calls++ })
	}
	if subs.Len() != 2 || s.Listeners() != 4 {
		t.Fatalf("len=%d listeners=%d", subs.Len(), s.Listeners())
	}

	subs.Retain(map[string]bool{a.ID(): true})
	if subs.Has(b.ID()) || !subs.Has(a.ID()) {
		t.Fatal("Retain kept the wrong entries")
	}
	b.Rename("B2")
	a.Rename("A2")
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	subs.Clear()
	if s.Listeners() != 0 {
		t.Fatalf("listeners after Clear = %d", s.Listeners())
	}
}

func TestSameHandlesNil(t *testing.T) {
	a := memdaw.NewTrack("A", 1)
	var none session.Track
	if session.Same(none, session.Track(a)) || !session.Same(none, none) {
		t.Fatal("nil handling")
	}
	if session.IndexOf([]session.Track{a}, none) != -1 {
		t.Fatal("IndexOf(nil) should be -1")
	}
}

func names(list []session.Track) []string {
	out := make([]string, len(list))
	for i, tr := range list {
		out[i] = tr.Name()
	}
	return out
}
