package memdaw

import (
	"errors"
	"testing"

	"roto-bridge/session"
)

const testSet = `
exclusive_solo: true
exclusive_arm: false
returns:
  - {name: A-Reverb, color: 12}
  - {name: B-Delay, color: 13}
tracks:
  - name: Drums
    color: 5
    group: true
    folded: true
  - name: Kick
    parent: Drums
    devices:
      - class: OriginalSimpler
        name: Kick
  - name: Keys
    color: 20
    devices:
      - class: InstrumentGroupDevice
        name: Instrument Rack
        mapped: [1, 3]
        chains:
          - devices:
              - {class: InstrumentVector, name: Wavetable}
              - {class: Reverb, name: Reverb, off: true}
          - devices:
              - {class: Operator, name: Operator}
      - class: PluginDevice
        name: Diva
        params:
          - {name: Cutoff, min: 0, max: 127, value: 64}
          - {name: Mode, items: [A, B, C], value: 1}
selected: Keys
`

func TestParseSet(t *testing.T) {
	s, err := Parse([]byte(testSet))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !s.ExclusiveSolo() || s.ExclusiveArm() {
		t.Fatalf("exclusive flags = %v/%v", s.ExclusiveSolo(), s.ExclusiveArm())
	}
	if got := len(s.Tracks()); got != 3 {
		t.Fatalf("tracks = %d, want 3", got)
	}
	if got := len(s.ReturnTracks()); got != 2 {
		t.Fatalf("returns = %d, want 2", got)
	}
	if got := s.SelectedTrack().Name(); got != "Keys" {
		t.Fatalf("selected = %q", got)
	}
	if s.Track(1).IsVisible() {
		t.Fatal("track inside folded group should be hidden")
	}
	if n := len(s.Track(2).Mixer().Sends()); n != 2 {
		t.Fatalf("sends = %d, want 2", n)
	}

	keys := s.Track(2)
	devices := session.ExpandDevices(keys)
	want := []string{"Instrument Rack", "Wavetable", "Reverb", "Operator", "Diva"}
	if len(devices) != len(want) {
		t.Fatalf("expanded %d devices, want %d", len(devices), len(want))
	}
	for i, d := range devices {
		if d.Name() != want[i] {
			t.Errorf("device %d = %q, want %q", i, d.Name(), want[i])
		}
	}
	if devices[2].IsActive() {
		t.Error("reverb should be off")
	}
	mapped := devices[0].MacrosMapped()
	if !mapped[0] || mapped[1] || !mapped[2] {
		t.Errorf("macros mapped = %v", mapped[:4])
	}
	diva := devices[4]
	params := diva.Parameters()
	if params[0].Name() != DeviceOnName || params[1].Name() != "Cutoff" {
		t.Fatalf("params = %q, %q", params[0].Name(), params[1].Name())
	}
	if !params[2].IsQuantized() || len(params[2].ValueItems()) != 3 {
		t.Error("Mode should be quantized with 3 items")
	}
}

func TestParseUnknownGroup(t *testing.T) {
	_, err := Parse([]byte("tracks:\n  - {name: A, parent: Nope}\n"))
	if !errors.Is(err, ErrUnknownGroup) {
		t.Fatalf("err = %v, want ErrUnknownGroup", err)
	}
}

func TestNotificationsAreEdgeTriggered(t *testing.T) {
	s := New()
	tr := NewTrack("A", 1)
	s.AddTrack(tr)

	mutes := 0
	cancel := s.Subscribe(tr.ID(), session.AttrMute, func() { mutes++ })
	tr.SetMute(true)
	tr.SetMute(true)
	tr.SetMute(false)
	if mutes != 2 {
		t.Fatalf("mute notifications = %d, want 2", mutes)
	}
	cancel()
	tr.SetMute(true)
	if mutes != 2 {
		t.Fatal("notification after cancel")
	}
	if s.Listeners() != 0 {
		t.Fatalf("listeners = %d after cancel", s.Listeners())
	}
}

func TestSelectDevice(t *testing.T) {
	s := New()
	a := NewTrack("A", 1, NewDevice("Eq8", "EQ Eight"))
	inner := NewDevice("Reverb", "Reverb")
	rack := NewRack("AudioEffectGroupDevice", "Audio Effect Rack", NewChain(inner))
	b := NewTrack("B", 2, rack)
	s.AddTrack(a, b)
	s.SelectTrack(a)
	s.SelectParameter(a.devices[0].Param(0))

	var trackSel, devSel, paramSel int
	s.Subscribe(session.SongEntity, session.AttrSelectedTrack, func() { trackSel++ })
	s.Subscribe(b.ID(), session.AttrSelectedDevice, func() { devSel++ })
	s.Subscribe(session.SongEntity, session.AttrSelectedParameter, func() { paramSel++ })

	s.SelectDevice(inner)
	if !session.Same[session.Track](s.SelectedTrack(), b) {
		t.Fatal("owning track not selected")
	}
	if !session.Same(b.SelectedDevice(), session.Device(inner)) {
		t.Fatal("nested device not selected")
	}
	if s.SelectedParameter() != nil {
		t.Fatal("selected parameter not cleared")
	}
	if trackSel != 1 || devSel != 1 || paramSel != 1 {
		t.Fatalf("notifications track=%d device=%d param=%d", trackSel, devSel, paramSel)
	}
}

func TestDeviceOnDrivesActivation(t *testing.T) {
	s := New()
	d := NewDevice("Reverb", "Reverb")
	s.AddTrack(NewTrack("A", 1, d))
	fired := 0
	s.Subscribe(d.ID(), session.AttrIsActive, func() { fired++ })

	d.Param(0).SetValue(0)
	if d.IsActive() || fired != 1 {
		t.Fatalf("active=%v fired=%d", d.IsActive(), fired)
	}
	d.SetActive(true)
	if !d.IsActive() || fired != 2 {
		t.Fatalf("active=%v fired=%d", d.IsActive(), fired)
	}
}

func TestRemoveSelectedTrack(t *testing.T) {
	s := New()
	a, b, c := NewTrack("A", 1), NewTrack("B", 2), NewTrack("C", 3)
	s.AddTrack(a, b, c)
	s.SelectTrack(c)
	s.RemoveTrack(c)
	if got := s.SelectedTrack().Name(); got != "B" {
		t.Fatalf("selected after removing last = %q, want B", got)
	}
	s.RemoveTrack(a)
	s.RemoveTrack(b)
	if !session.Same(s.SelectedTrack(), s.MasterTrack()) {
		t.Fatal("master should be selected once all tracks are gone")
	}
}

func TestGroupFolding(t *testing.T) {
	s := New()
	g := NewGroupTrack("G", 1)
	child := NewTrack("C", 2)
	child.SetGroup(g)
	s.AddTrack(g, child)

	m := session.NewMirror(s)
	if n := len(m.Tracks(session.Audio, false)); n != 2 {
		t.Fatalf("visible = %d, want 2", n)
	}
	g.SetFoldState(true)
	if n := len(m.Tracks(session.Audio, false)); n != 1 {
		t.Fatalf("visible after fold = %d, want 1", n)
	}
	if n := len(m.Tracks(session.Audio, true)); n != 2 {
		t.Fatalf("with hidden = %d, want 2", n)
	}
	mask := m.VisibilityMask()
	if !mask[0] || mask[1] {
		t.Fatalf("mask = %v", mask)
	}
	if child.CanBeArmed() == g.CanBeArmed() {
		t.Fatal("group tracks cannot be armed")
	}
}
