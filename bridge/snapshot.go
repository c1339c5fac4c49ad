package bridge

import (
	"roto-bridge/binding"
	"roto-bridge/session"
)

// ControlView is a copy of one binding that is safe to read from another
// goroutine.
type ControlView struct {
	Kind    binding.Kind
	Index   int
	State   binding.State
	Label   string
	Value   float64 // normalised 0..1
	Pressed bool
}

// TrackView is one track of the visible window.
type TrackView struct {
	Index    int
	Name     string
	Color    int
	Selected bool
	Mute     bool
	Solo     bool
	Arm      bool
	Foldable bool
	Folded   bool
}

// DeviceView is one device of the visible device page.
type DeviceView struct {
	Index    int
	Name     string
	Class    string
	Active   bool
	Selected bool
}

// Snapshot is a point-in-time view of the bridge for monitors. It shares no
// memory with the live session.
type Snapshot struct {
	Mode        Mode
	Connected   bool
	Learning    bool
	Locked      bool
	TotalTracks int
	FirstTrack  int
	Tracks      []TrackView
	TotalDevs   int
	FirstDevice int
	Devices     []DeviceView
	Controls    []ControlView
	Sent        int
	Playing     bool
	Recording   bool
}

// Snapshot copies the state a monitor shows. Like every other method it
// must run on the bridge goroutine.
func (b *Bridge) Snapshot() Snapshot {
	s := Snapshot{
		Mode:      b.ctx.Mode,
		Connected: b.ctx.connected,
		Learning:  b.ctx.learning,
		Locked:    b.ctx.lock.Active,
		Sent:      b.sent,
		Playing:   b.song.IsPlaying(),
		Recording: b.song.RecordMode(),
	}

	tracks := b.activeTracks()
	sel := b.song.SelectedTrack()
	s.TotalTracks = len(tracks)
	s.FirstTrack = b.activeWindow().First()
	start, end := b.activeWindow().Visible(len(tracks))
	for i := start; i < end; i++ {
		t := tracks[i]
		s.Tracks = append(s.Tracks, TrackView{
			Index:    i,
			Name:     t.Name(),
			Color:    t.ColorIndex(),
			Selected: session.Same(t, sel),
			Mute:     t.Mute(),
			Solo:     t.Solo(),
			Arm:      t.Arm(),
			Foldable: t.IsFoldable(),
			Folded:   t.IsFoldable() && t.FoldState(),
		})
	}

	devices := b.devices()
	cur := b.currentDevice()
	s.TotalDevs = len(devices)
	s.FirstDevice = b.ctx.devices.First()
	start, end = b.ctx.devices.Visible(len(devices))
	for i := start; i < end; i++ {
		d := devices[i]
		s.Devices = append(s.Devices, DeviceView{
			Index:    i,
			Name:     d.Name(),
			Class:    d.ClassName(),
			Active:   d.IsActive(),
			Selected: session.Same(d, cur),
		})
	}

	for _, bd := range b.controls.Snapshot() {
		v := ControlView{
			Kind:  bd.Kind,
			Index: bd.Index,
			State: bd.State,
			Label: bd.Label,
		}
		if bd.State == binding.Parameter {
			v.Value = float64(binding.Normalize14(bd.Param)) / 16383
		}
		if bd.Kind == binding.Button {
			v.Pressed = b.controls.Pressed(bd.Index)
		}
		s.Controls = append(s.Controls, v)
	}
	return s
}
