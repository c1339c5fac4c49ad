package memdaw

import (
	"roto-bridge/session"
)

// Mixer is a track's channel strip.
type Mixer struct {
	volume  *Parameter
	panning *Parameter
	sends   []*Parameter
}

func newMixer() *Mixer {
	return &Mixer{
		volume:  NewParameter("Track Volume", 0, 1, 0.85),
		panning: NewParameter("Track Panning", -1, 1, 0),
	}
}

func (m *Mixer) Volume() session.Parameter  { return m.volume }
func (m *Mixer) Panning() session.Parameter { return m.panning }

func (m *Mixer) Sends() []session.Parameter {
	out := make([]session.Parameter, len(m.sends))
	for i, p := range m.sends {
		out[i] = p
	}
	return out
}

// Send returns the concrete send parameter i.
func (m *Mixer) Send(i int) *Parameter {
	return m.sends[i]
}

func (m *Mixer) addSend(name string) {
	m.sends = append(m.sends, NewParameter(name, 0, 1, 0))
}

// Track is an audio, MIDI, group, return or master track.
type Track struct {
	bus *bus

	id       string
	name     string
	color    int
	foldable bool
	folded   bool
	group    *Track
	mute     bool
	solo     bool
	arm      bool
	canArm   bool
	mixer    *Mixer
	devices  []*Device
	selected *Device
}

// NewTrack returns an armable track holding devices. The first device
// starts out selected.
func NewTrack(name string, color int, devices ...*Device) *Track {
	t := &Track{
		id:      newID(),
		name:    name,
		color:   color,
		canArm:  true,
		mixer:   newMixer(),
		devices: devices,
	}
	if len(devices) > 0 {
		t.selected = devices[0]
	}
	t.attach(nil)
	return t
}

// NewGroupTrack returns a foldable track that cannot be armed.
func NewGroupTrack(name string, color int) *Track {
	t := NewTrack(name, color)
	t.foldable = true
	t.canArm = false
	return t
}

func (t *Track) ID() string       { return t.id }
func (t *Track) Name() string     { return t.name }
func (t *Track) ColorIndex() int  { return t.color }
func (t *Track) IsFoldable() bool { return t.foldable }
func (t *Track) FoldState() bool  { return t.folded }
func (t *Track) Mute() bool       { return t.mute }
func (t *Track) Solo() bool       { return t.solo }
func (t *Track) Arm() bool        { return t.arm }
func (t *Track) CanBeArmed() bool { return t.canArm }
func (t *Track) Mixer() session.Mixer {
	return t.mixer
}

// Strip returns the concrete mixer.
func (t *Track) Strip() *Mixer {
	return t.mixer
}

// IsVisible is false while any enclosing group is folded.
func (t *Track) IsVisible() bool {
	for g := t.group; g != nil; g = g.group {
		if g.folded {
			return false
		}
	}
	return true
}

// SetGroup nests t inside g.
func (t *Track) SetGroup(g *Track) {
	t.group = g
}

// SetFoldState folds or unfolds a group. Like the host it models, this
// fires no notification.
func (t *Track) SetFoldState(folded bool) {
	if t.foldable {
		t.folded = folded
	}
}

func (t *Track) SetMute(on bool) {
	if t.mute == on {
		return
	}
	t.mute = on
	t.bus.notify(t.id, session.AttrMute)
}

func (t *Track) SetSolo(on bool) {
	if t.solo == on {
		return
	}
	t.solo = on
	t.bus.notify(t.id, session.AttrSolo)
}

func (t *Track) SetArm(on bool) {
	if !t.canArm || t.arm == on {
		return
	}
	t.arm = on
	t.bus.notify(t.id, session.AttrArm)
}

func (t *Track) Rename(name string) {
	if t.name == name {
		return
	}
	t.name = name
	t.bus.notify(t.id, session.AttrName)
}

func (t *Track) SetColor(color int) {
	if t.color == color {
		return
	}
	t.color = color
	t.bus.notify(t.id, session.AttrColor)
}

func (t *Track) Devices() []session.Device {
	return devicesOf(t.devices)
}

func (t *Track) SelectedDevice() session.Device {
	if t.selected == nil {
		return nil
	}
	return t.selected
}

// AddDevice appends d to the top level device chain.
func (t *Track) AddDevice(d *Device) {
	t.devices = append(t.devices, d)
	d.attach(t.bus, t)
	if t.selected == nil {
		t.selectDevice(d)
	}
}

// RemoveDevice drops a top level device. When it was selected, the first
// remaining device takes over.
func (t *Track) RemoveDevice(d *Device) {
	for i, x := range t.devices {
		if x != d {
			continue
		}
		t.devices = append(t.devices[:i:i], t.devices[i+1:]...)
		if t.selected == d {
			var next *Device
			if len(t.devices) > 0 {
				next = t.devices[0]
			}
			t.selectDevice(next)
		}
		return
	}
}

func (t *Track) selectDevice(d *Device) {
	if t.selected == d {
		return
	}
	t.selected = d
	t.bus.notify(t.id, session.AttrSelectedDevice)
}

func (t *Track) attach(b *bus) {
	t.bus = b
	for _, p := range t.params() {
		p.bus = b
	}
	for _, d := range t.devices {
		d.attach(b, t)
	}
}

func (t *Track) params() []*Parameter {
	list := []*Parameter{t.mixer.volume, t.mixer.panning}
	return append(list, t.mixer.sends...)
}
