package session

// ChannelClass selects which track collection the mixer pages through.
type ChannelClass int

const (
	Audio ChannelClass = iota
	MasterReturn
)

func (c ChannelClass) String() string {
	if c == MasterReturn {
		return "MASTER_RETURN"
	}
	return "AUDIO"
}

// Other returns the alternate class.
func (c ChannelClass) Other() ChannelClass {
	if c == MasterReturn {
		return Audio
	}
	return MasterReturn
}

// Mirror answers the derived queries the bridge makes against a Song. It
// holds no state of its own: every call reads the song afresh.
type Mirror struct {
	song Song
}

func NewMirror(song Song) *Mirror {
	return &Mirror{song: song}
}

func (m *Mirror) Song() Song {
	return m.song
}

// Tracks returns the track list for a channel class. Hidden audio tracks
// (inside folded groups) are skipped unless showHidden is set. The master
// track closes the MASTER_RETURN list.
func (m *Mirror) Tracks(class ChannelClass, showHidden bool) []Track {
	if class == MasterReturn {
		returns := m.song.ReturnTracks()
		list := make([]Track, 0, len(returns)+1)
		list = append(list, returns...)
		if master := m.song.MasterTrack(); master != nil {
			list = append(list, master)
		}
		return list
	}
	all := m.song.Tracks()
	if showHidden {
		return all
	}
	list := make([]Track, 0, len(all))
	for _, t := range all {
		if t.IsVisible() {
			list = append(list, t)
		}
	}
	return list
}

// Locate finds t in the visible audio list first, then in the
// master/return list.
func (m *Mirror) Locate(t Track) (ChannelClass, int, bool) {
	if i := IndexOf(m.Tracks(Audio, false), t); i >= 0 {
		return Audio, i, true
	}
	if i := IndexOf(m.Tracks(MasterReturn, false), t); i >= 0 {
		return MasterReturn, i, true
	}
	return Audio, 0, false
}

// IsMaster reports whether t is the master track.
func (m *Mirror) IsMaster(t Track) bool {
	return Same(t, m.song.MasterTrack())
}

// VisibilityMask returns the visible flag of every audio track, hidden ones
// included. The DAW does not notify fold/visibility changes, so the bridge
// polls this.
func (m *Mirror) VisibilityMask() []bool {
	all := m.song.Tracks()
	mask := make([]bool, len(all))
	for i, t := range all {
		mask[i] = t.IsVisible()
	}
	return mask
}

// ExpandDevices flattens the device tree of a track depth first, keeping
// chain order: a rack comes before the devices of its chains, and each
// chain's devices come before those of the next chain.
func ExpandDevices(t Track) []Device {
	if t == nil {
		return nil
	}
	type cursor struct {
		devices []Device
		pos     int
	}
	var out []Device
	stack := []cursor{{devices: t.Devices()}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.pos >= len(top.devices) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.devices[top.pos]
		top.pos++
		out = append(out, d)
		if !d.CanHaveChains() {
			continue
		}
		var nested []Device
		for _, c := range d.Chains() {
			nested = append(nested, c.Devices()...)
		}
		if len(nested) > 0 {
			stack = append(stack, cursor{devices: nested})
		}
	}
	return out
}
