package memdaw

import (
	"roto-bridge/session"
)

// Song is an in-memory live set. It is not safe for concurrent use; the
// bridge runner owns it.
type Song struct {
	bus *bus

	tracks   []*Track
	returns  []*Track
	master   *Track
	selected *Track
	param    *Parameter

	exclusiveSolo bool
	exclusiveArm  bool

	playing       bool
	recordMode    bool
	sessionRecord bool
	loop          bool
	punchIn       bool
	punchOut      bool
	reEnable      bool
	position      float64
}

// New returns an empty set with a master track and exclusive solo and
// arm, the host defaults.
func New() *Song {
	s := &Song{bus: newBus(), exclusiveSolo: true, exclusiveArm: true}
	s.master = NewTrack("Master", 0)
	s.master.canArm = false
	s.master.attach(s.bus)
	s.selected = s.master
	return s
}

func (s *Song) Tracks() []session.Track       { return tracksOf(s.tracks) }
func (s *Song) ReturnTracks() []session.Track { return tracksOf(s.returns) }
func (s *Song) MasterTrack() session.Track    { return s.master }
func (s *Song) ExclusiveSolo() bool           { return s.exclusiveSolo }
func (s *Song) ExclusiveArm() bool            { return s.exclusiveArm }

// Master returns the concrete master track.
func (s *Song) Master() *Track {
	return s.master
}

// Track returns the concrete audio track i.
func (s *Song) Track(i int) *Track {
	return s.tracks[i]
}

// Return returns the concrete return track i.
func (s *Song) Return(i int) *Track {
	return s.returns[i]
}

func (s *Song) SetExclusive(solo, arm bool) {
	s.exclusiveSolo, s.exclusiveArm = solo, arm
}

// AddTrack appends audio tracks. Each gets one send per return track.
func (s *Song) AddTrack(tracks ...*Track) {
	for _, t := range tracks {
		for _, r := range s.returns {
			t.mixer.addSend(r.name)
		}
		t.attach(s.bus)
		s.tracks = append(s.tracks, t)
	}
	s.bus.notify(session.SongEntity, session.AttrTracks)
}

// AddReturnTrack appends return tracks and a matching send on every other
// track.
func (s *Song) AddReturnTrack(tracks ...*Track) {
	for _, r := range tracks {
		r.canArm = false
		for _, prev := range s.returns {
			r.mixer.addSend(prev.name)
		}
		for _, t := range s.allTracks() {
			t.mixer.addSend(r.name)
		}
		r.attach(s.bus)
		s.returns = append(s.returns, r)
	}
	for _, t := range s.allTracks() {
		t.attach(s.bus)
	}
	s.bus.notify(session.SongEntity, session.AttrTracks)
}

// RemoveTrack deletes an audio track. Removing the selected track selects
// its neighbour, or the master when none is left.
func (s *Song) RemoveTrack(t *Track) {
	i := -1
	for j, x := range s.tracks {
		if x == t {
			i = j
			break
		}
	}
	if i < 0 {
		return
	}
	s.tracks = append(s.tracks[:i:i], s.tracks[i+1:]...)
	for _, x := range s.tracks {
		if x.group == t {
			x.group = nil
		}
	}
	t.attach(nil)
	s.bus.notify(session.SongEntity, session.AttrTracks)
	if s.selected == t {
		next := s.master
		switch {
		case i < len(s.tracks):
			next = s.tracks[i]
		case len(s.tracks) > 0:
			next = s.tracks[len(s.tracks)-1]
		}
		s.selectTrack(next)
	}
}

// MoveTrack moves the audio track at from to position to.
func (s *Song) MoveTrack(from, to int) {
	if from == to || from < 0 || to < 0 || from >= len(s.tracks) || to >= len(s.tracks) {
		return
	}
	t := s.tracks[from]
	s.tracks = append(s.tracks[:from:from], s.tracks[from+1:]...)
	s.tracks = append(s.tracks[:to], append([]*Track{t}, s.tracks[to:]...)...)
	s.bus.notify(session.SongEntity, session.AttrTracks)
}

func (s *Song) SelectedTrack() session.Track {
	if s.selected == nil {
		return nil
	}
	return s.selected
}

func (s *Song) SelectTrack(t session.Track) {
	if mt := s.find(t); mt != nil {
		s.selectTrack(mt)
	}
}

func (s *Song) selectTrack(t *Track) {
	if s.selected == t {
		return
	}
	s.selected = t
	s.bus.notify(session.SongEntity, session.AttrSelectedTrack)
}

func (s *Song) SelectDevice(d session.Device) {
	md, ok := d.(*Device)
	if !ok || md == nil || md.track == nil {
		return
	}
	s.selectTrack(md.track)
	md.track.selectDevice(md)
	s.SelectParameter(nil)
}

func (s *Song) SelectedParameter() session.Parameter {
	if s.param == nil {
		return nil
	}
	return s.param
}

// SelectParameter focuses p in the host UI, as a click on a control does.
func (s *Song) SelectParameter(p *Parameter) {
	if s.param == p {
		return
	}
	s.param = p
	s.bus.notify(session.SongEntity, session.AttrSelectedParameter)
}

func (s *Song) Subscribe(entity string, attr session.Attr, fn func()) func() {
	return s.bus.subscribe(entity, attr, fn)
}

// Listeners returns the number of live subscriptions.
func (s *Song) Listeners() int {
	return s.bus.count()
}

func (s *Song) IsPlaying() bool                 { return s.playing }
func (s *Song) RecordMode() bool                { return s.recordMode }
func (s *Song) SessionRecord() bool             { return s.sessionRecord }
func (s *Song) Loop() bool                      { return s.loop }
func (s *Song) PunchIn() bool                   { return s.punchIn }
func (s *Song) PunchOut() bool                  { return s.punchOut }
func (s *Song) ReEnableAutomationEnabled() bool { return s.reEnable }
func (s *Song) Position() float64               { return s.position }

func (s *Song) Play() { s.playing = true }

// Stop halts playback; a second stop rewinds to the start.
func (s *Song) Stop() {
	if !s.playing {
		s.position = 0
	}
	s.playing = false
}

func (s *Song) SetRecordMode(on bool) { s.recordMode = on }
func (s *Song) SetLoop(on bool)       { s.loop = on }
func (s *Song) SetPunchIn(on bool)    { s.punchIn = on }
func (s *Song) SetPunchOut(on bool)   { s.punchOut = on }

func (s *Song) SetSessionRecord(on bool) {
	if s.sessionRecord == on {
		return
	}
	s.sessionRecord = on
	s.bus.notify(session.SongEntity, session.AttrSessionRecord)
}

// OverrideAutomation lights the re-enable automation button, as touching
// an automated control does.
func (s *Song) OverrideAutomation() {
	if s.reEnable {
		return
	}
	s.reEnable = true
	s.bus.notify(session.SongEntity, session.AttrReEnableAutomation)
}

func (s *Song) ReEnableAutomation() {
	if !s.reEnable {
		return
	}
	s.reEnable = false
	s.bus.notify(session.SongEntity, session.AttrReEnableAutomation)
}

func (s *Song) Seek(delta float64) {
	s.position = max(0, s.position+delta)
}

func (s *Song) allTracks() []*Track {
	all := make([]*Track, 0, len(s.tracks)+len(s.returns)+1)
	all = append(all, s.tracks...)
	all = append(all, s.returns...)
	return append(all, s.master)
}

func (s *Song) find(t session.Track) *Track {
	if t == nil {
		return nil
	}
	id := t.ID()
	for _, x := range s.allTracks() {
		if x.id == id {
			return x
		}
	}
	return nil
}

func tracksOf(list []*Track) []session.Track {
	out := make([]session.Track, len(list))
	for i, t := range list {
		out[i] = t
	}
	return out
}
