package bridge

import (
	"roto-bridge/debug"
	"roto-bridge/session"
	"roto-bridge/sysex"
)

// onSelectedTrack follows the DAW's track selection. A selection that came
// from the hardware is not echoed back.
func (b *Bridge) onSelectedTrack() {
	b.followSelectedTrack()
	b.updateSelectedTrack()

	mixerUpdated := false
	if !b.ctx.trackViaHardware {
		b.sendSelectedTrack()
		if b.ctx.Mode.Mixer == MixerSelected {
			if b.mirror.IsMaster(b.song.SelectedTrack()) && b.ctx.Mode.SelectedPage != 0 {
				b.ctx.Mode.setSelectedPage(0)
			}
		} else if b.ctx.selectedClass == b.ctx.Mode.Channel {
			if b.activeWindow().Follow(b.ctx.selectedTrack) {
				b.sendFirstTrack()
				mixerUpdated = true
			}
		}
	}
	b.ctx.trackViaHardware = false

	switch b.ctx.Mode.Active {
	case ModePlugin:
		if !b.ctx.learning {
			b.updateDevices()
			b.updateSelectedDevice()
		}
	case ModeMixer:
		if b.ctx.Mode.Mixer == MixerSelected || mixerUpdated {
			b.updateMixer()
		}
	}
	debug.Verbose("track", "selected %d (%s)", b.ctx.selectedTrack, b.ctx.selectedClass)
}

// onTracksChanged handles tracks being added, removed or reordered.
func (b *Bridge) onTracksChanged() {
	b.updateSelectedTrack()
	b.ctx.visible = b.mirror.VisibilityMask()
	switch b.ctx.Mode.Active {
	case ModeMixer:
		b.updateMixer()
	case ModePlugin:
		b.updateDevices()
	}
	b.watchTracks()
	b.updateTracksPageIndex()
}

func (b *Bridge) onSessionRecord() {
	b.cc(b.opts.Layout.TransportCC(transportSessionRecord), b.song.SessionRecord())
}

func (b *Bridge) onReEnableAutomation() {
	b.cc(b.opts.Layout.TransportCC(transportReEnable), b.song.ReEnableAutomationEnabled())
}

// onConnected runs when the hardware announces itself: it gets the full
// picture as if the selection and the track list had just changed.
func (b *Bridge) onConnected() {
	if !b.ctx.connected {
		debug.Log("general", "hardware connected")
	}
	b.ctx.connected = true
	b.onSelectedTrack()
	b.onTracksChanged()
}

// selectTrackFromHardware handles SELECT_TRACK. The same index is ignored
// unless the class changed or a fold change forced a refresh.
func (b *Bridge) selectTrackFromHardware(index int) {
	list := b.activeTracks()
	if index >= len(list) {
		debug.Log("track", "select track %d: out of range (%d tracks)", index, len(list))
		return
	}
	b.ctx.selectedClass = session.MasterReturn
	if session.IndexOf(b.tracks(session.Audio), b.song.SelectedTrack()) >= 0 {
		b.ctx.selectedClass = session.Audio
	}
	if index == b.ctx.selectedTrack && b.ctx.selectedClass == b.ctx.Mode.Channel && !b.ctx.touchOverride {
		return
	}
	b.ctx.touchOverride = false
	b.ctx.selectedTrack = index
	b.ctx.trackViaHardware = true
	b.song.SelectTrack(list[index])
	b.ctx.trackViaHardware = false
	b.ctx.selectedClass = b.ctx.Mode.Channel
}

// setFirstTrack handles SET_FIRST_TRACK.
func (b *Bridge) setFirstTrack(index int) {
	if !b.activeWindow().Set(index, len(b.activeTracks())) {
		return
	}
	if b.ctx.Mode.Active == ModeMixer {
		b.updateMixer()
	} else {
		b.returnTracks()
	}
}

// toggleGroupTrack folds or unfolds the group track at index, as long as
// the DAW selection is an audio track.
func (b *Bridge) toggleGroupTrack(index int) {
	list := b.activeTracks()
	if index >= len(list) {
		return
	}
	if session.IndexOf(b.tracks(session.Audio), b.song.SelectedTrack()) < 0 {
		return
	}
	t := list[index]
	if !t.IsFoldable() {
		return
	}
	t.SetFoldState(!t.FoldState())
	b.updateFoldableTracks()
}

func (b *Bridge) sendTransportStatus() {
	s := b.song
	b.send(sysex.GroupGeneral, sysex.TransportStatus, []byte{
		sysex.Bool(s.IsPlaying()),
		0,
		sysex.Bool(s.RecordMode()),
		sysex.Bool(s.SessionRecord()),
		sysex.Bool(s.Loop()),
		sysex.Bool(s.PunchIn()),
		sysex.Bool(s.PunchOut()),
		sysex.Bool(s.ReEnableAutomationEnabled()),
	})
}
