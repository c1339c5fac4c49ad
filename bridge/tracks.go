package bridge

import (
	"slices"

	"roto-bridge/paging"
	"roto-bridge/session"
	"roto-bridge/sysex"
)

func (b *Bridge) tracks(class session.ChannelClass) []session.Track {
	return b.mirror.Tracks(class, false)
}

// activeTracks is the list the mixer pages through in the current channel
// class.
func (b *Bridge) activeTracks() []session.Track {
	return b.tracks(b.ctx.Mode.Channel)
}

func (b *Bridge) window(class session.ChannelClass) *paging.Window {
	if class == session.MasterReturn {
		return &b.ctx.masterReturn
	}
	return &b.ctx.audio
}

func (b *Bridge) activeWindow() *paging.Window {
	return b.window(b.ctx.Mode.Channel)
}

// updateSelectedTrack refreshes the index of the DAW's selected track.
func (b *Bridge) updateSelectedTrack() {
	class, i, ok := b.mirror.Locate(b.song.SelectedTrack())
	if !ok {
		b.ctx.selectedTrack = 0
		b.ctx.selectedClass = b.ctx.Mode.Channel
		return
	}
	b.ctx.selectedTrack = i
	b.ctx.selectedClass = class
}

func trackRecord(index int, t session.Track) []byte {
	rec := make([]byte, 0, 2+sysex.NameLength+2)
	rec = append(rec, sysex.Int14(index)...)
	rec = append(rec, sysex.PackName(t.Name())...)
	return append(rec, byte(t.ColorIndex())&0x7F, sysex.Bool(t.IsFoldable()))
}

// sendFirstTrack reports the start of the active track window.
func (b *Bridge) sendFirstTrack() {
	b.send(sysex.GroupGeneral, sysex.FirstTrack, sysex.Int14(b.activeWindow().First()))
}

// sendSelectedTrack sends DAW_SELECT_TRACK for the DAW's selection.
func (b *Bridge) sendSelectedTrack() {
	t := b.song.SelectedTrack()
	if t == nil {
		return
	}
	b.send(sysex.GroupMixer, sysex.DAWSelectTrack, trackRecord(b.ctx.selectedTrack, t))
}

// returnTracks emits the whole visible track window: count, first index,
// one record per visible track and the selected track.
func (b *Bridge) returnTracks() {
	list := b.activeTracks()
	b.send(sysex.GroupGeneral, sysex.NumTracks, sysex.Int14(len(list)))
	b.sendFirstTrack()
	start, end := b.activeWindow().Visible(len(list))
	for i := start; i < end; i++ {
		b.send(sysex.GroupGeneral, sysex.TrackDetails, trackRecord(i, list[i]))
	}
	b.send(sysex.GroupGeneral, sysex.TrackDetailsEnd)
	b.sendSelectedTrack()
}

// updateTracksPageIndex re-clamps the paging state after the track lists
// shrank. It reports whether anything moved; the mixer is rebound when it
// did.
func (b *Bridge) updateTracksPageIndex() bool {
	moved := false
	if b.ctx.Mode.Mixer == MixerSelected {
		page, changed := paging.ClampSendPage(b.ctx.Mode.SelectedPage, len(b.song.ReturnTracks()))
		if changed {
			b.ctx.Mode.setSelectedPage(page)
			moved = true
		}
	} else if b.activeWindow().Shrink(len(b.activeTracks())) {
		b.sendFirstTrack()
		moved = true
	}
	if moved && b.ctx.Mode.Active == ModeMixer {
		b.updateMixer()
	}
	return moved
}

// allTracks is every track that has a name and colour on the hardware:
// audio tracks including hidden ones, then returns and master.
func (b *Bridge) allTracks() []session.Track {
	list := b.mirror.Tracks(session.Audio, true)
	return append(list, b.tracks(session.MasterReturn)...)
}

// watchTracks keeps one name and colour listener per track and snapshots
// what the hardware was last told.
func (b *Bridge) watchTracks() {
	all := b.allTracks()
	keep := make(map[string]bool, len(all))
	for _, t := range all {
		id := t.ID()
		keep[id] = true
		if !b.trackSubs.Has(id) {
			b.trackSubs.Add(id, session.AttrName, b.onTrackDetail)
			b.trackSubs.Add(id, session.AttrColor, b.onTrackDetail)
		}
	}
	b.trackSubs.Retain(keep)

	b.ctx.details = make(map[string]trackDetail, len(all))
	for _, t := range all {
		b.ctx.details[t.ID()] = trackDetail{t.Name(), t.ColorIndex()}
	}
}

// onTrackDetail resends the track window when a name or colour really
// changed. Inserting a track fires a burst of these for tracks whose
// details did not change at all.
func (b *Bridge) onTrackDetail() {
	changed := false
	for _, t := range b.allTracks() {
		d, ok := b.ctx.details[t.ID()]
		if !ok {
			continue
		}
		now := trackDetail{t.Name(), t.ColorIndex()}
		if d != now {
			b.ctx.details[t.ID()] = now
			changed = true
		}
	}
	if changed {
		b.returnTracks()
	}
}

// updateFoldableTracks polls the visibility of audio tracks, which the DAW
// does not notify.
func (b *Bridge) updateFoldableTracks() {
	mask := b.mirror.VisibilityMask()
	if slices.Equal(mask, b.ctx.visible) {
		return
	}
	b.ctx.touchOverride = true
	moved := b.updateTracksPageIndex()
	if b.ctx.Mode.Active == ModeMixer {
		if !moved {
			b.updateMixer()
		}
	} else {
		b.returnTracks()
	}
	b.ctx.visible = mask
}
