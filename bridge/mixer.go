package bridge

import (
	"roto-bridge/binding"
	"roto-bridge/debug"
	"roto-bridge/paging"
	"roto-bridge/session"
	"roto-bridge/sysex"
)

// updateMixer rebinds the sixteen controls for the current mixer mode. The
// track window is always re-sent before any control is bound.
func (b *Bridge) updateMixer() {
	if b.ctx.Mode.Active != ModeMixer {
		return
	}
	if b.ctx.Mode.Mixer == MixerSelected {
		b.updateSelectedStrip()
		return
	}

	list := b.activeTracks()
	debug.Log("mixer", "%s: %d tracks from %d", b.ctx.Mode, len(list), b.activeWindow().First())

	b.send(sysex.GroupMixer, sysex.NumSends, []byte{byte(len(b.song.ReturnTracks())) & 0x7F})
	b.returnTracks()
	b.controls.ReleaseAll()

	w := b.activeWindow()
	for ix := 0; ix < binding.Controls; ix++ {
		i, ok := w.Slot(ix, len(list))
		if !ok {
			// Unused slots: mute LEDs show "not muted".
			b.led(ix, b.ctx.Mode.Button == ButtonMute)
			continue
		}
		t := list[i]
		b.bindEncoder(ix, t.Mixer())
		if b.mirror.IsMaster(t) {
			b.led(ix, false)
			continue
		}
		b.bindButton(ix, t)
	}
}

func (b *Bridge) bindEncoder(ix int, m session.Mixer) {
	switch b.ctx.Mode.Encoder {
	case EncoderLevel:
		b.controls.ConnectParameter(binding.Encoder, ix, m.Volume())
	case EncoderPan:
		b.controls.ConnectParameter(binding.Encoder, ix, m.Panning())
	case EncoderSend:
		sends := m.Sends()
		if b.ctx.Mode.SendIndex < len(sends) {
			b.controls.ConnectParameter(binding.Encoder, ix, sends[b.ctx.Mode.SendIndex])
		} else {
			b.controls.Release(binding.Encoder, ix)
		}
	}
}

// bindButton connects button ix to the toggle of the current button mode
// and keeps its LED in step with the track flag.
func (b *Bridge) bindButton(ix int, t session.Track) {
	var (
		press func()
		state func() bool
		attr  session.Attr
	)
	switch b.ctx.Mode.Button {
	case ButtonMute:
		press = func() { t.SetMute(!t.Mute()) }
		state, attr = t.Mute, session.AttrMute
	case ButtonSolo:
		press = func() { b.pressSolo(ix, t) }
		state, attr = t.Solo, session.AttrSolo
	case ButtonArm:
		if b.ctx.Mode.Channel != session.Audio || !t.CanBeArmed() {
			b.led(ix, false)
			return
		}
		press = func() { b.pressArm(ix, t) }
		state, attr = t.Arm, session.AttrArm
	}
	cancel := b.song.Subscribe(t.ID(), attr, func() { b.led(ix, state()) })
	b.controls.ConnectAction(ix, b.ctx.Mode.Button.String()+" "+t.Name(), press, cancel)
	b.led(ix, state())
}

// pressSolo toggles solo on t. Unless another button is held (a group
// gesture) and when the DAW runs exclusive solo, every other track of both
// channel classes is unsoloed. The master never is.
func (b *Bridge) pressSolo(ix int, t session.Track) {
	t.SetSolo(!t.Solo())
	if b.controls.OtherPressed(ix) || !b.song.ExclusiveSolo() {
		return
	}
	for _, o := range b.activeTracks() {
		if !session.Same(o, t) && !b.mirror.IsMaster(o) {
			o.SetSolo(false)
		}
	}
	for _, o := range b.tracks(b.ctx.Mode.Channel.Other()) {
		if !b.mirror.IsMaster(o) {
			o.SetSolo(false)
		}
	}
}

// pressArm toggles arm on t. Arming (not disarming) with exclusive arm and
// no other button held disarms every other armable track.
func (b *Bridge) pressArm(ix int, t session.Track) {
	if b.ctx.Mode.Channel != session.Audio {
		return
	}
	t.SetArm(!t.Arm())
	if b.controls.OtherPressed(ix) || !b.song.ExclusiveArm() || !t.Arm() {
		return
	}
	for _, o := range b.activeTracks() {
		if !session.Same(o, t) && o.CanBeArmed() {
			o.SetArm(false)
		}
	}
}

// updateSelectedStrip binds volume, pan and sends of the selected track.
func (b *Bridge) updateSelectedStrip() {
	b.controls.ReleaseAll()
	t := b.song.SelectedTrack()
	if t == nil {
		return
	}
	m := t.Mixer()
	debug.Log("mixer", "selected strip %q page %d", t.Name(), b.ctx.Mode.SelectedPage)

	ix := 0
	page := b.ctx.Mode.SelectedPage
	if page == 0 {
		b.controls.ConnectParameter(binding.Encoder, 0, m.Volume())
		b.controls.ConnectParameter(binding.Encoder, 1, m.Panning())
		ix = 2
	}
	sends := m.Sends()
	for j := paging.SendPageStart(page); j < len(sends) && ix < binding.Controls; j++ {
		b.controls.ConnectParameter(binding.Encoder, ix, sends[j])
		ix++
	}
	b.send(sysex.GroupMixer, sysex.NumSends, []byte{byte(len(sends)) & 0x7F})
	b.returnTracks()
}
