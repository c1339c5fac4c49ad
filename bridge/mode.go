package bridge

import (
	"roto-bridge/session"
)

// ActiveMode is the top level mode of the controller.
type ActiveMode int

const (
	ModeMixer ActiveMode = iota
	ModePlugin
)

func (m ActiveMode) String() string {
	if m == ModePlugin {
		return "PLUGIN"
	}
	return "MIXER"
}

// MixerMode selects between eight tracks and one track's strip.
type MixerMode int

const (
	MixerAll MixerMode = iota
	MixerSelected
)

func (m MixerMode) String() string {
	if m == MixerSelected {
		return "SELECTED"
	}
	return "ALL"
}

// EncoderMode is what the encoders control in MIXER/ALL.
type EncoderMode int

const (
	EncoderLevel EncoderMode = iota
	EncoderPan
	EncoderSend
)

func (m EncoderMode) String() string {
	switch m {
	case EncoderPan:
		return "PAN"
	case EncoderSend:
		return "SEND"
	}
	return "LEVEL"
}

// ButtonMode is what the buttons toggle in MIXER/ALL.
type ButtonMode int

const (
	ButtonMute ButtonMode = iota
	ButtonSolo
	ButtonArm
)

func (m ButtonMode) String() string {
	switch m {
	case ButtonSolo:
		return "SOLO"
	case ButtonArm:
		return "ARM"
	}
	return "MUTE"
}

// Mode is the controller state machine. The methods in this file are the
// only writers of its fields.
type Mode struct {
	Active       ActiveMode
	Mixer        MixerMode
	Channel      session.ChannelClass
	Encoder      EncoderMode
	Button       ButtonMode
	SendIndex    int
	SelectedPage int
}

// enterMixerAll applies a SET_MIXER_ALL_MODE payload
// [channel class, knob mode, button mode, send index]. Unknown knob or
// button codes leave that setting as it was. It reports whether the top
// level mode changed.
func (m *Mode) enterMixerAll(p []byte) bool {
	changed := m.Active != ModeMixer
	m.Active = ModeMixer
	m.Mixer = MixerAll
	m.Channel = channelClass(p[0])

	switch p[1] {
	case 0:
		m.Encoder = EncoderLevel
	case 1:
		m.Encoder = EncoderPan
	case 2:
		m.Encoder = EncoderSend
		m.SendIndex = int(p[3])
	}
	switch p[2] {
	case 0:
		m.Button = ButtonMute
	case 1:
		m.Button = ButtonSolo
	case 2:
		m.Button = ButtonArm
	}
	return changed
}

// enterMixerSelected switches to the selected-track strip at page.
func (m *Mode) enterMixerSelected(page int) bool {
	changed := m.Active != ModeMixer
	m.Active = ModeMixer
	m.Mixer = MixerSelected
	m.SelectedPage = page
	return changed
}

func (m *Mode) enterPlugin() bool {
	changed := m.Active != ModePlugin
	m.Active = ModePlugin
	return changed
}

func (m *Mode) setChannel(b byte) {
	m.Channel = channelClass(b)
}

func (m *Mode) setSelectedPage(page int) {
	m.SelectedPage = page
}

func channelClass(b byte) session.ChannelClass {
	if b == 1 {
		return session.MasterReturn
	}
	return session.Audio
}

func (m Mode) String() string {
	if m.Active == ModePlugin {
		return "PLUGIN"
	}
	if m.Mixer == MixerSelected {
		return "MIXER/SELECTED"
	}
	return "MIXER/ALL " + m.Channel.String() + " " + m.Encoder.String() + "/" + m.Button.String()
}
