// Package sysex frames and parses the Roto-Control system-exclusive protocol.
//
// Frame layout:
//
//	F0 00 22 03 02 <group> <command> <payload...> F7
//
// The package is pure: no state, no I/O. Pacing of outbound frames is the
// transport's job (see SendDelay).
package sysex

import (
	"fmt"
	"time"
)

const (
	Start = 0xF0
	End   = 0xF7

	DeviceID = 0x02

	// MinLength is the shortest frame that can carry a command.
	MinLength = 8

	// NameLength is the fixed width of every string on the wire.
	NameLength = 13

	// SendDelay is the pause the hardware needs after every frame.
	SendDelay = 5 * time.Millisecond
)

// ManufacturerID is the Melbourne Instruments sysex ID.
var ManufacturerID = [3]byte{0x00, 0x22, 0x03}

// Group selects a family of commands (sub ID 1).
type Group byte

const (
	GroupGeneral Group = 0xA
	GroupPlugin  Group = 0xB
	GroupMixer   Group = 0xC
)

func (g Group) String() string {
	switch g {
	case GroupGeneral:
		return "general"
	case GroupPlugin:
		return "plugin"
	case GroupMixer:
		return "mixer"
	}
	return fmt.Sprintf("group(%#x)", byte(g))
}

// Command selects a command within a group (sub ID 2).
type Command byte

// General commands
const (
	DAWStarted             Command = 0x1
	PingDAW                Command = 0x2
	DAWPingResponse        Command = 0x3
	NumTracks              Command = 0x4
	FirstTrack             Command = 0x5
	SetFirstTrack          Command = 0x6
	TrackDetails           Command = 0x7
	TrackDetailsEnd        Command = 0x8
	SelectTrack            Command = 0x9
	RequestTransportStatus Command = 0xA
	TransportStatus        Command = 0xB
	RotoDAWConnected       Command = 0xC
)

// Plugin commands
const (
	SetPluginMode    Command = 0x1
	NumDevices       Command = 0x2
	FirstDevice      Command = 0x3
	SetFirstDevice   Command = 0x4
	PluginDetails    Command = 0x5
	PluginDetailsEnd Command = 0x6
	RotoSelectDevice Command = 0x7
	DAWSelectPlugin  Command = 0x8
	SetDeviceLearn   Command = 0x9
	LearnParam       Command = 0xA
	ControlMapped    Command = 0xB
	SetPluginEnable  Command = 0xC
	SetPluginLock    Command = 0xD
	UnmapControl     Command = 0xE
	SetMappedCtlName Command = 0xF
)

// Mixer commands
const (
	SetMixerAllMode      Command = 0x1
	SetMixerSelectedMode Command = 0x2
	NumSends             Command = 0x3
	DAWSelectTrack       Command = 0x4
	SetMixerChannelMode  Command = 0x5
	ToggleGroupTrack     Command = 0x6
)

// DAWIdentifier is returned in the ping response (Ableton Live).
const DAWIdentifier = 0x1

// Message is a decoded command.
type Message struct {
	Group   Group
	Command Command
	Payload []byte
}

// New builds a message from a group, command and payload parts.
func New(g Group, c Command, parts ...[]byte) Message {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	payload := make([]byte, 0, n)
	for _, p := range parts {
		payload = append(payload, p...)
	}
	return Message{Group: g, Command: c, Payload: payload}
}

// Body returns the frame without the F0/F7 envelope bytes, which is what
// gomidi.SysEx expects.
func (m Message) Body() []byte {
	b := make([]byte, 0, 6+len(m.Payload))
	b = append(b, ManufacturerID[:]...)
	b = append(b, DeviceID, byte(m.Group), byte(m.Command))
	b = append(b, m.Payload...)
	return b
}

// Encode returns the complete frame.
func (m Message) Encode() []byte {
	body := m.Body()
	b := make([]byte, 0, len(body)+2)
	b = append(b, Start)
	b = append(b, body...)
	return append(b, End)
}

func (m Message) String() string {
	return fmt.Sprintf("%s/%#x % x", m.Group, byte(m.Command), m.Payload)
}

// Parse decodes a raw inbound frame. ok is false when the bytes are not a
// command for this device; such messages belong to the host's default
// handling and must be passed through untouched.
func Parse(raw []byte) (m Message, ok bool) {
	if len(raw) < MinLength {
		return Message{}, false
	}
	if raw[0]&0xF0 != Start {
		return Message{}, false
	}
	if raw[1] != ManufacturerID[0] || raw[2] != ManufacturerID[1] || raw[3] != ManufacturerID[2] || raw[4] != DeviceID {
		return Message{}, false
	}
	payload := raw[7:]
	if n := len(payload); n > 0 && payload[n-1] == End {
		payload = payload[:n-1]
	}
	return Message{
		Group:   Group(raw[5]),
		Command: Command(raw[6]),
		Payload: append([]byte(nil), payload...),
	}, true
}

// IsSysex reports whether raw starts with a system status byte.
func IsSysex(raw []byte) bool {
	return len(raw) > 0 && raw[0]&0xF0 == Start
}
