package midi

import (
	"roto-bridge/sysex"
)

// ControllerType identifies the kind of controller
type ControllerType int

const (
	ControllerUnknown ControllerType = iota
	ControllerRoto
)

func (t ControllerType) String() string {
	if t == ControllerRoto {
		return "Roto-Control"
	}
	return "unknown"
}

// Controller is a connected control surface. It satisfies bridge.Output.
type Controller interface {
	ID() string
	Type() ControllerType

	// Messages delivers every inbound message as raw bytes, sysex frames
	// included with their F0/F7 envelope.
	Messages() <-chan []byte

	// Output to the controller
	SendSysex(m sysex.Message) error
	SendCC(channel, cc, value uint8) error

	// Lifecycle
	Close() error
}
