package midi

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("no Roto-Control found")
	ErrPortsTimeout = errors.New("MIDI port listing timed out")
)

// MIDI message types
const (
	CC    uint8 = 0xB0
	SysEx uint8 = 0xF0
)

// Describe renders a raw message for logs and the probe command.
func Describe(raw []byte) string {
	switch {
	case len(raw) == 0:
		return "empty"
	case raw[0] == SysEx:
		return fmt.Sprintf("sysex % X", raw)
	case raw[0]&0xF0 == CC && len(raw) == 3:
		return fmt.Sprintf("cc ch%d #%d=%d", raw[0]&0x0F+1, raw[1], raw[2])
	}
	return fmt.Sprintf("% X", raw)
}
