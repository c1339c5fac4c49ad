package bridge

import (
	"roto-bridge/debug"
)

// Transport controls, in CC order after the buttons.
const (
	transportPlay = iota
	transportStop
	transportRecord
	transportSessionRecord
	transportLoop
	transportPunchIn
	transportPunchOut
	transportReEnable
	transportRewind
	transportFastForward
	transportCount
)

var transportNames = [transportCount]string{
	"play", "stop", "record", "session record", "loop",
	"punch in", "punch out", "re-enable automation", "rewind", "fast forward",
}

// handleTransport applies a transport CC. Everything but loop acts on
// press only; loop follows the switch position.
func (b *Bridge) handleTransport(channel, cc, value uint8) bool {
	l := b.opts.Layout
	if channel != l.Channel || cc < l.TransportCC(0) || cc >= l.TransportCC(transportCount) {
		return false
	}
	i := int(cc - l.TransportCC(0))
	pressed := value > 0
	debug.Verbose("transport", "%s %d", transportNames[i], value)

	s := b.song
	if i == transportLoop {
		s.SetLoop(pressed)
		return true
	}
	if !pressed {
		return true
	}
	switch i {
	case transportPlay:
		s.Play()
	case transportStop:
		s.Stop()
	case transportRecord:
		s.SetRecordMode(!s.RecordMode())
	case transportSessionRecord:
		s.SetSessionRecord(!s.SessionRecord())
	case transportPunchIn:
		s.SetPunchIn(!s.PunchIn())
	case transportPunchOut:
		s.SetPunchOut(!s.PunchOut())
	case transportReEnable:
		s.ReEnableAutomation()
	case transportRewind:
		s.Seek(-b.opts.SeekStep)
	case transportFastForward:
		s.Seek(b.opts.SeekStep)
	}
	return true
}
