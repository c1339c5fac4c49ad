package bridge

import (
	"roto-bridge/debug"
	"roto-bridge/sysex"
)

type handler struct {
	// min is the shortest payload the handler accepts.
	min int
	fn  func(b *Bridge, p []byte)
}

type route struct {
	group   sysex.Group
	command sysex.Command
}

var handlers = map[route]handler{
	{sysex.GroupGeneral, sysex.PingDAW}: {0, func(b *Bridge, p []byte) {
		b.send(sysex.GroupGeneral, sysex.DAWPingResponse, []byte{sysex.DAWIdentifier})
	}},
	{sysex.GroupGeneral, sysex.RotoDAWConnected}: {0, func(b *Bridge, p []byte) {
		b.onConnected()
	}},
	{sysex.GroupGeneral, sysex.SetFirstTrack}: {2, func(b *Bridge, p []byte) {
		b.setFirstTrack(sysex.Join14(p[0], p[1]))
	}},
	{sysex.GroupGeneral, sysex.SelectTrack}: {2, func(b *Bridge, p []byte) {
		b.selectTrackFromHardware(sysex.Join14(p[0], p[1]))
	}},
	{sysex.GroupGeneral, sysex.RequestTransportStatus}: {0, func(b *Bridge, p []byte) {
		b.sendTransportStatus()
	}},

	{sysex.GroupPlugin, sysex.SetPluginMode}: {0, func(b *Bridge, p []byte) {
		b.ctx.Mode.enterPlugin()
		b.controls.ReleaseAll()
		if b.ctx.learning {
			b.ctx.learning = false
			b.ctx.learnDevice = nil
		}
		b.updateDevices()
		b.updateSelectedDevice()
	}},
	{sysex.GroupPlugin, sysex.SetFirstDevice}: {1, func(b *Bridge, p []byte) {
		if b.ctx.devices.Set(int(p[0]), len(b.devices())) {
			b.updateDevices()
		}
	}},
	{sysex.GroupPlugin, sysex.RotoSelectDevice}: {1, func(b *Bridge, p []byte) {
		b.selectDeviceFromHardware(int(p[0]))
	}},
	{sysex.GroupPlugin, sysex.SetDeviceLearn}: {1, func(b *Bridge, p []byte) {
		b.setLearn(p[0] != 0)
	}},
	{sysex.GroupPlugin, sysex.ControlMapped}: {11, func(b *Bridge, p []byte) {
		b.controlMapped(p)
	}},
	{sysex.GroupPlugin, sysex.SetPluginEnable}: {2, func(b *Bridge, p []byte) {
		b.setDeviceEnabled(int(p[0]), p[1] != 0)
	}},
	{sysex.GroupPlugin, sysex.SetPluginLock}: {1, func(b *Bridge, p []byte) {
		b.setLock(p[0] != 0)
	}},
	{sysex.GroupPlugin, sysex.UnmapControl}: {0, func(b *Bridge, p []byte) {}},

	{sysex.GroupMixer, sysex.SetMixerAllMode}: {4, func(b *Bridge, p []byte) {
		if b.ctx.Mode.Active != ModeMixer {
			b.controls.ReleaseAll()
		}
		b.ctx.Mode.enterMixerAll(p)
		b.updateMixer()
	}},
	{sysex.GroupMixer, sysex.SetMixerSelectedMode}: {1, func(b *Bridge, p []byte) {
		if b.ctx.Mode.Active != ModeMixer {
			b.controls.ReleaseAll()
		}
		b.ctx.Mode.enterMixerSelected(int(p[0]))
		b.updateMixer()
	}},
	{sysex.GroupMixer, sysex.SetMixerChannelMode}: {1, func(b *Bridge, p []byte) {
		b.ctx.Mode.setChannel(p[0])
		b.updateMixer()
	}},
	{sysex.GroupMixer, sysex.ToggleGroupTrack}: {2, func(b *Bridge, p []byte) {
		b.toggleGroupTrack(sysex.Join14(p[0], p[1]))
	}},
}

// HandleMessage feeds one inbound MIDI message to the bridge. It returns
// false for messages that are not meant for it (foreign sysex, other
// channels, unknown CCs) so the caller can pass them on.
func (b *Bridge) HandleMessage(raw []byte) bool {
	if sysex.IsSysex(raw) {
		m, ok := sysex.Parse(raw)
		if !ok {
			return false
		}
		b.dispatch(m)
		return true
	}
	if len(raw) == 3 && raw[0]&0xF0 == 0xB0 {
		return b.HandleCC(raw[0]&0x0F, raw[1], raw[2])
	}
	return false
}

// HandleCC feeds a control change to the controls, then the transport.
func (b *Bridge) HandleCC(channel, cc, value uint8) bool {
	if b.controls.HandleCC(channel, cc, value) {
		return true
	}
	return b.handleTransport(channel, cc, value)
}

func (b *Bridge) dispatch(m sysex.Message) {
	h, ok := handlers[route{m.Group, m.Command}]
	if !ok {
		debug.Log("rx", "unknown command %s", m)
		return
	}
	if len(m.Payload) < h.min {
		debug.Log("rx", "short payload %s: want %d bytes", m, h.min)
		return
	}
	debug.Verbose("rx", "%s", m)
	h.fn(b, m.Payload)
}
