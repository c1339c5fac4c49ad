package bridge

import (
	"roto-bridge/debug"
	"roto-bridge/ident"
	"roto-bridge/session"
	"roto-bridge/sysex"
)

// currentTrack is the track whose devices are shown: the locked one while
// the lock is on, the DAW selection otherwise.
func (b *Bridge) currentTrack() session.Track {
	if b.ctx.lock.Active {
		return b.ctx.lock.Track
	}
	return b.song.SelectedTrack()
}

// currentDevice resolves the same way as currentTrack.
func (b *Bridge) currentDevice() session.Device {
	if b.ctx.lock.Active {
		return b.ctx.lock.Device
	}
	if t := b.song.SelectedTrack(); t != nil {
		return t.SelectedDevice()
	}
	return nil
}

// devices returns a fresh expansion of the current track's device tree.
func (b *Bridge) devices() []session.Device {
	return session.ExpandDevices(b.currentTrack())
}

func (b *Bridge) currentIsThirdParty() bool {
	d := b.currentDevice()
	return d != nil && ident.IsThirdParty(d.ClassName())
}

func pluginRecord(index int, d session.Device) []byte {
	rec := make([]byte, 0, 1+ident.DigestSize+1+sysex.NameLength+2)
	rec = append(rec, byte(index)&0x7F)
	rec = append(rec, ident.DeviceDigest(d.ClassName(), d.Name())...)
	rec = append(rec, sysex.Bool(d.IsActive()))
	rec = append(rec, sysex.PackName(d.Name())...)
	// Macro pages are not reported.
	return append(rec, ident.RackType(d.ClassName()), 0)
}

// updateDevices sends the track window followed by the visible page of the
// device list, and makes sure every listed device is watched.
func (b *Bridge) updateDevices() {
	b.returnTracks()

	list := b.devices()
	b.ctx.devices.Shrink(len(list))
	b.send(sysex.GroupPlugin, sysex.NumDevices, []byte{byte(len(list)) & 0x7F})
	b.send(sysex.GroupPlugin, sysex.FirstDevice, []byte{byte(b.ctx.devices.First()) & 0x7F})
	start, end := b.ctx.devices.Visible(len(list))
	for i := start; i < end; i++ {
		b.send(sysex.GroupPlugin, sysex.PluginDetails, pluginRecord(i, list[i]))
	}
	b.send(sysex.GroupPlugin, sysex.PluginDetailsEnd)

	b.watchDevices(list)
}

func (b *Bridge) watchDevices(list []session.Device) {
	keep := make(map[string]bool, len(list))
	for _, d := range list {
		id := d.ID()
		keep[id] = true
		if b.deviceSubs.Has(id) {
			continue
		}
		b.deviceSubs.Add(id, session.AttrName, b.onDeviceName)
		b.deviceSubs.Add(id, session.AttrIsActive, b.onDeviceActive)
		b.deviceSubs.Add(id, session.AttrParameters, b.onSelectedDevice)
		if ident.IsMacroRack(d.ClassName()) {
			b.deviceSubs.Add(id, session.AttrMacrosMapped, b.onMacroMap)
		}
	}
	b.deviceSubs.Retain(keep)
}

// updateSelectedDevice reports the selected device, selecting the first
// one when the track has devices but none is selected. It stays quiet while
// locked or learning.
func (b *Bridge) updateSelectedDevice() {
	if b.ctx.lock.Active || b.ctx.learning {
		return
	}
	t := b.song.SelectedTrack()
	if t == nil {
		return
	}
	list := b.devices()
	sel := t.SelectedDevice()
	if sel == nil {
		if len(list) == 0 {
			return
		}
		b.song.SelectDevice(list[0])
		if sel = b.song.SelectedTrack().SelectedDevice(); sel == nil {
			return
		}
	}
	b.sendSelectedDevice(list, sel)
}

// sendSelectedDevice moves the device window onto the selection when it
// left the page, then sends DAW_SELECT_PLUGIN.
func (b *Bridge) sendSelectedDevice(list []session.Device, sel session.Device) {
	if i := session.IndexOf(list, sel); i >= 0 {
		b.ctx.selectedDevice = i
	}
	if b.ctx.devices.Follow(b.ctx.selectedDevice) {
		b.updateDevices()
	}
	b.send(sysex.GroupPlugin, sysex.DAWSelectPlugin, []byte{byte(b.ctx.selectedDevice) & 0x7F, 0, 0})
}

// onSelectedDevice handles a device selection change. Third-party plugins
// can fire these in storms, so after one of them further changes inside the
// device-select window are deferred to the tick.
func (b *Bridge) onSelectedDevice() {
	now := b.opts.Now()
	if !b.deviceSelect.Allow(now) {
		debug.Verbose("plugin", "device select throttled")
		return
	}
	if b.ctx.Mode.Active == ModePlugin {
		if b.ctx.deviceViaHardware {
			b.controls.ReleaseAll()
		}
		b.updateDevices()
		if !b.ctx.deviceViaHardware {
			if t := b.song.SelectedTrack(); t != nil {
				if sel := t.SelectedDevice(); sel != nil {
					b.sendSelectedDevice(b.devices(), sel)
				}
			}
		}
		b.ctx.deviceViaHardware = false
		b.retainParamSubs()
	}
	if b.currentIsThirdParty() {
		b.deviceSelect.Mark(now)
	}
}

func (b *Bridge) onDeviceName() {
	b.updateDevices()
	b.updateSelectedDevice()
}

// onDeviceActive refreshes the device list; toggling a rack flips every
// nested device, so refreshes are limited to one per activation window.
func (b *Bridge) onDeviceActive() {
	now := b.opts.Now()
	if !b.activation.Allow(now) {
		return
	}
	b.deviceActivationChanged()
}

func (b *Bridge) deviceActivationChanged() {
	b.updateDevices()
	b.activation.Mark(b.opts.Now())
}

func (b *Bridge) onMacroMap() {
	if d := b.currentDevice(); d != nil && ident.IsMacroRack(d.ClassName()) {
		b.onSelectedDevice()
	}
}

// retainParamSubs drops parameter name listeners that no longer belong to
// the current device.
func (b *Bridge) retainParamSubs() {
	keep := make(map[string]bool)
	if d := b.currentDevice(); d != nil {
		for _, p := range d.Parameters() {
			keep[p.ID()] = true
		}
	}
	b.paramSubs.Retain(keep)
}

// selectDeviceFromHardware handles the hardware picking slot i of the
// device page.
func (b *Bridge) selectDeviceFromHardware(slot int) {
	list := b.devices()
	i, ok := b.ctx.devices.Slot(slot, len(list))
	if !ok {
		debug.Log("plugin", "select device %d: out of range (%d devices)", slot, len(list))
		return
	}
	if i == b.ctx.selectedDevice {
		return
	}
	b.ctx.selectedDevice = i
	d := list[i]
	if b.ctx.lock.Active {
		b.ctx.lock.Device = d
	}
	b.ctx.deviceViaHardware = true
	b.song.SelectDevice(d)
	b.ctx.deviceViaHardware = false
	debug.Verbose("plugin", "select device %d %q", i, d.Name())
}

// setDeviceEnabled flips the activation switch of device slot.
func (b *Bridge) setDeviceEnabled(slot int, on bool) {
	list := b.devices()
	i, ok := b.ctx.devices.Slot(slot, len(list))
	if !ok {
		debug.Log("plugin", "enable device %d: out of range", slot)
		return
	}
	d := list[i]
	for _, p := range d.Parameters() {
		if p.Name() == "Device On" && p.IsEnabled() {
			if on {
				p.SetValue(1)
			} else {
				p.SetValue(0)
			}
			return
		}
	}
	debug.Log("plugin", "device %q does not support activation", d.Name())
}

// setLock pins or unpins the device view.
func (b *Bridge) setLock(on bool) {
	if on {
		t := b.song.SelectedTrack()
		var d session.Device
		if t != nil {
			d = t.SelectedDevice()
		}
		b.ctx.lock = Lock{Active: true, Track: t, Device: d}
		return
	}
	b.ctx.lock = Lock{}
	b.onSelectedDevice()
}
