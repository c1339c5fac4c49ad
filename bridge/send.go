package bridge

import (
	"roto-bridge/debug"
	"roto-bridge/sysex"
)

func (b *Bridge) send(g sysex.Group, c sysex.Command, parts ...[]byte) {
	m := sysex.New(g, c, parts...)
	debug.Verbose("tx", "%s", m)
	b.sent++
	if err := b.out.SendSysex(m); err != nil {
		debug.Log("tx", "send %s: %v", m, err)
	}
}

// led sets the feedback LED of button i.
func (b *Bridge) led(i int, on bool) {
	b.cc(b.opts.Layout.ButtonCC(i), on)
}

func (b *Bridge) cc(cc uint8, on bool) {
	var v uint8
	if on {
		v = 127
	}
	if err := b.out.SendCC(b.opts.Layout.Channel, cc, v); err != nil {
		debug.Log("tx", "cc %d: %v", cc, err)
	}
}
