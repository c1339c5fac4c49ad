package bridge

import (
	"roto-bridge/binding"
	"roto-bridge/debug"
	"roto-bridge/ident"
	"roto-bridge/session"
	"roto-bridge/sysex"
)

const (
	maxSteps      = 24
	maxLabelSteps = 16
)

// learnOptions tweak a LEARN_PARAM message.
type learnOptions struct {
	// index overrides the reported parameter index when >= 0.
	index  int
	mapped bool
	hash   *ident.Hash
}

func isMacro(d session.Device, p session.Parameter) bool {
	return ident.IsMacro(d.ClassName(), p.OriginalName())
}

func learnName(d session.Device, p session.Parameter, learntRack bool) string {
	return ident.LearnName(d.ClassName(), p.Name(), p.OriginalName(), learntRack)
}

// setLearn turns learn mode on or off for the current device.
func (b *Bridge) setLearn(on bool) {
	d := b.currentDevice()
	if d != nil {
		b.reselect(d)
	}
	if on {
		b.ctx.learning = true
		b.ctx.learnDevice = d
		debug.Log("learn", "learning %s", deviceName(d))
		return
	}
	b.ctx.learning = false
	if !session.Same(b.currentDevice(), b.ctx.learnDevice) {
		b.updateSelectedDevice()
		b.onSelectedDevice()
	}
	b.ctx.learnDevice = nil
	b.controls.ReleaseAll()
}

// reselect selects d again, which clears the DAW's selected parameter.
// Parameter notifications fired from inside are ignored.
func (b *Bridge) reselect(d session.Device) {
	if d == nil {
		return
	}
	b.ctx.reselecting = true
	b.song.SelectDevice(d)
	b.ctx.reselecting = false
}

// onSelectedParameter turns a parameter click in the DAW into a
// LEARN_PARAM while learning.
func (b *Bridge) onSelectedParameter() {
	if b.ctx.reselecting || b.ctx.Mode.Active != ModePlugin || !b.ctx.learning {
		return
	}
	p := b.song.SelectedParameter()
	d := b.ctx.learnDevice
	if p != nil && d != nil {
		opts := learnOptions{index: -1}
		if ident.IsMacroRack(d.ClassName()) {
			h := ident.ParamHash(learnName(d, p, true))
			opts.hash = &h
		}
		b.learnParameter(p, d, opts)
	}
	if t := b.song.SelectedTrack(); t != nil {
		b.reselect(t.SelectedDevice())
	}
}

// learnParameter sends LEARN_PARAM for p, which must belong to d:
//
//	index(2) hash(6) macro haptic steps value(2) name(13) labels(13 each)
func (b *Bridge) learnParameter(p session.Parameter, d session.Device, opts learnOptions) {
	if p == nil || d == nil {
		debug.Log("learn", "no parameter selected")
		return
	}
	index := session.IndexOf(d.Parameters(), p)
	if index < 0 {
		debug.Log("learn", "parameter %q not found in %q", p.Name(), d.Name())
		return
	}
	if opts.index >= 0 {
		index = opts.index
	}

	steps := 0
	var labels []byte
	if p.IsQuantized() {
		items := p.ValueItems()
		steps = min(len(items), maxSteps)
		if steps <= maxLabelSteps {
			for _, item := range items {
				labels = append(labels, sysex.PackLabel(item)...)
			}
		}
	}

	hash := ident.ParamHash(learnName(d, p, false))
	if opts.hash != nil {
		hash = *opts.hash
	}
	macro := (ident.IsMacroPlugin(d.ClassName()) && isMacro(d, p)) || opts.mapped

	b.send(sysex.GroupPlugin, sysex.LearnParam,
		sysex.Int14(index),
		hash[:],
		[]byte{sysex.Bool(macro), 0, byte(steps)},
		sysex.Int14(binding.Normalize14(p)),
		sysex.PackName(p.Name()),
		labels,
	)
	debug.Verbose("learn", "learn %q index %d steps %d", p.Name(), index, steps)
}

// controlMapped handles the hardware reporting a stored mapping:
//
//	index(2) hash(6) kind(0 knob, 1 switch) control macro ...
//
// An unresolvable parameter releases the control and nothing is reported
// back.
func (b *Bridge) controlMapped(p []byte) {
	kind, ctrl, macroFlag := p[8], int(p[9]), p[10]
	if kind > 1 || ctrl >= binding.Controls {
		debug.Log("learn", "control mapped: bad control %d/%d", kind, ctrl)
		return
	}
	k := binding.Encoder
	if kind == 1 {
		k = binding.Button
	}

	d := b.currentDevice()
	if d == nil {
		b.controls.Release(k, ctrl)
		return
	}
	index := sysex.Join14(p[0], p[1])
	var hash ident.Hash
	copy(hash[:], p[2:8])
	class := d.ClassName()
	params := d.Parameters()

	learntRack := ident.IsMacroRack(class) && macroFlag == 0
	hashes := make([]ident.Hash, len(params))
	for i, param := range params {
		hashes[i] = ident.ParamHash(learnName(d, param, learntRack))
	}

	macro := false
	switch {
	case ident.IsMacroPlugin(class):
		macro = index < len(params) && isMacro(d, params[index])
	case ident.IsMacroRack(class), ident.IsThirdParty(class):
		macro = macroFlag == 1
	}

	var target session.Parameter
	mapped := true
	if !macro {
		i, ok := ident.Resolve(hashes, hash, index)
		if !ok {
			debug.Verbose("learn", "control mapped: %x unresolved, releasing %s %d", hash, k, ctrl)
			b.controls.Release(k, ctrl)
			return
		}
		target = params[i]
		if k == binding.Encoder {
			opts := learnOptions{index: index}
			if countHash(hashes, hash) == 1 {
				opts.hash = &hash
			}
			b.learnParameter(target, d, opts)
		}
	} else {
		// Macros are positional.
		if index >= len(params) {
			b.controls.Release(k, ctrl)
			return
		}
		target = params[index]
		if ident.IsMacroRack(class) {
			offset := 0
			if n, ok := ident.MacroNumber(target.OriginalName()); ok && n > 8 {
				offset = 8
			}
			mm := d.MacrosMapped()
			if offset+ctrl >= len(mm) || !mm[offset+ctrl] {
				mapped = false
			}
		}
		if mapped {
			b.learnParameter(target, d, learnOptions{index: -1, mapped: true, hash: &hash})
			if !b.paramSubs.Has(target.ID()) {
				b.paramSubs.Add(target.ID(), session.AttrName, b.updateMacroParameters)
			}
		}
	}

	b.controls.Release(k, ctrl)
	if mapped {
		b.controls.ConnectParameter(k, ctrl, target)
	}
}

func countHash(hashes []ident.Hash, h ident.Hash) int {
	n := 0
	for _, x := range hashes {
		if x == h {
			n++
		}
	}
	return n
}

// updateMacroParameters renames every encoder bound to a macro of the
// current device.
func (b *Bridge) updateMacroParameters() {
	d := b.currentDevice()
	if d == nil {
		return
	}
	params := d.Parameters()
	for _, bd := range b.controls.Snapshot() {
		if bd.Kind != binding.Encoder || bd.State != binding.Parameter {
			continue
		}
		if session.IndexOf(params, bd.Param) >= 0 && isMacro(d, bd.Param) {
			b.setMappedControlName(bd.Param, d)
		}
	}
}

// setMappedControlName sends SET_MAPPED_CTL_NAME: index(2) hash(6) name(13).
func (b *Bridge) setMappedControlName(p session.Parameter, d session.Device) {
	index := session.IndexOf(d.Parameters(), p)
	if index < 0 {
		debug.Log("learn", "parameter %q not found in %q", p.Name(), d.Name())
		return
	}
	hash := ident.ParamHash(learnName(d, p, false))
	b.send(sysex.GroupPlugin, sysex.SetMappedCtlName, sysex.Int14(index), hash[:], sysex.PackName(p.Name()))
}

func deviceName(d session.Device) string {
	if d == nil {
		return "<none>"
	}
	return d.Name()
}
