// Package binding owns the eight encoders and eight buttons of the
// controller and what each one is currently connected to.
package binding

import (
	"fmt"
	"math"

	"roto-bridge/debug"
	"roto-bridge/session"
)

// Controls is the number of encoders (and of buttons).
const Controls = 8

// Kind is the physical control type.
type Kind int

const (
	Encoder Kind = iota
	Button
)

func (k Kind) String() string {
	if k == Button {
		return "button"
	}
	return "encoder"
}

// State is what a control is connected to.
type State int

const (
	Unbound State = iota
	Parameter
	Action
)

func (s State) String() string {
	switch s {
	case Parameter:
		return "parameter"
	case Action:
		return "action"
	}
	return "unbound"
}

// Binding is the association of one physical control.
type Binding struct {
	Kind  Kind
	Index int
	State State
	Param session.Parameter
	Label string

	press   func()
	cleanup func()
}

// Layout maps controls to MIDI CCs.
type Layout struct {
	Channel uint8
	FirstCC uint8
	// HighRes encoders send their LSB on CC+32.
	HighRes bool
}

// DefaultLayout is the controller's factory CC map: channel 15 (0-based
// 15 is MIDI channel 16), encoders on CC 12-19, buttons on CC 20-27.
var DefaultLayout = Layout{Channel: 15, FirstCC: 12, HighRes: true}

// EncoderCC returns the CC of encoder i.
func (l Layout) EncoderCC(i int) uint8 { return l.FirstCC + uint8(i) }

// ButtonCC returns the CC of button i.
func (l Layout) ButtonCC(i int) uint8 { return l.FirstCC + Controls + uint8(i) }

// TransportCC returns the CC of transport control i.
func (l Layout) TransportCC(i int) uint8 { return l.FirstCC + 2*Controls + uint8(i) }

// Manager keeps exactly one Binding per physical control. Connecting a
// control always releases its previous association first.
type Manager struct {
	layout   Layout
	encoders [Controls]Binding
	buttons  [Controls]Binding
	pressed  [Controls]bool
	msb      [Controls]int
}

func NewManager(layout Layout) *Manager {
	m := &Manager{layout: layout}
	for i := 0; i < Controls; i++ {
		m.encoders[i] = Binding{Kind: Encoder, Index: i}
		m.buttons[i] = Binding{Kind: Button, Index: i}
		m.msb[i] = -1
	}
	return m
}

func (m *Manager) Layout() Layout {
	return m.layout
}

func (m *Manager) slot(kind Kind, i int) *Binding {
	if i < 0 || i >= Controls {
		return nil
	}
	if kind == Button {
		return &m.buttons[i]
	}
	return &m.encoders[i]
}

// Get returns a copy of the binding of a control.
func (m *Manager) Get(kind Kind, i int) Binding {
	if b := m.slot(kind, i); b != nil {
		return *b
	}
	return Binding{Kind: kind, Index: i}
}

// ConnectParameter binds a control to p.
func (m *Manager) ConnectParameter(kind Kind, i int, p session.Parameter) {
	b := m.slot(kind, i)
	if b == nil || p == nil {
		return
	}
	m.release(b)
	b.State = Parameter
	b.Param = p
	b.Label = p.Name()
	debug.Verbose("binding", "%s %d -> %s", kind, i, p.Name())
}

// ConnectAction binds button i to press, which runs on every press.
// cleanup, if not nil, runs when the binding is released; it is where
// feedback listeners registered alongside the action are cancelled.
func (m *Manager) ConnectAction(i int, label string, press, cleanup func()) {
	b := m.slot(Button, i)
	if b == nil {
		return
	}
	m.release(b)
	b.State = Action
	b.Label = label
	b.press = press
	b.cleanup = cleanup
	debug.Verbose("binding", "button %d -> %s", i, label)
}

// Release returns a control to the unbound state.
func (m *Manager) Release(kind Kind, i int) {
	if b := m.slot(kind, i); b != nil {
		m.release(b)
	}
}

// ReleaseEncoders releases all encoders.
func (m *Manager) ReleaseEncoders() {
	for i := range m.encoders {
		m.release(&m.encoders[i])
	}
}

// ReleaseButtons releases all buttons.
func (m *Manager) ReleaseButtons() {
	for i := range m.buttons {
		m.release(&m.buttons[i])
	}
}

// ReleaseAll releases all sixteen controls.
func (m *Manager) ReleaseAll() {
	m.ReleaseEncoders()
	m.ReleaseButtons()
}

func (m *Manager) release(b *Binding) {
	cleanup := b.cleanup
	*b = Binding{Kind: b.Kind, Index: b.Index}
	if b.Kind == Encoder {
		m.msb[b.Index] = -1
	}
	if cleanup != nil {
		cleanup()
	}
}

// Pressed reports whether button i is held down.
func (m *Manager) Pressed(i int) bool {
	return i >= 0 && i < Controls && m.pressed[i]
}

// OtherPressed reports whether any button other than i is held down.
func (m *Manager) OtherPressed(i int) bool {
	for j, p := range m.pressed {
		if j != i && p {
			return true
		}
	}
	return false
}

// Bound returns every control currently connected to a parameter, encoders
// first.
func (m *Manager) Bound() []Binding {
	var out []Binding
	for _, list := range [][Controls]Binding{m.encoders, m.buttons} {
		for _, b := range list {
			if b.State != Unbound {
				out = append(out, b)
			}
		}
	}
	return out
}

// Snapshot returns all sixteen bindings, encoders first.
func (m *Manager) Snapshot() []Binding {
	out := make([]Binding, 0, 2*Controls)
	out = append(out, m.encoders[:]...)
	return append(out, m.buttons[:]...)
}

// HandleCC routes a control change from the hardware. It reports whether
// the CC belongs to an encoder or a button.
func (m *Manager) HandleCC(channel, cc, value uint8) bool {
	if channel != m.layout.Channel {
		return false
	}
	first := int(m.layout.FirstCC)
	n := int(cc) - first
	switch {
	case n >= 0 && n < Controls:
		m.encoderMSB(n, int(value))
		return true
	case n >= Controls && n < 2*Controls:
		m.button(n-Controls, value)
		return true
	case m.layout.HighRes && n >= 32 && n < 32+Controls:
		m.encoderLSB(n-32, int(value))
		return true
	}
	return false
}

func (m *Manager) encoderMSB(i, v int) {
	if !m.layout.HighRes {
		m.setEncoder(i, float64(v)/127)
		return
	}
	// The LSB that follows completes the value.
	m.msb[i] = v
}

func (m *Manager) encoderLSB(i, v int) {
	msb := m.msb[i]
	if msb < 0 {
		return
	}
	m.setEncoder(i, float64(msb<<7|v)/16383)
}

func (m *Manager) setEncoder(i int, norm float64) {
	b := &m.encoders[i]
	if b.State != Parameter || !b.Param.IsEnabled() {
		return
	}
	b.Param.SetValue(Denormalize(b.Param, norm))
	debug.LogEvery(32, "binding", "encoder %d %s=%.3f", i, b.Param.Name(), b.Param.Value())
}

func (m *Manager) button(i int, v uint8) {
	m.pressed[i] = v > 0
	if v == 0 {
		return
	}
	b := &m.buttons[i]
	switch b.State {
	case Action:
		b.press()
	case Parameter:
		p := b.Param
		if !p.IsEnabled() {
			return
		}
		if p.Value() > p.Min() {
			p.SetValue(p.Min())
		} else {
			p.SetValue(p.Max())
		}
	}
}

// Denormalize maps a 0..1 control position onto p's range, snapping to a
// step for quantised parameters.
func Denormalize(p session.Parameter, norm float64) float64 {
	norm = max(0, min(1, norm))
	v := p.Min() + norm*(p.Max()-p.Min())
	if p.IsQuantized() {
		v = math.Round(v)
	}
	return v
}

// Normalize14 scales p's value to the 14-bit range the hardware displays.
func Normalize14(p session.Parameter) int {
	span := p.Max() - p.Min()
	if span <= 0 {
		return 0
	}
	v := math.Round(16383 * (p.Value() - p.Min()) / span)
	return int(max(0, min(16383, v)))
}

func (b Binding) String() string {
	switch b.State {
	case Parameter, Action:
		return fmt.Sprintf("%s %d: %s", b.Kind, b.Index, b.Label)
	}
	return fmt.Sprintf("%s %d: -", b.Kind, b.Index)
}
