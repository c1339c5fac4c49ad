package memdaw

import (
	"fmt"

	"roto-bridge/session"
)

// DeviceOnName is the activation parameter every device starts with.
const DeviceOnName = "Device On"

// Parameter is a device or mixer parameter.
type Parameter struct {
	bus *bus

	id           string
	name         string
	originalName string
	value        float64
	min, max     float64
	quantized    bool
	items        []string
	enabled      bool

	owner *Device
}

// NewParameter returns a continuous parameter.
func NewParameter(name string, min, max, value float64) *Parameter {
	return &Parameter{
		id:           newID(),
		name:         name,
		originalName: name,
		min:          min,
		max:          max,
		value:        value,
		enabled:      true,
	}
}

// NewQuantized returns a stepped parameter whose value indexes items.
func NewQuantized(name string, items []string, value int) *Parameter {
	p := NewParameter(name, 0, float64(max(0, len(items)-1)), float64(value))
	p.quantized = true
	p.items = append([]string(nil), items...)
	return p
}

func (p *Parameter) ID() string           { return p.id }
func (p *Parameter) Name() string         { return p.name }
func (p *Parameter) OriginalName() string { return p.originalName }
func (p *Parameter) Value() float64       { return p.value }
func (p *Parameter) Min() float64         { return p.min }
func (p *Parameter) Max() float64         { return p.max }
func (p *Parameter) IsQuantized() bool    { return p.quantized }
func (p *Parameter) ValueItems() []string { return p.items }
func (p *Parameter) IsEnabled() bool      { return p.enabled }

func (p *Parameter) SetValue(v float64) {
	v = max(p.min, min(p.max, v))
	if v == p.value {
		return
	}
	p.value = v
	if p.owner != nil && p.name == DeviceOnName {
		p.bus.notify(p.owner.id, session.AttrIsActive)
	}
}

// Rename changes the display name; the original name is kept.
func (p *Parameter) Rename(name string) {
	if name == p.name {
		return
	}
	p.name = name
	p.bus.notify(p.id, session.AttrName)
}

// SetEnabled marks the parameter as (not) automatable.
func (p *Parameter) SetEnabled(on bool) {
	p.enabled = on
}

// Chain is a rack branch.
type Chain struct {
	devices []*Device
}

func NewChain(devices ...*Device) *Chain {
	return &Chain{devices: devices}
}

func (c *Chain) Devices() []session.Device {
	return devicesOf(c.devices)
}

// Device is an instrument, effect or rack.
type Device struct {
	bus *bus

	id            string
	className     string
	name          string
	canHaveChains bool
	chains        []*Chain
	params        []*Parameter
	macrosMapped  []bool

	track *Track
}

// NewDevice returns a device whose first parameter is its activation
// switch, followed by params.
func NewDevice(className, name string, params ...*Parameter) *Device {
	d := &Device{id: newID(), className: className, name: name}
	d.setParams(append([]*Parameter{NewQuantized(DeviceOnName, []string{"Off", "On"}, 1)}, params...))
	return d
}

// NewRack returns a rack with eight macros ("Macro 1".."Macro 8") and the
// given chains. No macro starts out mapped.
func NewRack(className, name string, chains ...*Chain) *Device {
	macros := make([]*Parameter, 8)
	for i := range macros {
		macros[i] = NewParameter(fmt.Sprintf("Macro %d", i+1), 0, 127, 0)
	}
	d := NewDevice(className, name, macros...)
	d.canHaveChains = true
	d.chains = chains
	d.macrosMapped = make([]bool, 16)
	return d
}

func (d *Device) ID() string          { return d.id }
func (d *Device) ClassName() string   { return d.className }
func (d *Device) Name() string        { return d.name }
func (d *Device) CanHaveChains() bool { return d.canHaveChains }
func (d *Device) MacrosMapped() []bool {
	return d.macrosMapped
}

func (d *Device) IsActive() bool {
	if on := d.deviceOn(); on != nil {
		return on.value >= 0.5
	}
	return true
}

func (d *Device) Chains() []session.Chain {
	out := make([]session.Chain, len(d.chains))
	for i, c := range d.chains {
		out[i] = c
	}
	return out
}

func (d *Device) Parameters() []session.Parameter {
	out := make([]session.Parameter, len(d.params))
	for i, p := range d.params {
		out[i] = p
	}
	return out
}

// Param returns the concrete parameter at index i.
func (d *Device) Param(i int) *Parameter {
	return d.params[i]
}

// SetActive flips the activation switch.
func (d *Device) SetActive(on bool) {
	if p := d.deviceOn(); p != nil {
		v := 0.0
		if on {
			v = 1
		}
		p.SetValue(v)
	}
}

// DisableActivation makes the activation switch non-automatable, as for
// devices that cannot be turned off.
func (d *Device) DisableActivation() {
	if p := d.deviceOn(); p != nil {
		p.enabled = false
	}
}

func (d *Device) Rename(name string) {
	if name == d.name {
		return
	}
	d.name = name
	d.bus.notify(d.id, session.AttrName)
}

// SetParameters replaces the parameter list, keeping the activation switch.
func (d *Device) SetParameters(params ...*Parameter) {
	list := params
	if on := d.deviceOn(); on != nil {
		list = append([]*Parameter{on}, params...)
	}
	d.setParams(list)
	d.attach(d.bus, d.track)
	d.bus.notify(d.id, session.AttrParameters)
}

// SetMacroMapped marks macro slot i as mapped or free.
func (d *Device) SetMacroMapped(i int, mapped bool) {
	if i < 0 || i >= len(d.macrosMapped) || d.macrosMapped[i] == mapped {
		return
	}
	d.macrosMapped[i] = mapped
	d.bus.notify(d.id, session.AttrMacrosMapped)
}

func (d *Device) setParams(params []*Parameter) {
	d.params = params
	for _, p := range params {
		p.owner = d
	}
}

func (d *Device) deviceOn() *Parameter {
	for _, p := range d.params {
		if p.name == DeviceOnName {
			return p
		}
	}
	return nil
}

func (d *Device) attach(b *bus, t *Track) {
	d.bus = b
	d.track = t
	for _, p := range d.params {
		p.bus = b
	}
	for _, c := range d.chains {
		for _, nested := range c.devices {
			nested.attach(b, t)
		}
	}
}

func devicesOf(list []*Device) []session.Device {
	out := make([]session.Device, len(list))
	for i, d := range list {
		out[i] = d
	}
	return out
}
