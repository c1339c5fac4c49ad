package midi

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"roto-bridge/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DefaultMatch is the port name fragment a Roto-Control shows up under.
const DefaultMatch = "Roto-Control"

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceDisconnected {
		return "disconnected"
	}
	return "connected"
}

// DeviceManager handles hot-plug detection of Roto-Controls
type DeviceManager struct {
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
	match       string
	delay       time.Duration
}

// NewDeviceManager creates a device manager that picks up ports whose name
// contains match (case-insensitive). delay is the sysex pacing of each
// controller it opens.
func NewDeviceManager(match string, delay time.Duration) *DeviceManager {
	if match == "" {
		match = DefaultMatch
	}
	return &DeviceManager{
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
		match:       match,
		delay:       delay,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Controllers returns a snapshot of connected controllers
func (dm *DeviceManager) Controllers() map[string]Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]Controller, len(dm.controllers))
	for k, v := range dm.controllers {
		copy[k] = v
	}
	return copy
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

// Ports lists the MIDI input and output port names. It gives up after
// three seconds, which only happens when the OS MIDI service hangs.
func Ports() (ins, outs []string, ok bool) {
	inPorts, outPorts, ok := listPorts()
	for _, p := range inPorts {
		ins = append(ins, p.String())
	}
	for _, p := range outPorts {
		outs = append(outs, p.String())
	}
	return ins, outs, ok
}

func listPorts() ([]drivers.In, []drivers.Out, bool) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	// Get current MIDI ports with timeout (CoreMIDI can hang)
	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	select {
	case result := <-ch:
		return result.inPorts, result.outPorts, true
	case <-time.After(3 * time.Second):
		// CoreMIDI is hung - skip this scan
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, nil, false
	}
}

// OpenFirst opens the first Roto-Control found without starting the
// hot-plug loop, for one-shot commands.
func OpenFirst(match string, delay time.Duration) (Controller, error) {
	dm := NewDeviceManager(match, delay)
	inPorts, outPorts, ok := listPorts()
	if !ok {
		return nil, ErrPortsTimeout
	}
	for _, in := range inPorts {
		if !isRoto(in.String(), dm.match) {
			continue
		}
		return NewRotoController(in.String(), in, matchingOut(in.String(), outPorts), dm.delay)
	}
	return nil, ErrNotFound
}

func (dm *DeviceManager) scan() {
	inPorts, outPorts, ok := listPorts()
	if !ok {
		debug.Log("midi", "port scan timed out")
		return
	}

	// Build map of what we see now
	seenIDs := make(map[string]bool)

	// Look for Roto-Controls
	for _, inPort := range inPorts {
		id := inPort.String()
		if !isRoto(id, dm.match) {
			continue
		}
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.controllers[id]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		rc, err := NewRotoController(id, inPort, matchingOut(id, outPorts), dm.delay)
		if err != nil {
			debug.Log("midi", "open %s: %v", id, err)
			continue
		}

		dm.mu.Lock()
		dm.controllers[id] = rc
		dm.mu.Unlock()

		dm.events <- DeviceEvent{
			Type:       DeviceConnected,
			Controller: rc,
			ID:         id,
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.controllers {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	sort.Strings(toRemove)
	for _, id := range toRemove {
		c := dm.controllers[id]
		c.Close()
		delete(dm.controllers, id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = make(map[string]Controller)
}

// matchingOut finds the output port paired with an input port. Drivers
// name both sides the same, sometimes with a different direction suffix.
func matchingOut(inName string, outPorts []drivers.Out) drivers.Out {
	want := portBase(inName)
	for _, op := range outPorts {
		if strings.EqualFold(op.String(), inName) {
			return op
		}
	}
	for _, op := range outPorts {
		if portBase(op.String()) == want {
			return op
		}
	}
	return nil
}

// portBase strips the driver's port number and direction words.
func portBase(name string) string {
	name = strings.ToLower(name)
	for _, s := range []string{" in", " out", " input", " output"} {
		if i := strings.LastIndex(name, s); i >= 0 && i+len(s) <= len(name) {
			rest := name[i+len(s):]
			if rest == "" || rest[0] == ' ' {
				name = name[:i] + rest
			}
		}
	}
	fields := strings.Fields(name)
	if n := len(fields); n > 1 && isDigits(fields[n-1]) {
		fields = fields[:n-1]
	}
	return strings.Join(fields, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
