// Package bridge keeps the Roto-Control hardware and a DAW session in
// sync. It decodes inbound sysex commands, drives the mode state machine,
// (re)binds the sixteen controls and mirrors DAW changes back to the
// hardware.
//
// A Bridge is single threaded. Every entry point (HandleMessage, Tick and
// the DAW notifications it subscribes to) must run on one goroutine; Runner
// provides that goroutine.
package bridge

import (
	"time"

	"roto-bridge/binding"
	"roto-bridge/paging"
	"roto-bridge/session"
	"roto-bridge/sysex"
)

// Output is the hardware side of the bridge.
type Output interface {
	// SendSysex sends one framed command. Implementations pace frames with
	// sysex.SendDelay.
	SendSysex(m sysex.Message) error
	SendCC(channel, cc, value uint8) error
}

// Options tunes a Bridge. Zero fields take the defaults.
type Options struct {
	Layout             binding.Layout
	ActivationWindow   time.Duration
	DeviceSelectWindow time.Duration
	// SeekStep is how far rewind and fast forward move, in beats.
	SeekStep float64
	Now      func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Layout == (binding.Layout{}) {
		o.Layout = binding.DefaultLayout
	}
	if o.ActivationWindow == 0 {
		o.ActivationWindow = 200 * time.Millisecond
	}
	if o.DeviceSelectWindow == 0 {
		o.DeviceSelectWindow = 150 * time.Millisecond
	}
	if o.SeekStep == 0 {
		o.SeekStep = 4
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Lock pins the device view to a track and device.
type Lock struct {
	Active bool
	Track  session.Track
	Device session.Device
}

type trackDetail struct {
	name  string
	color int
}

// Context is the state the bridge owns: mode, paging, selection, lock and
// learn state. It is threaded through every command handler.
type Context struct {
	Mode Mode

	audio        paging.Window
	masterReturn paging.Window
	devices      paging.Window

	selectedTrack  int
	selectedClass  session.ChannelClass
	selectedDevice int

	lock Lock

	learning    bool
	learnDevice session.Device
	reselecting bool

	trackViaHardware  bool
	deviceViaHardware bool
	touchOverride     bool

	visible   []bool
	details   map[string]trackDetail
	connected bool
}

// Bridge is the synchronisation engine.
type Bridge struct {
	song     session.Song
	mirror   *session.Mirror
	out      Output
	controls *binding.Manager
	opts     Options

	ctx Context

	trackSubs  *session.Subscriptions
	deviceSubs *session.Subscriptions
	paramSubs  *session.Subscriptions

	activation   *Throttle
	deviceSelect *Throttle

	songCancels    []func()
	selectedCancel func()
	selectedFor    string

	sent int
}

// New wires a bridge between song and out. Call Start before feeding it
// messages.
func New(song session.Song, out Output, opts Options) *Bridge {
	opts = opts.withDefaults()
	return &Bridge{
		song:         song,
		mirror:       session.NewMirror(song),
		out:          out,
		controls:     binding.NewManager(opts.Layout),
		opts:         opts,
		ctx:          Context{details: make(map[string]trackDetail)},
		trackSubs:    session.NewSubscriptions(song),
		deviceSubs:   session.NewSubscriptions(song),
		paramSubs:    session.NewSubscriptions(song),
		activation:   NewThrottle(opts.ActivationWindow),
		deviceSelect: NewThrottle(opts.DeviceSelectWindow),
	}
}

// Start announces the bridge to the hardware and subscribes to the song.
func (b *Bridge) Start() {
	listen := func(attr session.Attr, fn func()) {
		b.songCancels = append(b.songCancels, b.song.Subscribe(session.SongEntity, attr, fn))
	}
	listen(session.AttrSelectedTrack, b.onSelectedTrack)
	listen(session.AttrSelectedParameter, b.onSelectedParameter)
	listen(session.AttrReEnableAutomation, b.onReEnableAutomation)
	listen(session.AttrSessionRecord, b.onSessionRecord)
	listen(session.AttrTracks, b.onTracksChanged)
	b.followSelectedTrack()

	b.send(sysex.GroupGeneral, sysex.DAWStarted)
}

// Close drops every DAW subscription and releases all controls.
func (b *Bridge) Close() {
	for _, cancel := range b.songCancels {
		cancel()
	}
	b.songCancels = nil
	if b.selectedCancel != nil {
		b.selectedCancel()
		b.selectedCancel = nil
	}
	b.controls.ReleaseAll()
	b.trackSubs.Clear()
	b.deviceSubs.Clear()
	b.paramSubs.Clear()
}

// Controls exposes the binding manager, mainly for tests and the monitor.
func (b *Bridge) Controls() *binding.Manager {
	return b.controls
}

// Mode returns the current mode.
func (b *Bridge) Mode() Mode {
	return b.ctx.Mode
}

// Tick runs the periodic work: the fold/visibility poll and the replay of
// throttled notifications. It does nothing before the hardware connected.
func (b *Bridge) Tick() {
	if !b.ctx.connected {
		return
	}
	b.updateFoldableTracks()
	now := b.opts.Now()
	b.activation.Flush(now, b.deviceActivationChanged)
	b.deviceSelect.Flush(now, b.onSelectedDevice)
}

// followSelectedTrack moves the selected-device listener to the track that
// is selected now.
func (b *Bridge) followSelectedTrack() {
	t := b.song.SelectedTrack()
	id := ""
	if t != nil {
		id = t.ID()
	}
	if id == b.selectedFor && b.selectedCancel != nil {
		return
	}
	if b.selectedCancel != nil {
		b.selectedCancel()
		b.selectedCancel = nil
	}
	b.selectedFor = id
	if t != nil {
		b.selectedCancel = b.song.Subscribe(id, session.AttrSelectedDevice, b.onSelectedDevice)
	}
}
