// Package session is the read side of the DAW: the object graph the bridge
// mirrors onto the hardware, and the change notifications it listens to.
//
// The DAW owns every entity. The bridge only reads them and toggles a few
// flags (mute, solo, arm, fold state, parameter values).
package session

// Parameter is an automatable value of a device or mixer.
type Parameter interface {
	ID() string
	Name() string
	OriginalName() string
	Value() float64
	SetValue(v float64)
	Min() float64
	Max() float64
	IsQuantized() bool
	ValueItems() []string
	IsEnabled() bool
}

// Chain is one branch of a rack.
type Chain interface {
	Devices() []Device
}

// Device is an instrument, effect or rack on a track.
type Device interface {
	ID() string
	ClassName() string
	Name() string
	IsActive() bool
	CanHaveChains() bool
	Chains() []Chain
	Parameters() []Parameter
	// MacrosMapped reports, per macro control, whether anything is mapped to
	// it. Only racks return a non-empty slice.
	MacrosMapped() []bool
}

// Mixer is the channel strip of a track.
type Mixer interface {
	Volume() Parameter
	Panning() Parameter
	Sends() []Parameter
}

// Track is an audio, MIDI, group, return or master track.
type Track interface {
	ID() string
	Name() string
	ColorIndex() int
	IsVisible() bool
	IsFoldable() bool
	FoldState() bool
	SetFoldState(folded bool)
	Mute() bool
	SetMute(on bool)
	Solo() bool
	SetSolo(on bool)
	Arm() bool
	SetArm(on bool)
	CanBeArmed() bool
	Mixer() Mixer
	Devices() []Device
	SelectedDevice() Device
}

// Transport is the song's transport section.
type Transport interface {
	IsPlaying() bool
	RecordMode() bool
	SessionRecord() bool
	Loop() bool
	PunchIn() bool
	PunchOut() bool
	ReEnableAutomationEnabled() bool

	Play()
	Stop()
	SetRecordMode(on bool)
	SetSessionRecord(on bool)
	SetLoop(on bool)
	SetPunchIn(on bool)
	SetPunchOut(on bool)
	ReEnableAutomation()
	// Seek moves the play position by delta beats.
	Seek(delta float64)
}

// Song is the live set.
type Song interface {
	Transport

	Tracks() []Track
	ReturnTracks() []Track
	MasterTrack() Track

	SelectedTrack() Track
	SelectTrack(t Track)
	// SelectDevice makes d the selected device, selecting its track when
	// needed, and clears the selected parameter.
	SelectDevice(d Device)
	SelectedParameter() Parameter

	ExclusiveSolo() bool
	ExclusiveArm() bool

	// Subscribe registers fn for changes of attr on the entity with the
	// given ID (SongEntity for song level attributes). Notifications are
	// edge triggered and delivered synchronously, possibly while the caller
	// is still inside a mutation. The returned func cancels the
	// subscription.
	Subscribe(entity string, attr Attr, fn func()) (cancel func())
}

// SongEntity addresses song level attributes in Subscribe.
const SongEntity = "song"

// Attr names an observable attribute.
type Attr int

const (
	// song
	AttrTracks Attr = iota
	AttrSelectedTrack
	AttrSelectedParameter
	AttrSessionRecord
	AttrReEnableAutomation

	// track
	AttrSelectedDevice
	AttrName
	AttrColor
	AttrMute
	AttrSolo
	AttrArm

	// device
	AttrIsActive
	AttrParameters
	AttrMacrosMapped
)

var attrNames = [...]string{
	AttrTracks:             "tracks",
	AttrSelectedTrack:      "selected_track",
	AttrSelectedParameter:  "selected_parameter",
	AttrSessionRecord:      "session_record",
	AttrReEnableAutomation: "re_enable_automation_enabled",
	AttrSelectedDevice:     "selected_device",
	AttrName:               "name",
	AttrColor:              "color_index",
	AttrMute:               "mute",
	AttrSolo:               "solo",
	AttrArm:                "arm",
	AttrIsActive:           "is_active",
	AttrParameters:         "parameters",
	AttrMacrosMapped:       "macros_mapped",
}

func (a Attr) String() string {
	if a >= 0 && int(a) < len(attrNames) {
		return attrNames[a]
	}
	return "attr?"
}

// Same reports whether a and b are the same entity. Nil values are only the
// same as each other.
func Same[T interface{ ID() string }](a, b T) bool {
	an, bn := isNil(a), isNil(b)
	if an || bn {
		return an && bn
	}
	return a.ID() == b.ID()
}

// IndexOf returns the position of e in list, or -1.
func IndexOf[T interface{ ID() string }](list []T, e T) int {
	if isNil(e) {
		return -1
	}
	id := e.ID()
	for i, x := range list {
		if !isNil(x) && x.ID() == id {
			return i
		}
	}
	return -1
}

func isNil(v any) bool {
	return v == nil
}
