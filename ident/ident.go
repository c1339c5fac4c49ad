// Package ident computes the content hashes the hardware stores to recognise
// plugins and parameters across project reloads and preset changes.
package ident

import (
	"crypto/sha1"
	"slices"
	"strconv"
	"strings"
)

// HashSize is the length of a parameter hash on the wire.
const HashSize = 6

// DigestSize is the length of a device digest on the wire.
const DigestSize = 8

// MacroDeviceName is hashed in place of racks that still carry their
// default name, so every fresh rack shares one set of mappings.
const MacroDeviceName = "MIMacroDefaultDevice"

// Hash identifies a parameter.
type Hash [HashSize]byte

var uniqueDeviceClasses = []string{
	"InstrumentGroupDevice",
	"DrumGroupDevice",
	"AudioEffectGroupDevice",
	"MidiEffectGroupDevice",
	"ProxyInstrumentDevice",
	"ProxyAudioEffectDevice",
	"PluginDevice",
	"AuPluginDevice",
	"MxDeviceInstrument",
	"MxDeviceAudioEffect",
	"MxDeviceMidiEffect",
}

var macroRackClasses = []string{
	"InstrumentGroupDevice",
	"AudioEffectGroupDevice",
	"MidiEffectGroupDevice",
	"DrumGroupDevice",
}

var macroPluginClasses = []string{
	"InstrumentMeld",
}

var defaultRackNames = []string{
	"Instrument Rack",
	"Audio Effect Rack",
	"MIDI Effect Rack",
	"Drum Rack",
}

var thirdPartyClasses = []string{
	"PluginDevice",
	"AuPluginDevice",
}

// digest returns the first n bytes of the SHA-1 of data, each masked to 7
// bits so it can travel inside a sysex frame.
func digest(data string, n int) []byte {
	sum := sha1.Sum([]byte(data))
	out := make([]byte, n)
	for i := range out {
		out[i] = sum[i] & 0x7F
	}
	return out
}

// ParamHash hashes a parameter's learn name.
func ParamHash(name string) Hash {
	var h Hash
	copy(h[:], digest(name, HashSize))
	return h
}

// DeviceDigest returns the 8 byte identity of a device.
func DeviceDigest(className, name string) []byte {
	switch {
	case IsMacroRack(className) && HasDefaultRackName(name):
		return digest(MacroDeviceName, DigestSize)
	case SupportsPresetRecall(className):
		return digest(className, DigestSize)
	}
	// The two halves hash the concatenation in opposite orders.
	out := digest(className+name, DigestSize/2)
	return append(out, digest(name+className, DigestSize/2)...)
}

// SupportsPresetRecall reports whether all presets of a device class can
// share one mapping.
func SupportsPresetRecall(className string) bool {
	return !slices.Contains(uniqueDeviceClasses, className)
}

func IsMacroRack(className string) bool {
	return slices.Contains(macroRackClasses, className)
}

func IsMacroPlugin(className string) bool {
	return slices.Contains(macroPluginClasses, className)
}

func HasDefaultRackName(name string) bool {
	return slices.Contains(defaultRackNames, name)
}

func IsThirdParty(className string) bool {
	return slices.Contains(thirdPartyClasses, className)
}

// Rack types reported in PLUGIN_DETAILS.
const (
	RackPlain      = 0
	RackMacro      = 1
	RackThirdParty = 2
)

// RackType classifies a device for the hardware.
func RackType(className string) byte {
	switch {
	case IsMacroRack(className):
		return RackMacro
	case IsThirdParty(className):
		return RackThirdParty
	}
	return RackPlain
}

// IsMacro reports whether a parameter of a device of the given class is a
// positionally fixed macro control.
func IsMacro(className, originalName string) bool {
	return (IsMacroRack(className) || IsMacroPlugin(className)) && strings.Contains(originalName, "Macro")
}

// LearnName picks the name a parameter is hashed under. Macros hash their
// original name so a user rename does not break the mapping, unless the
// rack itself is being learned as a plain device.
func LearnName(className, name, originalName string, learntRack bool) string {
	if IsMacro(className, originalName) && !learntRack {
		return originalName
	}
	return name
}

// MacroNumber extracts the trailing number of a macro's original name
// ("Macro 12" -> 12).
func MacroNumber(originalName string) (int, bool) {
	fields := strings.Fields(originalName)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Resolve maps a hardware-reported hash and index back to a parameter
// position in hashes. A unique hash match wins; duplicate names fall back to
// the index, which must still carry the same hash.
func Resolve(hashes []Hash, hash Hash, index int) (int, bool) {
	found, count := -1, 0
	for i, h := range hashes {
		if h == hash {
			if count == 0 {
				found = i
			}
			count++
		}
	}
	switch {
	case count == 1:
		return found, true
	case count > 1:
		if index >= 0 && index < len(hashes) && hashes[index] == hash {
			return index, true
		}
	}
	return -1, false
}
