package ident_test

import (
	"bytes"
	"crypto/sha1"
	"testing"

	"roto-bridge/ident"
)

func TestParamHash(t *testing.T) {
	names := []string{"", "Cutoff", "Macro 1", "Filter Freq", "Ünïcödé", "Device On"}
	for _, name := range names {
		h := ident.ParamHash(name)
		if h != ident.ParamHash(name) {
			t.Fatalf("ParamHash(%q) not deterministic", name)
		}
		sum := sha1.Sum([]byte(name))
		for i, b := range h {
			if b > 0x7F {
				t.Fatalf("ParamHash(%q)[%d] = %#x, not 7-bit", name, i, b)
			}
			if b != sum[i]&0x7F {
				t.Fatalf("ParamHash(%q)[%d] = %#x, want %#x", name, i, b, sum[i]&0x7F)
			}
		}
	}
	if ident.ParamHash("Cutoff") == ident.ParamHash("Resonance") {
		t.Fatal("distinct names produced identical hashes")
	}
}

func TestDeviceDigest(t *testing.T) {
	macro := ident.DeviceDigest("InstrumentGroupDevice", "Instrument Rack")
	if len(macro) != ident.DigestSize {
		t.Fatalf("digest length = %d", len(macro))
	}
	sum := sha1.Sum([]byte(ident.MacroDeviceName))
	for i, b := range macro {
		if b != sum[i]&0x7F {
			t.Fatalf("macro digest[%d] = %#x, want %#x", i, b, sum[i]&0x7F)
		}
	}
	if got := ident.DeviceDigest("DrumGroupDevice", "Drum Rack"); !bytes.Equal(got, macro) {
		t.Errorf("default named racks should share the macro digest")
	}

	// Native devices hash the class alone, so presets share a mapping.
	a := ident.DeviceDigest("AutoFilter", "Auto Filter")
	b := ident.DeviceDigest("AutoFilter", "My Preset")
	if !bytes.Equal(a, b) {
		t.Errorf("preset recall devices should ignore the display name")
	}

	// Plugins and renamed racks hash class+name in both orders.
	p := ident.DeviceDigest("PluginDevice", "Serum")
	if len(p) != ident.DigestSize {
		t.Fatalf("plugin digest length = %d", len(p))
	}
	first := sha1.Sum([]byte("PluginDeviceSerum"))
	second := sha1.Sum([]byte("SerumPluginDevice"))
	for i := 0; i < 4; i++ {
		if p[i] != first[i]&0x7F || p[4+i] != second[i]&0x7F {
			t.Fatalf("plugin digest = % x", p)
		}
	}
	if r := ident.DeviceDigest("InstrumentGroupDevice", "Keys"); bytes.Equal(r, macro) {
		t.Errorf("renamed rack should not use the macro digest")
	}
}

func TestLearnName(t *testing.T) {
	tests := []struct {
		class, name, original string
		learntRack            bool
		want                  string
	}{
		{"InstrumentGroupDevice", "Brightness", "Macro 1", false, "Macro 1"},
		{"InstrumentGroupDevice", "Brightness", "Macro 1", true, "Brightness"},
		{"InstrumentMeld", "Tone", "Macro 3", false, "Macro 3"},
		{"AutoFilter", "Freq", "Frequency", false, "Freq"},
		{"PluginDevice", "Macro A", "Macro A", false, "Macro A"},
		{"InstrumentGroupDevice", "Chain Selector", "Chain Selector", false, "Chain Selector"},
	}
	for _, tt := range tests {
		if got := ident.LearnName(tt.class, tt.name, tt.original, tt.learntRack); got != tt.want {
			t.Errorf("LearnName(%q, %q, %q, %v) = %q, want %q", tt.class, tt.name, tt.original, tt.learntRack, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	gain := ident.ParamHash("Gain")
	freq := ident.ParamHash("Freq")
	hashes := []ident.Hash{ident.ParamHash("Device On"), gain, freq, gain}

	tests := []struct {
		name   string
		hash   ident.Hash
		index  int
		want   int
		wantOK bool
	}{
		{"unique ignores index", freq, 0, 2, true},
		{"duplicate uses index", gain, 3, 3, true},
		{"duplicate other index", gain, 1, 1, true},
		{"duplicate index mismatch", gain, 2, -1, false},
		{"duplicate index out of range", gain, 9, -1, false},
		{"no match", ident.ParamHash("Q"), 1, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ident.Resolve(hashes, tt.hash, tt.index)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("Resolve() = %d, %v, want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMacroNumber(t *testing.T) {
	if n, ok := ident.MacroNumber("Macro 12"); !ok || n != 12 {
		t.Fatalf("MacroNumber = %d, %v", n, ok)
	}
	if _, ok := ident.MacroNumber("Chain Selector"); ok {
		t.Fatal("MacroNumber accepted a non-macro")
	}
}

func TestRackType(t *testing.T) {
	if ident.RackType("DrumGroupDevice") != ident.RackMacro {
		t.Error("drum rack should be a macro rack")
	}
	if ident.RackType("AuPluginDevice") != ident.RackThirdParty {
		t.Error("AU plugin should be third party")
	}
	if ident.RackType("Reverb") != ident.RackPlain {
		t.Error("native device should be plain")
	}
}
