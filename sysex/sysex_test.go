package sysex_test

import (
	"bytes"
	"testing"

	"roto-bridge/sysex"
)

func TestEncodeFrame(t *testing.T) {
	m := sysex.New(sysex.GroupGeneral, sysex.DAWPingResponse, []byte{sysex.DAWIdentifier})
	got := m.Encode()
	want := []byte{0xF0, 0x00, 0x22, 0x03, 0x02, 0x0A, 0x03, 0x01, 0xF7}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % x, want % x", got, want)
	}
	if body := m.Body(); !bytes.Equal(body, want[1:len(want)-1]) {
		t.Fatalf("Body() = % x", body)
	}
}

func TestEncodeNoPayload(t *testing.T) {
	got := sysex.New(sysex.GroupGeneral, sysex.DAWStarted).Encode()
	want := []byte{0xF0, 0x00, 0x22, 0x03, 0x02, 0x0A, 0x01, 0xF7}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % x, want % x", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		ok   bool
		want sysex.Message
	}{
		{
			name: "ping",
			raw:  []byte{0xF0, 0x00, 0x22, 0x03, 0x02, 0x0A, 0x02, 0xF7},
			ok:   true,
			want: sysex.Message{Group: sysex.GroupGeneral, Command: sysex.PingDAW},
		},
		{
			name: "select track",
			raw:  []byte{0xF0, 0x00, 0x22, 0x03, 0x02, 0x0A, 0x09, 0x01, 0x05, 0xF7},
			ok:   true,
			want: sysex.Message{Group: sysex.GroupGeneral, Command: sysex.SelectTrack, Payload: []byte{0x01, 0x05}},
		},
		{
			name: "too short",
			raw:  []byte{0xF0, 0x00, 0x22, 0x03, 0x02, 0x0A, 0xF7},
		},
		{
			name: "other manufacturer",
			raw:  []byte{0xF0, 0x00, 0x20, 0x29, 0x02, 0x0C, 0x00, 0x7F, 0xF7},
		},
		{
			name: "other device",
			raw:  []byte{0xF0, 0x00, 0x22, 0x03, 0x05, 0x0A, 0x02, 0xF7},
		},
		{
			name: "control change",
			raw:  []byte{0xBF, 0x0C, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := sysex.Parse(tt.raw)
			if ok != tt.ok {
				t.Fatalf("Parse() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if m.Group != tt.want.Group || m.Command != tt.want.Command || !bytes.Equal(m.Payload, tt.want.Payload) {
				t.Fatalf("Parse() = %v, want %v", m, tt.want)
			}
		})
	}
}

func TestParseEncoded(t *testing.T) {
	m := sysex.New(sysex.GroupMixer, sysex.SetMixerAllMode, []byte{1, 2, 0, 3})
	got, ok := sysex.Parse(m.Encode())
	if !ok {
		t.Fatal("Parse rejected an encoded frame")
	}
	if got.Group != m.Group || got.Command != m.Command || !bytes.Equal(got.Payload, m.Payload) {
		t.Fatalf("Parse(Encode()) = %v, want %v", got, m)
	}
}

func TestSplit14(t *testing.T) {
	for _, v := range []int{0, 1, 127, 128, 1000, 16383} {
		msb, lsb := sysex.Split14(v)
		if msb > 0x7F || lsb > 0x7F {
			t.Fatalf("Split14(%d) = %#x %#x, not 7-bit", v, msb, lsb)
		}
		if got := sysex.Join14(msb, lsb); got != v {
			t.Errorf("Join14(Split14(%d)) = %d", v, got)
		}
	}
	if msb, lsb := sysex.Split14(130); msb != 1 || lsb != 2 {
		t.Errorf("Split14(130) = %d %d, want 1 2", msb, lsb)
	}
}

func TestPackName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bass", "Bass"},
		{"", ""},
		{"123456789012", "123456789012"},
		{"1234567890123", "123456789012"},
		{"A very long track name", "A very long "},
		{"Grüße Tracks", "Grüße Trac"},
	}
	for _, tt := range tests {
		b := sysex.PackName(tt.in)
		if len(b) != sysex.NameLength {
			t.Fatalf("PackName(%q) has %d bytes", tt.in, len(b))
		}
		if b[sysex.NameLength-1] != 0 {
			t.Errorf("PackName(%q) last byte = %#x, want null", tt.in, b[sysex.NameLength-1])
		}
		if got := sysex.UnpackName(b); got != tt.want {
			t.Errorf("UnpackName(PackName(%q)) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNameRoundTrip13(t *testing.T) {
	field := sysex.PackName("Lead Vocals!")
	again := sysex.PackName(sysex.UnpackName(field))
	if !bytes.Equal(field, again) {
		t.Fatalf("round trip changed field: % x -> % x", field, again)
	}
}

func TestPackLabel(t *testing.T) {
	b := sysex.PackLabel("Sägezahn")
	for i, c := range b {
		if c > 0x7F {
			t.Fatalf("PackLabel byte %d = %#x, not 7-bit", i, c)
		}
	}
	if len(b) != sysex.NameLength {
		t.Fatalf("PackLabel length = %d", len(b))
	}
}
