package midi

import "testing"

func TestPortBase(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"Roto-Control In", "Roto-Control Out", true},
		{"Roto-Control Input 1", "Roto-Control Output 1", true},
		{"Roto-Control", "ROTO-CONTROL 2", true},
		{"Melbourne Instruments Roto-Control", "Melbourne Instruments Roto-Control", true},
		{"Roto-Control", "Launchpad X", false},
	}
	for _, tt := range tests {
		if got := portBase(tt.a) == portBase(tt.b); got != tt.same {
			t.Errorf("portBase(%q)=%q, portBase(%q)=%q", tt.a, portBase(tt.a), tt.b, portBase(tt.b))
		}
	}
}

func TestIsRoto(t *testing.T) {
	if !isRoto("Melbourne Instruments ROTO-CONTROL", DefaultMatch) {
		t.Errorf("upper case port not matched")
	}
	if isRoto("Launchpad X LPX MIDI", DefaultMatch) {
		t.Errorf("Launchpad matched")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		raw  []byte
		want string
	}{
		{nil, "empty"},
		{[]byte{0xBF, 12, 64}, "cc ch16 #12=64"},
		{[]byte{0xF0, 0x00, 0x22, 0x03, 0x02, 0x0A, 0x02, 0xF7}, "sysex F0 00 22 03 02 0A 02 F7"},
		{[]byte{0xF8}, "F8"},
	}
	for _, tt := range tests {
		if got := Describe(tt.raw); got != tt.want {
			t.Errorf("Describe(% x) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
