package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf, LevelBasic)
	defer Disable()

	Log("mixer", "bound %d tracks", 8)
	Verbose("mixer", "hidden detail")
	out := buf.String()
	if !strings.Contains(out, "bound 8 tracks") || !strings.Contains(out, "cat=mixer") {
		t.Fatalf("basic message missing: %q", out)
	}
	if strings.Contains(out, "hidden detail") {
		t.Fatal("verbose message written at basic level")
	}

	buf.Reset()
	EnableWriter(&buf, LevelVerbose)
	Verbose("learn", "now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("verbose message missing: %q", buf.String())
	}
}

func TestDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf, LevelVerbose)
	Disable()
	Log("x", "dropped")
	if buf.Len() != 0 {
		t.Fatalf("wrote %q while disabled", buf.String())
	}
	if Enabled(LevelBasic) {
		t.Fatal("Enabled after Disable")
	}
}

func TestParseLevel(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Level
		ok   bool
	}{
		{"", LevelBasic, true},
		{"basic", LevelBasic, true},
		{"verbose", LevelVerbose, true},
		{"loud", LevelBasic, false},
	} {
		got, err := ParseLevel(tt.in)
		if got != tt.want || (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}
