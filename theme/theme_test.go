package theme

import (
	"strings"
	"testing"
)

func TestLivePalette(t *testing.T) {
	p := Live()
	if got := len(p.Colors); got != 70 {
		t.Fatalf("Live palette has %d colours, want 70", got)
	}
	if got := p.Index(13).Hex(); got != "#ffffff" {
		t.Errorf("colour 13 = %s, want white", got)
	}
	if got := p.Index(500); got != p.Colors[69] {
		t.Errorf("out of range index not clamped")
	}
}

func TestParseGPL(t *testing.T) {
	gpl := `GIMP Palette
Name: Test
Columns: 2
# comment
255   0   0	Red
  0   0 255	Blue
`
	p, err := ParseGPL(strings.NewReader(gpl))
	if err != nil {
		t.Fatalf("ParseGPL: %v", err)
	}
	if p.Name != "Test" || len(p.Colors) != 2 {
		t.Fatalf("palette = %+v", p)
	}
	if p.Lookup(0) != (RGB{255, 0, 0}) || p.Lookup(1) != (RGB{0, 0, 255}) {
		t.Errorf("Lookup ends = %v %v", p.Lookup(0), p.Lookup(1))
	}
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\n")); err == nil {
		t.Errorf("empty palette accepted")
	}
}

func TestNearest(t *testing.T) {
	p := Live()
	for i := range p.Colors {
		// Duplicate greys aside, every colour maps back to itself.
		if got := p.Nearest(p.Colors[i]); p.Colors[got] != p.Colors[i] {
			t.Errorf("Nearest(colour %d) = %d", i, got)
		}
	}
}

func TestTrackText(t *testing.T) {
	th := New(nil)
	if got := th.TrackText(13); got != "#000000" {
		t.Errorf("text on white = %s, want black", got)
	}
	if got := th.TrackText(69); got != "#ffffff" {
		t.Errorf("text on dark grey = %s, want white", got)
	}
}
