package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type Theme struct {
	// Tracks maps DAW colour indices to colours.
	Tracks  *Palette
	UI      *Palette
	Symbols Symbols
}

type Symbols struct {
	// Buttons
	Pressed  rune // ■ held down
	Released rune // □ up

	// Controls
	Bound   rune // ● connected
	Unbound rune // · free
	Action  rune // ◆ track toggle

	// Track flags
	Mute   rune
	Solo   rune
	Arm    rune
	Folded rune // ▸ folded group
	Open   rune // ▾ open group

	// Level meter
	MeterFull  rune
	MeterEmpty rune
}

// New builds a theme. A nil tracks palette uses Live().
func New(tracks *Palette) *Theme {
	if tracks == nil {
		tracks = Live()
	}
	return &Theme{
		Tracks: tracks,
		UI:     defaultUI(),
		Symbols: Symbols{
			Pressed:  '■',
			Released: '□',

			Bound:   '●',
			Unbound: '·',
			Action:  '◆',

			Mute:   'M',
			Solo:   'S',
			Arm:    'R',
			Folded: '▸',
			Open:   '▾',

			MeterFull:  '█',
			MeterEmpty: '░',
		},
	}
}

// defaultUI is a deep purple to bright yellow gradient.
func defaultUI() *Palette {
	stops := []string{"#1a0b2e", "#3b1c5a", "#6b2d7b", "#b23a8c", "#e0457b", "#ff6f61", "#ffb347", "#ffe66d"}
	p := &Palette{Name: "UI", Colors: make([]RGB, len(stops))}
	for i, h := range stops {
		c, _ := colorful.Hex(h)
		p.Colors[i] = fromColorful(c)
	}
	return p
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0  // deep purple
	RoleSurface = 0.1  // dark purple
	RoleMuted   = 0.25 // purple-magenta
	RoleFG      = 0.45 // pink (readable)
	RoleAccent  = 0.55 // vivid rose
	RoleActive  = 0.7  // coral
	RoleWarning = 0.85 // orange
	RoleSuccess = 1.0  // bright yellow
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.UI.Lookup(RoleBG))
}

func (t *Theme) Surface() lipgloss.Color {
	return rgbToLipgloss(t.UI.Lookup(RoleSurface))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.UI.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.UI.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.UI.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.UI.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.UI.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.UI.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.UI.Lookup(norm))
}

// Track returns the colour of a DAW colour index.
func (t *Theme) Track(index int) lipgloss.Color {
	return rgbToLipgloss(t.Tracks.Index(index))
}

// TrackText picks black or white text for a track colour swatch.
func (t *Theme) TrackText(index int) lipgloss.Color {
	_, _, l := t.Tracks.Index(index).colorful().Hcl()
	if l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
