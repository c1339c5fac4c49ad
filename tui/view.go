package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"roto-bridge/binding"
	"roto-bridge/bridge"
	"roto-bridge/sysex"
	"roto-bridge/widgets"
)

const (
	cellWidth = sysex.NameLength
	barWidth  = cellWidth
)

var helpSections = []widgets.KeySection{
	{
		Title: "Hardware",
		Keys: []widgets.KeyBinding{
			{Key: "c", Desc: "connect (ROTO_DAW_CONNECTED)"},
			{Key: "tab", Desc: "mixer / plugin mode"},
			{Key: "e b", Desc: "cycle encoder / button mode"},
			{Key: "s", Desc: "selected track strip"},
			{Key: "l", Desc: "toggle learn"},
			{Key: "1-8", Desc: "press button"},
			{Key: "left right", Desc: "page tracks"},
		},
	},
	{
		Title: "Transport",
		Keys: []widgets.KeyBinding{
			{Key: "space", Desc: "play"},
			{Key: ".", Desc: "stop"},
			{Key: "r", Desc: "record"},
		},
	},
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	if !m.ready {
		return "\n" + headerStyle.Render("roto-bridge") + "\n\n" + dimStyle.Render("starting...")
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(m.header())
	out.WriteString("\n\n")

	if m.snap.Mode.Active == bridge.ModePlugin {
		out.WriteString(m.devicesRow())
	} else {
		out.WriteString(m.tracksRow())
	}
	out.WriteString("\n\n")
	out.WriteString(m.controlsRows())
	out.WriteString("\n\n")

	if m.showHelp {
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(helpSections)))
	} else {
		out.WriteString(dimStyle.Render("?:help  tab:mode  1-8:buttons  space:play  q:quit"))
	}
	return out.String()
}

func (m Model) header() string {
	s := m.snap
	accent := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	warn := lipgloss.NewStyle().Foreground(m.Theme.Warning())
	ok := lipgloss.NewStyle().Foreground(m.Theme.Success())
	dim := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	parts := []string{accent.Render("roto-bridge"), s.Mode.String()}

	hw := dim.Render("no controller")
	if m.Output != nil {
		if c := m.Output.Current(); c != nil {
			hw = c.ID()
		}
	}
	if s.Connected {
		parts = append(parts, ok.Render("linked"), hw)
	} else {
		parts = append(parts, dim.Render("waiting"), hw)
	}

	if s.Playing {
		parts = append(parts, ok.Render("PLAY"))
	} else {
		parts = append(parts, dim.Render("STOP"))
	}
	if s.Recording {
		parts = append(parts, warn.Render("REC"))
	}
	if s.Learning {
		parts = append(parts, warn.Render("LEARN"))
	}
	if s.Locked {
		parts = append(parts, accent.Render("LOCK"))
	}
	parts = append(parts, dim.Render(fmt.Sprintf("sent:%d", s.Sent)))
	return strings.Join(parts, "  ")
}

func (m Model) tracksRow() string {
	s := m.snap
	sym := m.Theme.Symbols
	dim := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warn := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	var names, flags []string
	for _, t := range s.Tracks {
		name := t.Name
		if t.Foldable {
			fold := sym.Open
			if t.Folded {
				fold = sym.Folded
			}
			name = string(fold) + name
		}
		chip := widgets.RenderChip(name, cellWidth, m.Theme.TrackText(t.Color), m.Theme.Track(t.Color))
		if t.Selected {
			chip = lipgloss.NewStyle().Underline(true).Render(chip)
		}
		names = append(names, chip)

		flag := func(on bool, r rune) string {
			if on {
				return warn.Render(string(r))
			}
			return dim.Render(string(sym.Unbound))
		}
		f := flag(t.Mute, sym.Mute) + flag(t.Solo, sym.Solo) + flag(t.Arm, sym.Arm)
		flags = append(flags, lipgloss.NewStyle().Width(cellWidth).Render(f))
	}

	title := dim.Render(fmt.Sprintf("tracks %d-%d of %d", s.FirstTrack+1, s.FirstTrack+len(s.Tracks), s.TotalTracks))
	return title + "\n" + widgets.RenderColumns(names) + "\n" + widgets.RenderColumns(flags)
}

func (m Model) devicesRow() string {
	s := m.snap
	dim := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	var cells []string
	for _, d := range s.Devices {
		fg, bg := m.Theme.FG(), m.Theme.Surface()
		if d.Selected {
			fg, bg = m.Theme.BG(), m.Theme.Active()
		}
		name := d.Name
		if !d.Active {
			name = "(" + name + ")"
		}
		cells = append(cells, widgets.RenderChip(name, cellWidth, fg, bg))
	}

	title := dim.Render(fmt.Sprintf("devices %d-%d of %d", s.FirstDevice+1, s.FirstDevice+len(s.Devices), s.TotalDevs))
	if len(cells) == 0 {
		return title + "\n" + dim.Render("no devices on the selected track")
	}
	return title + "\n" + widgets.RenderColumns(cells)
}

func (m Model) controlsRows() string {
	sym := m.Theme.Symbols
	var encLabels, encBars, btnLabels, btnLEDs []string

	label := func(c bridge.ControlView) string {
		if c.State == binding.Unbound {
			return lipgloss.NewStyle().Width(cellWidth).Foreground(m.Theme.Muted()).Render(string(sym.Unbound))
		}
		return lipgloss.NewStyle().Width(cellWidth).Foreground(m.Theme.FG()).Render(widgets.Truncate(c.Label, cellWidth))
	}

	for _, c := range m.snap.Controls {
		switch c.Kind {
		case binding.Encoder:
			encLabels = append(encLabels, label(c))
			if c.State == binding.Parameter {
				encBars = append(encBars, widgets.RenderBar(c.Value, barWidth, sym.MeterFull, sym.MeterEmpty, m.Theme.Color(c.Value), m.Theme.Surface()))
			} else {
				encBars = append(encBars, strings.Repeat(" ", barWidth))
			}
		case binding.Button:
			btnLabels = append(btnLabels, label(c))
			on := c.Pressed || (c.State == binding.Parameter && c.Value > 0)
			color := m.Theme.Muted()
			if c.State == binding.Action {
				color = m.Theme.Accent()
			}
			led := widgets.RenderLED(on, sym.Pressed, sym.Released, color)
			btnLEDs = append(btnLEDs, lipgloss.NewStyle().Width(cellWidth).Render(led))
		}
	}

	return strings.Join([]string{
		widgets.RenderColumns(encLabels),
		widgets.RenderColumns(encBars),
		widgets.RenderColumns(btnLabels),
		widgets.RenderColumns(btnLEDs),
	}, "\n")
}
