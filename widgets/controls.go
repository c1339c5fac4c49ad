package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderLED renders a single button LED
func RenderLED(on bool, onRune, offRune rune, color lipgloss.Color) string {
	r := offRune
	if on {
		r = onRune
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(r))
}

// RenderBar renders a horizontal value bar, norm in 0..1
func RenderBar(norm float64, width int, full, empty rune, fg, bg lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	n := int(norm*float64(width) + 0.5)
	on := lipgloss.NewStyle().Foreground(fg).Render(strings.Repeat(string(full), n))
	off := lipgloss.NewStyle().Foreground(bg).Render(strings.Repeat(string(empty), width-n))
	return on + off
}

// RenderChip renders a fixed width name on a coloured background, the way
// the hardware display shows a track.
func RenderChip(name string, width int, fg, bg lipgloss.Color) string {
	return lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(Truncate(name, width))
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// RenderColumns joins equally wide cells with a single space
func RenderColumns(cells []string) string {
	return strings.Join(cells, " ")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(swatch, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", swatch, name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
