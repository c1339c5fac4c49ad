package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"roto-bridge/binding"
	"roto-bridge/bridge"
	"roto-bridge/midi"
	"roto-bridge/session"
	"roto-bridge/sysex"
	"roto-bridge/theme"
)

// Model is a live monitor of one bridge. Keys stand in for the hardware so
// a set can be explored with no controller attached.
type Model struct {
	Runner *bridge.Runner
	Output *midi.Switch // may be nil
	Theme  *theme.Theme
	Layout binding.Layout

	snap     bridge.Snapshot
	ready    bool
	quitting bool
	showHelp bool
}

type SnapshotMsg bridge.Snapshot

// Transport CC offsets after the buttons.
const (
	transportPlay = iota
	transportStop
	transportRecord
)

func NewModel(r *bridge.Runner, out *midi.Switch, th *theme.Theme, layout binding.Layout) Model {
	return Model{
		Runner: r,
		Output: out,
		Theme:  th,
		Layout: layout,
	}
}

func ListenForUpdates(r *bridge.Runner) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg(<-r.Updates())
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Runner)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "?":
			m.showHelp = !m.showHelp

		case "c":
			m.post(sysex.GroupGeneral, sysex.RotoDAWConnected)

		case "tab":
			if m.snap.Mode.Active == bridge.ModePlugin {
				m.post(sysex.GroupMixer, sysex.SetMixerAllMode, m.mixerAll(0, 0))
			} else {
				m.post(sysex.GroupPlugin, sysex.SetPluginMode)
			}

		case "e":
			m.post(sysex.GroupMixer, sysex.SetMixerAllMode, m.mixerAll(1, 0))

		case "b":
			m.post(sysex.GroupMixer, sysex.SetMixerAllMode, m.mixerAll(0, 1))

		case "s":
			m.post(sysex.GroupMixer, sysex.SetMixerSelectedMode, []byte{0})

		case "l":
			on := byte(1)
			if m.snap.Learning {
				on = 0
			}
			m.post(sysex.GroupPlugin, sysex.SetDeviceLearn, []byte{on})

		case "left":
			m.page(-binding.Controls)

		case "right":
			m.page(binding.Controls)

		case " ":
			m.transport(transportPlay)

		case ".":
			m.transport(transportStop)

		case "r":
			m.transport(transportRecord)

		case "1", "2", "3", "4", "5", "6", "7", "8":
			m.pressButton(int(msg.String()[0] - '1'))
		}

	case SnapshotMsg:
		m.snap = bridge.Snapshot(msg)
		m.ready = true
		return m, ListenForUpdates(m.Runner)
	}

	return m, nil
}

// mixerAll builds a SET_MIXER_ALL_MODE payload with the encoder and button
// modes advanced by de and db.
func (m Model) mixerAll(de, db int) []byte {
	mode := m.snap.Mode
	enc := (int(mode.Encoder) + de) % 3
	btn := (int(mode.Button) + db) % 3
	ch := byte(0)
	if mode.Channel == session.MasterReturn {
		ch = 1
	}
	return []byte{ch, byte(enc), byte(btn), byte(mode.SendIndex)}
}

func (m Model) post(g sysex.Group, c sysex.Command, parts ...[]byte) {
	m.Runner.Post(sysex.New(g, c, parts...).Encode())
}

func (m Model) cc(cc, v uint8) {
	m.Runner.Post([]byte{midi.CC | m.Layout.Channel, cc, v})
}

func (m Model) pressButton(i int) {
	cc := m.Layout.ButtonCC(i)
	m.cc(cc, 127)
	m.cc(cc, 0)
}

func (m Model) transport(i int) {
	cc := m.Layout.TransportCC(i)
	m.cc(cc, 127)
	m.cc(cc, 0)
}

func (m Model) page(delta int) {
	first := m.snap.FirstTrack + delta
	if first < 0 || first >= m.snap.TotalTracks {
		return
	}
	m.post(sysex.GroupGeneral, sysex.SetFirstTrack, sysex.Int14(first))
}
