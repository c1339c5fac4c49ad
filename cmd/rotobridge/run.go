package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"roto-bridge/binding"
	"roto-bridge/bridge"
	"roto-bridge/config"
	"roto-bridge/debug"
	"roto-bridge/midi"
	"roto-bridge/session/memdaw"
	"roto-bridge/theme"
	"roto-bridge/tui"
)

var runFlags struct {
	session string
	match   string
	noTUI   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bridge against a simulated live set",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if runFlags.session != "" {
			cfg.Session.File = runFlags.session
		}
		if runFlags.match != "" {
			cfg.Controller.PortMatch = runFlags.match
		}
		if err := enableLog(cfg); err != nil {
			return err
		}
		defer debug.Disable()
		return run(cfg, !runFlags.noTUI)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.session, "session", "s", "",
		"Live set YAML to load (default: built-in demo set)")
	runCmd.Flags().StringVarP(&runFlags.match, "port", "p", "",
		"MIDI port name fragment of the controller")
	runCmd.Flags().BoolVar(&runFlags.noTUI, "no-tui", false,
		"Run headless until interrupted")
}

func run(cfg *config.Config, withTUI bool) error {
	song, err := loadSong(cfg.Session.File)
	if err != nil {
		return err
	}

	th, err := loadTheme(cfg.Theme.Palette)
	if err != nil {
		return err
	}

	layout := binding.Layout{
		Channel: uint8(cfg.Controller.Channel),
		FirstCC: uint8(cfg.Controller.FirstCC),
		HighRes: cfg.Controller.HighRes,
	}

	out := &midi.Switch{}
	b := bridge.New(song, out, bridge.Options{
		Layout:             layout,
		ActivationWindow:   cfg.Timing.ActivationWindow,
		DeviceSelectWindow: cfg.Timing.DeviceSelectWindow,
		SeekStep:           cfg.Timing.SeekStep,
	})
	runner := bridge.NewRunner(b, cfg.Timing.Tick)
	runner.Unhandled = func(raw []byte) {
		debug.Verbose("midi", "not for us: %s", midi.Describe(raw))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Hot-plug: whichever controller shows up becomes the bridge's output.
	if cfg.Controller.AutoConnect {
		dm := midi.NewDeviceManager(cfg.Controller.PortMatch, cfg.Timing.SendDelay)
		go dm.Run(ctx)
		go out.Follow(dm.Events(), runner.Post)
	}

	done := make(chan struct{})
	go func() {
		runner.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	if !withTUI {
		fmt.Printf("rotobridge %s: waiting for %q (ctrl+c to quit)\n", Version, cfg.Controller.PortMatch)
		<-ctx.Done()
		return nil
	}

	m := tui.NewModel(runner, out, th, layout)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("monitor: %w", err)
	}
	return nil
}

func loadSong(path string) (*memdaw.Song, error) {
	if path == "" {
		return memdaw.Parse([]byte(demoSet))
	}
	return memdaw.Load(path)
}

func loadTheme(palette string) (*theme.Theme, error) {
	if palette == "" {
		return theme.New(nil), nil
	}
	p, err := theme.LoadGPL(palette)
	if err != nil {
		return nil, err
	}
	return theme.New(p), nil
}

// demoSet is loaded when no session file is configured.
const demoSet = `
returns:
  - {name: A-Reverb, color: 20}
  - {name: B-Delay, color: 22}
tracks:
  - name: Drums
    color: 14
    group: true
  - name: Kick
    color: 15
    parent: Drums
    devices:
      - class: OriginalSimpler
        name: Kick
        params:
          - {name: Volume, min: -36, max: 6, value: 0}
          - {name: Transpose, min: -48, max: 48, value: 0}
  - name: Snare
    color: 16
    parent: Drums
  - name: Bass
    color: 2
    devices:
      - class: InstrumentGroupDevice
        name: Bass Rack
        rack: true
        mapped: [1, 2]
        chains:
          - devices:
              - class: Operator
                name: Operator
                params:
                  - {name: Filter Freq, min: 20, max: 18000, value: 800}
      - class: AutoFilter
        name: Auto Filter
        params:
          - {name: Frequency, min: 20, max: 18000, value: 2000}
          - {name: Resonance, min: 0, max: 1, value: 0.2}
          - name: Filter Type
            items: [Lowpass, Highpass, Bandpass, Notch]
  - name: Keys
    color: 25
  - name: Pad
    color: 38
  - name: Lead
    color: 5
  - name: Vox
    color: 9
  - name: FX
    color: 44
  - name: Perc
    color: 60
selected: Bass
`
