package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"roto-bridge/debug"
	"roto-bridge/midi"
	"roto-bridge/sysex"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI ports and mark the ones a Roto-Control would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ins, outs, ok := midi.Ports()
		if !ok {
			fmt.Println("Fix: sudo killall coreaudiod midiserver")
			return midi.ErrPortsTimeout
		}
		mark := func(name string) string {
			if strings.Contains(strings.ToLower(name), strings.ToLower(cfg.Controller.PortMatch)) {
				return "*"
			}
			return " "
		}
		fmt.Println("=== MIDI Input Ports ===")
		for i, p := range ins {
			fmt.Printf(" %s %d: %s\n", mark(p), i, p)
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range outs {
			fmt.Printf(" %s %d: %s\n", mark(p), i, p)
		}
		return nil
	},
}

var probeWait time.Duration

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Announce a DAW to the controller and print what it sends back",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		debug.EnableWriter(os.Stderr, debug.LevelVerbose)
		defer debug.Disable()

		c, err := midi.OpenFirst(cfg.Controller.PortMatch, cfg.Timing.SendDelay)
		if errors.Is(err, midi.ErrNotFound) {
			return fmt.Errorf("%w matching %q; see `rotobridge ports`", err, cfg.Controller.PortMatch)
		}
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		return probe(ctx, c, probeWait)
	},
}

func init() {
	probeCmd.Flags().DurationVarP(&probeWait, "wait", "w", 3*time.Second,
		"How long to listen for replies")
}

// probe sends DAW_STARTED, answers pings and prints every inbound message
// until wait elapses.
func probe(ctx context.Context, c midi.Controller, wait time.Duration) error {
	fmt.Printf("probing %s\n", c.ID())
	if err := c.SendSysex(sysex.New(sysex.GroupGeneral, sysex.DAWStarted)); err != nil {
		return err
	}

	timeout := time.After(wait)
	count := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			fmt.Printf("%d messages, %d sysex frames sent\n", count, midi.SysexSent())
			return nil
		case raw, ok := <-c.Messages():
			if !ok {
				return nil
			}
			count++
			m, isOurs := sysex.Parse(raw)
			if !isOurs {
				fmt.Printf("  %s\n", midi.Describe(raw))
				continue
			}
			fmt.Printf("  %s\n", m)
			if m.Group == sysex.GroupGeneral && m.Command == sysex.PingDAW {
				reply := sysex.New(sysex.GroupGeneral, sysex.DAWPingResponse, []byte{sysex.DAWIdentifier})
				if err := c.SendSysex(reply); err != nil {
					return err
				}
			}
		}
	}
}

var configWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if configWrite {
			if flags.config != "" {
				err = cfg.SaveTo(flags.config)
			} else {
				err = cfg.Save()
			}
			if err != nil {
				return err
			}
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVarP(&configWrite, "write", "w", false,
		"Also save it to the config file")
}
