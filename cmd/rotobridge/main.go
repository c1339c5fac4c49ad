package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"roto-bridge/config"
	"roto-bridge/debug"
)

var (
	Version = "dev"

	// Command-line configuration
	flags struct {
		config  string
		log     string
		logFile string
	}
)

var rootCmd = &cobra.Command{
	Use:   "rotobridge",
	Short: "Keep a Roto-Control in sync with a DAW session",
	Long: `rotobridge drives a Melbourne Instruments Roto-Control from a DAW
session model over the controller's sysex protocol: mixer and plugin modes,
paging, MIDI learn and transport.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "",
		"Config file (default ~/.config/roto-bridge/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flags.log, "log", "l", "",
		"Debug log level: basic or verbose (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "",
		"Debug log path (default ~/.config/roto-bridge/debug.log)")

	rootCmd.AddCommand(runCmd, portsCmd, probeCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config named on the command line, or the default
// one, and applies the logging flags.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.config != "" {
		cfg, err = config.LoadFile(flags.config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if flags.log != "" {
		cfg.Log.Level = flags.log
	}
	if flags.logFile != "" {
		cfg.Log.Path = flags.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// enableLog turns on the debug log when the config asks for it.
func enableLog(cfg *config.Config) error {
	if cfg.Log.Level == "" && cfg.Log.Path == "" {
		return nil
	}
	lvl, err := debug.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	return debug.Enable(cfg.Log.Path, lvl)
}
