package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// ControllerConfig selects and lays out the hardware
type ControllerConfig struct {
	PortMatch   string `yaml:"port_match"`
	AutoConnect bool   `yaml:"auto_connect"`
	// Channel is the 0-based MIDI channel of controls and LEDs.
	Channel int  `yaml:"channel"`
	FirstCC int  `yaml:"first_cc"`
	HighRes bool `yaml:"high_res"`
}

// TimingConfig holds the pacing and throttle windows
type TimingConfig struct {
	Tick               time.Duration `yaml:"tick"`
	SendDelay          time.Duration `yaml:"send_delay"`
	ActivationWindow   time.Duration `yaml:"activation_window"`
	DeviceSelectWindow time.Duration `yaml:"device_select_window"`
	SeekStep           float64       `yaml:"seek_step"`
}

// LogConfig enables the debug log
type LogConfig struct {
	Level string `yaml:"level,omitempty"` // "", basic, verbose
	Path  string `yaml:"path,omitempty"`
}

// SessionConfig points at the set the simulator host loads
type SessionConfig struct {
	File string `yaml:"file,omitempty"`
}

// ThemeConfig overrides the DAW colour palette
type ThemeConfig struct {
	Palette string `yaml:"palette,omitempty"` // GIMP .gpl file
}

// Config is the main configuration structure
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Timing     TimingConfig     `yaml:"timing"`
	Log        LogConfig        `yaml:"log,omitempty"`
	Session    SessionConfig    `yaml:"session,omitempty"`
	Theme      ThemeConfig      `yaml:"theme,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Controller: ControllerConfig{
			PortMatch:   "Roto-Control",
			AutoConnect: true,
			Channel:     15,
			FirstCC:     12,
			HighRes:     true,
		},
		Timing: TimingConfig{
			Tick:               500 * time.Millisecond,
			SendDelay:          5 * time.Millisecond,
			ActivationWindow:   200 * time.Millisecond,
			DeviceSelectWindow: 150 * time.Millisecond,
			SeekStep:           4,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "roto-bridge"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing file yields the
// defaults.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges the hardware and the bridge depend on.
func (c *Config) Validate() error {
	ctl := c.Controller
	if ctl.Channel < 0 || ctl.Channel > 15 {
		return fmt.Errorf("%w: controller.channel %d not in 0..15", ErrInvalid, ctl.Channel)
	}
	// Encoders, buttons, transport and the 14-bit LSBs all need a CC.
	if ctl.FirstCC < 0 || ctl.FirstCC+32+8 > 128 {
		return fmt.Errorf("%w: controller.first_cc %d leaves no room for 14-bit encoders", ErrInvalid, ctl.FirstCC)
	}
	if c.Timing.SendDelay < 5*time.Millisecond {
		return fmt.Errorf("%w: timing.send_delay %v below 5ms", ErrInvalid, c.Timing.SendDelay)
	}
	if c.Timing.Tick <= 0 {
		return fmt.Errorf("%w: timing.tick must be positive", ErrInvalid)
	}
	if c.Timing.ActivationWindow < 0 || c.Timing.DeviceSelectWindow < 0 {
		return fmt.Errorf("%w: negative throttle window", ErrInvalid)
	}
	switch c.Log.Level {
	case "", "basic", "verbose":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory.
func (c *Config) SaveTo(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
