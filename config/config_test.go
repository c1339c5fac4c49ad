package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Controller.Channel != 15 || cfg.Timing.SendDelay != 5*time.Millisecond {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
controller:
  port_match: Roto
timing:
  send_delay: 8ms
  tick: 1s
log:
  level: verbose
session:
  file: live.yaml
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Controller.PortMatch != "Roto" {
		t.Errorf("port_match = %q", cfg.Controller.PortMatch)
	}
	if cfg.Controller.FirstCC != 12 {
		t.Errorf("first_cc = %d, want default 12", cfg.Controller.FirstCC)
	}
	if cfg.Timing.SendDelay != 8*time.Millisecond || cfg.Timing.Tick != time.Second {
		t.Errorf("timing = %+v", cfg.Timing)
	}
	if cfg.Timing.ActivationWindow != 200*time.Millisecond {
		t.Errorf("activation window = %v, want default", cfg.Timing.ActivationWindow)
	}
	if cfg.Log.Level != "verbose" || cfg.Session.File != "live.yaml" {
		t.Errorf("log/session = %+v %+v", cfg.Log, cfg.Session)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"channel out of range", func(c *Config) { c.Controller.Channel = 16 }, false},
		{"first cc too high", func(c *Config) { c.Controller.FirstCC = 100 }, false},
		{"send delay below hardware minimum", func(c *Config) { c.Timing.SendDelay = time.Millisecond }, false},
		{"zero tick", func(c *Config) { c.Timing.Tick = 0 }, false},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Theme.Palette = "live.gpl"
	cfg.Timing.DeviceSelectWindow = 300 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}
