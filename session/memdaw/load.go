package memdaw

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownGroup is returned when a track names a group that was not
// declared before it.
var ErrUnknownGroup = errors.New("memdaw: unknown group track")

// SetFile is the YAML layout of a simulated live set.
//
//	exclusive_solo: true
//	returns:
//	  - {name: A-Reverb, color: 12}
//	tracks:
//	  - name: Drums
//	    color: 5
//	    group: true
//	  - name: Kick
//	    parent: Drums
//	    devices:
//	      - class: InstrumentGroupDevice
//	        name: Instrument Rack
//	        chains:
//	          - devices: [{class: OriginalSimpler, name: Kick}]
type SetFile struct {
	ExclusiveSolo *bool       `yaml:"exclusive_solo"`
	ExclusiveArm  *bool       `yaml:"exclusive_arm"`
	Returns       []TrackSpec `yaml:"returns"`
	Tracks        []TrackSpec `yaml:"tracks"`
	Selected      string      `yaml:"selected"`
}

type TrackSpec struct {
	Name    string       `yaml:"name"`
	Color   int          `yaml:"color"`
	Group   bool         `yaml:"group"`
	Folded  bool         `yaml:"folded"`
	Parent  string       `yaml:"parent"`
	Devices []DeviceSpec `yaml:"devices"`
}

type DeviceSpec struct {
	Class  string      `yaml:"class"`
	Name   string      `yaml:"name"`
	Rack   bool        `yaml:"rack"`
	Off    bool        `yaml:"off"`
	Params []ParamSpec `yaml:"params"`
	Chains []ChainSpec `yaml:"chains"`
	// Mapped lists macro numbers (1-based) that have something mapped.
	Mapped []int `yaml:"mapped"`
}

type ChainSpec struct {
	Devices []DeviceSpec `yaml:"devices"`
}

type ParamSpec struct {
	Name  string   `yaml:"name"`
	Min   float64  `yaml:"min"`
	Max   float64  `yaml:"max"`
	Value float64  `yaml:"value"`
	Items []string `yaml:"items"`
}

// Load reads a set file from disk.
func Load(path string) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read set: %w", err)
	}
	return Parse(data)
}

// Parse builds a song from YAML.
func Parse(data []byte) (*Song, error) {
	var f SetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse set: %w", err)
	}
	return f.Build()
}

// Build turns the file description into a live song.
func (f *SetFile) Build() (*Song, error) {
	s := New()
	solo, arm := true, true
	if f.ExclusiveSolo != nil {
		solo = *f.ExclusiveSolo
	}
	if f.ExclusiveArm != nil {
		arm = *f.ExclusiveArm
	}
	s.SetExclusive(solo, arm)

	for _, r := range f.Returns {
		s.AddReturnTrack(r.build())
	}

	byName := make(map[string]*Track)
	tracks := make([]*Track, 0, len(f.Tracks))
	for _, ts := range f.Tracks {
		t := ts.build()
		if ts.Parent != "" {
			g, ok := byName[ts.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, ts.Parent)
			}
			t.SetGroup(g)
		}
		byName[ts.Name] = t
		tracks = append(tracks, t)
	}
	if len(tracks) > 0 {
		s.AddTrack(tracks...)
	}

	switch t := byName[f.Selected]; {
	case t != nil:
		s.selectTrack(t)
	case len(tracks) > 0:
		s.selectTrack(tracks[0])
	}
	return s, nil
}

func (ts TrackSpec) build() *Track {
	var t *Track
	if ts.Group {
		t = NewGroupTrack(ts.Name, ts.Color)
		t.folded = ts.Folded
	} else {
		t = NewTrack(ts.Name, ts.Color)
	}
	for _, ds := range ts.Devices {
		t.AddDevice(ds.build())
	}
	return t
}

func (ds DeviceSpec) build() *Device {
	params := make([]*Parameter, 0, len(ds.Params))
	for _, ps := range ds.Params {
		params = append(params, ps.build())
	}

	var d *Device
	if ds.Rack || len(ds.Chains) > 0 {
		chains := make([]*Chain, 0, len(ds.Chains))
		for _, cs := range ds.Chains {
			devices := make([]*Device, 0, len(cs.Devices))
			for _, nested := range cs.Devices {
				devices = append(devices, nested.build())
			}
			chains = append(chains, NewChain(devices...))
		}
		d = NewRack(ds.Class, ds.Name, chains...)
		for _, n := range ds.Mapped {
			d.SetMacroMapped(n-1, true)
		}
		if len(params) > 0 {
			d.setParams(append(d.params, params...))
		}
	} else {
		d = NewDevice(ds.Class, ds.Name, params...)
	}
	if ds.Off {
		d.SetActive(false)
	}
	return d
}

func (ps ParamSpec) build() *Parameter {
	if len(ps.Items) > 0 {
		return NewQuantized(ps.Name, ps.Items, int(ps.Value))
	}
	maxV := ps.Max
	if maxV == 0 && ps.Min == 0 {
		maxV = 1
	}
	return NewParameter(ps.Name, ps.Min, maxV, ps.Value)
}
