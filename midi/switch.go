package midi

import (
	"sync"

	"roto-bridge/debug"
	"roto-bridge/sysex"
)

// Switch forwards bridge output to whichever controller is connected. With
// no controller attached sends are dropped, so the bridge keeps running
// across hot-plug.
type Switch struct {
	mu sync.RWMutex
	c  Controller
}

// Set makes c the target. A nil c detaches.
func (s *Switch) Set(c Controller) {
	s.mu.Lock()
	s.c = c
	s.mu.Unlock()
}

// Current returns the attached controller or nil.
func (s *Switch) Current() Controller {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c
}

func (s *Switch) SendSysex(m sysex.Message) error {
	if c := s.Current(); c != nil {
		return c.SendSysex(m)
	}
	return nil
}

func (s *Switch) SendCC(channel, cc, value uint8) error {
	if c := s.Current(); c != nil {
		return c.SendCC(channel, cc, value)
	}
	return nil
}

// Follow consumes device events until the channel closes. A connecting
// controller becomes the target and its inbound messages go to post; the
// target is dropped again when it disconnects.
func (s *Switch) Follow(events <-chan DeviceEvent, post func(raw []byte)) {
	for ev := range events {
		switch ev.Type {
		case DeviceConnected:
			debug.Log("midi", "controller %s connected", ev.ID)
			s.Set(ev.Controller)
			go func(c Controller) {
				for raw := range c.Messages() {
					post(raw)
				}
			}(ev.Controller)
		case DeviceDisconnected:
			debug.Log("midi", "controller %s disconnected", ev.ID)
			s.mu.Lock()
			if s.c != nil && s.c.ID() == ev.ID {
				s.c = nil
			}
			s.mu.Unlock()
		}
	}
}
