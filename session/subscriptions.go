package session

// Subscriptions is a side table of listener registrations keyed by entity
// ID. It never owns the entities; it only remembers how to cancel what was
// registered on them.
type Subscriptions struct {
	song    Song
	entries map[string][]func()
}

func NewSubscriptions(song Song) *Subscriptions {
	return &Subscriptions{song: song, entries: make(map[string][]func())}
}

// Has reports whether anything is registered for id.
func (s *Subscriptions) Has(id string) bool {
	_, ok := s.entries[id]
	return ok
}

// Add subscribes fn to attr of entity id and records the cancel func.
func (s *Subscriptions) Add(id string, attr Attr, fn func()) {
	cancel := s.song.Subscribe(id, attr, fn)
	s.entries[id] = append(s.entries[id], cancel)
}

// Drop cancels everything registered for id.
func (s *Subscriptions) Drop(id string) {
	for _, cancel := range s.entries[id] {
		cancel()
	}
	delete(s.entries, id)
}

// Retain drops every entry whose id is not in keep.
func (s *Subscriptions) Retain(keep map[string]bool) {
	for id := range s.entries {
		if !keep[id] {
			s.Drop(id)
		}
	}
}

// Clear drops everything.
func (s *Subscriptions) Clear() {
	for id := range s.entries {
		s.Drop(id)
	}
}

// Len returns the number of entities with registrations.
func (s *Subscriptions) Len() int {
	return len(s.entries)
}
