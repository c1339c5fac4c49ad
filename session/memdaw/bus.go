// Package memdaw is an in-memory live set implementing the session
// contract. It backs the simulator host and the bridge tests.
//
// Every mutation fires its notification synchronously and only when the
// value actually changed, which is how a real DAW behaves.
package memdaw

import (
	"sort"

	"github.com/google/uuid"

	"roto-bridge/session"
)

type subKey struct {
	entity string
	attr   session.Attr
}

type bus struct {
	next int
	subs map[subKey]map[int]func()
}

func newBus() *bus {
	return &bus{subs: make(map[subKey]map[int]func())}
}

func (b *bus) subscribe(entity string, attr session.Attr, fn func()) func() {
	k := subKey{entity, attr}
	if b.subs[k] == nil {
		b.subs[k] = make(map[int]func())
	}
	b.next++
	id := b.next
	b.subs[k][id] = fn
	return func() {
		delete(b.subs[k], id)
		if len(b.subs[k]) == 0 {
			delete(b.subs, k)
		}
	}
}

func (b *bus) notify(entity string, attr session.Attr) {
	if b == nil {
		return
	}
	fns := b.subs[subKey{entity, attr}]
	if len(fns) == 0 {
		return
	}
	ids := make([]int, 0, len(fns))
	for id := range fns {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		// A callback may cancel later ones.
		if fn, ok := b.subs[subKey{entity, attr}][id]; ok {
			fn()
		}
	}
}

// count returns how many callbacks are registered; used by tests to check
// listener bookkeeping.
func (b *bus) count() int {
	n := 0
	for _, fns := range b.subs {
		n += len(fns)
	}
	return n
}

func newID() string {
	return uuid.NewString()
}
