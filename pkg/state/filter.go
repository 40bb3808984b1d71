package state

import (
	"strings"

	"github.com/godelos/godel-pulse/pkg/godel"
)

// EventFilter is a pure predicate over the event ring buffer. Empty sets
// match everything; Search is a case-insensitive substring match against
// event content. Filtering preserves buffer order and is idempotent.
type EventFilter struct {
	Types         map[godel.EventType]bool
	Granularities map[godel.Granularity]bool
	Search        string
}

// Match reports whether a single event passes the filter.
func (f EventFilter) Match(ev godel.StreamEvent) bool {
	if len(f.Types) > 0 && !f.Types[ev.Type] {
		return false
	}
	if len(f.Granularities) > 0 && !f.Granularities[ev.Granularity] {
		return false
	}
	if f.Search != "" &&
		!strings.Contains(strings.ToLower(ev.Content), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Events returns a copy of the buffered events passing the filter, oldest
// first. A zero-valued filter returns the whole buffer.
func (s *Store) Events(f EventFilter) []godel.StreamEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]godel.StreamEvent, 0, len(s.events))
	for _, ev := range s.events {
		if f.Match(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// FilterEvents applies the filter to an arbitrary slice, preserving
// order. Used by panels that already hold a snapshot.
func FilterEvents(events []godel.StreamEvent, f EventFilter) []godel.StreamEvent {
	out := make([]godel.StreamEvent, 0, len(events))
	for _, ev := range events {
		if f.Match(ev) {
			out = append(out, ev)
		}
	}
	return out
}
