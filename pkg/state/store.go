// Package state holds the dashboard's single reactive state tree. The
// backend is the sole source of truth: pushed stream frames and poll
// results merge in here, and UI panels read immutable snapshots out. The
// store is constructor-injected into whatever consumes it; there is no
// package-level instance.
package state

import (
	"sync"
	"time"

	"github.com/godelos/godel-pulse/pkg/godel"
)

// DefaultMaxEvents caps the consciousness-stream ring buffer.
const DefaultMaxEvents = 100

// DefaultMaxHistory caps the acquisition-history bounded append.
const DefaultMaxHistory = 50

// Config controls store capacities. Zero values select defaults.
type Config struct {
	MaxEvents  int
	MaxHistory int
}

func (c Config) defaults() Config {
	if c.MaxEvents <= 0 {
		c.MaxEvents = DefaultMaxEvents
	}
	if c.MaxHistory <= 0 {
		c.MaxHistory = DefaultMaxHistory
	}
	return c
}

// Store merges asynchronous backend updates into one nested state tree.
// Safe for concurrent use; all reads return copies.
type Store struct {
	mu  sync.RWMutex
	cfg Config

	cognitive godel.CognitiveState
	events    []godel.StreamEvent // FIFO ring, oldest first
	history   []godel.AcquisitionPlan

	subs map[chan struct{}]struct{}
}

// NewStore creates an empty store.
func NewStore(cfg Config) *Store {
	return &Store{
		cfg:  cfg.defaults(),
		subs: make(map[chan struct{}]struct{}),
	}
}

// Apply merges a pushed state update. The merge is a shallow spread at the
// top level: each section present in the update replaces the stored
// section wholesale; absent (nil) sections keep their previous value.
func (s *Store) Apply(update godel.CognitiveState) {
	s.mu.Lock()
	if update.Attention != nil {
		s.cognitive.Attention = update.Attention
	}
	if update.Load != nil {
		s.cognitive.Load = update.Load
	}
	if update.Learning != nil {
		s.cognitive.Learning = update.Learning
		s.appendHistoryLocked(update.Learning.Plans)
	}
	if update.Gaps != nil {
		s.cognitive.Gaps = update.Gaps
	}
	if update.Health != nil {
		s.cognitive.Health = update.Health
	}
	if !update.UpdatedAt.IsZero() {
		s.cognitive.UpdatedAt = update.UpdatedAt
	} else {
		s.cognitive.UpdatedAt = time.Now()
	}
	s.mu.Unlock()
	s.notify()
}

// AppendEvent appends one stream event to the ring buffer, evicting the
// oldest when the buffer is at capacity. Relative order is preserved.
func (s *Store) AppendEvent(ev godel.StreamEvent) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if excess := len(s.events) - s.cfg.MaxEvents; excess > 0 {
		s.events = append(s.events[:0:0], s.events[excess:]...)
	}
	s.mu.Unlock()
	s.notify()
}

// appendHistoryLocked records terminal plan snapshots (completed or
// failed) into the bounded history. Caller holds the write lock.
func (s *Store) appendHistoryLocked(plans []godel.AcquisitionPlan) {
	for _, p := range plans {
		if p.Status != godel.PlanCompleted && p.Status != godel.PlanFailed {
			continue
		}
		if n := len(s.history); n > 0 &&
			s.history[n-1].TargetConcept == p.TargetConcept &&
			s.history[n-1].Status == p.Status {
			continue
		}
		s.history = append(s.history, p)
	}
	if excess := len(s.history) - s.cfg.MaxHistory; excess > 0 {
		s.history = append(s.history[:0:0], s.history[excess:]...)
	}
}

// Snapshot returns a deep-enough copy of the cognitive state for
// rendering: slices are copied, section pointers are fresh.
func (s *Store) Snapshot() godel.CognitiveState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := godel.CognitiveState{UpdatedAt: s.cognitive.UpdatedAt}
	if a := s.cognitive.Attention; a != nil {
		cp := *a
		cp.Focus = append([]godel.FocusItem(nil), a.Focus...)
		out.Attention = &cp
	}
	if l := s.cognitive.Load; l != nil {
		cp := *l
		out.Load = &cp
	}
	if l := s.cognitive.Learning; l != nil {
		cp := *l
		cp.Plans = append([]godel.AcquisitionPlan(nil), l.Plans...)
		cp.History = append([]godel.AcquisitionPlan(nil), l.History...)
		out.Learning = &cp
	}
	if s.cognitive.Gaps != nil {
		out.Gaps = append([]godel.KnowledgeGap(nil), s.cognitive.Gaps...)
	}
	if h := s.cognitive.Health; h != nil {
		cp := *h
		cp.Subsystems = make(map[string]godel.SubsystemStatus, len(h.Subsystems))
		for k, v := range h.Subsystems {
			cp.Subsystems[k] = v
		}
		out.Health = &cp
	}
	return out
}

// History returns a copy of the bounded acquisition history, oldest first.
func (s *Store) History() []godel.AcquisitionPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]godel.AcquisitionPlan(nil), s.history...)
}

// EventCount returns the current ring-buffer length.
func (s *Store) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Subscribe returns a coalesced change-notification channel. The channel
// receives at most one pending signal; slow readers never block writers.
func (s *Store) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscription channel. Safe to call during
// component teardown regardless of pending signals.
func (s *Store) Unsubscribe(ch chan struct{}) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
