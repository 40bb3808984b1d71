package state

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/godelos/godel-pulse/pkg/godel"
)

func ev(id string, typ godel.EventType, content string) godel.StreamEvent {
	return godel.StreamEvent{
		ID:          id,
		Type:        typ,
		Granularity: godel.GranularitySummary,
		Content:     content,
		Timestamp:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func eventIDs(events []godel.StreamEvent) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}

func TestRingBufferEviction(t *testing.T) {
	s := NewStore(Config{MaxEvents: 3})

	for i := 1; i <= 4; i++ {
		s.AppendEvent(ev(fmt.Sprintf("E%d", i), godel.EventReasoning, "step"))
	}

	got := eventIDs(s.Events(EventFilter{}))
	want := []string{"E2", "E3", "E4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buffer = %v, want %v", got, want)
	}
	if s.EventCount() != 3 {
		t.Errorf("EventCount() = %d, want 3", s.EventCount())
	}
}

func TestRingBufferNeverExceedsCap(t *testing.T) {
	s := NewStore(Config{MaxEvents: 5})
	for i := 0; i < 500; i++ {
		s.AppendEvent(ev(fmt.Sprintf("e%d", i), godel.EventLearning, "x"))
		if n := s.EventCount(); n > 5 {
			t.Fatalf("buffer grew to %d after %d appends", n, i+1)
		}
	}
}

func TestEventFilterPureAndIdempotent(t *testing.T) {
	s := NewStore(Config{MaxEvents: 10})
	s.AppendEvent(ev("a", godel.EventReasoning, "inference over graphs"))
	s.AppendEvent(ev("b", godel.EventKnowledgeGap, "missing: Graph theory"))
	s.AppendEvent(ev("c", godel.EventReflection, "pondering results"))

	f := EventFilter{
		Types:  map[godel.EventType]bool{godel.EventReasoning: true, godel.EventKnowledgeGap: true},
		Search: "graph",
	}

	once := s.Events(f)
	if !reflect.DeepEqual(eventIDs(once), []string{"a", "b"}) {
		t.Fatalf("filtered = %v, want [a b]", eventIDs(once))
	}

	// Filtering the already-filtered slice with the same predicate is a
	// fixed point.
	twice := FilterEvents(once, f)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter not idempotent: %v vs %v", eventIDs(once), eventIDs(twice))
	}

	// The buffer itself is untouched.
	if s.EventCount() != 3 {
		t.Errorf("EventCount() = %d, filtering must not mutate", s.EventCount())
	}
}

func TestEmptyFilterMatchesAll(t *testing.T) {
	s := NewStore(Config{})
	s.AppendEvent(ev("a", godel.EventSynthesis, "combining"))
	s.AppendEvent(ev("b", godel.EventLearning, "acquired"))

	if got := s.Events(EventFilter{}); len(got) != 2 {
		t.Errorf("Events(zero filter) = %d events, want 2", len(got))
	}
}

func TestApplyShallowMergePerSection(t *testing.T) {
	s := NewStore(Config{})

	s.Apply(godel.CognitiveState{
		Load: &godel.ProcessingLoad{Load: 0.3, QueueDepth: 2},
		Attention: &godel.Attention{
			Focus: []godel.FocusItem{{Item: "parsing", Salience: 0.8}},
		},
	})

	// A later update carrying only Load must not clear Attention.
	s.Apply(godel.CognitiveState{
		Load: &godel.ProcessingLoad{Load: 0.9, QueueDepth: 7},
	})

	snap := s.Snapshot()
	if snap.Load == nil || snap.Load.Load != 0.9 {
		t.Errorf("Load = %+v, want replaced with 0.9", snap.Load)
	}
	if snap.Attention == nil || len(snap.Attention.Focus) != 1 {
		t.Errorf("Attention = %+v, want preserved", snap.Attention)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore(Config{})
	s.Apply(godel.CognitiveState{
		Gaps: []godel.KnowledgeGap{{Concept: "x", Priority: godel.PriorityLow, Confidence: 0.1}},
	})

	snap := s.Snapshot()
	snap.Gaps[0].Concept = "mutated"

	if s.Snapshot().Gaps[0].Concept != "x" {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestAcquisitionHistoryBounded(t *testing.T) {
	s := NewStore(Config{MaxHistory: 2})

	for i := 0; i < 5; i++ {
		s.Apply(godel.CognitiveState{
			Learning: &godel.Learning{
				Plans: []godel.AcquisitionPlan{{
					TargetConcept: fmt.Sprintf("c%d", i),
					Status:        godel.PlanCompleted,
					Progress:      1,
					CreatedAt:     time.Now(),
				}},
			},
		})
	}

	hist := s.History()
	if len(hist) != 2 {
		t.Fatalf("history length = %d, want 2", len(hist))
	}
	if hist[0].TargetConcept != "c3" || hist[1].TargetConcept != "c4" {
		t.Errorf("history = %v, want oldest evicted", hist)
	}
}

func TestHistoryIgnoresActivePlans(t *testing.T) {
	s := NewStore(Config{})
	s.Apply(godel.CognitiveState{
		Learning: &godel.Learning{
			Plans: []godel.AcquisitionPlan{
				{TargetConcept: "running", Status: godel.PlanActive, Progress: 0.5},
				{TargetConcept: "done", Status: godel.PlanCompleted, Progress: 1},
			},
		},
	})

	hist := s.History()
	if len(hist) != 1 || hist[0].TargetConcept != "done" {
		t.Errorf("history = %v, want only terminal plans", hist)
	}
}

func TestSubscribeCoalesces(t *testing.T) {
	s := NewStore(Config{})
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	for i := 0; i < 10; i++ {
		s.AppendEvent(ev(fmt.Sprintf("e%d", i), godel.EventReasoning, "x"))
	}

	// At most one pending signal regardless of write count.
	select {
	case <-ch:
	default:
		t.Fatal("expected a pending change signal")
	}
	select {
	case <-ch:
		t.Fatal("signals must coalesce")
	default:
	}
}

func TestUnsubscribeStopsSignals(t *testing.T) {
	s := NewStore(Config{})
	ch := s.Subscribe()
	s.Unsubscribe(ch)

	s.AppendEvent(ev("e", godel.EventReasoning, "x"))
	select {
	case <-ch:
		t.Fatal("unsubscribed channel received a signal")
	default:
	}
}
