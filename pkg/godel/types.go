// Package godel defines the data model for the GödelOS cognitive backend
// and a thin JSON-over-HTTP client for its API. The backend is the single
// source of truth: everything here is a read-side reflection of state the
// backend pushes or serves, plus fire-and-forget commands back to it.
//
// All decoding is validating: payloads with unknown variants or missing
// required fields are rejected at the boundary instead of silently
// defaulting, so downstream panels never render half-parsed data.
package godel

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType tags one unit of backend "thought" activity.
type EventType string

const (
	EventReasoning    EventType = "reasoning"
	EventKnowledgeGap EventType = "knowledge_gap"
	EventAcquisition  EventType = "acquisition"
	EventReflection   EventType = "reflection"
	EventLearning     EventType = "learning"
	EventSynthesis    EventType = "synthesis"
)

// EventTypes lists all valid event types in display order.
var EventTypes = []EventType{
	EventReasoning,
	EventKnowledgeGap,
	EventAcquisition,
	EventReflection,
	EventLearning,
	EventSynthesis,
}

// Valid reports whether t is one of the enumerated event types.
func (t EventType) Valid() bool {
	switch t {
	case EventReasoning, EventKnowledgeGap, EventAcquisition,
		EventReflection, EventLearning, EventSynthesis:
		return true
	}
	return false
}

// Granularity controls how much detail the backend includes per event.
type Granularity string

const (
	GranularityDetailed Granularity = "detailed"
	GranularitySummary  Granularity = "summary"
	GranularityMinimal  Granularity = "minimal"
)

// Granularities lists all valid granularities in display order.
var Granularities = []Granularity{
	GranularityDetailed,
	GranularitySummary,
	GranularityMinimal,
}

// Valid reports whether g is one of the enumerated granularities.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDetailed, GranularitySummary, GranularityMinimal:
		return true
	}
	return false
}

// StreamEvent is a single pushed notification from the consciousness
// stream. Events are immutable once received.
type StreamEvent struct {
	ID          string            `json:"id"`
	Type        EventType         `json:"event_type"`
	Granularity Granularity       `json:"granularity"`
	Content     string            `json:"content"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Validate checks the enumerated fields and required content.
func (e *StreamEvent) Validate() error {
	if !e.Type.Valid() {
		return fmt.Errorf("stream event %q: unknown event_type %q", e.ID, e.Type)
	}
	if !e.Granularity.Valid() {
		return fmt.Errorf("stream event %q: unknown granularity %q", e.ID, e.Granularity)
	}
	if e.Content == "" {
		return fmt.Errorf("stream event %q: empty content", e.ID)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("stream event %q: missing timestamp", e.ID)
	}
	return nil
}

// GapPriority ranks how urgently a knowledge gap should be filled.
type GapPriority string

const (
	PriorityHigh   GapPriority = "high"
	PriorityMedium GapPriority = "medium"
	PriorityLow    GapPriority = "low"
)

// Valid reports whether p is one of the enumerated priorities.
func (p GapPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// KnowledgeGap is a backend-identified concept the system lacks sufficient
// information about. Displayed read-only; the only action is firing a
// manual acquisition request.
type KnowledgeGap struct {
	Concept          string      `json:"concept"`
	Context          string      `json:"context,omitempty"`
	Priority         GapPriority `json:"priority"`
	Confidence       float64     `json:"confidence"`
	SuggestedSources []string    `json:"suggested_sources,omitempty"`
}

// Validate checks the enumerated priority and confidence range.
func (g *KnowledgeGap) Validate() error {
	if g.Concept == "" {
		return fmt.Errorf("knowledge gap: empty concept")
	}
	if !g.Priority.Valid() {
		return fmt.Errorf("knowledge gap %q: unknown priority %q", g.Concept, g.Priority)
	}
	if g.Confidence < 0 || g.Confidence > 1 {
		return fmt.Errorf("knowledge gap %q: confidence %v outside [0,1]", g.Concept, g.Confidence)
	}
	return nil
}

// ConfidencePercent formats the confidence as an integer percent label,
// e.g. 0.42 renders as "42%".
func (g *KnowledgeGap) ConfidencePercent() string {
	return fmt.Sprintf("%d%%", int(g.Confidence*100+0.5))
}

// PlanStatus is the lifecycle state of an acquisition plan. The lifecycle
// is fully owned by the backend; the frontend only reflects snapshots.
type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanFailed    PlanStatus = "failed"
	PlanPaused    PlanStatus = "paused"
)

// Valid reports whether s is one of the enumerated plan statuses.
func (s PlanStatus) Valid() bool {
	switch s {
	case PlanActive, PlanCompleted, PlanFailed, PlanPaused:
		return true
	}
	return false
}

// AcquisitionPlan is a backend-tracked task to autonomously learn about a
// knowledge gap.
type AcquisitionPlan struct {
	TargetConcept     string        `json:"target_concept"`
	Strategy          string        `json:"strategy"`
	Status            PlanStatus    `json:"status"`
	Progress          float64       `json:"progress"`
	CreatedAt         time.Time     `json:"created_at"`
	EstimatedDuration time.Duration `json:"estimated_duration_ns,omitempty"`
}

// Validate checks the enumerated status and progress range.
func (p *AcquisitionPlan) Validate() error {
	if p.TargetConcept == "" {
		return fmt.Errorf("acquisition plan: empty target_concept")
	}
	if !p.Status.Valid() {
		return fmt.Errorf("acquisition plan %q: unknown status %q", p.TargetConcept, p.Status)
	}
	if p.Progress < 0 || p.Progress > 1 {
		return fmt.Errorf("acquisition plan %q: progress %v outside [0,1]", p.TargetConcept, p.Progress)
	}
	return nil
}

// FocusItem is a single element of the backend's attention focus, with a
// salience weight in [0,1].
type FocusItem struct {
	Item     string  `json:"item"`
	Salience float64 `json:"salience"`
}

// Attention describes what the backend is currently attending to.
type Attention struct {
	Focus     []FocusItem `json:"focus,omitempty"`
	UpdatedAt time.Time   `json:"updated_at,omitempty"`
}

// ProcessingLoad describes current backend utilisation.
type ProcessingLoad struct {
	Load            float64 `json:"load"` // 0..1
	QueueDepth      int     `json:"queue_depth"`
	ActiveProcesses int     `json:"active_processes"`
}

// Learning bundles the autonomous-learning view: active plans plus a
// bounded history of completed/failed ones.
type Learning struct {
	Enabled bool              `json:"enabled"`
	Plans   []AcquisitionPlan `json:"plans,omitempty"`
	History []AcquisitionPlan `json:"history,omitempty"`
}

// SubsystemStatus is a coarse health flag for one backend subsystem.
type SubsystemStatus string

const (
	StatusHealthy  SubsystemStatus = "healthy"
	StatusDegraded SubsystemStatus = "degraded"
	StatusDown     SubsystemStatus = "down"
)

// HealthStatus is the backend's self-reported health snapshot.
type HealthStatus struct {
	Overall    SubsystemStatus            `json:"overall"`
	Subsystems map[string]SubsystemStatus `json:"subsystems,omitempty"`
	CheckedAt  time.Time                  `json:"checked_at,omitempty"`
}

// CognitiveState is the merged nested snapshot the dashboard renders.
// Sections are independently replaceable: a pushed section supersedes the
// stored one wholesale (shallow merge at the top level only).
type CognitiveState struct {
	Attention *Attention      `json:"attention,omitempty"`
	Load      *ProcessingLoad `json:"load,omitempty"`
	Learning  *Learning       `json:"learning,omitempty"`
	Gaps      []KnowledgeGap  `json:"gaps,omitempty"`
	Health    *HealthStatus   `json:"health,omitempty"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
}

// MessageType discriminates WebSocket envelope payloads.
type MessageType string

const (
	MsgStreamEvent       MessageType = "stream_event"
	MsgCognitiveState    MessageType = "cognitive_state"
	MsgHealth            MessageType = "health"
	MsgKnowledgeGaps     MessageType = "knowledge_gaps"
	MsgAcquisitionUpdate MessageType = "acquisition_update"
	MsgPong              MessageType = "pong"
)

// Envelope is the wire frame carried on the WebSocket channel. Data is
// decoded lazily based on Type.
type Envelope struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// DecodeEvent decodes and validates the envelope as a stream event.
func (env *Envelope) DecodeEvent() (*StreamEvent, error) {
	if env.Type != MsgStreamEvent {
		return nil, fmt.Errorf("envelope type %q is not a stream event", env.Type)
	}
	var ev StreamEvent
	if err := json.Unmarshal(env.Data, &ev); err != nil {
		return nil, fmt.Errorf("decode stream event: %w", err)
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = env.Timestamp
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}

// DecodeState decodes the envelope as a cognitive-state section update.
// Gap and plan entries are validated individually.
func (env *Envelope) DecodeState() (*CognitiveState, error) {
	switch env.Type {
	case MsgCognitiveState, MsgHealth, MsgKnowledgeGaps, MsgAcquisitionUpdate:
	default:
		return nil, fmt.Errorf("envelope type %q is not a state update", env.Type)
	}
	var st CognitiveState
	if err := json.Unmarshal(env.Data, &st); err != nil {
		return nil, fmt.Errorf("decode state update: %w", err)
	}
	for i := range st.Gaps {
		if err := st.Gaps[i].Validate(); err != nil {
			return nil, err
		}
	}
	if st.Learning != nil {
		for i := range st.Learning.Plans {
			if err := st.Learning.Plans[i].Validate(); err != nil {
				return nil, err
			}
		}
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = env.Timestamp
	}
	return &st, nil
}
