// Package app is the bubbletea skeleton of the dashboard: the root model,
// the widget contract, the message types that carry backend data into the
// update loop, and the bridge that pumps collector and stream activity
// into bubbletea messages.
package app

import (
	"time"

	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/stream"
)

// DataUpdateEvent carries one collector result into the update loop.
// Receivers type-assert Data based on Source.
type DataUpdateEvent struct {
	Source    string
	Data      any
	Err       error
	Timestamp time.Time
}

// StateRefreshMsg is broadcast after the state store changes. It hands
// widgets a consistent snapshot plus the current event window so they can
// filter locally without touching the store.
type StateRefreshMsg struct {
	Snapshot godel.CognitiveState
	Events   []godel.StreamEvent
	History  []godel.AcquisitionPlan
}

// StreamStateMsg reports a connection-state transition of the event stream.
type StreamStateMsg struct {
	State stream.ConnectionState
	Stats stream.Stats
}

// SearchMsg updates the active search query. An empty query clears it.
type SearchMsg struct {
	Query string
}

// StatusMsg sets a transient message in the status bar.
type StatusMsg struct {
	Text string
}

// TickEvent drives the periodic UI refresh.
type TickEvent struct {
	Time time.Time
}
