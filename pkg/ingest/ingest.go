// Package ingest routes collector updates into the cognitive state store.
// Both the watch daemon and the TUI use the same dispatch so the two modes
// agree on how polled data lands in state.
package ingest

import (
	"github.com/godelos/godel-pulse/pkg/collectors"
	"github.com/godelos/godel-pulse/pkg/collectors/cognitive"
	"github.com/godelos/godel-pulse/pkg/collectors/transparency"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/state"
)

// Apply merges a collector update into the store. It reports whether the
// update carried data the store holds; failed updates and sources without
// store-backed data (host metrics) return false.
func Apply(store *state.Store, u collectors.Update) bool {
	if u.Err != nil || u.Data == nil {
		return false
	}

	switch data := u.Data.(type) {
	case cognitive.Snapshot:
		if data.State == nil {
			return false
		}
		store.Apply(*data.State)
		return true

	case transparency.Report:
		// Plans live inside the learning section; carry the current
		// enabled flag forward so a poll does not flip it.
		learning := &godel.Learning{Plans: data.Plans}
		if cur := store.Snapshot().Learning; cur != nil {
			learning.Enabled = cur.Enabled
		}
		store.Apply(godel.CognitiveState{
			Gaps:     data.Gaps,
			Learning: learning,
		})
		return true

	case *godel.HealthStatus:
		store.Apply(godel.CognitiveState{Health: data})
		return true

	default:
		return false
	}
}
