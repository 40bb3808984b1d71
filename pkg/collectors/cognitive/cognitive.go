// Package cognitive polls the backend's enhanced-cognitive state endpoint
// as a fallback path alongside the pushed stream: when the WebSocket is
// down, polling keeps panels from going stale.
package cognitive

import (
	"context"
	"sync"
	"time"

	"github.com/godelos/godel-pulse/pkg/godel"
)

// SourceName identifies this collector in Update fan-out.
const SourceName = "cognitive"

// DefaultInterval is the poll period when the config does not override it.
const DefaultInterval = 10 * time.Second

// Snapshot is the payload delivered on the updates channel. Stream status
// rides along so the TUI can show whether the backend considers the
// stream active.
type Snapshot struct {
	State  *godel.CognitiveState
	Stream *godel.StreamStatus
}

// Collector polls cognitive state over HTTP.
type Collector struct {
	client   *godel.Client
	interval time.Duration

	mu      sync.Mutex
	healthy bool
	hasRun  bool
}

// New creates a cognitive-state collector. A zero interval selects
// DefaultInterval.
func New(client *godel.Client, interval time.Duration) *Collector {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Collector{client: client, interval: interval}
}

func (c *Collector) Name() string            { return SourceName }
func (c *Collector) Interval() time.Duration { return c.interval }

func (c *Collector) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.hasRun || c.healthy
}

// Collect fetches the state snapshot. Stream status is best-effort: its
// failure does not fail the cycle.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	st, err := c.client.CognitiveState(ctx)
	c.mu.Lock()
	c.hasRun = true
	c.healthy = err == nil
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	snap := Snapshot{State: st}
	if ss, err := c.client.StreamStatusInfo(ctx); err == nil {
		snap.Stream = ss
	}
	return snap, nil
}
