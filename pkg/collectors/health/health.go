// Package health polls the backend's health endpoint.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/godelos/godel-pulse/pkg/godel"
)

// SourceName identifies this collector in Update fan-out.
const SourceName = "health"

// DefaultInterval is the poll period when the config does not override it.
const DefaultInterval = 15 * time.Second

// Collector polls the backend health snapshot.
type Collector struct {
	client   *godel.Client
	interval time.Duration

	mu      sync.Mutex
	healthy bool
	hasRun  bool
}

// New creates a health collector. A zero interval selects DefaultInterval.
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

// Collect fetches the health snapshot.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	hs, err := c.client.Health(ctx)
	c.mu.Lock()
	c.hasRun = true
	c.healthy = err == nil
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return hs, nil
}
