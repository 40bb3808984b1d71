// Package transparency polls the backend's transparency API: detected
// knowledge gaps and autonomous acquisition plans.
package transparency

import (
	"context"
	"sync"
	"time"

	"github.com/godelos/godel-pulse/pkg/godel"
)

// SourceName identifies this collector in Update fan-out.
const SourceName = "transparency"

// DefaultInterval is the poll period when the config does not override it.
const DefaultInterval = 30 * time.Second

// Report bundles one transparency poll.
type Report struct {
	Gaps  []godel.KnowledgeGap
	Plans []godel.AcquisitionPlan
}

// Collector polls knowledge gaps and acquisition plans.
type Collector struct {
	client   *godel.Client
	interval time.Duration

	mu      sync.Mutex
	healthy bool
	hasRun  bool
}

// New creates a transparency collector. A zero interval selects
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

// Collect fetches gaps and plans. Both calls must succeed; a partial
// report would silently hide the failing half.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	gaps, gapsErr := c.client.KnowledgeGaps(ctx)
	plans, plansErr := c.client.AcquisitionPlans(ctx)

	err := gapsErr
	if err == nil {
		err = plansErr
	}

	c.mu.Lock()
	c.hasRun = true
	c.healthy = err == nil
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return Report{Gaps: gaps, Plans: plans}, nil
}
