// Package sysmetrics gathers local host metrics via gopsutil so the
// dashboard can show its own footprint next to the backend's processing
// load. Cross-platform: no /proc dependencies.
package sysmetrics

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// SourceName identifies this collector in Update fan-out.
const SourceName = "sysmetrics"

// DefaultInterval is the poll period when the config does not override it.
const DefaultInterval = 2 * time.Second

// CPUMetrics holds aggregate CPU utilisation.
type CPUMetrics struct {
	Total float64 `json:"total"` // 0-100
	Count int     `json:"count"` // logical CPUs
}

// MemoryMetrics holds physical memory statistics.
type MemoryMetrics struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"used_percent"`
}

// LoadMetrics holds system load averages.
type LoadMetrics struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// Metrics is the aggregate snapshot returned by Collect.
type Metrics struct {
	CPU       CPUMetrics    `json:"cpu"`
	Memory    MemoryMetrics `json:"memory"`
	Load      LoadMetrics   `json:"load"`
	Timestamp time.Time     `json:"timestamp"`
}

// Collector gathers host metrics. It satisfies the pkg/collectors
// Collector interface.
type Collector struct {
	interval time.Duration

	mu      sync.Mutex
	healthy bool
	hasRun  bool
}

// New creates a sysmetrics collector. A zero interval selects
// DefaultInterval.
func New(interval time.Duration) *Collector {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Collector{interval: interval}
}

func (c *Collector) Name() string            { return SourceName }
func (c *Collector) Interval() time.Duration { return c.interval }

func (c *Collector) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.hasRun || c.healthy
}

// Collect gathers CPU, memory, and load in one pass. CPU percent uses a
// zero sampling window so the call never blocks the ticker; gopsutil
// returns utilisation since the previous call.
func (c *Collector) Collect(ctx context.Context) (any, error) {
	m := Metrics{Timestamp: time.Now()}

	percs, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return c.fail(err)
	}
	if len(percs) > 0 {
		m.CPU.Total = percs[0]
	}
	if count, err := cpu.CountsWithContext(ctx, true); err == nil {
		m.CPU.Count = count
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return c.fail(err)
	}
	m.Memory = MemoryMetrics{
		Total:       vm.Total,
		Used:        vm.Used,
		UsedPercent: vm.UsedPercent,
	}

	// Load averages are unavailable on some platforms; treat that as
	// zero rather than failing the cycle.
	if avg, err := load.AvgWithContext(ctx); err == nil {
		m.Load = LoadMetrics{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
	}

	c.mu.Lock()
	c.hasRun = true
	c.healthy = true
	c.mu.Unlock()
	return m, nil
}

func (c *Collector) fail(err error) (any, error) {
	c.mu.Lock()
	c.hasRun = true
	c.healthy = false
	c.mu.Unlock()
	return nil, err
}
