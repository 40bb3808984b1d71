// Package collectors defines the interfaces, registry, and runner for
// godel-pulse data sources. Each collector (cognitive, transparency,
// health, sysmetrics) implements the Collector interface and is
// orchestrated by a Runner that fans results into a single updates
// channel consumed by the TUI or the watch daemon.
package collectors

import (
	"context"
	"time"
)

// Collector is the interface all data sources implement. Implementations
// live in sub-packages (e.g., pkg/collectors/cognitive) and are registered
// with the Registry at startup.
type Collector interface {
	// Name returns a unique identifier for this collector.
	Name() string

	// Collect performs one collection cycle. The returned value is opaque
	// here; consumers type-assert based on the collector name.
	Collect(ctx context.Context) (any, error)

	// Interval returns how often this collector should run.
	Interval() time.Duration

	// Healthy reports whether the collector's last run succeeded. A
	// collector that has never run is considered healthy.
	Healthy() bool
}

// Status tracks the runtime state of a single collector. The runner
// updates this after every collection cycle.
type Status struct {
	Name        string
	Healthy     bool
	LastRun     time.Time
	LastError   error
	RunCount    int64
	ErrorCount  int64
	LastLatency time.Duration
}

// Update carries the result of a single collection cycle from a collector
// goroutine to the consumer.
type Update struct {
	Source    string
	Data      any
	Err       error
	Timestamp time.Time
}
