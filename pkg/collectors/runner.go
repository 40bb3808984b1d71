package collectors

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner drives all registered collectors on per-collector tickers and
// fans their results into a single updates channel. Cancellation of the
// run context stops every ticker and guards against late results mutating
// anything after teardown.
type Runner struct {
	reg     *Registry
	log     *slog.Logger
	updates chan Update
}

// NewRunner creates a runner over the given registry. The updates channel
// is buffered; consumers that fall behind lose nothing until the buffer
// fills, at which point the oldest pending update is dropped.
func NewRunner(reg *Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		reg:     reg,
		log:     logger.With("component", "collectors"),
		updates: make(chan Update, 64),
	}
}

// Updates returns the channel collection results arrive on.
func (r *Runner) Updates() <-chan Update {
	return r.updates
}

// Run starts one goroutine per registered collector and blocks until ctx
// is cancelled. Each collector fires once immediately, then on its own
// interval.
func (r *Runner) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, name := range r.reg.List() {
		c, ok := r.reg.Get(name)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(c Collector) {
			defer wg.Done()
			r.runOne(ctx, c)
		}(c)
	}
	wg.Wait()
}

// RunOnce performs a single synchronous collection pass over all
// collectors, delivering each result on the updates channel.
func (r *Runner) RunOnce(ctx context.Context) {
	for _, name := range r.reg.List() {
		c, ok := r.reg.Get(name)
		if !ok {
			continue
		}
		r.collect(ctx, c)
	}
}

func (r *Runner) runOne(ctx context.Context, c Collector) {
	ticker := time.NewTicker(c.Interval())
	defer ticker.Stop()

	r.collect(ctx, c)
	for {
		select {
		case <-ticker.C:
			r.collect(ctx, c)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner) collect(ctx context.Context, c Collector) {
	start := time.Now()
	data, err := c.Collect(ctx)
	latency := time.Since(start)

	r.reg.updateStatus(c.Name(), func(s *Status) {
		s.LastRun = start
		s.LastLatency = latency
		s.RunCount++
		s.LastError = err
		s.Healthy = err == nil
		if err != nil {
			s.ErrorCount++
		}
	})

	if err != nil {
		// Single attempt, fail soft: the panel keeps its last data and
		// the next tick tries again.
		r.log.Warn("collection failed", "collector", c.Name(), "error", err)
	}

	if ctx.Err() != nil {
		// Torn down while collecting; don't deliver a late result.
		return
	}

	u := Update{Source: c.Name(), Data: data, Err: err, Timestamp: time.Now()}
	select {
	case r.updates <- u:
	default:
		// Full buffer: drop the oldest pending update to keep the
		// freshest data flowing.
		select {
		case <-r.updates:
		default:
		}
		select {
		case r.updates <- u:
		default:
		}
	}
}
