package daemon

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/godelos/godel-pulse/pkg/cache"
	"github.com/godelos/godel-pulse/pkg/collectors"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/ingest"
	"github.com/godelos/godel-pulse/pkg/state"
	"github.com/godelos/godel-pulse/pkg/stream"
)

// SnapshotCacheKey is the cache entry the watch daemon keeps current and
// the TUI preloads on startup.
const SnapshotCacheKey = "cognitive-snapshot"

// WatchOptions configures a watch run.
type WatchOptions struct {
	PIDFile        string
	HealthFile     string
	HealthInterval time.Duration // default 10s
}

func (o WatchOptions) defaults() WatchOptions {
	if o.HealthInterval <= 0 {
		o.HealthInterval = 10 * time.Second
	}
	return o
}

// Watcher runs collectors and the event stream headless, publishing a
// health file and caching the latest snapshot for the TUI.
type Watcher struct {
	store  *state.Store
	reg    *collectors.Registry
	runner *collectors.Runner
	stream *stream.Client
	cache  *cache.Store // may be nil
	log    *slog.Logger
	opts   WatchOptions

	started time.Time
}

// NewWatcher wires a watcher. cache may be nil to skip snapshot caching.
func NewWatcher(store *state.Store, reg *collectors.Registry, runner *collectors.Runner, sc *stream.Client, cs *cache.Store, logger *slog.Logger, opts WatchOptions) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		store:  store,
		reg:    reg,
		runner: runner,
		stream: sc,
		cache:  cs,
		log:    logger,
		opts:   opts.defaults(),
	}
}

// Run blocks until ctx is cancelled. It holds the PID file for the
// duration and removes it on exit.
func (w *Watcher) Run(ctx context.Context) error {
	if w.opts.PIDFile != "" {
		if err := AcquirePID(w.opts.PIDFile); err != nil {
			return err
		}
		defer ReleasePID(w.opts.PIDFile)
	}

	w.started = time.Now()

	w.stream.OnEvent(func(ev godel.StreamEvent) {
		w.store.AppendEvent(ev)
	})
	w.stream.OnSnapshot(func(cs godel.CognitiveState) {
		w.store.Apply(cs)
	})
	w.stream.OnStateChange(func(s stream.ConnectionState) {
		w.log.Info("stream state changed", "state", s.String())
	})

	// A failed first dial is not fatal: the health check keeps retrying
	// within the attempt cap.
	if err := w.stream.Connect(ctx); err != nil {
		w.log.Warn("initial stream connect failed", "error", err)
	}
	defer w.stream.Shutdown()

	go w.runner.Run(ctx)

	ticker := time.NewTicker(w.opts.HealthInterval)
	defer ticker.Stop()

	w.publish()

	for {
		select {
		case <-ctx.Done():
			w.publish()
			return nil
		case u := <-w.runner.Updates():
			if u.Err != nil {
				continue
			}
			ingest.Apply(w.store, u)
		case <-ticker.C:
			w.publish()
		}
	}
}

// publish writes the health file and refreshes the cached snapshot.
func (w *Watcher) publish() {
	if w.opts.HealthFile != "" {
		h := &Health{
			PID:        os.Getpid(),
			StartedAt:  w.started,
			UpdatedAt:  time.Now(),
			Connection: w.stream.State().String(),
			EventCount: w.store.EventCount(),
			Collectors: collectorHealth(w.reg.AllStatus()),
		}
		if err := WriteHealth(w.opts.HealthFile, h); err != nil {
			w.log.Warn("health file write failed", "error", err)
		}
	}
	if w.cache != nil {
		if err := cache.PutTyped(w.cache, SnapshotCacheKey, w.store.Snapshot()); err != nil {
			w.log.Warn("snapshot cache write failed", "error", err)
		}
	}
}
