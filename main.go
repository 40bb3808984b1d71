// godel-pulse is a terminal dashboard for a GödelOS cognitive backend.
//
// It consumes the backend's consciousness stream over WebSocket, polls the
// HTTP transparency endpoints, and renders attention, processing load,
// knowledge gaps and autonomous-learning progress as an interactive TUI.
// A headless watch mode keeps a cached snapshot and health file current
// for other tooling.
//
// Usage:
//
//	godel-pulse [flags]
//
// Flags:
//
//	-tui             Launch the interactive dashboard (default on a TTY)
//	-watch           Run the headless watch daemon
//	-once            Run one collection pass and print the snapshot as JSON
//	-config string   Path to configuration file
//	-use-mocks       Use generated data instead of a live backend
//	-mock-seed int   Random seed for mock data (0 = random)
//	-verbose         Enable debug logging
//	-version         Print version and exit
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/cache"
	"github.com/godelos/godel-pulse/pkg/collectors"
	"github.com/godelos/godel-pulse/pkg/collectors/cognitive"
	"github.com/godelos/godel-pulse/pkg/collectors/health"
	"github.com/godelos/godel-pulse/pkg/collectors/sysmetrics"
	"github.com/godelos/godel-pulse/pkg/collectors/transparency"
	"github.com/godelos/godel-pulse/pkg/config"
	"github.com/godelos/godel-pulse/pkg/daemon"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/ingest"
	"github.com/godelos/godel-pulse/pkg/state"
	"github.com/godelos/godel-pulse/pkg/stream"
	"github.com/godelos/godel-pulse/pkg/theme"
	"github.com/godelos/godel-pulse/pkg/tui"
	"github.com/godelos/godel-pulse/pkg/widgets"
	"github.com/godelos/godel-pulse/tests/mocks"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// snapshotCacheTTL bounds how stale a preloaded snapshot may be before the
// TUI ignores it.
const snapshotCacheTTL = time.Hour

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		runTUI      = flag.Bool("tui", false, "Launch the interactive dashboard")
		runWatch    = flag.Bool("watch", false, "Run the headless watch daemon")
		runOnce     = flag.Bool("once", false, "Run one collection pass and print the snapshot as JSON")
		useMocks    = flag.Bool("use-mocks", false, "Use generated data instead of a live backend")
		mockSeed    = flag.Int64("mock-seed", 0, "Random seed for mock data (0 = random)")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("godel-pulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	if err := ensureLogDir(cfg.Daemon.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		os.Exit(1)
	}

	// No explicit mode: interactive on a TTY, single pass otherwise.
	if !*runTUI && !*runWatch && !*runOnce {
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			*runTUI = true
		} else {
			*runOnce = true
		}
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	logFile, err := os.OpenFile(cfg.Daemon.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// The TUI owns the terminal, so its logs go to the file only.
	var logWriter io.Writer = io.MultiWriter(os.Stderr, logFile)
	if *runTUI {
		logWriter = logFile
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	if *useMocks && *mockSeed != 0 {
		mocks.SeedRandom(*mockSeed)
	}

	client := godel.NewClient(cfg.Backend.BaseURL)
	store := state.NewStore(state.Config{MaxEvents: cfg.Stream.MaxEvents})
	reg := buildRegistry(cfg, client, *useMocks)
	runner := collectors.NewRunner(reg, logger)

	switch {
	case *runTUI:
		if err := launchTUI(ctx, cfg, client, store, runner, logger, *useMocks); err != nil {
			logger.Error("TUI error", "error", err)
			os.Exit(1)
		}

	case *runWatch:
		sc := newStreamClient(cfg, logger)
		cs, cacheErr := cache.NewStore(cfg.Daemon.CacheDir, snapshotCacheTTL)
		if cacheErr != nil {
			logger.Warn("cache unavailable", "error", cacheErr)
			cs = nil
		}
		w := daemon.NewWatcher(store, reg, runner, sc, cs, logger, daemon.WatchOptions{
			PIDFile:    cfg.Daemon.PIDFile,
			HealthFile: cfg.Daemon.HealthFile,
		})
		logger.Info("starting godel-pulse watch daemon",
			"backend", cfg.Backend.BaseURL,
			"stream", cfg.Backend.WSURL,
		)
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("watch daemon error", "error", err)
			os.Exit(1)
		}

	case *runOnce:
		if err := collectOnce(ctx, store, runner); err != nil {
			logger.Error("collection failed", "error", err)
			os.Exit(1)
		}
	}
}

// loadConfig resolves the configuration: an explicit path wins, otherwise
// the standard search paths plus environment overrides.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// buildRegistry registers the enabled collectors. With mocks the backend
// pollers are replaced by generators; system metrics stay real since they
// describe the local host either way.
func buildRegistry(cfg *config.Config, client *godel.Client, useMocks bool) *collectors.Registry {
	reg := collectors.NewRegistry()

	if useMocks {
		if cfg.Collectors.Cognitive.Enabled {
			reg.Register(collectors.NewMockCollector(cognitive.SourceName, cfg.Collectors.Cognitive.Interval.Duration,
				collectors.WithCollectFunc(func(ctx context.Context) (any, error) {
					cs := mocks.MockCognitiveState()
					return cognitive.Snapshot{State: &cs}, nil
				})))
		}
		if cfg.Collectors.Transparency.Enabled {
			reg.Register(collectors.NewMockCollector(transparency.SourceName, cfg.Collectors.Transparency.Interval.Duration,
				collectors.WithCollectFunc(func(ctx context.Context) (any, error) {
					return transparency.Report{
						Gaps:  mocks.MockKnowledgeGaps(5),
						Plans: mocks.MockAcquisitionPlans(3),
					}, nil
				})))
		}
		if cfg.Collectors.Health.Enabled {
			reg.Register(collectors.NewMockCollector(health.SourceName, cfg.Collectors.Health.Interval.Duration,
				collectors.WithCollectFunc(func(ctx context.Context) (any, error) {
					return mocks.MockHealth(), nil
				})))
		}
	} else {
		if cfg.Collectors.Cognitive.Enabled {
			reg.Register(cognitive.New(client, cfg.Collectors.Cognitive.Interval.Duration))
		}
		if cfg.Collectors.Transparency.Enabled {
			reg.Register(transparency.New(client, cfg.Collectors.Transparency.Interval.Duration))
		}
		if cfg.Collectors.Health.Enabled {
			reg.Register(health.New(client, cfg.Collectors.Health.Interval.Duration))
		}
	}
	if cfg.Collectors.SysMetrics.Enabled {
		reg.Register(sysmetrics.New(cfg.Collectors.SysMetrics.Interval.Duration))
	}
	return reg
}

func newStreamClient(cfg *config.Config, logger *slog.Logger) *stream.Client {
	return stream.NewClient(stream.Options{
		URL:    cfg.Backend.WSURL,
		Logger: logger,
	})
}

// launchTUI wires the dashboard: theme, widgets, state pump and stream.
func launchTUI(ctx context.Context, cfg *config.Config, client *godel.Client, store *state.Store, runner *collectors.Runner, logger *slog.Logger, useMocks bool) error {
	if cfg.Theme.File != "" {
		if _, err := theme.LoadFile(cfg.Theme.File); err != nil {
			logger.Warn("theme file rejected", "path", cfg.Theme.File, "error", err)
		}
	}
	th := theme.Adapt(theme.Get(cfg.Theme.Name), theme.DetectProfile())

	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil && (w < 40 || h < 10) {
		logger.Warn("terminal smaller than the dashboard minimum", "width", w, "height", h)
	}

	var sc *stream.Client
	if useMocks {
		seedMockState(store)
	} else {
		sc = newStreamClient(cfg, logger)
		preloadSnapshot(store, cfg, logger)
	}

	gaps := widgets.NewGapsWidget(th)
	panels := []app.Widget{
		widgets.NewConnectionWidget(sc, th),
		widgets.NewStreamFeedWidget(th),
		widgets.NewAttentionWidget(th),
		widgets.NewLoadWidget(th),
		gaps,
		widgets.NewLearningWidget(client, gaps, th),
		widgets.NewHostWidget(th),
		widgets.NewQueryWidget(client, th),
	}

	bridge := app.NewBridge(0)
	model := app.NewAppModel(app.Config{
		TickInterval: time.Second,
		Bridge:       bridge,
	}, panels...)
	model.SetViewFn(tui.NewView(th))

	if sc != nil {
		app.Pump(ctx, bridge, store, runner, sc)
		if err := sc.Connect(ctx); err != nil {
			logger.Warn("stream connect failed, polling only", "error", err)
		} else if g := godel.Granularity(cfg.Stream.Granularity); g.Valid() {
			if err := client.ConfigureStream(ctx, g, nil); err != nil {
				logger.Warn("stream configure failed", "error", err)
			}
		}
		defer sc.Shutdown()
	} else {
		app.PumpCollectors(ctx, bridge, store, runner)
		go feedMockEvents(ctx, bridge, store)
	}
	go runner.Run(ctx)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// preloadSnapshot populates panels from the watch daemon's cached snapshot
// so the first frame is not empty while the initial poll is in flight.
func preloadSnapshot(store *state.Store, cfg *config.Config, logger *slog.Logger) {
	cs, err := cache.NewStore(cfg.Daemon.CacheDir, snapshotCacheTTL)
	if err != nil {
		logger.Debug("cache unavailable for preload", "error", err)
		return
	}
	if snap, ok := cache.GetTyped[godel.CognitiveState](cs, daemon.SnapshotCacheKey); ok {
		store.Apply(snap)
	}
}

// seedMockState fills the store before launch so every panel renders
// immediately in mock mode.
func seedMockState(store *state.Store) {
	store.Apply(mocks.MockCognitiveState())
	for _, ev := range mocks.MockStreamEvents(40) {
		store.AppendEvent(ev)
	}
}

// feedMockEvents trickles generated stream events into the store, standing
// in for the WebSocket feed.
func feedMockEvents(ctx context.Context, bridge *app.Bridge, store *state.Store) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ev := mocks.MockStreamEvents(1)[0]
			ev.Timestamp = time.Now()
			store.AppendEvent(ev)
			bridge.Post(app.StateRefreshMsg{
				Snapshot: store.Snapshot(),
				Events:   store.Events(state.EventFilter{}),
				History:  store.History(),
			})
		case <-ctx.Done():
			return
		}
	}
}

// collectOnce runs a single collection pass and prints the merged snapshot
// as indented JSON on stdout.
func collectOnce(ctx context.Context, store *state.Store, runner *collectors.Runner) error {
	runner.RunOnce(ctx)
	for {
		select {
		case u := <-runner.Updates():
			ingest.Apply(store, u)
			continue
		default:
		}
		break
	}

	snap := store.Snapshot()
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func ensureLogDir(logFile string) error {
	dir := filepath.Dir(logFile)
	return os.MkdirAll(dir, 0755)
}
