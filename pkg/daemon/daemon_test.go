package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/godelos/godel-pulse/pkg/cache"
	"github.com/godelos/godel-pulse/pkg/collectors"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/state"
	"github.com/godelos/godel-pulse/pkg/stream"
)

func TestAcquireReleasePID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.pid")
	if err := AcquirePID(path); err != nil {
		t.Fatalf("AcquirePID: %v", err)
	}
	pid, err := ReadPID(path)
	if err != nil {
		t.Fatalf("ReadPID: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("pid = %d, want %d", pid, os.Getpid())
	}
	if err := ReleasePID(path); err != nil {
		t.Fatalf("ReleasePID: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("PID file should be gone after release")
	}
}

func TestAcquirePIDRejectsLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.pid")
	// Our own PID is definitely alive.
	if err := AcquirePID(path); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if err := AcquirePID(path); err == nil {
		t.Error("second acquire should fail while the holder is alive")
	}
}

func TestAcquirePIDReplacesStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.pid")
	// PID 0 never maps to a live process.
	if err := os.WriteFile(path, []byte("0"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := AcquirePID(path); err != nil {
		t.Fatalf("acquire over stale file: %v", err)
	}
	pid, err := ReadPID(path)
	if err != nil {
		t.Fatal(err)
	}
	if pid != os.Getpid() {
		t.Errorf("pid = %d, want %d", pid, os.Getpid())
	}
}

func TestReleasePIDMissingFile(t *testing.T) {
	if err := ReleasePID(filepath.Join(t.TempDir(), "absent.pid")); err != nil {
		t.Errorf("release of missing file should be a no-op, got %v", err)
	}
}

func TestHealthRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "health.json")
	in := &Health{
		PID:        123,
		StartedAt:  time.Now().Add(-time.Minute).Truncate(time.Second),
		UpdatedAt:  time.Now().Truncate(time.Second),
		Connection: "connected",
		EventCount: 42,
		Collectors: []CollectorHealth{
			{Name: "cognitive", Healthy: true, Runs: 7},
		},
	}
	if err := WriteHealth(path, in); err != nil {
		t.Fatalf("WriteHealth: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not survive the rename")
	}
	out, err := ReadHealth(path)
	if err != nil {
		t.Fatalf("ReadHealth: %v", err)
	}
	if out.Connection != "connected" || out.EventCount != 42 {
		t.Errorf("round trip = %+v", out)
	}
	if len(out.Collectors) != 1 || out.Collectors[0].Name != "cognitive" {
		t.Errorf("Collectors = %+v", out.Collectors)
	}
}

func TestCollectorHealthFlattensError(t *testing.T) {
	got := collectorHealth([]collectors.Status{
		{Name: "a", Healthy: false, LastError: errors.New("endpoint down"), ErrorCount: 2},
		{Name: "b", Healthy: true},
	})
	if got[0].LastError != "endpoint down" || got[0].Errors != 2 {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].LastError != "" {
		t.Errorf("healthy collector should have empty LastError, got %q", got[1].LastError)
	}
}

func TestWatcherPublishesHealthAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	healthPath := filepath.Join(dir, "health.json")
	pidPath := filepath.Join(dir, "watch.pid")

	store := state.NewStore(state.Config{})
	reg := collectors.NewRegistry()
	mock := collectors.NewMockCollector("mock", 10*time.Millisecond,
		collectors.WithData(map[string]int{"n": 1}))
	if err := reg.Register(mock); err != nil {
		t.Fatal(err)
	}
	runner := collectors.NewRunner(reg, nil)

	sc := stream.NewClient(stream.Options{
		URL:           "ws://127.0.0.1:1/stream",
		MaxAttempts:   1,
		CheckInterval: time.Hour,
	})

	cs, err := cache.NewStore(filepath.Join(dir, "cache"), 0)
	if err != nil {
		t.Fatal(err)
	}

	store.Apply(godel.CognitiveState{Load: &godel.ProcessingLoad{Load: 0.5}})

	w := NewWatcher(store, reg, runner, sc, cs, nil, WatchOptions{
		PIDFile:        pidPath,
		HealthFile:     healthPath,
		HealthInterval: 20 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	h, err := ReadHealth(healthPath)
	if err != nil {
		t.Fatalf("ReadHealth: %v", err)
	}
	if h.PID != os.Getpid() {
		t.Errorf("health PID = %d", h.PID)
	}
	if len(h.Collectors) != 1 || h.Collectors[0].Name != "mock" {
		t.Errorf("Collectors = %+v", h.Collectors)
	}

	snap, ok := cache.GetTyped[godel.CognitiveState](cs, SnapshotCacheKey)
	if !ok {
		t.Fatal("expected cached snapshot")
	}
	if snap.Load == nil || snap.Load.Load != 0.5 {
		t.Errorf("cached Load = %+v", snap.Load)
	}

	if _, err := os.Stat(pidPath); !os.IsNotExist(err) {
		t.Error("PID file should be released after Run returns")
	}
}
