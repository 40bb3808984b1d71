package stream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/godelos/godel-pulse/pkg/godel"
)

// wsTestServer is an httptest server that upgrades connections and hands
// them to accept. It records how many dials it has served.
type wsTestServer struct {
	*httptest.Server
	mu    sync.Mutex
	conns []*websocket.Conn
}

func newWSTestServer(t *testing.T, accept func(*websocket.Conn)) *wsTestServer {
	t.Helper()
	upgrader := websocket.Upgrader{}
	ws := &wsTestServer{}
	ws.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		ws.mu.Lock()
		ws.conns = append(ws.conns, conn)
		ws.mu.Unlock()
		if accept != nil {
			accept(conn)
		}
	}))
	t.Cleanup(ws.Server.Close)
	return ws
}

func (ws *wsTestServer) url() string {
	return "ws" + strings.TrimPrefix(ws.Server.URL, "http")
}

func (ws *wsTestServer) dialCount() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.conns)
}

// stateRecorder collects connection-state transitions.
type stateRecorder struct {
	mu     sync.Mutex
	states []ConnectionState
}

func (r *stateRecorder) record(s ConnectionState) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
}

func (r *stateRecorder) snapshot() []ConnectionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ConnectionState, len(r.states))
	copy(out, r.states)
	return out
}

func (r *stateRecorder) waitFor(t *testing.T, want ConnectionState, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, s := range r.snapshot() {
			if s == want {
				return
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state %v never observed; saw %v", want, r.snapshot())
}

func testOptions(url string) Options {
	return Options{
		URL:           url,
		CheckInterval: 20 * time.Millisecond,
		BackoffBase:   5 * time.Millisecond,
		BackoffCap:    20 * time.Millisecond,
	}
}

func TestConnectionStateString(t *testing.T) {
	tests := []struct {
		state ConnectionState
		want  string
	}{
		{StateDisconnected, "disconnected"},
		{StateConnecting, "connecting"},
		{StateConnected, "connected"},
		{StateReconnecting, "reconnecting"},
		{ConnectionState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestConnectTransitions(t *testing.T) {
	srv := newWSTestServer(t, nil)

	rec := &stateRecorder{}
	c := NewClient(testOptions(srv.url()))
	defer c.Shutdown()
	c.OnStateChange(rec.record)

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() = %v", err)
	}

	states := rec.snapshot()
	if len(states) < 2 || states[0] != StateConnecting || states[1] != StateConnected {
		t.Fatalf("transitions = %v, want [connecting connected]", states)
	}
	if c.State() != StateConnected {
		t.Errorf("State() = %v", c.State())
	}
}

func TestEventDispatchAndValidation(t *testing.T) {
	frames := []string{
		`{"type":"stream_event","timestamp":"2026-03-01T12:00:00Z","data":{"id":"e1","event_type":"reasoning","granularity":"summary","content":"step one"}}`,
		`not json at all`,
		`{"type":"stream_event","data":{"id":"e2","event_type":"daydream","granularity":"summary","content":"x","timestamp":"2026-03-01T12:00:01Z"}}`,
		`{"type":"cognitive_state","data":{"load":{"load":0.5,"queue_depth":1,"active_processes":3}}}`,
		`{"type":"mystery","data":{}}`,
	}
	srv := newWSTestServer(t, func(conn *websocket.Conn) {
		for _, f := range frames {
			conn.WriteMessage(websocket.TextMessage, []byte(f))
		}
	})

	c := NewClient(testOptions(srv.url()))
	defer c.Shutdown()

	var mu sync.Mutex
	var events []godel.StreamEvent
	var snaps []godel.CognitiveState
	c.OnEvent(func(ev godel.StreamEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})
	c.OnSnapshot(func(st godel.CognitiveState) {
		mu.Lock()
		snaps = append(snaps, st)
		mu.Unlock()
	})

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := len(events) >= 1 && len(snaps) >= 1
		mu.Unlock()
		if done {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 || events[0].ID != "e1" {
		t.Errorf("events = %+v, want only the valid e1", events)
	}
	if len(snaps) != 1 || snaps[0].Load == nil || snaps[0].Load.Load != 0.5 {
		t.Errorf("snapshots = %+v", snaps)
	}
}

func TestDropTriggersReconnect(t *testing.T) {
	srv := newWSTestServer(t, nil)

	rec := &stateRecorder{}
	c := NewClient(testOptions(srv.url()))
	defer c.Shutdown()
	c.OnStateChange(rec.record)

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() = %v", err)
	}

	// Server-side close simulates a backend drop.
	srv.mu.Lock()
	srv.conns[0].Close()
	srv.mu.Unlock()

	rec.waitFor(t, StateReconnecting, 2*time.Second)

	// The scheduled attempt should land on the still-running server.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && srv.dialCount() < 2 {
		time.Sleep(5 * time.Millisecond)
	}
	if srv.dialCount() < 2 {
		t.Fatal("no reconnect dial observed")
	}

	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && c.State() != StateConnected {
		time.Sleep(5 * time.Millisecond)
	}
	if c.State() != StateConnected {
		t.Fatalf("state after reconnect = %v", c.State())
	}
	if got := c.Stats().Attempts; got != 0 {
		t.Errorf("attempts after successful reconnect = %d, want 0", got)
	}
}

func TestGivesUpAfterAttemptCap(t *testing.T) {
	// A server that immediately goes away produces dial failures.
	srv := newWSTestServer(t, nil)
	url := srv.url()
	srv.Server.Close()

	opts := testOptions(url)
	opts.MaxAttempts = 3
	c := NewClient(opts)
	defer c.Shutdown()

	c.Connect(context.Background()) // fails; health checks take over

	// Give the health loop ample time to burn through the cap.
	time.Sleep(500 * time.Millisecond)

	stats := c.Stats()
	if stats.Attempts != 3 {
		t.Fatalf("attempts = %d, want capped at 3", stats.Attempts)
	}
	if stats.State == StateConnected {
		t.Fatal("cannot be connected to a closed server")
	}

	// The counter must not move once exhausted.
	time.Sleep(100 * time.Millisecond)
	if got := c.Stats().Attempts; got != 3 {
		t.Fatalf("attempts advanced past cap: %d", got)
	}
}

func TestManualReconnectResetsCounter(t *testing.T) {
	dead := newWSTestServer(t, nil)
	deadURL := dead.url()
	dead.Server.Close()

	opts := testOptions(deadURL)
	opts.MaxAttempts = 2
	c := NewClient(opts)
	defer c.Shutdown()

	c.Connect(context.Background())
	time.Sleep(300 * time.Millisecond)
	if got := c.Stats().Attempts; got != 2 {
		t.Fatalf("attempts = %d, want 2", got)
	}

	// Manual reconnect against a live server: counter resets, dial works.
	live := newWSTestServer(t, nil)
	c.opts.URL = live.url()
	if err := c.Reconnect(context.Background()); err != nil {
		t.Fatalf("Reconnect() = %v", err)
	}
	stats := c.Stats()
	if stats.State != StateConnected || stats.Attempts != 0 {
		t.Fatalf("after manual reconnect: %+v", stats)
	}
}

func TestSendWhileDisconnectedDrops(t *testing.T) {
	c := NewClient(testOptions("ws://localhost:1/nowhere"))
	defer c.Shutdown()

	err := c.Send(map[string]string{"type": "ping"})
	if err != ErrNotConnected {
		t.Fatalf("Send() = %v, want ErrNotConnected", err)
	}
	if got := c.Stats().DroppedSends; got != 1 {
		t.Errorf("DroppedSends = %d, want 1", got)
	}
}

func TestCloseSuppressesReconnect(t *testing.T) {
	srv := newWSTestServer(t, nil)

	c := NewClient(testOptions(srv.url()))
	defer c.Shutdown()
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() = %v", err)
	}

	c.Close()
	time.Sleep(150 * time.Millisecond)

	if got := srv.dialCount(); got != 1 {
		t.Errorf("dials after manual close = %d, want 1", got)
	}
	if c.State() != StateDisconnected {
		t.Errorf("state = %v, want disconnected", c.State())
	}
}
