// Package stream maintains the WebSocket connection to the GödelOS
// consciousness stream. It owns at most one live socket, recovers from
// drops with capped exponential backoff, and fans validated frames out to
// caller-registered handlers.
//
// Everything is best-effort: no error escapes to the UI loop, failures are
// logged and surfaced only as connection-state changes. There is no
// outbound queueing while disconnected; sends in that window fail fast and
// the frame is dropped (counted in Stats).
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/godelos/godel-pulse/pkg/godel"
)

// ConnectionState tracks the stream connection lifecycle.
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// ErrNotConnected is returned by Send while the socket is down. The frame
// is dropped, matching the backend's fire-and-forget command model.
var ErrNotConnected = errors.New("stream: not connected")

const (
	// DefaultURL is the assumed local stream endpoint.
	DefaultURL = "ws://localhost:8000/api/enhanced-cognitive/stream"

	defaultCheckInterval    = 5 * time.Second
	defaultHandshakeTimeout = 10 * time.Second
	maxReconnectAttempts    = 5
)

// Options configures a stream Client. Zero values select defaults; the
// backoff knobs exist for tests and stay at the production constants
// otherwise.
type Options struct {
	URL              string
	HandshakeTimeout time.Duration
	CheckInterval    time.Duration // health-check ticker period
	MaxAttempts      int           // automatic reconnect cap
	BackoffBase      time.Duration
	BackoffCap       time.Duration
	Logger           *slog.Logger
}

func (o Options) defaults() Options {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.HandshakeTimeout == 0 {
		o.HandshakeTimeout = defaultHandshakeTimeout
	}
	if o.CheckInterval == 0 {
		o.CheckInterval = defaultCheckInterval
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = maxReconnectAttempts
	}
	if o.BackoffBase == 0 {
		o.BackoffBase = backoffBase
	}
	if o.BackoffCap == 0 {
		o.BackoffCap = backoffCap
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Stats is a point-in-time view of the connection for status panels.
type Stats struct {
	State        ConnectionState
	Attempts     int // reconnect attempts since last successful connect
	DroppedSends int64
	Frames       int64 // valid frames delivered to handlers
	LastError    string
}

// Client manages the single WebSocket connection to the backend stream.
// Handlers run on the read-loop goroutine; they must not block.
type Client struct {
	opts Options
	log  *slog.Logger

	mu           sync.RWMutex
	conn         *websocket.Conn
	state        ConnectionState
	attempts     int
	closed       bool // manual Close; suppresses automatic reconnects
	droppedSends int64
	frames       int64
	lastErr      error

	writeMu sync.Mutex

	reconnectTimer *time.Timer

	onEvent       func(godel.StreamEvent)
	onSnapshot    func(godel.CognitiveState)
	onStateChange func(ConnectionState)

	tickerOnce sync.Once
	done       chan struct{}
}

// NewClient creates a stream client. Call Connect to open the socket.
func NewClient(opts Options) *Client {
	opts = opts.defaults()
	return &Client{
		opts:  opts,
		log:   opts.Logger.With("component", "stream"),
		state: StateDisconnected,
		done:  make(chan struct{}),
	}
}

// State returns the current connection state.
func (c *Client) State() ConnectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Stats returns a snapshot of connection counters.
func (c *Client) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Stats{
		State:        c.state,
		Attempts:     c.attempts,
		DroppedSends: c.droppedSends,
		Frames:       c.frames,
	}
	if c.lastErr != nil {
		s.LastError = c.lastErr.Error()
	}
	return s
}

// OnEvent registers the handler for validated stream events.
func (c *Client) OnEvent(fn func(godel.StreamEvent)) {
	c.mu.Lock()
	c.onEvent = fn
	c.mu.Unlock()
}

// OnSnapshot registers the handler for state-section updates.
func (c *Client) OnSnapshot(fn func(godel.CognitiveState)) {
	c.mu.Lock()
	c.onSnapshot = fn
	c.mu.Unlock()
}

// OnStateChange registers the handler for connection-state transitions.
func (c *Client) OnStateChange(fn func(ConnectionState)) {
	c.mu.Lock()
	c.onStateChange = fn
	c.mu.Unlock()
}

func (c *Client) setState(s ConnectionState) {
	c.mu.Lock()
	if c.state == s {
		c.mu.Unlock()
		return
	}
	c.state = s
	cb := c.onStateChange
	c.mu.Unlock()
	if cb != nil {
		cb(s)
	}
}

// Connect opens the WebSocket. On success the state transitions to
// connected and the retry counter resets to 0. The periodic health check
// starts on first call and keeps running until Shutdown.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	c.closed = false
	c.mu.Unlock()

	c.tickerOnce.Do(func() { go c.healthLoop() })

	return c.dial(ctx)
}

func (c *Client) dial(ctx context.Context) error {
	c.setState(StateConnecting)

	dialer := websocket.Dialer{HandshakeTimeout: c.opts.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.opts.URL, nil)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		c.setState(StateDisconnected)
		return fmt.Errorf("stream dial %s: %w", c.opts.URL, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.attempts = 0
	c.lastErr = nil
	c.mu.Unlock()
	c.setState(StateConnected)

	go c.readLoop(conn)
	return nil
}

// Reconnect is the explicit user-triggered override. It resets the retry
// counter to 0 before attempting, re-arming automatic recovery even after
// the cap was exhausted.
func (c *Client) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	c.attempts = 0
	c.closed = false
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	c.mu.Unlock()
	return c.dial(ctx)
}

// Close shuts the socket with a clean close frame and suppresses
// automatic reconnection until the next Connect or Reconnect.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	c.mu.Unlock()

	if conn != nil {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}
	c.setState(StateDisconnected)
}

// Shutdown closes the connection and stops the health-check goroutine.
// The client cannot be reused afterwards.
func (c *Client) Shutdown() {
	c.Close()
	c.mu.Lock()
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	c.mu.Unlock()
}

// Send writes v as a JSON frame. While disconnected the frame is dropped
// and ErrNotConnected returned; there is no outbound queue.
func (c *Client) Send(v any) error {
	c.mu.RLock()
	conn := c.conn
	connected := c.state == StateConnected
	c.mu.RUnlock()

	if !connected || conn == nil {
		c.mu.Lock()
		c.droppedSends++
		c.mu.Unlock()
		c.log.Warn("dropping outbound frame while disconnected")
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteJSON(v); err != nil {
		return fmt.Errorf("stream send: %w", err)
	}
	return nil
}

// healthLoop runs the fixed-interval connection check until Shutdown.
func (c *Client) healthLoop() {
	ticker := time.NewTicker(c.opts.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.checkConnection()
		case <-c.done:
			return
		}
	}
}

// checkConnection triggers a reconnect attempt when the socket is down,
// unless one is already in flight or the client was closed manually.
func (c *Client) checkConnection() {
	c.mu.RLock()
	down := c.conn == nil && c.state != StateReconnecting && c.state != StateConnecting
	closed := c.closed
	c.mu.RUnlock()

	if down && !closed {
		c.attemptReconnect()
	}
}

// attemptReconnect schedules a single-shot reconnect after the backoff
// delay for the current attempt. After MaxAttempts failures it gives up
// silently; only a manual Reconnect re-arms it.
func (c *Client) attemptReconnect() {
	c.mu.Lock()
	if c.closed || c.state == StateReconnecting {
		c.mu.Unlock()
		return
	}
	if c.attempts >= c.opts.MaxAttempts {
		c.mu.Unlock()
		return
	}
	c.attempts++
	attempt := c.attempts
	delay := BackoffDelay(attempt, c.opts.BackoffBase, c.opts.BackoffCap)
	c.state = StateReconnecting
	cb := c.onStateChange
	c.mu.Unlock()

	if cb != nil {
		cb(StateReconnecting)
	}
	c.log.Info("scheduling reconnect", "attempt", attempt, "delay", delay)

	c.mu.Lock()
	c.reconnectTimer = time.AfterFunc(delay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.opts.HandshakeTimeout)
		defer cancel()
		if err := c.dial(ctx); err != nil {
			// Logged and swallowed: the next periodic check retries,
			// bounded by the same attempt cap.
			c.log.Warn("reconnect attempt failed", "attempt", attempt, "error", err)
		}
	})
	c.mu.Unlock()
}

// readLoop consumes frames until the socket errors, then hands off to the
// reconnect path unless the close was manual.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			manual := c.closed
			if c.conn == conn {
				c.conn = nil
			}
			c.lastErr = err
			c.mu.Unlock()

			if manual {
				return
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("stream read error", "error", err)
			}
			c.setState(StateDisconnected)
			c.attemptReconnect()
			return
		}
		c.handleFrame(data)
	}
}

// handleFrame decodes and dispatches one frame. Malformed frames are
// logged and skipped, never delivered to handlers.
func (c *Client) handleFrame(data []byte) {
	var env godel.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.log.Warn("discarding malformed frame", "error", err)
		return
	}

	switch env.Type {
	case godel.MsgStreamEvent:
		ev, err := env.DecodeEvent()
		if err != nil {
			c.log.Warn("discarding invalid stream event", "error", err)
			return
		}
		c.mu.Lock()
		c.frames++
		cb := c.onEvent
		c.mu.Unlock()
		if cb != nil {
			cb(*ev)
		}

	case godel.MsgCognitiveState, godel.MsgHealth, godel.MsgKnowledgeGaps, godel.MsgAcquisitionUpdate:
		st, err := env.DecodeState()
		if err != nil {
			c.log.Warn("discarding invalid state update", "error", err)
			return
		}
		c.mu.Lock()
		c.frames++
		cb := c.onSnapshot
		c.mu.Unlock()
		if cb != nil {
			cb(*st)
		}

	case godel.MsgPong:
		// Keepalive reply; nothing to deliver.

	default:
		c.log.Warn("discarding frame with unknown type", "type", string(env.Type))
	}
}
