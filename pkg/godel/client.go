package godel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the assumed local backend endpoint.
	DefaultBaseURL = "http://localhost:8000"

	defaultHTTPTimeout = 10 * time.Second
)

// APIError is a non-2xx response from the backend. Message carries the
// backend's error body when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, e.Message)
}

// Client is a thin JSON-over-HTTP client for the GödelOS backend API.
// Calls are single-attempt: the backend pushes fresh state over the
// stream soon enough that retrying stale polls buys nothing.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend API client. An empty baseURL falls back to
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// NewClientWithHTTP creates a client with a caller-supplied http.Client,
// used by tests to point at an httptest server.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	c := NewClient(baseURL)
	if hc != nil {
		c.http = hc
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// QueryResponse is the backend's answer to a natural-language query.
type QueryResponse struct {
	Response   string  `json:"response"`
	Confidence float64 `json:"confidence,omitempty"`
	QueryID    string  `json:"query_id,omitempty"`
}

// SubmitQuery submits a natural-language query to the backend.
func (c *Client) SubmitQuery(ctx context.Context, query string) (*QueryResponse, error) {
	var out QueryResponse
	body := map[string]string{"query": query}
	if err := c.post(ctx, "/api/query", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatResponse is the reply to an LLM chat message.
type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id,omitempty"`
}

// SendChatMessage posts one message to the backend's LLM chat channel.
func (c *Client) SendChatMessage(ctx context.Context, message string) (*ChatResponse, error) {
	var out ChatResponse
	body := map[string]string{"message": message}
	if err := c.post(ctx, "/api/llm-chat/message", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CognitiveState fetches the current merged cognitive snapshot.
func (c *Client) CognitiveState(ctx context.Context) (*CognitiveState, error) {
	var out CognitiveState
	if err := c.get(ctx, "/api/enhanced-cognitive/state", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StreamStatus describes the backend's view of the consciousness stream.
type StreamStatus struct {
	Active      bool        `json:"active"`
	Granularity Granularity `json:"granularity,omitempty"`
	Subscribers int         `json:"subscribers,omitempty"`
}

// StreamStatusInfo fetches the stream's server-side status.
func (c *Client) StreamStatusInfo(ctx context.Context) (*StreamStatus, error) {
	var out StreamStatus
	if err := c.get(ctx, "/api/enhanced-cognitive/stream/status", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches the backend health snapshot.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.get(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// KnowledgeGaps fetches the currently detected knowledge gaps. Entries
// that fail validation are rejected as a whole payload.
func (c *Client) KnowledgeGaps(ctx context.Context) ([]KnowledgeGap, error) {
	var out struct {
		Gaps []KnowledgeGap `json:"gaps"`
	}
	if err := c.get(ctx, "/api/transparency/knowledge-gaps", &out); err != nil {
		return nil, err
	}
	for i := range out.Gaps {
		if err := out.Gaps[i].Validate(); err != nil {
			return nil, err
		}
	}
	return out.Gaps, nil
}

// AcquisitionPlans fetches the backend's autonomous acquisition plans.
func (c *Client) AcquisitionPlans(ctx context.Context) ([]AcquisitionPlan, error) {
	var out struct {
		Plans []AcquisitionPlan `json:"plans"`
	}
	if err := c.get(ctx, "/api/transparency/acquisition-plans", &out); err != nil {
		return nil, err
	}
	for i := range out.Plans {
		if err := out.Plans[i].Validate(); err != nil {
			return nil, err
		}
	}
	return out.Plans, nil
}

// PauseLearning asks the backend to pause autonomous learning. The
// resulting state change arrives later via the normal push/poll path.
func (c *Client) PauseLearning(ctx context.Context) error {
	return c.post(ctx, "/api/transparency/learning/pause", nil, nil)
}

// ResumeLearning asks the backend to resume autonomous learning.
func (c *Client) ResumeLearning(ctx context.Context) error {
	return c.post(ctx, "/api/transparency/learning/resume", nil, nil)
}

// TriggerAcquisition fires a manual acquisition request for a concept.
func (c *Client) TriggerAcquisition(ctx context.Context, concept, strategy string) error {
	body := map[string]string{"concept": concept}
	if strategy != "" {
		body["strategy"] = strategy
	}
	return c.post(ctx, "/api/transparency/acquisition/trigger", body, nil)
}

// ConfigureStream adjusts the stream granularity and event-type filter on
// the backend side.
func (c *Client) ConfigureStream(ctx context.Context, g Granularity, types []EventType) error {
	if !g.Valid() {
		return fmt.Errorf("configure stream: unknown granularity %q", g)
	}
	body := map[string]any{"granularity": g}
	if len(types) > 0 {
		body["event_types"] = types
	}
	return c.post(ctx, "/api/enhanced-cognitive/stream/configure", body, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request %s: %w", path, err)
		}
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
			if json.Unmarshal(data, &errBody) == nil {
				apiErr.Message = errBody.Error
			}
		}
		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
