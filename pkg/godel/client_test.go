package godel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient spins up an httptest server with the given handler and
// returns a Client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(srv.URL, srv.Client())
}

func TestSubmitQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/query" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if body["query"] != "what is attention?" {
			t.Errorf("query = %q", body["query"])
		}
		json.NewEncoder(w).Encode(QueryResponse{Response: "selective focus", Confidence: 0.9})
	})

	resp, err := c.SubmitQuery(context.Background(), "what is attention?")
	if err != nil {
		t.Fatalf("SubmitQuery() = %v", err)
	}
	if resp.Response != "selective focus" {
		t.Errorf("Response = %q", resp.Response)
	}
}

func TestKnowledgeGapsValidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"gaps": [{"concept": "x", "priority": "whenever", "confidence": 0.2}]}`))
	})

	if _, err := c.KnowledgeGaps(context.Background()); err == nil {
		t.Fatal("expected validation error for unknown priority")
	}
}

func TestAcquisitionPlans(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/transparency/acquisition-plans" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"plans": [
			{"target_concept": "lambda calculus", "strategy": "web_search", "status": "active", "progress": 0.4, "created_at": "2026-03-01T10:00:00Z"}
		]}`))
	})

	plans, err := c.AcquisitionPlans(context.Background())
	if err != nil {
		t.Fatalf("AcquisitionPlans() = %v", err)
	}
	if len(plans) != 1 || plans[0].Status != PlanActive {
		t.Errorf("plans = %+v", plans)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "inference engine offline"}`))
	})

	_, err := c.Health(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d", apiErr.Status)
	}
	if apiErr.Message != "inference engine offline" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestPauseLearningNoResponseBody(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.PauseLearning(context.Background()); err != nil {
		t.Fatalf("PauseLearning() = %v", err)
	}
	if gotPath != "/api/transparency/learning/pause" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestConfigureStreamRejectsBadGranularity(t *testing.T) {
	c := NewClient("")
	err := c.ConfigureStream(context.Background(), "chatty", nil)
	if err == nil {
		t.Fatal("expected error for unknown granularity")
	}
}

func TestContextCancellationAborts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.CognitiveState(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
