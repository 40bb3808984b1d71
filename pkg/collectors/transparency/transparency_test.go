package transparency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/godelos/godel-pulse/pkg/godel"
)

func TestCollectBundlesGapsAndPlans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/transparency/knowledge-gaps":
			w.Write([]byte(`{"gaps": [{"concept": "modal logic", "priority": "high", "confidence": 0.42}]}`))
		case "/api/transparency/acquisition-plans":
			w.Write([]byte(`{"plans": [{"target_concept": "modal logic", "strategy": "web_search", "status": "active", "progress": 0.1, "created_at": "2026-03-01T09:00:00Z"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(godel.NewClientWithHTTP(srv.URL, srv.Client()), 0)
	data, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect() = %v", err)
	}

	report, ok := data.(Report)
	if !ok {
		t.Fatalf("data type = %T", data)
	}
	if len(report.Gaps) != 1 || report.Gaps[0].Priority != godel.PriorityHigh {
		t.Errorf("Gaps = %+v", report.Gaps)
	}
	if len(report.Plans) != 1 || report.Plans[0].Status != godel.PlanActive {
		t.Errorf("Plans = %+v", report.Plans)
	}
}

func TestCollectFailsWhenEitherEndpointFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/transparency/knowledge-gaps" {
			w.Write([]byte(`{"gaps": []}`))
			return
		}
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(godel.NewClientWithHTTP(srv.URL, srv.Client()), 0)
	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatal("expected error when plans endpoint fails")
	}
	if c.Healthy() {
		t.Error("collector should be unhealthy")
	}
}
