package daemon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/godelos/godel-pulse/pkg/collectors"
)

// Health is the snapshot the watch daemon publishes for external tools
// (status bars, scripts) to poll.
type Health struct {
	PID        int               `json:"pid"`
	StartedAt  time.Time         `json:"started_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Connection string            `json:"connection"`
	EventCount int               `json:"event_count"`
	Collectors []CollectorHealth `json:"collectors"`
}

// CollectorHealth is the JSON-friendly view of a collector status.
type CollectorHealth struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	LastRun   time.Time `json:"last_run"`
	Runs      int64     `json:"runs"`
	Errors    int64     `json:"errors"`
	LastError string    `json:"last_error,omitempty"`
}

// collectorHealth flattens registry statuses for serialization.
func collectorHealth(statuses []collectors.Status) []CollectorHealth {
	out := make([]CollectorHealth, 0, len(statuses))
	for _, s := range statuses {
		ch := CollectorHealth{
			Name:    s.Name,
			Healthy: s.Healthy,
			LastRun: s.LastRun,
			Runs:    s.RunCount,
			Errors:  s.ErrorCount,
		}
		if s.LastError != nil {
			ch.LastError = s.LastError.Error()
		}
		out = append(out, ch)
	}
	return out
}

// WriteHealth writes h as indented JSON to path via temp file and rename,
// so readers never observe a partial write.
func WriteHealth(path string, h *Health) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create health directory: %w", err)
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal health: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp health file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename health file: %w", err)
	}
	return nil
}

// ReadHealth loads a previously written health file.
func ReadHealth(path string) (*Health, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read health file: %w", err)
	}
	var h Health
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("unmarshal health file: %w", err)
	}
	return &h, nil
}
