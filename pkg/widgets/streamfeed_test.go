package widgets

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/theme"
)

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func feedEvents(n int) []godel.StreamEvent {
	var out []godel.StreamEvent
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		typ := godel.EventTypes[i%len(godel.EventTypes)]
		out = append(out, godel.StreamEvent{
			ID:          fmt.Sprintf("ev-%d", i),
			Type:        typ,
			Granularity: godel.GranularitySummary,
			Content:     fmt.Sprintf("thought %d", i),
			Timestamp:   base.Add(time.Duration(i) * time.Second),
		})
	}
	return out
}

func TestFeedShowsNewestEvents(t *testing.T) {
	w := NewStreamFeedWidget(theme.Get("default"))
	w.Update(app.StateRefreshMsg{Events: feedEvents(20)})

	out := w.View(60, 6)
	if !strings.Contains(out, "thought 19") {
		t.Error("newest event should be visible")
	}
	if strings.Contains(out, "thought 0") {
		t.Error("oldest event should have scrolled off")
	}
}

func TestFeedTypeFilterCycles(t *testing.T) {
	w := NewStreamFeedWidget(theme.Get("default"))
	w.Update(app.StateRefreshMsg{Events: feedEvents(12)})

	w.HandleKey(key('t'))
	f := w.Filter()
	if len(f.Types) != 1 || !f.Types[godel.EventTypes[0]] {
		t.Fatalf("after one 't', filter = %+v", f.Types)
	}

	// Cycling through every type plus one lands back on no filter.
	for i := 0; i < len(godel.EventTypes); i++ {
		w.HandleKey(key('t'))
	}
	if len(w.Filter().Types) != 0 {
		t.Errorf("full cycle should clear the type filter, got %+v", w.Filter().Types)
	}
}

func TestFeedFilterDoesNotMutateEvents(t *testing.T) {
	w := NewStreamFeedWidget(theme.Get("default"))
	events := feedEvents(10)
	w.Update(app.StateRefreshMsg{Events: events})

	w.HandleKey(key('t'))
	_ = w.View(60, 6)
	_ = w.View(60, 6)

	if len(events) != 10 {
		t.Fatalf("event window mutated, len = %d", len(events))
	}
	for i, ev := range events {
		if ev.Content != fmt.Sprintf("thought %d", i) {
			t.Errorf("event %d content changed: %q", i, ev.Content)
		}
	}
}

func TestFeedSearchFromBroadcast(t *testing.T) {
	w := NewStreamFeedWidget(theme.Get("default"))
	w.Update(app.StateRefreshMsg{Events: feedEvents(10)})
	w.Update(app.SearchMsg{Query: "thought 3"})

	out := w.View(60, 8)
	if !strings.Contains(out, "thought 3") {
		t.Error("matching event missing")
	}
	if strings.Contains(out, "thought 4") {
		t.Error("non-matching event should be filtered out")
	}

	w.Update(app.SearchMsg{})
	out = w.View(60, 8)
	if !strings.Contains(out, "thought 9") {
		t.Error("clearing the search should restore the feed")
	}
}

func TestFeedClearFilters(t *testing.T) {
	w := NewStreamFeedWidget(theme.Get("default"))
	w.HandleKey(key('t'))
	w.HandleKey(key('g'))
	w.HandleKey(key('c'))
	f := w.Filter()
	if len(f.Types) != 0 || len(f.Granularities) != 0 {
		t.Errorf("'c' should clear filters, got %+v", f)
	}
}

func TestFeedScrollback(t *testing.T) {
	w := NewStreamFeedWidget(theme.Get("default"))
	w.Update(app.StateRefreshMsg{Events: feedEvents(30)})

	for i := 0; i < 10; i++ {
		w.HandleKey(key('k'))
	}
	out := w.View(60, 6)
	if strings.Contains(out, "thought 29") {
		t.Error("scrolled view should not show the newest event")
	}

	w.HandleKey(key('G'))
	out = w.View(60, 6)
	if !strings.Contains(out, "thought 29") {
		t.Error("'G' should jump back to the tail")
	}
}

func TestFeedEmpty(t *testing.T) {
	w := NewStreamFeedWidget(theme.Get("default"))
	out := w.View(40, 5)
	if !strings.Contains(out, "no events") {
		t.Errorf("empty feed should say so, got %q", out)
	}
}
