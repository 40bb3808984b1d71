package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/godelos/godel-pulse/pkg/collectors"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/ingest"
	"github.com/godelos/godel-pulse/pkg/state"
	"github.com/godelos/godel-pulse/pkg/stream"
)

// Bridge funnels messages produced outside bubbletea (collector goroutines,
// stream callbacks) into the update loop. The model re-arms WaitCmd after
// every bridged message.
type Bridge struct {
	ch chan tea.Msg
}

// NewBridge creates a bridge with the given buffer size.
func NewBridge(buffer int) *Bridge {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bridge{ch: make(chan tea.Msg, buffer)}
}

// Post queues a message for the update loop. When the buffer is full the
// oldest message is dropped so producers never block the UI.
func (b *Bridge) Post(msg tea.Msg) {
	select {
	case b.ch <- msg:
	default:
		select {
		case <-b.ch:
		default:
		}
		select {
		case b.ch <- msg:
		default:
		}
	}
}

// WaitCmd blocks for the next bridged message.
func (b *Bridge) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		return <-b.ch
	}
}

// Pump wires the collector runner and the event stream into the store and
// the bridge. It returns immediately; the goroutines stop when ctx is
// cancelled.
func Pump(ctx context.Context, b *Bridge, store *state.Store, runner *collectors.Runner, sc *stream.Client) {
	sc.OnEvent(func(ev godel.StreamEvent) {
		store.AppendEvent(ev)
		b.Post(refresh(store))
	})
	sc.OnSnapshot(func(cs godel.CognitiveState) {
		store.Apply(cs)
		b.Post(refresh(store))
	})
	sc.OnStateChange(func(s stream.ConnectionState) {
		b.Post(StreamStateMsg{State: s, Stats: sc.Stats()})
	})

	PumpCollectors(ctx, b, store, runner)
}

// PumpCollectors wires only the collector runner, for setups that run
// without a stream connection.
func PumpCollectors(ctx context.Context, b *Bridge, store *state.Store, runner *collectors.Runner) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case u := <-runner.Updates():
				if ingest.Apply(store, u) {
					b.Post(refresh(store))
				}
				b.Post(DataUpdateEvent{
					Source:    u.Source,
					Data:      u.Data,
					Err:       u.Err,
					Timestamp: u.Timestamp,
				})
			}
		}
	}()
}

func refresh(store *state.Store) StateRefreshMsg {
	return StateRefreshMsg{
		Snapshot: store.Snapshot(),
		Events:   store.Events(state.EventFilter{}),
		History:  store.History(),
	}
}
