package collectors

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MockCollector implements Collector for testing. All fields are
// configurable and it tracks how many times Collect has been called.
type MockCollector struct {
	name     string
	interval time.Duration

	mu        sync.RWMutex
	data      any
	err       error
	healthy   bool
	callCount atomic.Int64

	// CollectFunc, if set, overrides the default Collect behavior.
	CollectFunc func(ctx context.Context) (any, error)
}

// MockOption configures a MockCollector.
type MockOption func(*MockCollector)

// WithData sets the data returned by Collect.
func WithData(data any) MockOption {
	return func(m *MockCollector) { m.data = data }
}

// WithError sets the error returned by Collect.
func WithError(err error) MockOption {
	return func(m *MockCollector) { m.err = err }
}

// WithCollectFunc sets a custom function for Collect.
func WithCollectFunc(fn func(ctx context.Context) (any, error)) MockOption {
	return func(m *MockCollector) { m.CollectFunc = fn }
}

// NewMockCollector creates a mock collector with the given name and
// interval.
func NewMockCollector(name string, interval time.Duration, opts ...MockOption) *MockCollector {
	m := &MockCollector{name: name, interval: interval, healthy: true}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockCollector) Name() string            { return m.name }
func (m *MockCollector) Interval() time.Duration { return m.interval }

func (m *MockCollector) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy
}

// Collect increments the call counter and returns the configured data and
// error, or delegates to CollectFunc if set.
func (m *MockCollector) Collect(ctx context.Context) (any, error) {
	m.callCount.Add(1)
	if m.CollectFunc != nil {
		return m.CollectFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data, m.err
}

// CallCount returns how many times Collect has been called.
func (m *MockCollector) CallCount() int64 {
	return m.callCount.Load()
}
