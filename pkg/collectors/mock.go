package collectors

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MockCollector implements Collector for testing widgets and the app loop
// without network access. It tracks how many times Collect has been called.
type MockCollector struct {
	name     string
	interval time.Duration

	mu      sync.RWMutex
	data    interface{}
	err     error
	healthy bool

	calls atomic.Int64

	// CollectFunc, if set, overrides the default Collect behavior, e.g. to
	// block until a test releases it or to return different data per call.
	CollectFunc func(ctx context.Context) (interface{}, error)
}

// MockOption configures a MockCollector.
type MockOption func(*MockCollector)

// WithData sets the data returned by Collect.
func WithData(data interface{}) MockOption {
	return func(m *MockCollector) { m.data = data }
}

// WithError sets the error returned by Collect.
func WithError(err error) MockOption {
	return func(m *MockCollector) { m.err = err }
}

// WithCollectFunc sets a custom function for Collect.
func WithCollectFunc(fn func(ctx context.Context) (interface{}, error)) MockOption {
	return func(m *MockCollector) { m.CollectFunc = fn }
}

// NewMockCollector creates a mock collector with the given name, refresh
// interval and options.
func NewMockCollector(name string, interval time.Duration, opts ...MockOption) *MockCollector {
	m := &MockCollector{
		name:     name,
		interval: interval,
		healthy:  true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the collector name.
func (m *MockCollector) Name() string { return m.name }

// Interval returns the configured refresh interval.
func (m *MockCollector) Interval() time.Duration { return m.interval }

// Healthy reports whether the last Collect returned no error.
func (m *MockCollector) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy
}

// Set replaces the data and error returned by later Collect calls.
func (m *MockCollector) Set(data interface{}, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data, m.err = data, err
}

// Collect returns the configured data and error, or delegates to
// CollectFunc if set.
func (m *MockCollector) Collect(ctx context.Context) (interface{}, error) {
	m.calls.Add(1)

	var (
		data interface{}
		err  error
	)
	if m.CollectFunc != nil {
		data, err = m.CollectFunc(ctx)
	} else {
		m.mu.RLock()
		data, err = m.data, m.err
		m.mu.RUnlock()
	}

	m.mu.Lock()
	m.healthy = err == nil
	m.mu.Unlock()
	return data, err
}

// CallCount returns how many times Collect has been called.
func (m *MockCollector) CallCount() int64 {
	return m.calls.Load()
}
