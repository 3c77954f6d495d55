package collectors

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Registry manages a set of named collectors. It is safe for concurrent use:
// fetch commands call RunOnce from their own goroutines while the status
// endpoint reads AllStatus.
type Registry struct {
	mu         sync.RWMutex
	collectors map[string]Collector
	statuses   map[string]*CollectorStatus
	now        func() time.Time
}

// NewRegistry returns an empty registry ready for collector registration.
func NewRegistry() *Registry {
	return &Registry{
		collectors: make(map[string]Collector),
		statuses:   make(map[string]*CollectorStatus),
		now:        time.Now,
	}
}

// Register adds a collector to the registry. It returns an error if a
// collector with the same name is already registered.
func (r *Registry) Register(c Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.collectors[name]; exists {
		return fmt.Errorf("collector %q already registered", name)
	}

	r.collectors[name] = c
	r.statuses[name] = &CollectorStatus{
		Name:    name,
		Healthy: true,
	}
	return nil
}

// Unregister removes the named collector and its status. It reports
// whether the collector was registered.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.collectors[name]; !ok {
		return false
	}
	delete(r.collectors, name)
	delete(r.statuses, name)
	return true
}

// Get returns the collector with the given name, or false if not found.
func (r *Registry) Get(name string) (Collector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collectors[name]
	return c, ok
}

// List returns a sorted slice of all registered collector names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collectors))
	for name := range r.collectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status returns a copy of the runtime status for the named collector, or
// false if the collector is not registered.
func (r *Registry) Status(name string) (CollectorStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.statuses[name]
	if !ok {
		return CollectorStatus{}, false
	}
	return *s, true
}

// AllStatus returns a copy of all collector statuses, sorted by name.
func (r *Registry) AllStatus() []CollectorStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]CollectorStatus, 0, len(r.statuses))
	for _, s := range r.statuses {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// RunOnce performs a single collection cycle for the named collector and
// records the outcome. The collector's data is returned even when err is
// non-nil so callers can render partial results.
func (r *Registry) RunOnce(ctx context.Context, name string) (interface{}, error) {
	c, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("collector %q not registered", name)
	}

	start := r.now()
	data, err := c.Collect(ctx)
	r.record(name, start, r.now().Sub(start), err)
	return data, err
}

// Record stores the outcome of a collection cycle that ran outside
// RunOnce. Unknown names are ignored.
func (r *Registry) Record(name string, err error, latency time.Duration) {
	r.record(name, r.now().Add(-latency), latency, err)
}

func (r *Registry) record(name string, start time.Time, latency time.Duration, err error) {
	r.updateStatus(name, func(s *CollectorStatus) {
		s.LastRun = start
		s.LastLatency = latency
		s.RunCount++
		if err != nil {
			s.ErrorCount++
			s.Healthy = false
			s.LastError = err.Error()
			return
		}
		s.Healthy = true
		s.LastError = ""
	})
	recordCollect(name, latency, err)
}

// updateStatus updates the status entry for the named collector. Caller must
// NOT hold the lock; this method acquires it.
func (r *Registry) updateStatus(name string, fn func(s *CollectorStatus)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.statuses[name]; ok {
		fn(s)
	}
}
