// Package collectors defines the data-provider side of browserhome widgets.
// Each provider (weather, crypto, links) implements the Collector interface
// and is registered with a Registry, which runs single collection cycles on
// behalf of the app and tracks per-provider status for the status endpoint.
package collectors

import (
	"context"
	"time"
)

// Collector is the interface all data sources implement. Implementations live
// in sub-packages (e.g., pkg/collectors/weather) and are registered with the
// Registry at startup.
type Collector interface {
	// Name returns a unique identifier for this collector (e.g., "weather").
	// Widgets use the same identifier, so it doubles as the routing key for
	// fetch results.
	Name() string

	// Collect performs one collection cycle and returns the data. The returned
	// value is opaque here; widgets type-assert based on the collector name.
	// A cycle is a single attempt: collectors never retry.
	Collect(ctx context.Context) (interface{}, error)

	// Interval returns how often this collector should be refreshed. Zero
	// means once per page load plus manual refreshes.
	Interval() time.Duration

	// Healthy returns whether the collector is functioning. A collector that
	// has never run or whose last run succeeded is considered healthy.
	Healthy() bool
}

// CollectorStatus tracks the runtime state of a single collector. The
// registry updates this after every collection cycle.
type CollectorStatus struct {
	Name        string        `json:"name"`
	Healthy     bool          `json:"healthy"`
	LastRun     time.Time     `json:"last_run"`
	LastError   string        `json:"last_error,omitempty"`
	RunCount    int64         `json:"run_count"`
	ErrorCount  int64         `json:"error_count"`
	LastLatency time.Duration `json:"last_latency"`
}
