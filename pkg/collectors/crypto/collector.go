package crypto

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/browserhome/pkg/collectors"
)

// Name is the collector and widget identifier.
const Name = "crypto"

// Config holds the configuration for the crypto collector.
type Config struct {
	TickerURL string
	IDs       []string
	Interval  time.Duration
}

// Collector gathers tickers for the configured watch list.
type Collector struct {
	provider *Provider
	ids      []string
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	healthy bool
}

// New creates a crypto collector sharing client with the other collectors.
func New(cfg Config, client *collectors.HTTPClient, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	ids := cfg.IDs
	if len(ids) == 0 {
		ids = DefaultIDs
	}
	return &Collector{
		provider: NewProvider(client, cfg.TickerURL),
		ids:      append([]string(nil), ids...),
		interval: cfg.Interval,
		logger:   logger.With("collector", Name),
		healthy:  true,
	}
}

// Name returns the collector identifier.
func (c *Collector) Name() string { return Name }

// Interval returns how often this collector should run.
func (c *Collector) Interval() time.Duration { return c.interval }

// IDs returns the watch list in display order.
func (c *Collector) IDs() []string { return append([]string(nil), c.ids...) }

// Healthy returns whether at least one coin loaded on the last run.
func (c *Collector) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.healthy
}

// Collect fetches the whole watch list. Individual failures are logged and
// kept in the returned []Result; only when every id fails does Collect
// return an *AllFailedError.
func (c *Collector) Collect(ctx context.Context) (interface{}, error) {
	results := c.provider.FetchAll(ctx, c.ids)

	var first error
	ok := 0
	for _, r := range results {
		if r.OK() {
			ok++
			continue
		}
		c.logger.Warn("failed to load ticker", "id", r.ID, "error", r.Err)
		if first == nil {
			first = r.Err
		}
	}

	c.mu.Lock()
	c.healthy = ok > 0
	c.mu.Unlock()

	if ok == 0 {
		return nil, &AllFailedError{First: first}
	}
	return results, nil
}
