package weather

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/browserhome/pkg/collectors"
)

// Name is the collector and widget identifier.
const Name = "weather"

// Config holds the configuration for the weather collector.
type Config struct {
	ForecastURL string
	GeocodeURL  string
	UserAgent   string
	Timezone    string

	// Fallback is used whenever Locator cannot answer. Nil means
	// DefaultCoordinates; (0,0) is a real place and is kept as given.
	Fallback *Coordinates

	// Locator is the optional geolocation capability. Nil means "not
	// supported" and always uses Fallback.
	Locator Locator

	// Interval is the refresh period. Zero refreshes only on demand.
	Interval time.Duration
}

// Report is the data returned by a single Collect call.
type Report struct {
	Coordinates Coordinates `json:"coordinates"`
	Reading     *Reading    `json:"reading"`
	Location    string      `json:"location"`
}

// Collector gathers a weather report for the resolved location.
type Collector struct {
	provider *Provider
	geocoder *Geocoder
	locator  Locator
	fallback Coordinates
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	healthy bool
}

// New creates a weather collector sharing client with the other collectors.
func New(cfg Config, client *collectors.HTTPClient, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	fallback := DefaultCoordinates
	if cfg.Fallback != nil && cfg.Fallback.Valid() {
		fallback = *cfg.Fallback
	}
	return &Collector{
		provider: NewProvider(client, cfg.ForecastURL, cfg.Timezone),
		geocoder: NewGeocoder(client, cfg.GeocodeURL, cfg.UserAgent, logger),
		locator:  cfg.Locator,
		fallback: fallback,
		interval: cfg.Interval,
		logger:   logger.With("collector", Name),
		healthy:  true,
	}
}

// Name returns the collector identifier.
func (c *Collector) Name() string { return Name }

// Interval returns how often this collector should run.
func (c *Collector) Interval() time.Duration { return c.interval }

// Healthy returns whether the last collection succeeded.
func (c *Collector) Healthy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.healthy
}

func (c *Collector) setHealthy(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.healthy = v
}

// Collect resolves coordinates, then fetches the forecast and the place
// name concurrently. A failed place lookup degrades to a placeholder name;
// a failed forecast fails the whole cycle.
func (c *Collector) Collect(ctx context.Context) (interface{}, error) {
	coords := ResolveCoordinates(ctx, c.locator, c.fallback, c.logger)

	location := make(chan string, 1)
	go func() {
		location <- c.geocoder.LocationName(ctx, coords)
	}()

	reading, err := c.provider.Fetch(ctx, coords)
	if err != nil {
		c.setHealthy(false)
		return nil, err
	}

	name := <-location
	c.setHealthy(true)
	return &Report{
		Coordinates: coords,
		Reading:     reading,
		Location:    name,
	}, nil
}
