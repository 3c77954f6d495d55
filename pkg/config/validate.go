package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/weather"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports every problem in cfg at once. Disabled sections are not
// checked.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalid}, args...)...))
	}

	if _, err := ParseLevel(c.General.LogLevel); err != nil {
		bad("general.log_level: %v", err)
	}
	if c.General.RequestsPerSecond < 0 {
		bad("general.requests_per_second must not be negative")
	}
	if c.Server.RateLimit < 0 {
		bad("server.rate_limit must not be negative")
	}

	coords := weather.Coordinates{Latitude: c.Location.Latitude, Longitude: c.Location.Longitude}
	if !coords.Valid() {
		bad("location: coordinates %v,%v out of range", c.Location.Latitude, c.Location.Longitude)
	}
	if c.Location.IPLocate {
		if err := checkURL(c.Location.IPLocateURL); err != nil {
			bad("location.ip_locate_url: %v", err)
		}
	}

	if c.Weather.Enabled {
		if err := checkURL(c.Weather.ForecastURL); err != nil {
			bad("weather.forecast_url: %v", err)
		}
		if err := checkURL(c.Weather.GeocodeURL); err != nil {
			bad("weather.geocode_url: %v", err)
		}
	}

	if c.Crypto.Enabled {
		if err := checkURL(c.Crypto.TickerURL); err != nil {
			bad("crypto.ticker_url: %v", err)
		}
		if len(c.Crypto.IDs) == 0 {
			bad("crypto.ids must not be empty")
		}
		for i, id := range c.Crypto.IDs {
			if strings.TrimSpace(id) == "" {
				bad("crypto.ids[%d] is empty", i)
			}
		}
	}

	if c.Links.Enabled && c.Links.Path == "" {
		bad("links.path must be set")
	}

	return errors.Join(errs...)
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

// ParseLevel maps a config log level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
