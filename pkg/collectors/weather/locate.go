package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrLocationDenied is returned by locators that have no position to offer.
var ErrLocationDenied = errors.New("location denied")

// Locator is the optional host geolocation capability.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// DeniedLocator models a host without geolocation: every query is denied.
type DeniedLocator struct{}

// Locate always returns ErrLocationDenied.
func (DeniedLocator) Locate(context.Context) (Coordinates, error) {
	return Coordinates{}, ErrLocationDenied
}

// IPLocator asks an IP geolocation service (ipapi.co style JSON with
// latitude and longitude fields) for the host's approximate position.
type IPLocator struct {
	client httpGetter
	url    string
}

// DefaultIPLocateURL is the IP geolocation endpoint used when enabled.
const DefaultIPLocateURL = "https://ipapi.co/json/"

// NewIPLocator returns a locator backed by the service at url.
func NewIPLocator(client httpGetter, url string) *IPLocator {
	if url == "" {
		url = DefaultIPLocateURL
	}
	return &IPLocator{client: client, url: url}
}

// Locate queries the service once.
func (l *IPLocator) Locate(ctx context.Context) (Coordinates, error) {
	var resp struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := l.client.GetJSON(ctx, l.url, nil, &resp); err != nil {
		return Coordinates{}, fmt.Errorf("ip locate: %w", err)
	}
	if resp.Latitude == nil || resp.Longitude == nil {
		return Coordinates{}, fmt.Errorf("ip locate: %w", ErrLocationDenied)
	}
	c := Coordinates{Latitude: *resp.Latitude, Longitude: *resp.Longitude}
	if !c.Valid() {
		return Coordinates{}, fmt.Errorf("ip locate: out of range %v: %w", c, ErrLocationDenied)
	}
	return c, nil
}

// ResolveCoordinates asks loc for a position and falls back on denial,
// absence or error.
func ResolveCoordinates(ctx context.Context, loc Locator, fallback Coordinates, logger *slog.Logger) Coordinates {
	if loc == nil {
		return fallback
	}
	c, err := loc.Locate(ctx)
	if err != nil {
		if logger != nil {
			logger.Debug("using fallback coordinates", "reason", err)
		}
		return fallback
	}
	return c
}
