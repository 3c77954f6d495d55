package weather

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
)

// Reverse geocoding defaults. Nominatim's usage policy requires every
// client to identify itself.
const (
	DefaultGeocodeURL = "https://nominatim.openstreetmap.org/reverse"
	DefaultUserAgent  = "BrowserHome Weather Widget"
)

// Place names shown when the lookup cannot produce one.
const (
	LocationNotFound    = "Location not found"
	LocationUnavailable = "Location unavailable"
)

// maxLocationLen is the longest name displayed untruncated.
const maxLocationLen = 15

// Address is the subset of a reverse-geocoding address we display.
type Address struct {
	City    string `json:"city"`
	Town    string `json:"town"`
	Village string `json:"village"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type reverseResponse struct {
	Address *Address `json:"address"`
}

// Geocoder resolves coordinates to a display name.
type Geocoder struct {
	client    httpGetter
	baseURL   string
	userAgent string
	logger    *slog.Logger
}

// httpGetter is the part of collectors.HTTPClient the geocoder needs.
type httpGetter interface {
	GetJSON(ctx context.Context, url string, header http.Header, out interface{}) error
}

// NewGeocoder returns a geocoder for baseURL. Empty values use the
// Nominatim defaults.
func NewGeocoder(client httpGetter, baseURL, userAgent string, logger *slog.Logger) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodeURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Geocoder{client: client, baseURL: baseURL, userAgent: userAgent, logger: logger}
}

// LocationName returns "City, State" style text for c. It never fails:
// lookup errors yield LocationUnavailable.
func (g *Geocoder) LocationName(ctx context.Context, c Coordinates) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", FormatNumber(c.Latitude))
	q.Set("lon", FormatNumber(c.Longitude))
	q.Set("zoom", "10")
	q.Set("addressdetails", "1")

	h := http.Header{}
	h.Set("User-Agent", g.userAgent)

	var resp reverseResponse
	if err := g.client.GetJSON(ctx, g.baseURL+"?"+q.Encode(), h, &resp); err != nil {
		g.logger.Warn("reverse geocoding failed", "error", err)
		return LocationUnavailable
	}
	if resp.Address == nil {
		return LocationNotFound
	}
	return FormatAddress(*resp.Address)
}

// FormatAddress picks the most specific available name: city (or town, or
// village) with state, else with country, else the city alone, then the
// state, then the country.
func FormatAddress(a Address) string {
	city := firstNonEmpty(a.City, a.Town, a.Village)
	switch {
	case city != "" && a.State != "":
		return city + ", " + a.State
	case city != "" && a.Country != "":
		return city + ", " + a.Country
	case city != "":
		return city
	case a.State != "":
		return a.State
	case a.Country != "":
		return a.Country
	}
	return LocationNotFound
}

// TruncateLocation shortens names longer than 15 characters to their first
// 14 followed by "...".
func TruncateLocation(name string) string {
	r := []rune(name)
	if len(r) <= maxLocationLen {
		return name
	}
	return string(r[:maxLocationLen-1]) + "..."
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
