// Package weather provides the weather data provider: current conditions and
// daily aggregates from an Open-Meteo style forecast API, reverse geocoding
// for a display name, and the lookup tables that turn raw values into text.
package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// DefaultForecastURL is the Open-Meteo forecast endpoint.
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// DefaultTimezone is the zone the forecast API aggregates daily values in.
const DefaultTimezone = "America/New_York"

// ErrFetchFailed is returned when either of the two forecast requests fails.
var ErrFetchFailed = errors.New("fetch failed")

// Coordinates is a resolved position for one fetch cycle.
type Coordinates struct {
	Latitude  float64 `json:"latitude" toml:"latitude"`
	Longitude float64 `json:"longitude" toml:"longitude"`
}

// DefaultCoordinates is used when no location capability answers (RIT campus).
var DefaultCoordinates = Coordinates{Latitude: 43.085556, Longitude: -77.656912}

// Valid reports whether c lies on the globe.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180 &&
		!math.IsNaN(c.Latitude) && !math.IsNaN(c.Longitude)
}

// Reading is one weather snapshot. It is never mutated after Fetch returns.
type Reading struct {
	Code        int    `json:"code"`
	Description string `json:"description"`

	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Humidity            float64 `json:"humidity"`

	Precipitation               float64 `json:"precipitation"`
	PrecipitationProbabilityMax float64 `json:"precipitation_probability_max"`
	Rain                        float64 `json:"rain"`
	Snowfall                    float64 `json:"snowfall"`

	CloudCover    float64 `json:"cloud_cover"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	WindGusts     float64 `json:"wind_gusts"`
	Compass       string  `json:"compass"`
	UVIndexMax    float64 `json:"uv_index_max"`
}

type dailyResponse struct {
	Daily struct {
		UVIndexMax                  []float64 `json:"uv_index_max"`
		PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

type currentResponse struct {
	Current struct {
		Temperature         float64 `json:"temperature_2m"`
		Humidity            float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		Precipitation       float64 `json:"precipitation"`
		Rain                float64 `json:"rain"`
		Snowfall            float64 `json:"snowfall"`
		CloudCover          float64 `json:"cloud_cover"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		WindDirection       float64 `json:"wind_direction_10m"`
		WindGusts           float64 `json:"wind_gusts_10m"`
		WeatherCode         int     `json:"weathercode"`
	} `json:"current"`
}

// Provider fetches forecasts.
type Provider struct {
	client   httpGetter
	baseURL  string
	timezone string
}

// NewProvider returns a provider for the forecast endpoint at baseURL.
// Empty values fall back to DefaultForecastURL and DefaultTimezone.
func NewProvider(client httpGetter, baseURL, timezone string) *Provider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	if timezone == "" {
		timezone = DefaultTimezone
	}
	return &Provider{client: client, baseURL: baseURL, timezone: timezone}
}

// Fetch issues the daily and current requests in parallel. Both must
// succeed; otherwise the result wraps ErrFetchFailed.
func (p *Provider) Fetch(ctx context.Context, c Coordinates) (*Reading, error) {
	var (
		daily   dailyResponse
		current currentResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.client.GetJSON(gctx, p.dailyURL(c), nil, &daily)
	})
	g.Go(func() error {
		return p.client.GetJSON(gctx, p.currentURL(c), nil, &current)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if len(daily.Daily.UVIndexMax) == 0 || len(daily.Daily.PrecipitationProbabilityMax) == 0 {
		return nil, fmt.Errorf("%w: daily aggregates missing", ErrFetchFailed)
	}

	cur := current.Current
	return &Reading{
		Code:                        cur.WeatherCode,
		Description:                 Describe(cur.WeatherCode),
		Temperature:                 cur.Temperature,
		ApparentTemperature:         cur.ApparentTemperature,
		Humidity:                    cur.Humidity,
		Precipitation:               cur.Precipitation,
		PrecipitationProbabilityMax: daily.Daily.PrecipitationProbabilityMax[0],
		Rain:                        cur.Rain,
		Snowfall:                    cur.Snowfall,
		CloudCover:                  cur.CloudCover,
		WindSpeed:                   cur.WindSpeed,
		WindDirection:               cur.WindDirection,
		WindGusts:                   cur.WindGusts,
		Compass:                     DegreesToDirection(cur.WindDirection),
		UVIndexMax:                  daily.Daily.UVIndexMax[0],
	}, nil
}

// dailyURL asks for the day's maximum UV index and precipitation probability.
func (p *Provider) dailyURL(c Coordinates) string {
	q := p.baseQuery(c)
	q.Set("hourly", "weather_code")
	q.Set("daily", "uv_index_max,precipitation_probability_max")
	return p.baseURL + "?" + q.Encode()
}

// currentURL asks for the instantaneous conditions.
func (p *Provider) currentURL(c Coordinates) string {
	q := p.baseQuery(c)
	q.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,rain,snowfall,cloud_cover,wind_speed_10m,wind_direction_10m,wind_gusts_10m,weathercode")
	q.Set("timeformat", "unixtime")
	return p.baseURL + "?" + q.Encode()
}

func (p *Provider) baseQuery(c Coordinates) url.Values {
	q := url.Values{}
	q.Set("latitude", FormatNumber(c.Latitude))
	q.Set("longitude", FormatNumber(c.Longitude))
	q.Set("temperature_unit", "fahrenheit")
	q.Set("wind_speed_unit", "mph")
	q.Set("precipitation_unit", "inch")
	q.Set("timezone", p.timezone)
	q.Set("forecast_days", "1")
	return q
}

// FormatNumber renders v in its shortest decimal form without exponent,
// e.g. 72.3, 0, -77.656912.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
