package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/tinyland/lab/browserhome/pkg/collectors"
)

const dailyBody = `{"daily":{"uv_index_max":[5.35],"precipitation_probability_max":[40]}}`

const currentBody = `{"current":{
	"temperature_2m":71.6,"relative_humidity_2m":58,"apparent_temperature":73.1,
	"precipitation":0,"rain":0.02,"snowfall":0,"cloud_cover":75,
	"wind_speed_10m":8.4,"wind_direction_10m":200,"wind_gusts_10m":15.2,
	"weathercode":3}}`

const reverseBody = `{"address":{"city":"Rochester","state":"New York","country":"United States"}}`

// fakeUpstream serves forecast and reverse-geocoding responses. Any of the
// bodies can be replaced with a status code to force a failure.
type fakeUpstream struct {
	dailyStatus   int
	currentStatus int
	reverseStatus int
	reverse       string

	userAgent atomic.Value
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case r.URL.Path == "/reverse":
		f.userAgent.Store(r.Header.Get("User-Agent"))
		if f.reverseStatus != 0 {
			w.WriteHeader(f.reverseStatus)
			return
		}
		body := f.reverse
		if body == "" {
			body = reverseBody
		}
		_, _ = w.Write([]byte(body))
	case q.Get("daily") != "":
		if f.dailyStatus != 0 {
			w.WriteHeader(f.dailyStatus)
			return
		}
		_, _ = w.Write([]byte(dailyBody))
	case q.Get("current") != "":
		if f.currentStatus != 0 {
			w.WriteHeader(f.currentStatus)
			return
		}
		_, _ = w.Write([]byte(currentBody))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestCollector(t *testing.T, up *fakeUpstream, loc Locator) *Collector {
	t.Helper()
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)
	client := collectors.NewHTTPClient(collectors.WithHTTPClient(srv.Client()))
	return New(Config{
		ForecastURL: srv.URL + "/forecast",
		GeocodeURL:  srv.URL + "/reverse",
		Locator:     loc,
	}, client, nil)
}

func TestDegreesToDirection(t *testing.T) {
	want := []string{
		"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
	}
	for i, dir := range want {
		deg := float64(i) * 22.5
		assert.Equal(t, dir, DegreesToDirection(deg), "degrees %v", deg)
	}
	assert.Equal(t, "N", DegreesToDirection(360))
	assert.Equal(t, "N", DegreesToDirection(355))
	assert.Equal(t, "NNE", DegreesToDirection(15))
	assert.Equal(t, "NNW", DegreesToDirection(-22.5))
}

func TestDescribe(t *testing.T) {
	for code, desc := range codeDescriptions {
		assert.Equal(t, desc, Describe(code))
	}
	assert.Equal(t, "Overcast", Describe(3))
	assert.Equal(t, "Thunderstorm heavy", Describe(99))
	for _, code := range []int{-1, 4, 44, 100, 1000} {
		assert.Equal(t, UnknownCode, Describe(code), "code %d", code)
	}
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name string
		in   Address
		want string
	}{
		{"city and state", Address{City: "Rochester", State: "New York", Country: "US"}, "Rochester, New York"},
		{"town and country", Address{Town: "Hythe", Country: "United Kingdom"}, "Hythe, United Kingdom"},
		{"village only", Address{Village: "Pittsford"}, "Pittsford"},
		{"city beats town", Address{City: "A", Town: "B"}, "A"},
		{"state only", Address{State: "Ontario", Country: "Canada"}, "Ontario"},
		{"country only", Address{Country: "Iceland"}, "Iceland"},
		{"empty", Address{}, LocationNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAddress(tt.in))
		})
	}
}

func TestTruncateLocation(t *testing.T) {
	assert.Equal(t, "Rochester, NY", TruncateLocation("Rochester, NY"))
	assert.Equal(t, "123456789012345", TruncateLocation("123456789012345"))
	assert.Equal(t, "Rochester, New...", TruncateLocation("Rochester, New York"))
	assert.Equal(t, "Zürich, Kanton...", TruncateLocation("Zürich, Kanton Zürich"))
}

func TestCollectSuccess(t *testing.T) {
	up := &fakeUpstream{}
	c := newTestCollector(t, up, nil)

	data, err := c.Collect(context.Background())
	require.NoError(t, err)
	report, ok := data.(*Report)
	require.True(t, ok, "data type %T", data)

	r := report.Reading
	assert.Equal(t, "Overcast", r.Description)
	assert.Equal(t, 71.6, r.Temperature)
	assert.Equal(t, 73.1, r.ApparentTemperature)
	assert.Equal(t, 58.0, r.Humidity)
	assert.Equal(t, 40.0, r.PrecipitationProbabilityMax)
	assert.Equal(t, 5.35, r.UVIndexMax)
	assert.Equal(t, "SSW", r.Compass)
	assert.Equal(t, "Rochester, New York", report.Location)
	assert.Equal(t, DefaultCoordinates, report.Coordinates)
	assert.Equal(t, DefaultUserAgent, up.userAgent.Load())
	assert.True(t, c.Healthy())
}

func TestCollectKeepsZeroFallback(t *testing.T) {
	srv := httptest.NewServer(&fakeUpstream{})
	t.Cleanup(srv.Close)
	client := collectors.NewHTTPClient(collectors.WithHTTPClient(srv.Client()))

	null := Coordinates{}
	c := New(Config{
		ForecastURL: srv.URL + "/forecast",
		GeocodeURL:  srv.URL + "/reverse",
		Fallback:    &null,
	}, client, nil)

	data, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Coordinates{}, data.(*Report).Coordinates)

	c = New(Config{
		ForecastURL: srv.URL + "/forecast",
		GeocodeURL:  srv.URL + "/reverse",
		Fallback:    &Coordinates{Latitude: 123, Longitude: 0},
	}, client, nil)
	data, err = c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultCoordinates, data.(*Report).Coordinates, "out-of-range fallback")
}

func TestCollectEitherRequestFailing(t *testing.T) {
	for _, up := range []*fakeUpstream{
		{dailyStatus: http.StatusInternalServerError},
		{currentStatus: http.StatusBadGateway},
	} {
		c := newTestCollector(t, up, nil)
		data, err := c.Collect(context.Background())
		assert.Nil(t, data)
		assert.True(t, errors.Is(err, ErrFetchFailed), "err = %v", err)
		assert.False(t, c.Healthy())
	}
}

func TestCollectGeocodeFailureDegrades(t *testing.T) {
	c := newTestCollector(t, &fakeUpstream{reverseStatus: http.StatusTooManyRequests}, nil)

	data, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LocationUnavailable, data.(*Report).Location)
}

func TestCollectGeocodeNoAddress(t *testing.T) {
	c := newTestCollector(t, &fakeUpstream{reverse: `{"error":"Unable to geocode"}`}, nil)

	data, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, LocationNotFound, data.(*Report).Location)
}

type staticLocator struct {
	c   Coordinates
	err error
}

func (s staticLocator) Locate(context.Context) (Coordinates, error) { return s.c, s.err }

func TestResolveCoordinates(t *testing.T) {
	ctx := context.Background()
	paris := Coordinates{Latitude: 48.8566, Longitude: 2.3522}

	assert.Equal(t, DefaultCoordinates, ResolveCoordinates(ctx, nil, DefaultCoordinates, nil))
	assert.Equal(t, DefaultCoordinates, ResolveCoordinates(ctx, DeniedLocator{}, DefaultCoordinates, nil))
	assert.Equal(t, paris, ResolveCoordinates(ctx, staticLocator{c: paris}, DefaultCoordinates, nil))
	assert.Equal(t, DefaultCoordinates, ResolveCoordinates(ctx, staticLocator{err: errors.New("x")}, DefaultCoordinates, nil))
}

func TestCollectUsesLocator(t *testing.T) {
	paris := Coordinates{Latitude: 48.8566, Longitude: 2.3522}
	c := newTestCollector(t, &fakeUpstream{}, staticLocator{c: paris})

	data, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, paris, data.(*Report).Coordinates)
}

func TestIPLocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			_, _ = w.Write([]byte(`{"error":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"latitude":43.1566,"longitude":-77.6088}`))
	}))
	defer srv.Close()
	client := collectors.NewHTTPClient(collectors.WithHTTPClient(srv.Client()))

	got, err := NewIPLocator(client, srv.URL+"/json").Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Latitude: 43.1566, Longitude: -77.6088}, got)

	_, err = NewIPLocator(client, srv.URL+"/empty").Locate(context.Background())
	assert.ErrorIs(t, err, ErrLocationDenied)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "72.3", FormatNumber(72.3))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "1000000", FormatNumber(1e6))
	assert.Equal(t, "-77.656912", FormatNumber(-77.656912))
}
