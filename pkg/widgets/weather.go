package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/weather"
	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

// Weather slot ids.
const (
	WeatherContainerID    = "weatherContainer"
	WeatherLocationID     = "weatherLocation"
	WeatherCodeID         = "weatherCode"
	WeatherTempID         = "weatherTemp"
	WeatherFeelsLikeID    = "weatherFeelsLike"
	WeatherHumidityID     = "weatherHumidity"
	WeatherPrecipProbID   = "weatherprecipitationProbability"
	WeatherRainfallID     = "weatherRainfall"
	WeatherSnowfallID     = "weatherSnowfall"
	WeatherCloudsID       = "weatherClouds"
	WeatherWindSpeedID    = "weatherWindSpeed"
	WeatherUVIndexID      = "weatherUVIndex"
	WeatherUnavailableMsg = "Unable to load weather data"
)

// weatherStat describes one slot in the stats groups.
type weatherStat struct {
	id    string
	class string
	label string
	icon  string
}

var precipitationStats = []weatherStat{
	{WeatherPrecipProbID, "precipitationProbability", "Hourly Precipitation Probability", "precipitation.png"},
	{WeatherRainfallID, "rain", "Hourly Rainfall", "rain.png"},
	{WeatherSnowfallID, "snowfall", "Hourly Snowfall", "snow.png"},
}

var windStats = []weatherStat{
	{WeatherCloudsID, "clouds", "Cloud Coverage %", "clouds.png"},
	{WeatherWindSpeedID, "windSpeed", "Wind Speed", "wind.png"},
	{WeatherUVIndexID, "uvIndex", "Hourly UV Index", "uvindex.png"},
}

// WeatherWidget shows current conditions for the resolved location.
type WeatherWidget struct {
	base
}

// NewWeatherWidget creates a weather widget loading from the "weather"
// collector through f.
func NewWeatherWidget(f Fetcher, opts ...Option) *WeatherWidget {
	return &WeatherWidget{base: newBase(weather.Name, "Weather", f, opts)}
}

// Build creates the weather skeleton. Every slot the renderer writes exists
// before any data does.
func (w *WeatherWidget) Build(doc dom.Document) (dom.Node, error) {
	root := element(doc, "div",
		"id", WeatherContainerID, "class", "widget",
		"role", "region", "aria-label", "Weather information")

	location := element(doc, "div", "id", WeatherLocationID, "aria-live", "polite")
	code := element(doc, "div", "id", WeatherCodeID,
		"title", "Current Weather", "role", "status", "aria-live", "polite")

	// Temperatures: main reading plus feels-like and humidity.
	temps := element(doc, "div", "class", "weatherTemperatures")
	temp := element(doc, "div", "id", WeatherTempID,
		"title", "Current Temperature", "role", "status", "aria-live", "polite")
	doc.AppendChild(temp, icon(doc, "images/thermometer.png", "Temperature icon", "tempIcon"))

	feels := element(doc, "div", "id", WeatherFeelsLikeID,
		"title", "Current 'Feels Like' Temperature", "aria-label", "Feels like temperature")
	doc.SetText(feels, "~")

	humidity := element(doc, "div", "id", WeatherHumidityID,
		"title", "Current Humidity", "aria-label", "Humidity percentage")
	doc.AppendChild(humidity, icon(doc, "images/humidity.png", "Humidity icon", "SmallStatsIcon"))

	small := element(doc, "div", "class", "weatherSmallStats")
	doc.AppendChild(small, feels)
	doc.AppendChild(small, humidity)
	doc.AppendChild(temps, temp)
	doc.AppendChild(temps, small)

	stats := element(doc, "div", "class", "weatherStats")
	doc.AppendChild(stats, statGroup(doc, "weatherPrecipitations", "Precipitation information", precipitationStats))
	doc.AppendChild(stats, statGroup(doc, "weatherWinds", "Wind and atmospheric information", windStats))

	doc.AppendChild(root, location)
	doc.AppendChild(root, code)
	doc.AppendChild(root, temps)
	doc.AppendChild(root, stats)

	w.mounted(doc)
	return root, nil
}

func statGroup(doc dom.Document, id, label string, stats []weatherStat) dom.Node {
	group := element(doc, "div", "id", id, "role", "group", "aria-label", label)
	for _, s := range stats {
		slot := element(doc, "div", "id", s.id,
			"class", dom.ContentClass+" "+s.class, "title", s.label, "aria-label", s.label)
		doc.AppendChild(slot, icon(doc, "images/"+s.icon, s.label, ""))
		doc.AppendChild(group, slot)
	}
	return group
}

func icon(doc dom.Document, src, alt, id string) dom.Node {
	img := element(doc, "img", "src", src, "alt", alt, "class", "icon", "loading", "lazy")
	if id != "" {
		doc.SetAttribute(img, "id", id)
	}
	return img
}

// Update renders a weather report. A failed fetch replaces only the weather
// code text; every other slot keeps whatever it showed before.
func (w *WeatherWidget) Update(msg tea.Msg) (tea.Cmd, error) {
	ev, ok := w.ownUpdate(msg)
	if !ok {
		return nil, nil
	}

	if ev.Err != nil {
		w.logger.Warn("weather unavailable", "error", ev.Err)
		if code, found := w.doc.ElementByID(WeatherCodeID); found {
			w.doc.SetText(code, WeatherUnavailableMsg)
		}
		w.settle(false)
		return nil, nil
	}

	report, ok := ev.Data.(*weather.Report)
	if !ok || report == nil || report.Reading == nil {
		w.settle(false)
		return nil, fmt.Errorf("weather: unexpected data %T", ev.Data)
	}
	if err := w.render(report); err != nil {
		w.settle(false)
		return nil, err
	}
	w.settle(true)
	return nil, nil
}

func (w *WeatherWidget) render(report *weather.Report) error {
	r := report.Reading
	doc := w.doc

	code, ok := doc.ElementByID(WeatherCodeID)
	if !ok {
		return fmt.Errorf("render %q: %w", WeatherCodeID, dom.ErrSlotNotFound)
	}
	doc.SetText(code, r.Description)

	num := weather.FormatNumber
	metrics := []struct {
		slot, value, prefix, suffix, class string
	}{
		{WeatherTempID, num(r.Temperature), "", "˚F", "weatherData temperature"},
		{WeatherFeelsLikeID, num(r.ApparentTemperature), "~", "˚", "weatherData apparentTemperature"},
		{WeatherHumidityID, num(r.Humidity), "", "%", "weatherData humidity"},
		{WeatherPrecipProbID, num(r.PrecipitationProbabilityMax), "", "%", "weatherData precipitationProbability"},
		{WeatherRainfallID, num(r.Rain), "", " in", "weatherData rain"},
		{WeatherSnowfallID, num(r.Snowfall), "", " in", "weatherData snowfall"},
		{WeatherCloudsID, num(r.CloudCover), "", "%", "weatherData clouds"},
		{WeatherWindSpeedID, num(r.WindSpeed) + " " + r.Compass, "", "", "weatherData windSpeed"},
		{WeatherUVIndexID, num(r.UVIndexMax), "", "", "weatherData UVIndex"},
	}
	for _, m := range metrics {
		if err := dom.UpdateMetric(doc, m.slot, m.value, m.prefix, m.suffix, m.class); err != nil {
			return err
		}
	}

	location, ok := doc.ElementByID(WeatherLocationID)
	if !ok {
		return fmt.Errorf("render %q: %w", WeatherLocationID, dom.ErrSlotNotFound)
	}
	doc.SetText(location, weather.TruncateLocation(report.Location))
	return nil
}
