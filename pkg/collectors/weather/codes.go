package weather

import "math"

// UnknownCode is the description for codes missing from the table.
const UnknownCode = "Unknown weather code"

// codeDescriptions maps WMO weather interpretation codes, as reported by
// Open-Meteo, to display text.
var codeDescriptions = map[int]string{
	0: "Clear sky", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Fog", 48: "Rime fog",
	51: "Drizzle light", 53: "Drizzle moderate", 55: "Drizzle dense",
	56: "Freezing drizzle light", 57: "Freezing drizzle dense",
	61: "Rain slight", 63: "Rain moderate", 65: "Rain heavy",
	66: "Freezing rain light", 67: "Freezing rain heavy",
	71: "Snow fall light", 73: "Snow fall moderate", 75: "Snow fall heavy",
	77: "Snow grains",
	80: "Showers slight", 81: "Showers moderate", 82: "Showers heavy",
	85: "Snow showers slight", 86: "Snow showers heavy",
	95: "Thunderstorm slight", 96: "Thunderstorm moderate", 99: "Thunderstorm heavy",
}

// Describe returns the display text for a weather code.
func Describe(code int) string {
	if d, ok := codeDescriptions[code]; ok {
		return d
	}
	return UnknownCode
}

// compassPoints is ordered clockwise from north in 22.5° steps.
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// DegreesToDirection converts a wind bearing to one of 16 compass points.
// 360° wraps to N; negative bearings are measured counter-clockwise.
func DegreesToDirection(degrees float64) string {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return compassPoints[0]
	}
	idx := int(math.Round(degrees/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassPoints[idx]
}
