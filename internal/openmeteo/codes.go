package openmeteo

import (
	"fmt"
	"strings"
)

// descriptions maps WMO weather codes to human-readable text. The table is
// deliberately partial; unmapped codes fall through to a generic string.
var descriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	61: "Rain",
	71: "Snow",
	80: "Rain showers",
	95: "Thunderstorm",
}

// Describe returns the human description for a weather code, or
// "Weather code N" for codes outside the table.
func Describe(code int) string {
	if desc, ok := descriptions[code]; ok {
		return desc
	}
	return fmt.Sprintf("Weather code %d", code)
}

// Categorize derives the coarse condition stored as weather_main. Codes 1-3
// are the cloudy variants and collapse to "Clouds"; everything else takes
// the first word of its description.
func Categorize(code int) string {
	if code >= 1 && code <= 3 {
		return "Clouds"
	}
	desc := Describe(code)
	if i := strings.IndexByte(desc, ' '); i > 0 {
		return desc[:i]
	}
	return desc
}
