package etl

import "strings"

// countryAliases normalizes the short country codes used in the city list
// to the names the happiness data uses, so the report join matches.
// Unmapped values pass through unchanged.
var countryAliases = map[string]string{
	"UK":     "United Kingdom",
	"US":     "United States",
	"UAE":    "United Arab Emirates",
	"Turkey": "Turkiye",
}

// DisplayCountry extracts the country part of a "City,Country" string and
// normalizes it through the alias table.
func DisplayCountry(city string) string {
	raw := city
	if i := strings.LastIndex(city, ","); i >= 0 {
		raw = city[i+1:]
	}
	raw = strings.TrimSpace(raw)

	if name, ok := countryAliases[raw]; ok {
		return name
	}
	return raw
}
