package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/declerke/happiness-warehouse/internal/warehouse"
)

// buildInsights renders the text analysis over the joined rows. Sections
// with no applicable data are omitted rather than emitted empty.
func buildInsights(rows []warehouse.ReportRow, s Summary, focusCountry string) string {
	var b strings.Builder

	b.WriteString("Overall statistics:\n")
	fmt.Fprintf(&b, "  - Average happiness: %.2f (±%.2f)\n", s.MeanHappiness, s.StdHappiness)
	fmt.Fprintf(&b, "  - Average temperature: %.1f°C (±%.1f°C)\n", s.MeanTemperature, s.StdTemperature)

	coldest, warmest := rows[0], rows[0]
	happiest, saddest := rows[0], rows[0]
	for _, r := range rows {
		if r.TemperatureC < coldest.TemperatureC {
			coldest = r
		}
		if r.TemperatureC > warmest.TemperatureC {
			warmest = r
		}
		if r.HappinessScore > happiest.HappinessScore {
			happiest = r
		}
		if r.HappinessScore < saddest.HappinessScore {
			saddest = r
		}
	}
	fmt.Fprintf(&b, "  - Happiness range: %.2f to %.2f\n", saddest.HappinessScore, happiest.HappinessScore)
	fmt.Fprintf(&b, "  - Temperature range: %.1f°C to %.1f°C\n", coldest.TemperatureC, warmest.TemperatureC)

	b.WriteString("\nTemperature extremes:\n")
	fmt.Fprintf(&b, "  - Coldest: %s (%.1f°C, happiness %.2f)\n", coldest.CityName, coldest.TemperatureC, coldest.HappinessScore)
	fmt.Fprintf(&b, "  - Warmest: %s (%.1f°C, happiness %.2f)\n", warmest.CityName, warmest.TemperatureC, warmest.HappinessScore)

	b.WriteString("\nHappiness extremes:\n")
	fmt.Fprintf(&b, "  - Happiest: %s, %s (score %.2f, %.1f°C)\n", happiest.CityName, happiest.CountryName, happiest.HappinessScore, happiest.TemperatureC)
	fmt.Fprintf(&b, "  - Least happy: %s, %s (score %.2f, %.1f°C)\n", saddest.CityName, saddest.CountryName, saddest.HappinessScore, saddest.TemperatureC)

	if section := climateComparison(rows); section != "" {
		b.WriteString(section)
	}
	if section := focusDigest(rows, s, focusCountry); section != "" {
		b.WriteString(section)
	}

	b.WriteString("\nTop 5 happiest cities:\n")
	for i, r := range topByHappiness(rows, 5) {
		fmt.Fprintf(&b, "  %d. %s, %s - %.2f (%.1f°C)\n", i+1, r.CityName, r.CountryName, r.HappinessScore, r.TemperatureC)
	}

	b.WriteString("\nCorrelation:\n")
	fmt.Fprintf(&b, "  - Pearson r: %.4f\n", s.Correlation)
	fmt.Fprintf(&b, "  - P-value: %.6f\n", s.PValue)
	relationship := "not significant"
	if s.PValue < 0.05 {
		relationship = "significant"
	}
	fmt.Fprintf(&b, "  - Relationship: %s at the 5%% level\n", relationship)

	return b.String()
}

// climateComparison contrasts cold (<10°C) and warm (>25°C) cities; both
// groups must be non-empty for the section to appear.
func climateComparison(rows []warehouse.ReportRow) string {
	var coldSum, warmSum float64
	var coldN, warmN int
	for _, r := range rows {
		switch {
		case r.TemperatureC < 10:
			coldSum += r.HappinessScore
			coldN++
		case r.TemperatureC > 25:
			warmSum += r.HappinessScore
			warmN++
		}
	}
	if coldN == 0 || warmN == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\nClimate comparison:\n")
	fmt.Fprintf(&b, "  - Cold cities (<10°C): average happiness %.2f (%d cities)\n", coldSum/float64(coldN), coldN)
	fmt.Fprintf(&b, "  - Warm cities (>25°C): average happiness %.2f (%d cities)\n", warmSum/float64(warmN), warmN)
	return b.String()
}

// focusDigest summarizes the configured focus country against the global
// averages. Empty when the country has no rows today.
func focusDigest(rows []warehouse.ReportRow, s Summary, country string) string {
	if country == "" {
		return ""
	}

	var cities []string
	var scoreSum, tempSum float64
	for _, r := range rows {
		if r.CountryName != country {
			continue
		}
		cities = append(cities, r.CityName)
		scoreSum += r.HappinessScore
		tempSum += r.TemperatureC
	}
	if len(cities) == 0 {
		return ""
	}

	n := float64(len(cities))
	diff := scoreSum/n - s.MeanHappiness
	direction := "above"
	if diff < 0 {
		direction = "below"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s digest:\n", country)
	fmt.Fprintf(&b, "  - Cities tracked: %d\n", len(cities))
	fmt.Fprintf(&b, "  - Average happiness: %.2f (%.2f %s global average)\n", scoreSum/n, absFloat(diff), direction)
	fmt.Fprintf(&b, "  - Average temperature: %.1f°C\n", tempSum/n)
	fmt.Fprintf(&b, "  - Cities: %s\n", strings.Join(cities, ", "))
	return b.String()
}

func topByHappiness(rows []warehouse.ReportRow, n int) []warehouse.ReportRow {
	top := make([]warehouse.ReportRow, len(rows))
	copy(top, rows)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].HappinessScore > top[j].HappinessScore
	})
	if n < len(top) {
		top = top[:n]
	}
	return top
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
