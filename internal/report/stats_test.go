package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/declerke/happiness-warehouse/internal/warehouse"
)

func sampleRows() []warehouse.ReportRow {
	return []warehouse.ReportRow{
		{HappinessScore: 7.7, TemperatureC: 18.2, CountryName: "Finland", CityName: "Helsinki,Finland"},
		{HappinessScore: 7.5, TemperatureC: 16.0, CountryName: "Denmark", CityName: "Copenhagen,Denmark"},
		{HappinessScore: 5.8, TemperatureC: 28.5, CountryName: "Thailand", CityName: "Bangkok,Thailand"},
		{HappinessScore: 4.4, TemperatureC: 24.3, CountryName: "Kenya", CityName: "Nairobi,Kenya"},
		{HappinessScore: 4.5, TemperatureC: 26.1, CountryName: "Kenya", CityName: "Mombasa,Kenya"},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRows())

	assert.Equal(t, 5, s.Cities)
	assert.Equal(t, 4, s.Countries)
	assert.InDelta(t, 5.98, s.MeanHappiness, 0.001)
	assert.InDelta(t, 22.62, s.MeanTemperature, 0.001)

	// Happiness falls as temperature rises in this sample.
	assert.Less(t, s.Correlation, 0.0)
	assert.Greater(t, s.PValue, 0.0)
	assert.LessOrEqual(t, s.PValue, 1.0)
}

func TestSummarizePerfectCorrelation(t *testing.T) {
	rows := []warehouse.ReportRow{
		{HappinessScore: 1, TemperatureC: 10},
		{HappinessScore: 2, TemperatureC: 20},
		{HappinessScore: 3, TemperatureC: 30},
		{HappinessScore: 4, TemperatureC: 40},
	}

	s := Summarize(rows)
	assert.InDelta(t, 1.0, s.Correlation, 1e-9)
	assert.InDelta(t, 0.0, s.PValue, 1e-9)
}

func TestPValueTooFewSamples(t *testing.T) {
	assert.True(t, math.IsNaN(pValue(0.5, 2)))
}

func TestPValueZeroCorrelation(t *testing.T) {
	// r=0 means t=0, so the two-sided p-value is exactly 1.
	assert.InDelta(t, 1.0, pValue(0, 10), 1e-9)
}

func TestTemperatureBands(t *testing.T) {
	labels, values := temperatureBands(sampleRows(), 5)

	assert.Equal(t, len(labels), len(values))
	assert.NotEmpty(t, labels)

	// Identical temperatures collapse into a single band.
	flat := []warehouse.ReportRow{
		{HappinessScore: 4, TemperatureC: 20},
		{HappinessScore: 6, TemperatureC: 20},
	}
	labels, values = temperatureBands(flat, 5)
	assert.Len(t, labels, 1)
	assert.InDelta(t, 5.0, float64(values[0]), 1e-9)
}
