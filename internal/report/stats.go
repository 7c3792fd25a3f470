package report

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/declerke/happiness-warehouse/internal/warehouse"
)

// Summary holds the statistics printed in the report and embedded in the
// charts.
type Summary struct {
	Correlation     float64
	PValue          float64
	MeanHappiness   float64
	MeanTemperature float64
	StdHappiness    float64
	StdTemperature  float64
	Cities          int
	Countries       int
}

// Summarize computes the Pearson correlation between temperature and
// happiness plus the descriptive statistics over the joined rows.
func Summarize(rows []warehouse.ReportRow) Summary {
	temps := make([]float64, len(rows))
	scores := make([]float64, len(rows))
	countries := make(map[string]struct{}, len(rows))

	for i, r := range rows {
		temps[i] = r.TemperatureC
		scores[i] = r.HappinessScore
		countries[r.CountryName] = struct{}{}
	}

	r := stat.Correlation(temps, scores, nil)

	return Summary{
		Correlation:     r,
		PValue:          pValue(r, len(rows)),
		MeanHappiness:   stat.Mean(scores, nil),
		MeanTemperature: stat.Mean(temps, nil),
		StdHappiness:    stat.StdDev(scores, nil),
		StdTemperature:  stat.StdDev(temps, nil),
		Cities:          len(rows),
		Countries:       len(countries),
	}
}

// pValue is the two-sided p-value for a Pearson correlation over n samples,
// using the exact t-distribution with n-2 degrees of freedom.
func pValue(r float64, n int) float64 {
	if n < 3 || math.IsNaN(r) {
		return math.NaN()
	}
	if 1-r*r < 1e-12 {
		return 0
	}

	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * dist.CDF(-math.Abs(t))
}
