package report

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/declerke/happiness-warehouse/internal/warehouse"
)

// renderScatter draws happiness against temperature with a fitted trend
// line and writes the image to path.
func renderScatter(rows []warehouse.ReportRow, s Summary, path string) error {
	temps := make([]float64, len(rows))
	scores := make([]float64, len(rows))
	pts := make(plotter.XYs, len(rows))
	for i, r := range rows {
		temps[i] = r.TemperatureC
		scores[i] = r.HappinessScore
		pts[i].X = r.TemperatureC
		pts[i].Y = r.HappinessScore
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Global Happiness vs Current Temperature (%s)\n%d cities, %d countries",
		time.Now().Format("January 2, 2006"), s.Cities, s.Countries)
	p.X.Label.Text = "Current Temperature (°C)"
	p.Y.Label.Text = "Happiness Score"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("building scatter plot: %w", err)
	}
	p.Add(scatter)

	alpha, beta := stat.LinearRegression(temps, scores, nil, false)
	trend := plotter.NewFunction(func(x float64) float64 { return alpha + beta*x })
	trend.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(trend)
	p.Legend.Add(fmt.Sprintf("trend (r=%.3f)", s.Correlation), trend)
	p.Legend.Top = false

	return p.Save(12*vg.Inch, 7*vg.Inch, path)
}

// renderDistributions draws average happiness per temperature band (five
// equal-width bins) and writes the image to path.
func renderDistributions(rows []warehouse.ReportRow, path string) error {
	labels, values := temperatureBands(rows, 5)

	p := plot.New()
	p.Title.Text = "Average Happiness by Temperature Range"
	p.Y.Label.Text = "Average Happiness Score"

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// temperatureBands buckets rows into n equal-width temperature bins and
// averages happiness per bin. Empty bins are dropped.
func temperatureBands(rows []warehouse.ReportRow, n int) ([]string, plotter.Values) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		min = math.Min(min, r.TemperatureC)
		max = math.Max(max, r.TemperatureC)
	}

	width := (max - min) / float64(n)
	if width <= 0 {
		// All rows share one temperature; a single band covers everything.
		var sum float64
		for _, r := range rows {
			sum += r.HappinessScore
		}
		label := fmt.Sprintf("%.0f°C", min)
		return []string{label}, plotter.Values{sum / float64(len(rows))}
	}

	sums := make([]float64, n)
	counts := make([]int, n)
	for _, r := range rows {
		i := int((r.TemperatureC - min) / width)
		if i >= n {
			i = n - 1
		}
		sums[i] += r.HappinessScore
		counts[i]++
	}

	var labels []string
	var values plotter.Values
	for i := 0; i < n; i++ {
		if counts[i] == 0 {
			continue
		}
		lo := min + float64(i)*width
		labels = append(labels, fmt.Sprintf("%.0f-%.0f°C", lo, lo+width))
		values = append(values, sums[i]/float64(counts[i]))
	}
	return labels, values
}
