// Package report renders today's happiness/temperature analysis: two chart
// images and a text insights file, overwritten on each run.
package report

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/declerke/happiness-warehouse/internal/warehouse"
)

// Output file names inside the report directory.
const (
	ScatterFile       = "happiness_vs_temperature.png"
	DistributionsFile = "happiness_distributions.png"
	InsightsFile      = "report_insights.txt"
)

// Generator reads the warehouse join and writes the report artifacts.
type Generator struct {
	warehouse    *warehouse.Warehouse
	outputDir    string
	focusCountry string
}

// NewGenerator builds a report generator writing into outputDir.
func NewGenerator(w *warehouse.Warehouse, outputDir, focusCountry string) *Generator {
	return &Generator{warehouse: w, outputDir: outputDir, focusCountry: focusCountry}
}

// Generate queries today's joined data and renders all artifacts. An empty
// result set is an error: it means the ETL has not run today.
func (g *Generator) Generate(ctx context.Context) error {
	rows, err := g.warehouse.TodayJoined(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no happiness/weather rows for today; run the ETL first")
	}

	s := Summarize(rows)
	log.Printf("INFO: report over %d cities in %d countries: r=%.3f p=%.4f",
		s.Cities, s.Countries, s.Correlation, s.PValue)

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	if err := renderScatter(rows, s, filepath.Join(g.outputDir, ScatterFile)); err != nil {
		return err
	}
	if err := renderDistributions(rows, filepath.Join(g.outputDir, DistributionsFile)); err != nil {
		return err
	}
	if err := g.writeInsights(rows, s); err != nil {
		return err
	}

	log.Printf("INFO: report written to %s", g.outputDir)
	return nil
}

func (g *Generator) writeInsights(rows []warehouse.ReportRow, s Summary) error {
	var b []byte
	b = append(b, "GLOBAL HAPPINESS vs TEMPERATURE ANALYSIS\n"...)
	b = append(b, fmt.Sprintf("Generated: %s\n\n", time.Now().Format("January 2, 2006 at 3:04 PM"))...)
	b = append(b, buildInsights(rows, s, g.focusCountry)...)

	path := filepath.Join(g.outputDir, InsightsFile)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing insights file: %w", err)
	}
	return nil
}
