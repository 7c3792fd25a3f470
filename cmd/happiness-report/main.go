package main

import (
	"context"
	"log"

	"github.com/declerke/happiness-warehouse/internal/config"
	"github.com/declerke/happiness-warehouse/internal/report"
	"github.com/declerke/happiness-warehouse/internal/warehouse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	w, err := warehouse.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open warehouse: %v", err)
	}
	defer w.Close()

	gen := report.NewGenerator(w, cfg.ReportOutputDir, cfg.ReportFocusCountry)
	if err := gen.Generate(context.Background()); err != nil {
		log.Fatalf("report generation failed: %v", err)
	}
}
