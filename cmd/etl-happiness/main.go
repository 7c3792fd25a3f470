package main

import (
	"context"
	"log"

	"github.com/declerke/happiness-warehouse/internal/config"
	"github.com/declerke/happiness-warehouse/internal/happiness"
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

	if err := w.Migrate(); err != nil {
		log.Fatalf("failed to migrate warehouse: %v", err)
	}

	if _, err := happiness.Load(context.Background(), w, cfg.HappinessCSV); err != nil {
		log.Fatalf("happiness load failed: %v", err)
	}
}
