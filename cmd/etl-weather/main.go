package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/declerke/happiness-warehouse/internal/config"
	"github.com/declerke/happiness-warehouse/internal/etl"
	"github.com/declerke/happiness-warehouse/internal/geocode"
	"github.com/declerke/happiness-warehouse/internal/openmeteo"
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

	// Shared HTTP client for outbound API calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	geocoder := geocode.NewClient(httpClient, cfg.GeocoderBaseURL, cfg.UserAgent)
	weather := openmeteo.NewClient(httpClient, cfg.WeatherBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := etl.New(geocoder, weather, w).Run(ctx, cfg.Cities); err != nil {
		log.Fatalf("weather ETL aborted: %v", err)
	}
}
