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
	"github.com/declerke/happiness-warehouse/internal/happiness"
	"github.com/declerke/happiness-warehouse/internal/openmeteo"
	"github.com/declerke/happiness-warehouse/internal/scheduler"
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

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	geocoder := geocode.NewClient(httpClient, cfg.GeocoderBaseURL, cfg.UserAgent)
	weather := openmeteo.NewClient(httpClient, cfg.WeatherBaseURL)
	weatherETL := etl.New(geocoder, weather, w)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job := func() {
		if _, err := happiness.Load(ctx, w, cfg.HappinessCSV); err != nil {
			log.Printf("ERROR: happiness load failed: %v", err)
			return
		}
		if _, err := weatherETL.Run(ctx, cfg.Cities); err != nil {
			log.Printf("ERROR: weather ETL aborted: %v", err)
		}
	}

	if cfg.Schedule > 0 {
		sched := scheduler.New(cfg.Schedule, job)
		go func() {
			<-ctx.Done()
			log.Println("INFO: shutdown signal received, stopping scheduler")
			sched.Stop()
		}()
		if err := sched.Start(); err != nil {
			log.Fatalf("scheduler failed: %v", err)
		}
		return
	}

	if _, err := happiness.Load(ctx, w, cfg.HappinessCSV); err != nil {
		log.Fatalf("happiness load failed: %v", err)
	}
	if _, err := weatherETL.Run(ctx, cfg.Cities); err != nil {
		log.Fatalf("weather ETL aborted: %v", err)
	}
}
