// Package etl drives the per-city weather load: geocode, fetch, persist.
// The loop is strictly sequential and every failure is isolated to its
// city; the batch itself never aborts.
package etl

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/declerke/happiness-warehouse/internal/geocode"
	"github.com/declerke/happiness-warehouse/internal/openmeteo"
	"github.com/declerke/happiness-warehouse/internal/warehouse"
)

// Geocoder resolves a "City,Country" query to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, query string) (geocode.Coordinates, error)
}

// WeatherClient fetches a current-weather observation.
type WeatherClient interface {
	Current(ctx context.Context, lat, lon float64) (openmeteo.Observation, error)
}

// Status classifies what happened to one city during a run.
type Status string

const (
	StatusLoaded         Status = "loaded"
	StatusSkippedGeocode Status = "skipped-geocode"
	StatusSkippedWeather Status = "skipped-weather"
	StatusFailedDB       Status = "failed-db"
)

// CityResult is the per-city outcome collected over a run instead of
// swallowed exceptions: either loaded, or a skip/failure with its reason.
type CityResult struct {
	City   string
	Status Status
	Reason string
}

// WeatherETL owns one run of the weather load.
type WeatherETL struct {
	geocoder  Geocoder
	weather   WeatherClient
	warehouse *warehouse.Warehouse
}

// New assembles the weather ETL from its three collaborators.
func New(g Geocoder, wc WeatherClient, w *warehouse.Warehouse) *WeatherETL {
	return &WeatherETL{geocoder: g, weather: wc, warehouse: w}
}

// Run processes the cities one at a time. Each successfully-processed city
// commits its own transaction immediately, so a partial run leaves the
// warehouse consistent and partially updated. The returned results cover
// every city; Run itself only errors when the context is cancelled.
func (e *WeatherETL) Run(ctx context.Context, cities []string) ([]CityResult, error) {
	startedAt := time.Now().UTC()
	results := make([]CityResult, 0, len(cities))

	for _, city := range cities {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		results = append(results, e.processCity(ctx, city))
	}

	run := warehouse.Run{
		ID:         uuid.New(),
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}
	for _, r := range results {
		switch r.Status {
		case StatusLoaded:
			run.Loaded++
		case StatusFailedDB:
			run.Failed++
		default:
			run.Skipped++
		}
	}

	// The audit row is bookkeeping; losing it does not fail the batch.
	if err := e.warehouse.InsertRun(ctx, run); err != nil {
		log.Printf("WARN: failed to record etl run %s: %v", run.ID, err)
	}

	log.Printf("INFO: weather ETL complete: %d loaded, %d skipped, %d failed (run %s)",
		run.Loaded, run.Skipped, run.Failed, run.ID)
	return results, nil
}

// processCity runs the full pipeline for a single city. City upsert and
// snapshot insert share one transaction, so a snapshot can never exist
// without its parent city row.
func (e *WeatherETL) processCity(ctx context.Context, city string) CityResult {
	coords, err := e.geocoder.Lookup(ctx, city)
	if err != nil {
		log.Printf("WARN: geocoding failed for %s: %v", city, err)
		return CityResult{City: city, Status: StatusSkippedGeocode, Reason: err.Error()}
	}

	country := DisplayCountry(city)

	tx, err := e.warehouse.Begin(ctx)
	if err != nil {
		log.Printf("ERROR: skipping %s: %v", city, err)
		return CityResult{City: city, Status: StatusFailedDB, Reason: err.Error()}
	}

	cityID, err := e.warehouse.UpsertCity(ctx, tx, city, country)
	if err != nil {
		tx.Rollback()
		log.Printf("ERROR: skipping %s: %v", city, err)
		return CityResult{City: city, Status: StatusFailedDB, Reason: err.Error()}
	}

	obs, err := e.weather.Current(ctx, coords.Lat, coords.Lon)
	if err != nil {
		tx.Rollback()
		log.Printf("WARN: weather fetch failed for %s: %v", city, err)
		return CityResult{City: city, Status: StatusSkippedWeather, Reason: err.Error()}
	}

	snap := warehouse.Snapshot{
		TemperatureC:       obs.TemperatureC,
		FeelsLikeC:         obs.FeelsLikeC,
		HumidityPct:        obs.HumidityPct,
		WeatherMain:        openmeteo.Categorize(obs.WeatherCode),
		WeatherDescription: openmeteo.Describe(obs.WeatherCode),
		WindSpeed:          obs.WindSpeed,
	}
	if err := e.warehouse.InsertSnapshot(ctx, tx, cityID, snap); err != nil {
		tx.Rollback()
		log.Printf("ERROR: skipping %s: %v", city, err)
		return CityResult{City: city, Status: StatusFailedDB, Reason: err.Error()}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("ERROR: skipping %s: %v", city, err)
		return CityResult{City: city, Status: StatusFailedDB, Reason: err.Error()}
	}

	log.Printf("INFO: loaded weather for %s (%s): %.1f°C", city, country, obs.TemperatureC)
	return CityResult{City: city, Status: StatusLoaded}
}
