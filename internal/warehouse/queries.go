package warehouse

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const upsertCountrySQL = `
INSERT INTO dim_country
  (country_name, region, ladder_score, gdp_per_capita, social_support,
   healthy_life_expectancy, freedom_to_make_choices, generosity, perceptions_of_corruption)
VALUES
  (:country_name, :region, :ladder_score, :gdp_per_capita, :social_support,
   :healthy_life_expectancy, :freedom_to_make_choices, :generosity, :perceptions_of_corruption)
ON CONFLICT (country_name) DO UPDATE SET
  ladder_score = EXCLUDED.ladder_score,
  gdp_per_capita = EXCLUDED.gdp_per_capita,
  social_support = EXCLUDED.social_support,
  healthy_life_expectancy = EXCLUDED.healthy_life_expectancy,
  freedom_to_make_choices = EXCLUDED.freedom_to_make_choices,
  generosity = EXCLUDED.generosity,
  perceptions_of_corruption = EXCLUDED.perceptions_of_corruption,
  region = EXCLUDED.region`

const upsertCitySQL = `
INSERT INTO dim_city (city_name, country_name)
VALUES ($1, $2)
ON CONFLICT (city_name) DO UPDATE SET country_name = EXCLUDED.country_name
RETURNING city_id`

const insertSnapshotSQL = `
INSERT INTO fact_weather_snapshot
  (city_id, temperature_celsius, feels_like_celsius, humidity_percent,
   weather_main, weather_description, wind_speed_mps)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT DO NOTHING`

const insertRunSQL = `
INSERT INTO etl_run (run_id, started_at, finished_at, cities_loaded, cities_skipped, cities_failed)
VALUES ($1, $2, $3, $4, $5, $6)`

const todayJoinedSQL = `
SELECT
  dc.ladder_score AS happiness_score,
  fw.temperature_celsius,
  dc.country_name,
  dcity.city_name
FROM dim_country dc
JOIN dim_city dcity ON dc.country_name = dcity.country_name
JOIN fact_weather_snapshot fw ON dcity.city_id = fw.city_id
WHERE fw.fetch_date = CURRENT_DATE
  AND fw.temperature_celsius IS NOT NULL
  AND dc.ladder_score IS NOT NULL
ORDER BY dc.ladder_score DESC`

// UpsertCountries writes all countries in a single transaction, one upsert
// per row, committed once at the end. Any row failure aborts the whole load.
func (w *Warehouse) UpsertCountries(ctx context.Context, countries []Country) error {
	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning country load: %w", err)
	}

	for _, c := range countries {
		if _, err := tx.NamedExecContext(ctx, upsertCountrySQL, c); err != nil {
			tx.Rollback()
			return fmt.Errorf("upserting country %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing country load: %w", err)
	}
	return nil
}

// UpsertCity inserts or updates a dim_city row inside the given transaction
// and returns its identifier.
func (w *Warehouse) UpsertCity(ctx context.Context, tx *sqlx.Tx, cityName, countryName string) (int64, error) {
	var cityID int64
	if err := tx.QueryRowContext(ctx, upsertCitySQL, cityName, countryName).Scan(&cityID); err != nil {
		return 0, fmt.Errorf("upserting city %q: %w", cityName, err)
	}
	return cityID, nil
}

// InsertSnapshot appends a weather fact row inside the given transaction.
// A duplicate (city, fetch_date) insert is a silent no-op.
func (w *Warehouse) InsertSnapshot(ctx context.Context, tx *sqlx.Tx, cityID int64, s Snapshot) error {
	_, err := tx.ExecContext(ctx, insertSnapshotSQL,
		cityID, s.TemperatureC, s.FeelsLikeC, s.HumidityPct,
		s.WeatherMain, s.WeatherDescription, s.WindSpeed)
	if err != nil {
		return fmt.Errorf("inserting snapshot for city %d: %w", cityID, err)
	}
	return nil
}

// InsertRun records the audit row for a completed weather ETL batch.
func (w *Warehouse) InsertRun(ctx context.Context, r Run) error {
	_, err := w.db.ExecContext(ctx, insertRunSQL,
		r.ID, r.StartedAt, r.FinishedAt, r.Loaded, r.Skipped, r.Failed)
	if err != nil {
		return fmt.Errorf("recording etl run %s: %w", r.ID, err)
	}
	return nil
}

// TodayJoined returns today's weather snapshots joined to country happiness
// scores, happiest countries first. Cities without a same-day snapshot are
// dropped by the join.
func (w *Warehouse) TodayJoined(ctx context.Context) ([]ReportRow, error) {
	var rows []ReportRow
	if err := w.db.SelectContext(ctx, &rows, todayJoinedSQL); err != nil {
		return nil, fmt.Errorf("querying today's joined data: %w", err)
	}
	return rows, nil
}
