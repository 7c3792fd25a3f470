package warehouse

import (
	"time"

	"github.com/google/uuid"
)

// Country is one dim_country row. Region is nullable; the 2024 happiness
// data carries no region, so loads leave it NULL.
type Country struct {
	Name                    string  `db:"country_name"`
	Region                  *string `db:"region"`
	LadderScore             float64 `db:"ladder_score"`
	GDPPerCapita            float64 `db:"gdp_per_capita"`
	SocialSupport           float64 `db:"social_support"`
	HealthyLifeExpectancy   float64 `db:"healthy_life_expectancy"`
	FreedomToMakeChoices    float64 `db:"freedom_to_make_choices"`
	Generosity              float64 `db:"generosity"`
	PerceptionsOfCorruption float64 `db:"perceptions_of_corruption"`
}

// Snapshot is one fact_weather_snapshot row minus its keys; fetch_date and
// fetched_at default in the database.
type Snapshot struct {
	TemperatureC       float64
	FeelsLikeC         float64
	HumidityPct        float64
	WeatherMain        string
	WeatherDescription string
	WindSpeed          float64
}

// Run is the audit row recorded after each weather ETL batch.
type Run struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Loaded     int
	Skipped    int
	Failed     int
}

// ReportRow is one row of the same-day happiness/weather join consumed by
// the report generator.
type ReportRow struct {
	HappinessScore float64 `db:"happiness_score"`
	TemperatureC   float64 `db:"temperature_celsius"`
	CountryName    string  `db:"country_name"`
	CityName       string  `db:"city_name"`
}
