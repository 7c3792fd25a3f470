package config

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed cities.yaml
var defaultCitiesYAML []byte

var validate = validator.New()

// AppConfig carries everything the ETL binaries and the report generator
// need. It is built once in main and passed down explicitly; nothing reads
// the environment after Load returns.
type AppConfig struct {
	// DatabaseURL is the warehouse connection string (lib/pq format).
	DatabaseURL string `validate:"required"`

	// Cities to track, as "City,Country" strings.
	Cities []string `validate:"required,min=1,dive,required"`

	// HappinessCSV is the path of the World Happiness source file.
	HappinessCSV string `validate:"required"`

	// Report output.
	ReportOutputDir    string `validate:"required"`
	ReportFocusCountry string

	// Outbound API endpoints. Overridable so tests can point the clients
	// at a local server.
	GeocoderBaseURL string `validate:"required,url"`
	WeatherBaseURL  string `validate:"required,url"`

	// UserAgent identifies us to the geocoding service, which requires one.
	UserAgent string `validate:"required"`

	// HTTPTimeout bounds every outbound call.
	HTTPTimeout time.Duration

	// Schedule, when non-zero, makes run-etl repeat on this interval
	// instead of running once.
	Schedule time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.DatabaseURL = getenvDefault("DATABASE_URL",
		"postgres://postgres@localhost:5432/data_warehouse?sslmode=disable")
	cfg.HappinessCSV = getenvDefault("HAPPINESS_CSV", "world_happiness_2024.csv")
	cfg.ReportOutputDir = getenvDefault("REPORT_OUTPUT_DIR", "reports")
	cfg.ReportFocusCountry = getenvDefault("REPORT_FOCUS_COUNTRY", "Kenya")
	cfg.GeocoderBaseURL = getenvDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	cfg.WeatherBaseURL = getenvDefault("WEATHER_BASE_URL", "https://api.open-meteo.com")
	cfg.UserAgent = getenvDefault("GEOCODER_USER_AGENT", "happiness-warehouse/1.0")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Optional interval mode for the combined runner; empty means one-shot.
	if scheduleStr := os.Getenv("ETL_SCHEDULE"); scheduleStr != "" {
		schedule, err := time.ParseDuration(scheduleStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ETL_SCHEDULE: %w", err)
		}
		cfg.Schedule = schedule
	}

	cities, err := loadCities(os.Getenv("CITIES_FILE"))
	if err != nil {
		return nil, err
	}
	cfg.Cities = cities

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadCities reads the tracked city list from a YAML file, falling back to
// the embedded default list when no path is configured.
func loadCities(path string) ([]string, error) {
	raw := defaultCitiesYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading cities file: %w", err)
		}
		raw = b
	}

	var doc struct {
		Cities []string `yaml:"cities"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing cities file: %w", err)
	}
	return doc.Cities, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
