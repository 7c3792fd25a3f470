// Package warehouse is the PostgreSQL access layer shared by the loaders
// and the report generator. Schema management goes through embedded
// golang-migrate migrations; statements are parameterized upserts keyed on
// the natural unique columns (country_name, city_name).
package warehouse

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Warehouse wraps the single database handle a script invocation holds for
// its lifetime.
type Warehouse struct {
	db *sqlx.DB
}

// Open connects to the warehouse and verifies the connection.
func Open(databaseURL string) (*Warehouse, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to warehouse: %w", err)
	}
	return &Warehouse{db: db}, nil
}

// New wraps an existing handle. Used by tests to inject a mocked database.
func New(db *sqlx.DB) *Warehouse {
	return &Warehouse{db: db}
}

// Migrate applies all pending schema migrations.
func (w *Warehouse) Migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	driver, err := migratepg.WithInstance(w.db.DB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Begin starts a transaction; the weather loop opens one per city.
func (w *Warehouse) Begin(ctx context.Context) (*sqlx.Tx, error) {
	return w.db.BeginTxx(ctx, nil)
}

// Close releases the database handle.
func (w *Warehouse) Close() error {
	return w.db.Close()
}
