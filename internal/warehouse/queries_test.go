package warehouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockWarehouse(t *testing.T) (*Warehouse, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// The named country upsert compiles to $N placeholders.
	sqlx.BindDriver("sqlmock", sqlx.DOLLAR)

	return New(sqlx.NewDb(db, "sqlmock")), mock
}

func TestUpsertCity(t *testing.T) {
	w, mock := newMockWarehouse(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO dim_city").
		WithArgs("Nairobi,Kenya", "Kenya").
		WillReturnRows(sqlmock.NewRows([]string{"city_id"}).AddRow(7))
	mock.ExpectCommit()

	tx, err := w.Begin(ctx)
	require.NoError(t, err)

	cityID, err := w.UpsertCity(ctx, tx, "Nairobi,Kenya", "Kenya")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cityID)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSnapshot(t *testing.T) {
	w, mock := newMockWarehouse(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO fact_weather_snapshot").
		WithArgs(int64(7), 24.3, 25.1, 58.0, "Clouds", "Partly cloudy", 11.4).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := w.Begin(ctx)
	require.NoError(t, err)

	snap := Snapshot{
		TemperatureC:       24.3,
		FeelsLikeC:         25.1,
		HumidityPct:        58,
		WeatherMain:        "Clouds",
		WeatherDescription: "Partly cloudy",
		WindSpeed:          11.4,
	}
	require.NoError(t, w.InsertSnapshot(ctx, tx, 7, snap))

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCountries(t *testing.T) {
	w, mock := newMockWarehouse(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO dim_country").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO dim_country").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	countries := []Country{
		{Name: "Finland", LadderScore: 7.741},
		{Name: "Kenya", LadderScore: 4.47},
	}
	require.NoError(t, w.UpsertCountries(context.Background(), countries))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCountriesAbortsOnRowError(t *testing.T) {
	w, mock := newMockWarehouse(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO dim_country").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO dim_country").WillReturnError(errors.New("numeric overflow"))
	mock.ExpectRollback()

	countries := []Country{
		{Name: "Finland", LadderScore: 7.741},
		{Name: "Kenya", LadderScore: 4.47},
	}
	err := w.UpsertCountries(context.Background(), countries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Kenya")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertRun(t *testing.T) {
	w, mock := newMockWarehouse(t)

	run := Run{
		ID:         uuid.New(),
		StartedAt:  time.Now().Add(-time.Minute),
		FinishedAt: time.Now(),
		Loaded:     40,
		Skipped:    3,
		Failed:     1,
	}

	mock.ExpectExec("INSERT INTO etl_run").
		WithArgs(run.ID, run.StartedAt, run.FinishedAt, 40, 3, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, w.InsertRun(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodayJoined(t *testing.T) {
	w, mock := newMockWarehouse(t)

	rows := sqlmock.NewRows([]string{"happiness_score", "temperature_celsius", "country_name", "city_name"}).
		AddRow(7.7, 18.2, "Finland", "Helsinki,Finland").
		AddRow(4.4, 24.3, "Kenya", "Nairobi,Kenya")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	got, err := w.TodayJoined(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Finland", got[0].CountryName)
	assert.Equal(t, 24.3, got[1].TemperatureC)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodayJoinedQueryError(t *testing.T) {
	w, mock := newMockWarehouse(t)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("relation does not exist"))

	_, err := w.TodayJoined(context.Background())
	assert.Error(t, err)
}
