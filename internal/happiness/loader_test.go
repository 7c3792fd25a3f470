package happiness

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declerke/happiness-warehouse/internal/warehouse"
)

const sampleCSV = `Country name,Ladder score,Explained by: Log GDP per capita,Explained by: Social support,Explained by: Healthy life expectancy,Explained by: Freedom to make life choices,Explained by: Generosity,Explained by: Perceptions of corruption
Finland,7.741,1.844,1.572,0.695,0.859,0.142,0.546
Denmark,7.583,1.908,1.520,0.699,0.823,0.204,0.548
Kenya,4.470,0.904,0.902,0.270,0.549,0.327,0.074
`

func TestRead(t *testing.T) {
	countries, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, countries, 3)

	assert.Equal(t, "Finland", countries[0].Name)
	assert.Equal(t, 7.741, countries[0].LadderScore)
	assert.Equal(t, 1.844, countries[0].GDPPerCapita)
	assert.Equal(t, 0.074, countries[2].PerceptionsOfCorruption)
	assert.Nil(t, countries[0].Region)
}

func TestReadMissingColumn(t *testing.T) {
	csv := "Country name,Ladder score\nFinland,7.741\n"

	_, err := Read(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestReadMalformedRowAborts(t *testing.T) {
	csv := sampleCSV + "Atlantis,not-a-number,0,0,0,0,0,0\n"

	_, err := Read(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestTopByLadder(t *testing.T) {
	countries := []warehouse.Country{
		{Name: "Kenya", LadderScore: 4.470},
		{Name: "Finland", LadderScore: 7.741},
		{Name: "Denmark", LadderScore: 7.583},
	}

	top := TopByLadder(countries, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Finland", top[0].Name)
	assert.Equal(t, "Denmark", top[1].Name)

	// Input order is untouched.
	assert.Equal(t, "Kenya", countries[0].Name)
}

func TestLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	sqlx.BindDriver("sqlmock", sqlx.DOLLAR)
	w := warehouse.New(sqlx.NewDb(db, "sqlmock"))

	mock.ExpectBegin()
	for i := 0; i < 3; i++ {
		mock.ExpectExec("INSERT INTO dim_country").WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	mock.ExpectCommit()

	path := filepath.Join(t.TempDir(), "world_happiness_2024.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	n, err := Load(context.Background(), w, path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadMissingFile(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	w := warehouse.New(sqlx.NewDb(db, "sqlmock"))

	_, err = Load(context.Background(), w, filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
