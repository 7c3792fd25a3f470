// Package happiness loads the World Happiness Report CSV into dim_country.
package happiness

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/jszwec/csvutil"

	"github.com/declerke/happiness-warehouse/internal/warehouse"
)

// record mirrors the source CSV headers. The "Explained by:" columns hold
// the per-factor contributions to the ladder score.
type record struct {
	CountryName             string  `csv:"Country name"`
	LadderScore             float64 `csv:"Ladder score"`
	GDPPerCapita            float64 `csv:"Explained by: Log GDP per capita"`
	SocialSupport           float64 `csv:"Explained by: Social support"`
	HealthyLifeExpectancy   float64 `csv:"Explained by: Healthy life expectancy"`
	FreedomToMakeChoices    float64 `csv:"Explained by: Freedom to make life choices"`
	Generosity              float64 `csv:"Explained by: Generosity"`
	PerceptionsOfCorruption float64 `csv:"Explained by: Perceptions of corruption"`
}

var requiredColumns = []string{
	"Country name",
	"Ladder score",
	"Explained by: Log GDP per capita",
	"Explained by: Social support",
	"Explained by: Healthy life expectancy",
	"Explained by: Freedom to make life choices",
	"Explained by: Generosity",
	"Explained by: Perceptions of corruption",
}

// Read parses the happiness CSV. A missing required column or a malformed
// row fails the whole read; there is no per-row isolation here.
func Read(r io.Reader) ([]warehouse.Country, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("reading happiness CSV header: %w", err)
	}

	header := make(map[string]bool, len(dec.Header()))
	for _, col := range dec.Header() {
		header[col] = true
	}
	for _, col := range requiredColumns {
		if !header[col] {
			return nil, fmt.Errorf("happiness CSV is missing required column %q", col)
		}
	}

	var countries []warehouse.Country
	for {
		var rec record
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decoding happiness CSV row: %w", err)
		}

		// No region in the 2024 data; left NULL.
		countries = append(countries, warehouse.Country{
			Name:                    rec.CountryName,
			LadderScore:             rec.LadderScore,
			GDPPerCapita:            rec.GDPPerCapita,
			SocialSupport:           rec.SocialSupport,
			HealthyLifeExpectancy:   rec.HealthyLifeExpectancy,
			FreedomToMakeChoices:    rec.FreedomToMakeChoices,
			Generosity:              rec.Generosity,
			PerceptionsOfCorruption: rec.PerceptionsOfCorruption,
		})
	}
	return countries, nil
}

// TopByLadder returns the n highest-scoring countries, happiest first.
func TopByLadder(countries []warehouse.Country, n int) []warehouse.Country {
	top := make([]warehouse.Country, len(countries))
	copy(top, countries)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].LadderScore > top[j].LadderScore
	})
	if n < len(top) {
		top = top[:n]
	}
	return top
}

// Load reads the CSV at path and upserts every country in one transaction,
// then prints the load summary and the top five countries.
func Load(ctx context.Context, w *warehouse.Warehouse, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening happiness CSV: %w", err)
	}
	defer f.Close()

	countries, err := Read(f)
	if err != nil {
		return 0, err
	}

	if err := w.UpsertCountries(ctx, countries); err != nil {
		return 0, err
	}

	log.Printf("INFO: loaded %d countries into dim_country", len(countries))
	log.Printf("INFO: Top 5 happiest:")
	for _, c := range TopByLadder(countries, 5) {
		log.Printf("INFO:   %-24s %.3f", c.Name, c.LadderScore)
	}
	return len(countries), nil
}
