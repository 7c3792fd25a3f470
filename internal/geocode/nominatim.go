// Package geocode resolves free-text place queries to coordinates through
// the Nominatim search API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/declerke/happiness-warehouse/internal/fetch"
)

// ErrNotFound is returned when the service yields no usable result for a
// query. Callers treat it as "skip this city", never as fatal.
var ErrNotFound = errors.New("no geocoding result")

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Client queries a Nominatim-compatible endpoint.
type Client struct {
	name      string
	baseURL   string
	userAgent string
	httpCfg   fetch.Config
	circuit   *gobreaker.CircuitBreaker
}

// NewClient creates a geocoding client. baseURL is the service root
// (e.g. "https://nominatim.openstreetmap.org"); userAgent is mandatory,
// Nominatim rejects anonymous clients.
func NewClient(client *http.Client, baseURL, userAgent string) *Client {
	return &Client{
		name:      "nominatim",
		baseURL:   baseURL,
		userAgent: userAgent,
		httpCfg:   fetch.Config{Client: client},
		circuit:   fetch.NewBreaker("nominatim"),
	}
}

// Lookup geocodes a free-text query ("City,Country") and returns the first
// match. Empty result sets, HTTP failures and malformed payloads all come
// back as ErrNotFound-wrapped errors.
func (c *Client) Lookup(ctx context.Context, query string) (Coordinates, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", query)
		values.Set("format", "json")
		values.Set("limit", "1")

		u := fmt.Sprintf("%s/search?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		return req, nil
	}

	resp, err := fetch.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	defer resp.Body.Close()

	// Nominatim returns lat/lon as JSON strings.
	var payload []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if len(payload) == 0 {
		return Coordinates{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(payload[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: bad latitude %q", ErrNotFound, payload[0].Lat)
	}
	lon, err := strconv.ParseFloat(payload[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: bad longitude %q", ErrNotFound, payload[0].Lon)
	}

	return Coordinates{Lat: lat, Lon: lon}, nil
}
