// Package openmeteo fetches current weather observations from the
// Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/declerke/happiness-warehouse/internal/fetch"
)

// currentFields is the comma-separated field list requested from the API.
const currentFields = "temperature_2m,apparent_temperature,relative_humidity_2m,weather_code,wind_speed_10m"

// Observation is a single current-weather reading.
type Observation struct {
	TemperatureC float64
	FeelsLikeC   float64
	HumidityPct  float64
	WeatherCode  int
	WindSpeed    float64
}

// Client queries the Open-Meteo forecast endpoint.
type Client struct {
	name    string
	baseURL string
	httpCfg fetch.Config
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates an Open-Meteo client. baseURL is the service root
// (e.g. "https://api.open-meteo.com"). No API key is required.
func NewClient(client *http.Client, baseURL string) *Client {
	return &Client{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: fetch.Config{Client: client},
		circuit: fetch.NewBreaker("openmeteo"),
	}
}

// Current fetches the current weather at the given coordinates with
// automatic timezone resolution. Any HTTP or decode failure is returned to
// the caller, which skips persistence for the city.
func (c *Client) Current(ctx context.Context, lat, lon float64) (Observation, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current", currentFields)
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := fetch.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return Observation{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Temperature2m       float64 `json:"temperature_2m"`
			ApparentTemperature float64 `json:"apparent_temperature"`
			RelativeHumidity2m  float64 `json:"relative_humidity_2m"`
			WeatherCode         int     `json:"weather_code"`
			WindSpeed10m        float64 `json:"wind_speed_10m"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Observation{}, err
	}

	return Observation{
		TemperatureC: payload.Current.Temperature2m,
		FeelsLikeC:   payload.Current.ApparentTemperature,
		HumidityPct:  payload.Current.RelativeHumidity2m,
		WeatherCode:  payload.Current.WeatherCode,
		WindSpeed:    payload.Current.WindSpeed10m,
	}, nil
}
