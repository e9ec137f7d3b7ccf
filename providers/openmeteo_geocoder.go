package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"skycast.app/config"
	"skycast.app/errors"
	"skycast.app/models"
)

// OpenMeteoGeocoder implements CitySearcher against the free Open-Meteo
// geocoding API. Calls run through a circuit breaker; an open circuit fails
// immediately and the caller falls back to the provider geocoder.
type OpenMeteoGeocoder struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewOpenMeteoGeocoder creates a new Open-Meteo geocoder
func NewOpenMeteoGeocoder(cfg *config.GeocoderConfig) *OpenMeteoGeocoder {
	settings := gobreaker.Settings{
		Name:    "openmeteo-geocoder",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Info("geocoder circuit state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &OpenMeteoGeocoder{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

type openMeteoResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
}

// Search performs a fuzzy city search and returns at most count candidates
func (g *OpenMeteoGeocoder) Search(ctx context.Context, query string, count int) ([]models.CityResult, error) {
	if count < 1 {
		count = 5
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.search(ctx, query, count)
	})
	if err != nil {
		return nil, err
	}

	return result.([]models.CityResult), nil
}

func (g *OpenMeteoGeocoder) search(ctx context.Context, query string, count int) ([]models.CityResult, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(count))
	params.Set("language", "en")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build geocoder request", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to reach geocoder", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("geocoder returned status code %d", resp.StatusCode), nil)
	}

	var body struct {
		Results []openMeteoResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode geocoder response", err)
	}

	cities := make([]models.CityResult, 0, len(body.Results))
	for _, r := range body.Results {
		cities = append(cities, models.CityResult{
			Name:    r.Name,
			Lat:     r.Latitude,
			Lon:     r.Longitude,
			Country: r.Country,
			State:   r.Admin1,
		})
	}
	return cities, nil
}
