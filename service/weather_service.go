package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"skycast.app/errors"
	"skycast.app/forecast"
	"skycast.app/models"
	"skycast.app/providers"
	"skycast.app/providers/cache"
)

// SearchResultLimit caps the number of city search candidates returned.
const SearchResultLimit = 5

// uvIndexPlaceholder is returned for every bundle. The upstream One Call
// endpoint carrying real UV data sits behind a paid subscription, so the
// dashboard renders a fixed moderate value instead.
const uvIndexPlaceholder = 5

// WeatherService assembles weather bundles and answers city searches
type WeatherService struct {
	provider     providers.WeatherProvider
	searcher     providers.CitySearcher
	cache        cache.BundleCacheInterface
	cacheMetrics func() map[string]interface{}
	cacheTTL     time.Duration
}

// WeatherServiceOptions configures optional collaborators of the service
type WeatherServiceOptions struct {
	Cache        cache.BundleCacheInterface
	CacheMetrics func() map[string]interface{}
	CacheTTL     time.Duration
}

// NewWeatherService creates a new weather service with the specified providers
func NewWeatherService(provider providers.WeatherProvider, searcher providers.CitySearcher, opts WeatherServiceOptions) *WeatherService {
	return &WeatherService{
		provider:     provider,
		searcher:     searcher,
		cache:        opts.Cache,
		cacheMetrics: opts.CacheMetrics,
		cacheTTL:     opts.CacheTTL,
	}
}

// GetBundle assembles the combined weather view for one coordinate pair.
// Current conditions, forecast and air quality are fetched concurrently;
// an air quality failure degrades to zero-valued fields while the other
// two are required. Daily summaries are bucketed in loc, or in the
// location's own UTC offset when loc is nil.
func (s *WeatherService) GetBundle(ctx context.Context, lat, lon float64, loc *time.Location) (*models.WeatherBundle, error) {
	key := bundleCacheKey(lat, lon, loc)
	if s.cache != nil {
		if bundle, found := s.cache.Get(ctx, key); found {
			return bundle, nil
		}
	}

	bundle, err := s.assembleBundle(ctx, lat, lon, loc)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, bundle, s.cacheTTL)
	}
	return bundle, nil
}

func (s *WeatherService) assembleBundle(ctx context.Context, lat, lon float64, loc *time.Location) (*models.WeatherBundle, error) {
	var (
		current    *models.CurrentWeather
		samples    []models.ForecastSample
		air        *models.AirQuality
		currentErr error
		samplesErr error
		airErr     error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		current, currentErr = s.provider.CurrentWeather(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		samples, samplesErr = s.provider.Forecast(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		air, airErr = s.provider.AirPollution(ctx, lat, lon)
	}()
	wg.Wait()

	if currentErr != nil {
		return nil, currentErr
	}
	if samplesErr != nil {
		return nil, samplesErr
	}
	if airErr != nil {
		slog.Warn("air quality unavailable, serving zeros", "lat", lat, "lon", lon, "error", airErr)
		air = &models.AirQuality{}
	}

	if loc == nil {
		loc = time.FixedZone("local", current.Timezone)
	}

	return &models.WeatherBundle{
		CurrentWeather: *current,
		HourlyForecast: forecast.ToHourly(samples),
		DailyForecast:  forecast.ToDaily(samples, loc),
		AirQuality:     *air,
		UVIndex:        uvIndexPlaceholder,
	}, nil
}

// GetBundleByCity resolves a city name to coordinates and assembles its bundle
func (s *WeatherService) GetBundleByCity(ctx context.Context, city string, loc *time.Location) (*models.WeatherBundle, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	results, err := s.provider.DirectGeocode(ctx, city, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.NewNotFoundError("city not found")
	}

	return s.GetBundle(ctx, results[0].Lat, results[0].Lon, loc)
}

// SearchCities returns up to SearchResultLimit candidates for a partial city
// name. Queries shorter than two characters return an empty list without
// touching the network. The fuzzy geocoder is tried first; a successful
// answer is returned as-is, even when empty, so a no-match query never
// spends a second request. Only geocoder failures fall back to the weather
// provider's geocoding endpoint.
func (s *WeatherService) SearchCities(ctx context.Context, query string) ([]models.CityResult, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return []models.CityResult{}, nil
	}

	results, err := s.searcher.Search(ctx, query, SearchResultLimit)
	if err == nil {
		return capResults(results), nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	slog.Warn("city search failed, falling back to provider geocoder", "query", query, "error", err)

	results, err = s.provider.DirectGeocode(ctx, query, SearchResultLimit)
	if err != nil {
		return nil, err
	}
	return capResults(results), nil
}

// GetCacheMetrics returns cache statistics for the debug endpoint
func (s *WeatherService) GetCacheMetrics() map[string]interface{} {
	if s.cacheMetrics == nil {
		return map[string]interface{}{"enabled": false}
	}
	return s.cacheMetrics()
}

func capResults(results []models.CityResult) []models.CityResult {
	if results == nil {
		return []models.CityResult{}
	}
	if len(results) > SearchResultLimit {
		return results[:SearchResultLimit]
	}
	return results
}

func bundleCacheKey(lat, lon float64, loc *time.Location) string {
	key := cache.BundleKey(lat, lon)
	if loc == nil {
		return key
	}
	return fmt.Sprintf("%s:%s", key, loc.String())
}
