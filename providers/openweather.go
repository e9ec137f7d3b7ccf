package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
	"skycast.app/config"
	"skycast.app/errors"
	"skycast.app/models"
)

// OpenWeatherClient issues parameterized calls against the OpenWeatherMap
// data and geocoding APIs. All requests pass through a shared rate limiter.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	geoURL  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewOpenWeatherClient creates a new OpenWeatherMap client
func NewOpenWeatherClient(cfg *config.WeatherConfig) *OpenWeatherClient {
	burst := int(cfg.RPS)
	if burst < 1 {
		burst = 1
	}
	return &OpenWeatherClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		geoURL:  cfg.GeoURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), burst),
	}
}

type owWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owSys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

type owMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Humidity  float64 `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

type owWind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type owCurrentResponse struct {
	Name    string      `json:"name"`
	Sys     *owSys      `json:"sys"`
	Main    *owMain     `json:"main"`
	Wind    owWind      `json:"wind"`
	Weather []owWeather `json:"weather"`
	Clouds  struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Visibility float64 `json:"visibility"`
	Timezone   int     `json:"timezone"`
	Dt         int64   `json:"dt"`
	Coord      struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Message string `json:"message"`
}

type owForecastResponse struct {
	List []struct {
		Dt      int64       `json:"dt"`
		Main    owMain      `json:"main"`
		Weather []owWeather `json:"weather"`
		Wind    owWind      `json:"wind"`
		Clouds  struct {
			All float64 `json:"all"`
		} `json:"clouds"`
		Pop float64 `json:"pop"`
	} `json:"list"`
	Message json.RawMessage `json:"message"`
}

type owAirResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components struct {
			CO   float64 `json:"co"`
			NO   float64 `json:"no"`
			NO2  float64 `json:"no2"`
			O3   float64 `json:"o3"`
			SO2  float64 `json:"so2"`
			PM25 float64 `json:"pm2_5"`
			PM10 float64 `json:"pm10"`
		} `json:"components"`
	} `json:"list"`
}

type owGeoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

// CurrentWeather retrieves normalized current conditions for a coordinate pair
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	return c.currentWeather(ctx, params)
}

// CurrentWeatherByCity retrieves normalized current conditions by city name
func (c *OpenWeatherClient) CurrentWeatherByCity(ctx context.Context, city string) (*models.CurrentWeather, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}
	params := url.Values{}
	params.Set("q", city)
	return c.currentWeather(ctx, params)
}

func (c *OpenWeatherClient) currentWeather(ctx context.Context, params url.Values) (*models.CurrentWeather, error) {
	params.Set("units", "metric")

	var result owCurrentResponse
	if err := c.getJSON(ctx, c.baseURL+"/weather", params, &result); err != nil {
		return nil, err
	}

	if result.Sys == nil || result.Main == nil || len(result.Weather) == 0 {
		message := result.Message
		if message == "" {
			message = "invalid current weather data: missing required fields"
		}
		return nil, errors.NewDataValidationError(message)
	}

	return &models.CurrentWeather{
		City:        result.Name,
		Country:     result.Sys.Country,
		Temp:        result.Main.Temp,
		FeelsLike:   result.Main.FeelsLike,
		Humidity:    result.Main.Humidity,
		Pressure:    result.Main.Pressure,
		WindSpeed:   result.Wind.Speed,
		WindDeg:     result.Wind.Deg,
		Visibility:  result.Visibility,
		Description: result.Weather[0].Description,
		Icon:        result.Weather[0].Icon,
		Main:        result.Weather[0].Main,
		Clouds:      result.Clouds.All,
		Sunrise:     result.Sys.Sunrise,
		Sunset:      result.Sys.Sunset,
		Timezone:    result.Timezone,
		Dt:          result.Dt,
		Lat:         result.Coord.Lat,
		Lon:         result.Coord.Lon,
	}, nil
}

// Forecast retrieves the raw 5-day/3-hour forecast feed for a coordinate pair
func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64) ([]models.ForecastSample, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("units", "metric")

	var result owForecastResponse
	if err := c.getJSON(ctx, c.baseURL+"/forecast", params, &result); err != nil {
		return nil, err
	}

	if result.List == nil {
		return nil, errors.NewDataValidationError("invalid forecast data: missing list")
	}

	samples := make([]models.ForecastSample, 0, len(result.List))
	for _, item := range result.List {
		sample := models.ForecastSample{
			Dt:        item.Dt,
			Temp:      item.Main.Temp,
			TempMin:   item.Main.TempMin,
			TempMax:   item.Main.TempMax,
			Humidity:  item.Main.Humidity,
			Pressure:  item.Main.Pressure,
			WindSpeed: item.Wind.Speed,
			WindDeg:   item.Wind.Deg,
			Pop:       item.Pop,
			Clouds:    item.Clouds.All,
		}
		if len(item.Weather) > 0 {
			sample.Main = item.Weather[0].Main
			sample.Description = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// AirPollution retrieves air quality measurements for a coordinate pair.
// A response with no measurements yields zero-valued fields, not an error.
func (c *OpenWeatherClient) AirPollution(ctx context.Context, lat, lon float64) (*models.AirQuality, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))

	var result owAirResponse
	if err := c.getJSON(ctx, c.baseURL+"/air_pollution", params, &result); err != nil {
		return nil, err
	}

	air := &models.AirQuality{}
	if len(result.List) > 0 {
		entry := result.List[0]
		air.AQI = entry.Main.AQI
		air.CO = entry.Components.CO
		air.NO = entry.Components.NO
		air.NO2 = entry.Components.NO2
		air.O3 = entry.Components.O3
		air.SO2 = entry.Components.SO2
		air.PM25 = entry.Components.PM25
		air.PM10 = entry.Components.PM10
	}
	return air, nil
}

// DirectGeocode resolves a city name to coordinate candidates
func (c *OpenWeatherClient) DirectGeocode(ctx context.Context, query string, limit int) ([]models.CityResult, error) {
	if query == "" {
		return nil, errors.NewValidationError("query cannot be empty")
	}
	if limit < 1 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var results []owGeoResult
	if err := c.getJSON(ctx, c.geoURL+"/direct", params, &results); err != nil {
		return nil, err
	}

	cities := make([]models.CityResult, 0, len(results))
	for _, r := range results {
		cities = append(cities, models.CityResult{
			Name:    r.Name,
			Lat:     r.Lat,
			Lon:     r.Lon,
			Country: r.Country,
			State:   r.State,
		})
	}
	return cities, nil
}

// ProxyGet forwards a GET request to the provider and returns the raw body
// and status code. Used by the proxy endpoints that pass provider-shaped
// JSON straight through to the client.
func (c *OpenWeatherClient) ProxyGet(ctx context.Context, path string, params url.Values) ([]byte, int, error) {
	base := c.baseURL
	if path == "/direct" {
		base = c.geoURL
	}

	body, status, err := c.get(ctx, base+path, params)
	if err != nil {
		return nil, 0, err
	}
	return body, status, nil
}

func (c *OpenWeatherClient) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	body, status, err := c.get(ctx, endpoint, params)
	if err != nil {
		return err
	}

	if status == http.StatusNotFound {
		return errors.NewNotFoundError("city not found")
	}

	if status != http.StatusOK {
		message := extractProviderMessage(body)
		if message == "" {
			message = fmt.Sprintf("weather provider returned status code %d", status)
		}
		return errors.NewExternalAPIError(message, nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.NewExternalAPIError("failed to decode weather data", err)
	}
	return nil
}

func (c *OpenWeatherClient) get(ctx context.Context, endpoint string, params url.Values) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, errors.NewExternalAPIError("rate limiter wait aborted", err)
	}

	params.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, errors.NewExternalAPIError("failed to build provider request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, errors.NewExternalAPIError("failed to reach weather provider", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			// Ignore close error as it's not critical for the main operation
			_ = closeErr
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.NewExternalAPIError("failed to read provider response", err)
	}

	return body, resp.StatusCode, nil
}

// extractProviderMessage pulls the human-readable message out of an
// OpenWeatherMap error body, if one is present.
func extractProviderMessage(body []byte) string {
	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errBody); err != nil {
		return ""
	}
	return errBody.Message
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
