package providers

import (
	"context"

	"skycast.app/models"
)

// WeatherProvider defines the interface for the upstream weather service
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*models.CurrentWeather, error)
	CurrentWeatherByCity(ctx context.Context, city string) (*models.CurrentWeather, error)
	Forecast(ctx context.Context, lat, lon float64) ([]models.ForecastSample, error)
	AirPollution(ctx context.Context, lat, lon float64) (*models.AirQuality, error)
	DirectGeocode(ctx context.Context, query string, limit int) ([]models.CityResult, error)
}

// CitySearcher defines the interface for free-text city search
type CitySearcher interface {
	Search(ctx context.Context, query string, count int) ([]models.CityResult, error)
}

// EmailProvider defines the interface for email providers
type EmailProvider interface {
	SendEmail(to, subject, body string, isHTML bool) error
}
