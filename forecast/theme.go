package forecast

import (
	"strings"

	"skycast.app/models"
)

// WeatherTheme is the categorical visual theme derived from current conditions
type WeatherTheme string

const (
	ThemeSunny  WeatherTheme = "sunny"
	ThemeRainy  WeatherTheme = "rainy"
	ThemeCloudy WeatherTheme = "cloudy"
	ThemeSnowy  WeatherTheme = "snowy"
	ThemeNight  WeatherTheme = "night"
)

// DeriveTheme maps current conditions to a theme. An observation time outside
// [sunrise, sunset] always yields night, regardless of the category string.
func DeriveTheme(current models.CurrentWeather) WeatherTheme {
	if current.Dt < current.Sunrise || current.Dt > current.Sunset {
		return ThemeNight
	}

	main := strings.ToLower(current.Main)
	switch {
	case strings.Contains(main, "rain"),
		strings.Contains(main, "drizzle"),
		strings.Contains(main, "thunderstorm"):
		return ThemeRainy
	case strings.Contains(main, "snow"):
		return ThemeSnowy
	case strings.Contains(main, "cloud"),
		strings.Contains(main, "mist"),
		strings.Contains(main, "fog"):
		return ThemeCloudy
	default:
		return ThemeSunny
	}
}
