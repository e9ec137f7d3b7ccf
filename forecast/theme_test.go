package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"skycast.app/models"
)

func currentWith(dt, sunrise, sunset int64, main string) models.CurrentWeather {
	return models.CurrentWeather{
		Dt:      dt,
		Sunrise: sunrise,
		Sunset:  sunset,
		Main:    main,
	}
}

func TestDeriveTheme(t *testing.T) {
	tests := []struct {
		name    string
		current models.CurrentWeather
		want    WeatherTheme
	}{
		{"ClearDaytime", currentWith(1000, 500, 2000, "Clear"), ThemeSunny},
		{"RainDaytime", currentWith(1000, 500, 2000, "Rain"), ThemeRainy},
		{"DrizzleDaytime", currentWith(1000, 500, 2000, "Drizzle"), ThemeRainy},
		{"ThunderstormDaytime", currentWith(1000, 500, 2000, "Thunderstorm"), ThemeRainy},
		{"SnowDaytime", currentWith(1000, 500, 2000, "Snow"), ThemeSnowy},
		{"CloudsDaytime", currentWith(1000, 500, 2000, "Clouds"), ThemeCloudy},
		{"MistDaytime", currentWith(1000, 500, 2000, "Mist"), ThemeCloudy},
		{"FogDaytime", currentWith(1000, 500, 2000, "Fog"), ThemeCloudy},
		{"UnknownCategory", currentWith(1000, 500, 2000, "Haze"), ThemeSunny},
		{"AfterSunset", currentWith(2100, 500, 2000, "Rain"), ThemeNight},
		{"BeforeSunrise", currentWith(400, 500, 2000, "Clear"), ThemeNight},
		{"NightOverridesClear", currentWith(2100, 500, 2000, "Clear"), ThemeNight},
		{"SunsetBoundaryIsDay", currentWith(2000, 500, 2000, "Clear"), ThemeSunny},
		{"SunriseBoundaryIsDay", currentWith(500, 500, 2000, "Clear"), ThemeSunny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTheme(tt.current))
		})
	}
}

func TestDeriveTheme_CaseInsensitive(t *testing.T) {
	assert.Equal(t, ThemeRainy, DeriveTheme(currentWith(1000, 500, 2000, "RAIN")))
	assert.Equal(t, ThemeCloudy, DeriveTheme(currentWith(1000, 500, 2000, "clouds")))
}
