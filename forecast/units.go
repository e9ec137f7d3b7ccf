package forecast

import "math"

// TemperatureUnit selects the display unit for temperatures
type TemperatureUnit string

// SpeedUnit selects the display unit for wind speeds
type SpeedUnit string

const (
	UnitCelsius    TemperatureUnit = "celsius"
	UnitFahrenheit TemperatureUnit = "fahrenheit"

	UnitKmh SpeedUnit = "kmh"
	UnitMph SpeedUnit = "mph"
)

// CelsiusToDisplay converts a Celsius reading to a rounded display value in
// the requested unit. Unknown units fall back to Celsius.
func CelsiusToDisplay(tempC float64, unit TemperatureUnit) int {
	if unit == UnitFahrenheit {
		return int(math.Round(tempC*9/5 + 32))
	}
	return int(math.Round(tempC))
}

// SpeedToDisplay converts a wind speed in m/s to a rounded display value in
// the requested unit. Unknown units fall back to km/h.
func SpeedToDisplay(speedMs float64, unit SpeedUnit) int {
	if unit == UnitMph {
		return int(math.Round(speedMs * 2.237))
	}
	return int(math.Round(speedMs * 3.6))
}
