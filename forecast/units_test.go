package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCelsiusToDisplay(t *testing.T) {
	tests := []struct {
		name  string
		tempC float64
		unit  TemperatureUnit
		want  int
	}{
		{"ZeroCelsius", 0, UnitCelsius, 0},
		{"ZeroFahrenheit", 0, UnitFahrenheit, 32},
		{"BoilingFahrenheit", 100, UnitFahrenheit, 212},
		{"RoundsHalfUp", 20.5, UnitCelsius, 21},
		{"NegativeCelsius", -3.4, UnitCelsius, -3},
		{"NegativeFahrenheit", -40, UnitFahrenheit, -40},
		{"UnknownUnitFallsBack", 18.2, TemperatureUnit("kelvin"), 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CelsiusToDisplay(tt.tempC, tt.unit))
		})
	}
}

func TestSpeedToDisplay(t *testing.T) {
	tests := []struct {
		name    string
		speedMs float64
		unit    SpeedUnit
		want    int
	}{
		{"TenToKmh", 10, UnitKmh, 36},
		{"TenToMph", 10, UnitMph, 22},
		{"ZeroSpeed", 0, UnitKmh, 0},
		{"RoundsKmh", 5.3, UnitKmh, 19},
		{"UnknownUnitFallsBack", 10, SpeedUnit("knots"), 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SpeedToDisplay(tt.speedMs, tt.unit))
		})
	}
}
