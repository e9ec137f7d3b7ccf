package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skycast.app/models"
)

func sampleAt(dt int64, temp float64) models.ForecastSample {
	return models.ForecastSample{
		Dt:          dt,
		Temp:        temp,
		TempMin:     temp - 2,
		TempMax:     temp + 2,
		Humidity:    50,
		WindSpeed:   4,
		Pop:         0.1,
		Main:        "Clouds",
		Description: "scattered clouds",
		Icon:        "03d",
	}
}

// threeHourSeries builds n samples spaced 3 hours apart starting at start.
func threeHourSeries(start time.Time, n int) []models.ForecastSample {
	samples := make([]models.ForecastSample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, sampleAt(start.Add(time.Duration(i)*3*time.Hour).Unix(), 10+float64(i)))
	}
	return samples
}

func TestToHourly(t *testing.T) {
	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, ToHourly(nil))
	})

	t.Run("ShortInput", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		samples := threeHourSeries(start, 5)

		entries := ToHourly(samples)

		assert.Len(t, entries, 5)
	})

	t.Run("TruncatesToTwelve", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		samples := threeHourSeries(start, 40)

		entries := ToHourly(samples)

		assert.Len(t, entries, HourlyLimit)
	})

	t.Run("FieldsCopiedVerbatim", func(t *testing.T) {
		s := models.ForecastSample{
			Dt:          1710057600,
			Temp:        13.7,
			TempMin:     11.2,
			TempMax:     15.9,
			Humidity:    81,
			WindSpeed:   6.3,
			Pop:         0.45,
			Main:        "Rain",
			Description: "light rain",
			Icon:        "10d",
		}

		entries := ToHourly([]models.ForecastSample{s})

		require.Len(t, entries, 1)
		assert.Equal(t, models.ForecastEntry{
			Dt:          s.Dt,
			Temp:        s.Temp,
			TempMin:     s.TempMin,
			TempMax:     s.TempMax,
			Humidity:    s.Humidity,
			Description: s.Description,
			Icon:        s.Icon,
			Main:        s.Main,
			WindSpeed:   s.WindSpeed,
			Pop:         s.Pop,
		}, entries[0])
	})
}

func TestToDaily(t *testing.T) {
	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, ToDaily(nil, time.UTC))
	})

	t.Run("OneEntryPerDay", func(t *testing.T) {
		// 5 days x 8 samples, starting at midnight UTC
		start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		samples := threeHourSeries(start, 40)

		entries := ToDaily(samples, time.UTC)

		require.Len(t, entries, 5)
		for i, e := range entries {
			// each day's dt is its first sample's dt
			assert.Equal(t, start.Add(time.Duration(i)*24*time.Hour).Unix(), e.Dt)
		}
	})

	t.Run("GroupSizesCoverInput", func(t *testing.T) {
		// feed starting mid-day so the first and last day are partial
		start := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
		samples := threeHourSeries(start, 40)

		entries := ToDaily(samples, time.UTC)

		total := 0
		for _, e := range entries {
			day := time.Unix(e.Dt, 0).UTC().Format("2006-01-02")
			for _, s := range samples {
				if time.Unix(s.Dt, 0).UTC().Format("2006-01-02") == day {
					total++
				}
			}
		}
		assert.Equal(t, len(samples), total)
	})

	t.Run("SingleDayStatistics", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC)
		samples := []models.ForecastSample{
			sampleAt(start.Unix(), 10),
			sampleAt(start.Add(3*time.Hour).Unix(), 20),
			sampleAt(start.Add(6*time.Hour).Unix(), 30),
		}
		samples[0].Description = "morning"
		samples[1].Description = "midday"
		samples[2].Description = "evening"
		samples[1].Pop = 0.8

		entries := ToDaily(samples, time.UTC)

		require.Len(t, entries, 1)
		e := entries[0]
		assert.Equal(t, 20.0, e.Temp)
		assert.Equal(t, 8.0, e.TempMin)  // min over temp_min fields
		assert.Equal(t, 32.0, e.TempMax) // max over temp_max fields
		assert.Equal(t, 0.8, e.Pop)
		// representative sample is index floor(3/2) = 1
		assert.Equal(t, "midday", e.Description)
		assert.Equal(t, samples[0].Dt, e.Dt)
	})

	t.Run("EvenCountRepresentative", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		samples := threeHourSeries(start, 4)
		for i := range samples {
			samples[i].Icon = string(rune('a' + i))
		}

		entries := ToDaily(samples, time.UTC)

		require.Len(t, entries, 1)
		// floor(4/2) = 2: the third sample supplies categorical fields
		assert.Equal(t, "c", entries[0].Icon)
	})

	t.Run("SingleSampleGroup", func(t *testing.T) {
		s := sampleAt(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC).Unix(), 17)

		entries := ToDaily([]models.ForecastSample{s}, time.UTC)

		require.Len(t, entries, 1)
		assert.Equal(t, s.Temp, entries[0].Temp)
		assert.Equal(t, s.TempMin, entries[0].TempMin)
		assert.Equal(t, s.TempMax, entries[0].TempMax)
		assert.Equal(t, s.Description, entries[0].Description)
	})

	t.Run("HumidityRoundedMean", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		samples := threeHourSeries(start, 3)
		samples[0].Humidity = 50
		samples[1].Humidity = 51
		samples[2].Humidity = 51

		entries := ToDaily(samples, time.UTC)

		require.Len(t, entries, 1)
		assert.Equal(t, 51.0, entries[0].Humidity) // round(50.666)
	})

	t.Run("LocationShiftsDayBoundaries", func(t *testing.T) {
		// 23:00 and 01:00 UTC straddle midnight in UTC but share a calendar
		// day twelve hours east
		east := time.FixedZone("UTC+12", 12*3600)
		samples := []models.ForecastSample{
			sampleAt(time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC).Unix(), 10),
			sampleAt(time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC).Unix(), 12),
		}

		assert.Len(t, ToDaily(samples, time.UTC), 2)
		assert.Len(t, ToDaily(samples, east), 1)
	})

	t.Run("GroupsKeepArrivalOrder", func(t *testing.T) {
		// an out-of-order feed must not be re-sorted by date
		d1 := sampleAt(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC).Unix(), 15)
		d2 := sampleAt(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC).Unix(), 10)

		entries := ToDaily([]models.ForecastSample{d1, d2}, time.UTC)

		require.Len(t, entries, 2)
		assert.Equal(t, d1.Dt, entries[0].Dt)
		assert.Equal(t, d2.Dt, entries[1].Dt)
	})

	t.Run("MissingPopTreatedAsZero", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		samples := threeHourSeries(start, 2)
		samples[0].Pop = 0
		samples[1].Pop = 0

		entries := ToDaily(samples, time.UTC)

		require.Len(t, entries, 1)
		assert.Equal(t, 0.0, entries[0].Pop)
	})
}
