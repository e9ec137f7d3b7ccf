// Package forecast turns the provider's flat 3-hour forecast feed into the
// hourly and daily views consumed by the dashboard, and derives the
// categorical weather theme and display units from current conditions.
package forecast

import (
	"math"
	"time"

	"skycast.app/models"
)

// HourlyLimit is the number of leading forecast samples projected into the
// hourly view.
const HourlyLimit = 12

// ToHourly returns the first min(HourlyLimit, len(samples)) samples,
// field-projected. Values are copied verbatim; order is preserved.
func ToHourly(samples []models.ForecastSample) []models.ForecastEntry {
	n := len(samples)
	if n > HourlyLimit {
		n = HourlyLimit
	}

	entries := make([]models.ForecastEntry, 0, n)
	for _, s := range samples[:n] {
		entries = append(entries, project(s))
	}
	return entries
}

// ToDaily buckets samples into one summary per calendar day. The grouping key
// is the sample's date in loc, so the observer location decides where day
// boundaries fall. Groups are emitted in the order their first sample appears
// in the input; the aggregator does not re-sort by date.
func ToDaily(samples []models.ForecastSample, loc *time.Location) []models.ForecastEntry {
	if loc == nil {
		loc = time.Local
	}

	groups := make(map[string][]models.ForecastSample)
	var order []string

	for _, s := range samples {
		key := time.Unix(s.Dt, 0).In(loc).Format("2006-01-02")
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], s)
	}

	entries := make([]models.ForecastEntry, 0, len(order))
	for _, key := range order {
		entries = append(entries, summarize(groups[key]))
	}
	return entries
}

// summarize reduces one day's samples into a single entry. The categorical
// fields come from the middle-indexed sample (floor division on even counts).
func summarize(day []models.ForecastSample) models.ForecastEntry {
	mid := day[len(day)/2]

	var tempSum, humiditySum, windSum float64
	tempMin := day[0].TempMin
	tempMax := day[0].TempMax
	popMax := 0.0

	for _, s := range day {
		tempSum += s.Temp
		humiditySum += s.Humidity
		windSum += s.WindSpeed
		if s.TempMin < tempMin {
			tempMin = s.TempMin
		}
		if s.TempMax > tempMax {
			tempMax = s.TempMax
		}
		if s.Pop > popMax {
			popMax = s.Pop
		}
	}

	n := float64(len(day))
	return models.ForecastEntry{
		Dt:          day[0].Dt,
		Temp:        tempSum / n,
		TempMin:     tempMin,
		TempMax:     tempMax,
		Humidity:    math.Round(humiditySum / n),
		Description: mid.Description,
		Icon:        mid.Icon,
		Main:        mid.Main,
		WindSpeed:   windSum / n,
		Pop:         popMax,
	}
}

func project(s models.ForecastSample) models.ForecastEntry {
	return models.ForecastEntry{
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
	}
}
