package service

import (
	"time"

	"github.com/freshtrack/freshtrack-golang/internal/models"
)

const (
	// DefaultHorizonDays is how far ahead the forecast projects.
	DefaultHorizonDays = 7

	// DefaultWindowDays bounds the consumption history the forecast reads.
	DefaultWindowDays = 30

	// minHistoryDays is the minimum number of distinct days with recorded
	// consumption before a non-zero forecast is produced.
	minHistoryDays = 3
)

const dayFormat = "2006-01-02"

// GroupConsumptionByDay sums consumption quantity per calendar day (by the
// entry's consumption date, in UTC). Days with no entries are absent from the
// result, not zero.
func GroupConsumptionByDay(entries []models.ConsumptionEntry) map[string]float64 {
	grouped := make(map[string]float64)
	for _, e := range entries {
		day := e.ConsumptionDate.UTC().Format(dayFormat)
		grouped[day] += e.Quantity
	}
	return grouped
}

// Forecast returns horizonDays predicted daily quantities. With fewer than
// three distinct days of history it predicts zeros; otherwise it repeats the
// mean of the grouped-day totals (divided by the number of days present, not
// by the window length). This flat average is the whole model on purpose.
func Forecast(grouped map[string]float64, horizonDays int) []float64 {
	out := make([]float64, horizonDays)
	if len(grouped) < minHistoryDays {
		return out
	}

	var total float64
	for _, q := range grouped {
		total += q
	}
	mean := total / float64(len(grouped))
	for i := range out {
		out[i] = mean
	}
	return out
}

// LastNDays lists the n calendar days ending today (UTC), oldest first.
func LastNDays(now time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, now.UTC().AddDate(0, 0, -i).Format(dayFormat))
	}
	return days
}

// NextNDays lists the n calendar days after today (UTC), oldest first.
func NextNDays(now time.Time, n int) []string {
	days := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		days = append(days, now.UTC().AddDate(0, 0, i).Format(dayFormat))
	}
	return days
}
