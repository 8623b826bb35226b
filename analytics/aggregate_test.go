package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecopulse/models"
)

func activity(category string, date time.Time, kg float64) models.Activity {
	return models.Activity{
		Model:      gorm.Model{CreatedAt: date},
		Category:   category,
		Date:       date,
		EmissionKg: kg,
	}
}

func day(offset int) time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestByCategoryDropsZeroContributions(t *testing.T) {
	activities := []models.Activity{
		activity("travel", day(0), 21),
		activity("travel", day(1), 6.75),
		activity("travel", day(2), 0), // trajet à vélo
		activity("marketing", day(3), 0),
		activity("", day(4), 3.5),
	}

	got := ByCategory(activities)

	require.Equal(t, map[string]float64{
		"travel": 27.75,
		"other":  3.5,
	}, got)
	require.NotContains(t, got, "marketing")
}

func TestMonthlyTrendSortedAndKeyedByOccurrenceDate(t *testing.T) {
	activities := []models.Activity{
		// créée aujourd'hui mais datée de janvier : comptée en janvier
		{Model: gorm.Model{CreatedAt: day(0)}, Category: "travel", Date: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), EmissionKg: 10},
		activity("events", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 20),
		activity("travel", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 5),
	}
	records := []models.EnergyRecord{
		{Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), EmissionKg: 7},
	}

	got := MonthlyTrend(activities, records, 0)

	require.Equal(t, []MonthlyPoint{
		{Month: "2026-01", EmissionKg: 10},
		{Month: "2026-02", EmissionKg: 5},
		{Month: "2026-03", EmissionKg: 27},
	}, got)
}

func TestMonthlyTrendTruncatesToLastN(t *testing.T) {
	var activities []models.Activity
	for m := 1; m <= 14; m++ {
		activities = append(activities, activity("travel", time.Date(2025, time.Month(m), 1, 0, 0, 0, 0, time.UTC), float64(m)))
	}

	got := MonthlyTrend(activities, nil, 12)

	require.Len(t, got, 12)
	require.Equal(t, "2025-03", got[0].Month)
	require.Equal(t, "2026-02", got[11].Month)
}

func TestMonthlyTrendSkipsZeroDates(t *testing.T) {
	activities := []models.Activity{
		{Category: "travel", EmissionKg: 10}, // date d'occurrence absente
		activity("travel", day(0), 5),
	}

	got := MonthlyTrend(activities, nil, 0)
	require.Len(t, got, 1)
}

func TestFilterCreatedSince(t *testing.T) {
	activities := []models.Activity{
		activity("travel", day(-40), 1),
		activity("travel", day(-10), 2),
		activity("travel", day(0), 3),
	}

	got := FilterCreatedSince(activities, day(-30))

	require.Len(t, got, 2)
	require.Equal(t, 5.0, TotalEmissions(got))
}

func TestAggregateIsDeterministic(t *testing.T) {
	activities := []models.Activity{
		activity("travel", day(0), 21),
		activity("events", day(1), 50),
	}
	records := []models.EnergyRecord{
		{Date: day(2), ElectricityKwh: 120, EmissionKg: 60},
	}

	first := Aggregate(activities, records)
	second := Aggregate(activities, records)

	require.Equal(t, first, second)
	require.Equal(t, 71.0, first.ActivityKg)
	require.Equal(t, 60.0, first.EnergyKg)
	require.Equal(t, 131.0, first.CombinedKg)
}

func TestReductionPercentWindowing(t *testing.T) {
	build := func(recentEach, olderEach float64, extra int) []models.Activity {
		var out []models.Activity
		for i := 0; i < 15; i++ {
			out = append(out, activity("travel", day(-i), recentEach))
		}
		for i := 0; i < 15; i++ {
			out = append(out, activity("travel", day(-15-i), olderEach))
		}
		for i := 0; i < extra; i++ {
			out = append(out, activity("travel", day(-30-i), 1))
		}
		return out
	}

	// 30 activités exactement : tendance indéfinie
	require.Equal(t, 0.0, reductionPercent(build(6, 10, 0), 15))
	// 31 activités : (150-90)/150 = 40 %
	require.Equal(t, 40.0, reductionPercent(build(6, 10, 1), 15))
	// tendance négative quand les émissions récentes augmentent
	require.Equal(t, -50.0, reductionPercent(build(9, 6, 1), 15))
	// fenêtre précédente nulle : indéfinie
	require.Equal(t, 0.0, reductionPercent(build(6, 0, 1), 15))
}
