package forecast_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/forecast"
	"github.com/ridvanpektas1990-bit/amz/internal/isoweek"
)

func TestSeries_BucketsFactsIntoISOWeeks(t *testing.T) {
	series := forecast.NewSeries(2025)
	series.Add([]domain.DemandFact{
		{Date: "2025-01-06", Quantity: 5},
		{Date: "2025-01-07", Quantity: 3},
	})

	points := series.Points()
	require.Len(t, points, isoweek.WeeksPerYear)

	for _, p := range points {
		if p.ISOWeek == 2 {
			assert.Equal(t, 8, p.Total)
		} else {
			assert.Equal(t, 0, p.Total, "week %d should be empty", p.ISOWeek)
		}
	}
}

func TestSeries_DiscardsForeignYearsAndWeek53(t *testing.T) {
	series := forecast.NewSeries(2025)
	series.Add([]domain.DemandFact{
		// ISO 2026 week 1, despite the calendar date being in 2025.
		{Date: "2025-12-29", Quantity: 10},
		// ISO 2024 week 1.
		{Date: "2024-01-03", Quantity: 7},
		{Date: "not-a-date", Quantity: 3},
	})
	for _, p := range series.Points() {
		assert.Equal(t, 0, p.Total)
	}

	// 2027-01-01 computes to ISO week 53 of 2026 and is dropped by the
	// 52-slot policy.
	series2026 := forecast.NewSeries(2026)
	series2026.Add([]domain.DemandFact{{Date: "2027-01-01", Quantity: 4}})
	for _, p := range series2026.Points() {
		assert.Equal(t, 0, p.Total)
	}
}

func TestSeries_OrderAndPageSizeIndependent(t *testing.T) {
	facts := make([]domain.DemandFact, 0, 120)
	dates := []string{"2025-02-03", "2025-02-10", "2025-06-16", "2025-09-01", "2025-12-22"}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 120; i++ {
		facts = append(facts, domain.DemandFact{
			Date:     dates[rng.Intn(len(dates))],
			Quantity: rng.Intn(9),
		})
	}

	whole := forecast.NewSeries(2025)
	whole.Add(facts)

	shuffled := append([]domain.DemandFact(nil), facts...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	paged := forecast.NewSeries(2025)
	for start := 0; start < len(shuffled); start += 7 {
		end := start + 7
		if end > len(shuffled) {
			end = len(shuffled)
		}
		paged.Add(shuffled[start:end])
	}

	assert.Equal(t, whole.Points(), paged.Points())
}

func TestSeries_WeekTotalOutOfRangeIsZero(t *testing.T) {
	series := forecast.NewSeries(2025)
	series.Add([]domain.DemandFact{{Date: "2025-01-06", Quantity: 5}})

	assert.Equal(t, 0, series.WeekTotal(0))
	assert.Equal(t, 0, series.WeekTotal(53))
	assert.Equal(t, 5, series.WeekTotal(2))

	var nilSeries *forecast.Series
	assert.Equal(t, 0, nilSeries.WeekTotal(2))
}
