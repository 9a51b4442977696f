// Package forecast buckets day-level demand into ISO-week series and projects
// inventory depletion and reorder quantities from them.
package forecast

import (
	"time"

	"github.com/ridvanpektas1990-bit/amz/internal/domain"
	"github.com/ridvanpektas1990-bit/amz/internal/isoweek"
)

// Series is the fixed 52-slot weekly demand series of one ISO year.
//
// Accumulation is associative and commutative, so facts may arrive in any
// order and any page size. Facts whose ISO year does not match, whose date
// does not parse, or whose ISO week computes to 53 are discarded.
type Series struct {
	year   int
	totals [isoweek.WeeksPerYear + 1]int // 1-based
}

func NewSeries(year int) *Series {
	return &Series{year: year}
}

// Add folds one page of demand facts into the series.
func (s *Series) Add(facts []domain.DemandFact) {
	for _, fact := range facts {
		day, err := time.ParseInLocation("2006-01-02", fact.Date, time.UTC)
		if err != nil {
			continue
		}
		isoYear, week := isoweek.WeekOf(day)
		if isoYear != s.year || week > isoweek.WeeksPerYear {
			continue
		}
		s.totals[week] += fact.Quantity
	}
}

// Year returns the target ISO year of the series.
func (s *Series) Year() int {
	return s.year
}

// WeekTotal returns the demand of one week slot; weeks outside 1..52 are 0.
func (s *Series) WeekTotal(week int) int {
	if s == nil || week < 1 || week > isoweek.WeeksPerYear {
		return 0
	}
	return s.totals[week]
}

// Points renders all 52 slots, zero-filled where no facts landed.
func (s *Series) Points() []domain.WeekPoint {
	points := make([]domain.WeekPoint, 0, isoweek.WeeksPerYear)
	for week := 1; week <= isoweek.WeeksPerYear; week++ {
		start, end := isoweek.Bounds(s.year, week)
		points = append(points, domain.WeekPoint{
			ISOYear:   s.year,
			ISOWeek:   week,
			WeekStart: start,
			WeekEnd:   end,
			Total:     s.totals[week],
		})
	}
	return points
}
