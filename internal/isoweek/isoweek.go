// Package isoweek anchors all time bucketing on ISO-8601 week numbering.
// All computation is in UTC.
package isoweek

import "time"

// WeeksPerYear is the fixed number of week slots rendered per year. Days whose
// ISO week computes to 53 are dropped from per-year series rather than crashing
// or shifting; the forecast walk depends on this bound.
const WeeksPerYear = 52

// WeekOf returns the ISO year and ISO week of t, evaluated in UTC.
func WeekOf(t time.Time) (isoYear, isoWeek int) {
	return t.UTC().ISOWeek()
}

// Bounds returns the UTC start (Monday 00:00:00.000) and inclusive end
// (Sunday 23:59:59.999) of the given ISO week.
//
// week values outside 1..52 are tolerated and roll arithmetically into
// adjacent years, which is how forecast projection steps across year
// boundaries: Bounds(2025, 53) is the first week of the 2026 cycle.
func Bounds(isoYear, week int) (start, end time.Time) {
	start = weekStart(isoYear, week)
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// Normalize rolls an out-of-range week number into its canonical
// (isoYear, isoWeek) pair.
func Normalize(isoYear, week int) (int, int) {
	return WeekOf(weekStart(isoYear, week))
}

// weekStart computes the Monday starting the given ISO week. January 4th is
// always inside ISO week 1 of its year, so week 1's Monday is found from
// there and further weeks are plain 7-day arithmetic.
func weekStart(isoYear, week int) time.Time {
	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	firstMonday := jan4.AddDate(0, 0, 1-wd)
	return firstMonday.AddDate(0, 0, (week-1)*7)
}
