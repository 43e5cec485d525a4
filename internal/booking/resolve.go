package booking

import "time"

// Policy controls the two behaviors that changed across generations of
// this tool: whether occurrence search may land on the current day, and
// how long after booking opens an attempt is still worth making.
type Policy struct {
	// SearchFromTomorrow excludes today from occurrence search even when
	// today's weekday matches. Useful when a same-day class is always
	// already past its booking window by the time the tool runs.
	SearchFromTomorrow bool

	// Window is how long after BookableEarliest an attempt is still made.
	// Zero disables the expiry check.
	Window time.Duration
}

// isoWeekday maps time.Weekday (Sunday=0) to ISO 8601 (Monday=1..Sunday=7).
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// NextOccurrence returns midnight of the earliest date whose ISO weekday
// equals weekday, at or after from's date (or strictly after it under the
// tomorrow-only policy). It stays in from's location. weekday must already
// be validated to 1..7, so the walk always ends within seven steps.
func NextOccurrence(weekday int, from time.Time, p Policy) time.Time {
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	if p.SearchFromTomorrow {
		day = day.AddDate(0, 0, 1)
	}
	for isoWeekday(day.Weekday()) != weekday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}
