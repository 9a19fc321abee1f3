package lifecycle

import "time"

// Period is the date range a workload summary covers
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodBounds configures the academic-year boundaries. The zero value is
// not usable; build one with DefaultPeriodBounds or from configuration.
type PeriodBounds struct {
	StartMonth   time.Month
	StartDay     int
	EndMonth     time.Month
	EndDay       int
	LateEndMonth time.Month
	LateEndDay   int
}

// DefaultPeriodBounds is Sept 1 through June 30, with late terms running
// through July 15.
func DefaultPeriodBounds() PeriodBounds {
	return PeriodBounds{
		StartMonth:   time.September,
		StartDay:     1,
		EndMonth:     time.June,
		EndDay:       30,
		LateEndMonth: time.July,
		LateEndDay:   15,
	}
}

// AcademicPeriod returns the academic-year period containing now. A date on
// or after the start boundary belongs to the year beginning that calendar
// year; anything earlier belongs to the year that began the previous fall.
// lateTerm selects the extended end boundary.
func AcademicPeriod(now time.Time, bounds PeriodBounds, lateTerm bool) Period {
	year := now.Year()
	boundary := time.Date(year, bounds.StartMonth, bounds.StartDay, 0, 0, 0, 0, time.UTC)
	if now.Before(boundary) {
		year--
	}

	endMonth, endDay := bounds.EndMonth, bounds.EndDay
	if lateTerm {
		endMonth, endDay = bounds.LateEndMonth, bounds.LateEndDay
	}

	return Period{
		Start: time.Date(year, bounds.StartMonth, bounds.StartDay, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year+1, endMonth, endDay, 0, 0, 0, 0, time.UTC),
	}
}
