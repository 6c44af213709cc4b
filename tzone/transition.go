package tzone

import (
	"time"

	"github.com/ngrash/go-tzone/internal/datemath"
)

// resolveTransition materializes a transition descriptor for a calendar
// year. The result is an Unspecified wall-clock reading local to the
// rule's zone. Resolution cannot fail: a fixed day beyond the month's
// length clamps to the last day.
func resolveTransition(year int, tt TransitionTime) DateTime {
	var day int
	switch {
	case tt.fixedDate:
		day = tt.day
		if last := datemath.DaysInMonth(year, tt.month); day > last {
			day = last
		}
	case tt.week <= 4:
		day = datemath.NthWeekdayOfMonth(year, tt.month, tt.week, tt.weekday)
	default:
		day = datemath.LastWeekdayOfMonth(year, tt.month, tt.weekday)
	}
	return Date(year, tt.month, day, 0, 0, 0, 0, Unspecified).Add(tt.timeOfDay)
}

// ResolveYear materializes the boundary for a calendar year as an
// Unspecified wall-clock reading local to the rule's zone.
func (b TransitionBoundary) ResolveYear(year int) DateTime {
	return resolveBoundary(year, b)
}

// resolveBoundary materializes one end of a rule's daylight period for a
// calendar year. Year markers resolve to the literal first and last
// instants of the year.
func resolveBoundary(year int, b TransitionBoundary) DateTime {
	switch b.Form {
	case BoundaryYearStart:
		return Date(year, time.January, 1, 0, 0, 0, 0, Unspecified)
	case BoundaryYearEnd:
		return Date(year, time.December, 31, 23, 59, 59, 999999999, Unspecified)
	default:
		return resolveTransition(year, b.Transition)
	}
}
