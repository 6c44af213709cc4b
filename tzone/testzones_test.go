package tzone

import (
	"testing"
	"time"
)

// Zone fixtures used across the resolver and converter tests.

func allDatesRule(t *testing.T, daylightDelta time.Duration, start, end TransitionBoundary) AdjustmentRule {
	t.Helper()
	return yearSpanRule(t, 1, 9999, daylightDelta, start, end)
}

func yearSpanRule(t *testing.T, fromYear, toYear int, daylightDelta time.Duration, start, end TransitionBoundary) AdjustmentRule {
	t.Helper()
	r, err := NewAdjustmentRule(
		Date(fromYear, time.January, 1, 0, 0, 0, 0, Unspecified),
		Date(toYear, time.December, 31, 0, 0, 0, 0, Unspecified),
		daylightDelta, 0, start, end,
	)
	if err != nil {
		t.Fatalf("NewAdjustmentRule: %v", err)
	}
	return r
}

func mustZone(t *testing.T, id string, baseOffset time.Duration, rules ...AdjustmentRule) *TimeZone {
	t.Helper()
	z, err := New(id, baseOffset, rules)
	if err != nil {
		t.Fatalf("New(%s): %v", id, err)
	}
	return z
}

// pacificZone transitions forward on the second Sunday of March at 02:00
// and back on the first Sunday of November at 02:00, base offset -08:00.
func pacificZone(t *testing.T) *TimeZone {
	t.Helper()
	rule := allDatesRule(t, time.Hour,
		BoundaryAt(mustFloating(t, time.March, 2, time.Sunday, 2*time.Hour)),
		BoundaryAt(mustFloating(t, time.November, 1, time.Sunday, 2*time.Hour)))
	return mustZone(t, "Test/Pacific", -8*time.Hour, rule)
}

func easternZone(t *testing.T) *TimeZone {
	t.Helper()
	rule := allDatesRule(t, time.Hour,
		BoundaryAt(mustFloating(t, time.March, 2, time.Sunday, 2*time.Hour)),
		BoundaryAt(mustFloating(t, time.November, 1, time.Sunday, 2*time.Hour)))
	return mustZone(t, "Test/Eastern", -5*time.Hour, rule)
}

// southernZone starts daylight on the first Sunday of October and ends it
// on the first Sunday of April, so the period spans the year boundary.
func southernZone(t *testing.T) *TimeZone {
	t.Helper()
	rule := allDatesRule(t, time.Hour,
		BoundaryAt(mustFloating(t, time.October, 1, time.Sunday, 2*time.Hour)),
		BoundaryAt(mustFloating(t, time.April, 1, time.Sunday, 3*time.Hour)))
	return mustZone(t, "Test/Southern", 10*time.Hour, rule)
}

// reducedZone moves clocks backward when its daylight period starts, so
// the ambiguous window sits at the start and the gap at the end.
func reducedZone(t *testing.T) *TimeZone {
	t.Helper()
	rule := allDatesRule(t, -time.Hour,
		BoundaryAt(mustFloating(t, time.April, 1, time.Sunday, 2*time.Hour)),
		BoundaryAt(mustFloating(t, time.October, LastWeek, time.Sunday, 2*time.Hour)))
	return mustZone(t, "Test/Reduced", 2*time.Hour, rule)
}

// permanentShiftZone models a zone that switched to year-round daylight in
// 2011 and back in 2013: the 2011 rule runs daylight through the year end,
// 2012 is fully inside daylight, and the 2013 rule ends it in October.
func permanentShiftZone(t *testing.T) *TimeZone {
	t.Helper()
	r2011 := yearSpanRule(t, 2011, 2011, time.Hour,
		BoundaryAt(mustFloating(t, time.March, LastWeek, time.Sunday, 2*time.Hour)),
		YearEndBoundary())
	r2012 := yearSpanRule(t, 2012, 2012, time.Hour,
		YearStartBoundary(),
		YearEndBoundary())
	r2013 := yearSpanRule(t, 2013, 2013, time.Hour,
		YearStartBoundary(),
		BoundaryAt(mustFloating(t, time.October, LastWeek, time.Sunday, 3*time.Hour)))
	return mustZone(t, "Test/PermanentShift", 3*time.Hour, r2011, r2012, r2013)
}
