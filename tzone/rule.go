package tzone

import (
	"fmt"
	"time"
)

// LastWeek selects the last occurrence of a weekday within a month in a
// floating transition rule.
const LastWeek = 5

// TransitionTime describes when, within a calendar year, a daylight
// transition occurs: either on a fixed calendar date or on the nth (or
// last) occurrence of a weekday in a month. It produces exactly one
// concrete date per year.
type TransitionTime struct {
	timeOfDay time.Duration
	month     time.Month
	day       int
	week      int
	weekday   time.Weekday
	fixedDate bool
}

// NewFixedDateTransition creates a transition on a fixed month and day. A
// day beyond the length of the month in a given year is clamped to the last
// day of that month when the transition is resolved.
func NewFixedDateTransition(month time.Month, day int, timeOfDay time.Duration) (TransitionTime, error) {
	if err := validateTransitionCommon(month, timeOfDay); err != nil {
		return TransitionTime{}, err
	}
	if day < 1 || day > 31 {
		return TransitionTime{}, fmt.Errorf("%w: day %d outside 1..31", ErrMalformedRule, day)
	}
	return TransitionTime{month: month, day: day, timeOfDay: timeOfDay, fixedDate: true}, nil
}

// NewFloatingDateTransition creates a transition on the week'th occurrence
// of weekday in month, where week is 1..4 or LastWeek.
func NewFloatingDateTransition(month time.Month, week int, weekday time.Weekday, timeOfDay time.Duration) (TransitionTime, error) {
	if err := validateTransitionCommon(month, timeOfDay); err != nil {
		return TransitionTime{}, err
	}
	if week < 1 || week > LastWeek {
		return TransitionTime{}, fmt.Errorf("%w: week %d outside 1..%d", ErrMalformedRule, week, LastWeek)
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return TransitionTime{}, fmt.Errorf("%w: invalid weekday %d", ErrMalformedRule, weekday)
	}
	return TransitionTime{month: month, week: week, weekday: weekday, timeOfDay: timeOfDay}, nil
}

func validateTransitionCommon(month time.Month, timeOfDay time.Duration) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: invalid month %d", ErrMalformedRule, month)
	}
	if timeOfDay < 0 || timeOfDay >= 24*time.Hour {
		return fmt.Errorf("%w: time of day %v outside [0h, 24h)", ErrMalformedRule, timeOfDay)
	}
	return nil
}

func (tt TransitionTime) Month() time.Month { return tt.month }

func (tt TransitionTime) Day() int { return tt.day }

func (tt TransitionTime) Week() int { return tt.week }

func (tt TransitionTime) Weekday() time.Weekday { return tt.weekday }

func (tt TransitionTime) TimeOfDay() time.Duration { return tt.timeOfDay }

func (tt TransitionTime) IsFixedDate() bool { return tt.fixedDate }

// BoundaryForm discriminates the variants of a TransitionBoundary.
type BoundaryForm uint8

const (
	// BoundaryTransition marks a boundary described by an explicit
	// TransitionTime.
	BoundaryTransition BoundaryForm = iota
	// BoundaryYearStart marks a rule whose daylight period is already
	// active at Jan 1 00:00 of the rule's year.
	BoundaryYearStart
	// BoundaryYearEnd marks a rule whose daylight period is still active
	// at the last instant of the rule's year.
	BoundaryYearEnd
)

// TransitionBoundary is one end of a rule's daylight period: an explicit
// transition, or a marker that daylight carries across the year boundary
// (in which case the neighboring year's rule completes the picture).
type TransitionBoundary struct {
	Form       BoundaryForm
	Transition TransitionTime
}

// BoundaryAt wraps an explicit transition in a boundary.
func BoundaryAt(tt TransitionTime) TransitionBoundary {
	return TransitionBoundary{Form: BoundaryTransition, Transition: tt}
}

// YearStartBoundary marks daylight as active from the start of the year.
func YearStartBoundary() TransitionBoundary {
	return TransitionBoundary{Form: BoundaryYearStart}
}

// YearEndBoundary marks daylight as active through the end of the year.
func YearEndBoundary() TransitionBoundary {
	return TransitionBoundary{Form: BoundaryYearEnd}
}

// AdjustmentRule is a time-bounded policy describing a zone's daylight
// behavior and offset delta for a span of the zone's history.
type AdjustmentRule struct {
	dateStart             DateTime
	dateEnd               DateTime
	daylightDelta         time.Duration
	baseUTCOffsetDelta    time.Duration
	start                 TransitionBoundary
	end                   TransitionBoundary
	noDaylightTransitions bool
}

// NewAdjustmentRule creates a rule effective over [dateStart, dateEnd]
// whose daylight period is described by the start and end boundaries.
// dateStart and dateEnd must be Unspecified date-only values; they bound
// the rule at whole-date granularity.
func NewAdjustmentRule(dateStart, dateEnd DateTime, daylightDelta, baseUTCOffsetDelta time.Duration, start, end TransitionBoundary) (AdjustmentRule, error) {
	r := AdjustmentRule{
		dateStart:          dateStart,
		dateEnd:            dateEnd,
		daylightDelta:      daylightDelta,
		baseUTCOffsetDelta: baseUTCOffsetDelta,
		start:              start,
		end:                end,
	}
	if err := r.validate(); err != nil {
		return AdjustmentRule{}, err
	}
	for _, bound := range []DateTime{dateStart, dateEnd} {
		if bound.Kind() != Unspecified {
			return AdjustmentRule{}, fmt.Errorf("%w: rule bound %v must be Unspecified", ErrMalformedRule, bound)
		}
		if !bound.Equal(bound.dateOnly()) {
			return AdjustmentRule{}, fmt.Errorf("%w: rule bound %v must be a date without a time of day", ErrMalformedRule, bound)
		}
	}
	return r, nil
}

// NewUTCBoundedAdjustmentRule creates a rule whose dateStart and dateEnd
// are themselves the daylight transition instants, expressed in UTC. Such a
// rule carries no transition descriptors and its daylight period may span
// multiple years.
func NewUTCBoundedAdjustmentRule(dateStart, dateEnd DateTime, daylightDelta, baseUTCOffsetDelta time.Duration) (AdjustmentRule, error) {
	r := AdjustmentRule{
		dateStart:             dateStart,
		dateEnd:               dateEnd,
		daylightDelta:         daylightDelta,
		baseUTCOffsetDelta:    baseUTCOffsetDelta,
		noDaylightTransitions: true,
	}
	if err := r.validate(); err != nil {
		return AdjustmentRule{}, err
	}
	for _, bound := range []DateTime{dateStart, dateEnd} {
		if bound.Kind() != UTCKind {
			return AdjustmentRule{}, fmt.Errorf("%w: rule bound %v must be UTC", ErrMalformedRule, bound)
		}
	}
	return r, nil
}

func (r AdjustmentRule) validate() error {
	if r.dateStart.After(r.dateEnd) {
		return fmt.Errorf("%w: dateStart %v after dateEnd %v", ErrMalformedRule, r.dateStart, r.dateEnd)
	}
	if r.daylightDelta%time.Minute != 0 {
		return fmt.Errorf("%w: daylight delta %v not minute-aligned", ErrMalformedRule, r.daylightDelta)
	}
	if r.baseUTCOffsetDelta%time.Minute != 0 {
		return fmt.Errorf("%w: base offset delta %v not minute-aligned", ErrMalformedRule, r.baseUTCOffsetDelta)
	}
	return nil
}

func (r AdjustmentRule) DateStart() DateTime { return r.dateStart }

func (r AdjustmentRule) DateEnd() DateTime { return r.dateEnd }

func (r AdjustmentRule) DaylightDelta() time.Duration { return r.daylightDelta }

func (r AdjustmentRule) BaseUTCOffsetDelta() time.Duration { return r.baseUTCOffsetDelta }

func (r AdjustmentRule) TransitionStart() TransitionBoundary { return r.start }

func (r AdjustmentRule) TransitionEnd() TransitionBoundary { return r.end }

func (r AdjustmentRule) NoDaylightTransitions() bool { return r.noDaylightTransitions }

// hasDaylightSaving reports whether the rule describes a daylight period at
// all; rules with a zero delta only adjust the base offset.
func (r AdjustmentRule) hasDaylightSaving() bool { return r.daylightDelta != 0 }

func (r AdjustmentRule) startsYearWithDaylight() bool {
	return !r.noDaylightTransitions && r.start.Form == BoundaryYearStart
}

func (r AdjustmentRule) endsYearWithDaylight() bool {
	return !r.noDaylightTransitions && r.end.Form == BoundaryYearEnd
}
