package tzone

import "time"

// daylightPeriod is the daylight saving span a rule produces for one
// calendar year, expressed on the zone's local timeline. It is computed on
// demand and never cached; recomputation is cheap and keeps the zone free
// of mutable state.
type daylightPeriod struct {
	start DateTime
	end   DateTime
	delta time.Duration
}

// daylightPeriodFor materializes the daylight period of a rule for a year.
// For rules whose date bounds are themselves the transition instants the
// period is derived from those UTC bounds instead of transition
// descriptors; the start is converted using the previous rule's deltas
// since the switch happens under the offset in effect just before it.
func (z *TimeZone) daylightPeriodFor(year int, rule AdjustmentRule, ruleIndex int) daylightPeriod {
	if rule.noDaylightTransitions {
		prev := z.previousRule(ruleIndex)
		return daylightPeriod{
			start: z.shiftByRuleDeltas(rule.dateStart, prev.daylightDelta, prev.baseUTCOffsetDelta, false),
			end:   z.shiftByRuleDeltas(rule.dateEnd, rule.daylightDelta, rule.baseUTCOffsetDelta, false),
			delta: rule.daylightDelta,
		}
	}
	return daylightPeriod{
		start: resolveBoundary(year, rule.start),
		end:   resolveBoundary(year, rule.end),
		delta: rule.daylightDelta,
	}
}

// isDaylightSavings classifies a local or unspecified wall-clock reading.
// For a positive delta the daylight interval is [start+delta, end): the
// hour repeated at fall-back is excluded and resolved separately. For a
// non-positive delta the shifted region sits at the start instead and the
// interval is [start, end+delta). Readings inside the repeated hour defer
// to the ambiguity tag the reading carries; an untagged reading defaults
// to standard time.
func (z *TimeZone) isDaylightSavings(dt DateTime, rule AdjustmentRule, period daylightPeriod) bool {
	var start, end DateTime
	switch {
	case rule.startsYearWithDaylight():
		start = Date(period.start.Year(), time.January, 1, 0, 0, 0, 0, Unspecified)
	case period.delta > 0:
		start = period.start.Add(period.delta)
	default:
		start = period.start
	}
	switch {
	case rule.endsYearWithDaylight():
		end = Date(period.end.Year(), time.December, 31, 23, 59, 59, 999999999, Unspecified)
	case period.delta > 0:
		end = period.end
	default:
		end = period.end.Add(period.delta)
	}

	isDst := checkIsDst(start, dt, end, false, rule)
	if isDst && isAmbiguousTime(dt, rule, period) {
		isDst = dt.ambiguousDaylight
	}
	return isDst
}

// isDaylightSavingsFromUTC classifies a UTC instant against the rule
// active for the given local year and additionally reports whether the
// corresponding local reading falls in a repeated hour. The daylight
// bounds are first mapped to UTC; a year-start or year-end boundary marker
// requires consulting the adjacent calendar year's rule, because a
// southern-hemisphere daylight period can run across Dec 31 under two
// different rules. That chase is bounded to one neighboring year.
func (z *TimeZone) isDaylightSavingsFromUTC(dt DateTime, year int, rule AdjustmentRule, ruleIndex int) (isDst, ambiguousLocal bool) {
	base := z.baseUTCOffset
	period := z.daylightPeriodFor(year, rule, ruleIndex)

	ignoreYearAdjustment := false
	startOffset := z.daylightStartOffsetFromUTC(rule, ruleIndex)
	var start DateTime
	if rule.startsYearWithDaylight() && period.start.Year() > MinDateTime.Year() {
		prevYearEnd := Date(period.start.Year()-1, time.December, 31, 0, 0, 0, 0, Unspecified)
		if prev, prevIndex, ok := z.findRule(prevYearEnd, false); ok && prev.endsYearWithDaylight() {
			// daylight is continuously active across the year boundary;
			// the real start is the previous year's transition
			prevPeriod := z.daylightPeriodFor(period.start.Year()-1, prev, prevIndex)
			start = prevPeriod.start.Add(-(base + prev.baseUTCOffsetDelta))
			ignoreYearAdjustment = true
		} else {
			start = Date(period.start.Year(), time.January, 1, 0, 0, 0, 0, Unspecified).Add(-startOffset)
		}
	} else {
		start = period.start.Add(-startOffset)
	}

	endOffset := z.daylightEndOffsetFromUTC(rule)
	var end DateTime
	if rule.endsYearWithDaylight() && period.end.Year() < MaxDateTime.Year() {
		nextYearStart := Date(period.end.Year()+1, time.January, 1, 0, 0, 0, 0, Unspecified)
		if next, nextIndex, ok := z.findRule(nextYearStart, false); ok && next.startsYearWithDaylight() {
			if next.endsYearWithDaylight() {
				// the next year is fully inside daylight as well
				end = Date(period.end.Year()+1, time.December, 31, 0, 0, 0, 0, Unspecified).
					Add(-(base + next.baseUTCOffsetDelta + next.daylightDelta))
			} else {
				nextPeriod := z.daylightPeriodFor(period.end.Year()+1, next, nextIndex)
				end = nextPeriod.end.Add(-(base + next.baseUTCOffsetDelta + next.daylightDelta))
			}
			ignoreYearAdjustment = true
		} else {
			end = Date(period.end.Year(), time.December, 31, 23, 59, 59, 999999999, Unspecified).Add(-endOffset)
		}
	} else {
		end = period.end.Add(-endOffset)
	}

	var ambStart, ambEnd DateTime
	if period.delta > 0 {
		ambStart = end.Add(-period.delta)
		ambEnd = end
	} else {
		ambStart = start
		ambEnd = start.Add(-period.delta)
	}

	isDst = checkIsDst(start, dt, end, ignoreYearAdjustment, rule)
	if isDst {
		ambiguousLocal = inWindowWithYearRetry(dt, ambStart, ambEnd)
	}
	return isDst, ambiguousLocal
}

// daylightStartOffsetFromUTC is the UTC offset in effect just before the
// daylight period starts.
func (z *TimeZone) daylightStartOffsetFromUTC(rule AdjustmentRule, ruleIndex int) time.Duration {
	if rule.noDaylightTransitions {
		// the bounds are the transitions, so just before the start the
		// previous rule's offset applies
		prev := z.previousRule(ruleIndex)
		return z.baseUTCOffset + prev.baseUTCOffsetDelta + prev.daylightDelta
	}
	return z.baseUTCOffset + rule.baseUTCOffsetDelta
}

// daylightEndOffsetFromUTC is the UTC offset in effect just before the
// daylight period ends, which always includes the current rule's daylight
// delta.
func (z *TimeZone) daylightEndOffsetFromUTC(rule AdjustmentRule) time.Duration {
	return z.baseUTCOffset + rule.baseUTCOffsetDelta + rule.daylightDelta
}

// isAmbiguousTime reports whether the wall-clock reading occurs twice:
// inside [end-delta, end) for a positive delta, inside [start, start-delta)
// for a negative one. A period that runs through the relevant year
// boundary has no ambiguous window at that end.
func isAmbiguousTime(dt DateTime, rule AdjustmentRule, period daylightPeriod) bool {
	if !rule.hasDaylightSaving() {
		return false
	}
	var ambStart, ambEnd DateTime
	if period.delta > 0 {
		if rule.endsYearWithDaylight() {
			return false
		}
		ambStart = period.end.Add(-period.delta)
		ambEnd = period.end
	} else {
		if rule.startsYearWithDaylight() {
			return false
		}
		ambStart = period.start
		ambEnd = period.start.Add(-period.delta)
	}
	return inWindowWithYearRetry(dt, ambStart, ambEnd)
}

// isInvalidTime reports whether the wall-clock reading occurs zero times:
// inside [start, start+delta) for a positive delta, inside [end, end-delta)
// for a negative one.
func isInvalidTime(dt DateTime, rule AdjustmentRule, period daylightPeriod) bool {
	if !rule.hasDaylightSaving() {
		return false
	}
	var invStart, invEnd DateTime
	if period.delta < 0 {
		if rule.endsYearWithDaylight() {
			return false
		}
		invStart = period.end
		invEnd = period.end.Add(-period.delta)
	} else {
		if rule.startsYearWithDaylight() {
			return false
		}
		invStart = period.start
		invEnd = period.start.Add(period.delta)
	}
	return inWindowWithYearRetry(dt, invStart, invEnd)
}

// checkIsDst tests membership of dt in the daylight interval. Transition
// dates are computed per calendar year while the interval may cross into a
// neighbor, so end and dt are first aligned to start's year; a shift that
// would leave the representable range means the reading cannot be inside.
// When start is after end the period wraps the year boundary (southern
// hemisphere) and membership inverts. Rules bounded by UTC instants cover
// their whole span verbatim, possibly across several years, so they skip
// year alignment and include both endpoints.
func checkIsDst(start, dt, end DateTime, ignoreYearAdjustment bool, rule AdjustmentRule) bool {
	if !ignoreYearAdjustment && !rule.noDaylightTransitions {
		startYear, endYear := start.Year(), end.Year()
		if startYear != endYear {
			shifted, ok := end.addYears(startYear - endYear)
			if !ok {
				return false
			}
			end = shifted
		}
		if year := dt.Year(); startYear != year {
			shifted, ok := dt.addYears(startYear - year)
			if !ok {
				return false
			}
			dt = shifted
		}
	}

	if start.After(end) {
		return dt.Before(end) || !dt.Before(start)
	}
	if rule.noDaylightTransitions {
		return !dt.Before(start) && !dt.After(end)
	}
	return !dt.Before(start) && dt.Before(end)
}

// inWindowWithYearRetry tests dt against [start, end), retrying with both
// endpoints shifted one year either way when they straddle a calendar year
// boundary. The window is computed per-year, so near Dec 31/Jan 1 the
// primary comparison can be off by exactly one year. Shifts that leave the
// representable range count as not-in-window.
func inWindowWithYearRetry(dt DateTime, start, end DateTime) bool {
	if !dt.Before(start) && dt.Before(end) {
		return true
	}
	if start.Year() == end.Year() {
		return false
	}
	for _, shift := range []int{1, -1} {
		s, ok := start.addYears(shift)
		if !ok {
			continue
		}
		e, ok := end.addYears(shift)
		if !ok {
			continue
		}
		if !dt.Before(s) && dt.Before(e) {
			return true
		}
	}
	return false
}
