package tzone

import "time"

// findRule locates the adjustment rule covering the given instant, which
// is interpreted as UTC when isUTC is set. The second return is the rule's
// index. A zone with no covering rule behaves as fixed-offset for that
// instant, so a miss is reported with ok=false rather than an error.
func (z *TimeZone) findRule(dt DateTime, isUTC bool) (AdjustmentRule, int, bool) {
	if len(z.rules) == 0 {
		return AdjustmentRule{}, 0, false
	}

	// Unspecified rule bounds are stored as whole dates but stand for the
	// full day they name, so they are compared against the date portion
	// only.
	date := dt.dateOnly()
	if isUTC {
		date = dt.Add(z.baseUTCOffset).dateOnly()
	}

	low, high := 0, len(z.rules)-1
	for low <= high {
		median := low + (high-low)/2
		rule := z.rules[median]
		prev := rule
		if median > 0 {
			prev = z.rules[median-1]
		}
		switch cmp := z.compareRuleToInstant(rule, prev, dt, date, isUTC); {
		case cmp == 0:
			return rule, median, true
		case cmp < 0:
			low = median + 1
		default:
			high = median - 1
		}
	}
	return AdjustmentRule{}, 0, false
}

// compareRuleToInstant reports 0 when the rule covers the instant, <0 when
// the rule is for earlier times and >0 when it is for later times. The
// comparator is monotonic because rules are sorted and non-overlapping.
func (z *TimeZone) compareRuleToInstant(rule, prev AdjustmentRule, dt, date DateTime, isUTC bool) int {
	var afterStart bool
	if rule.dateStart.kind == UTCKind {
		cmpTime := dt
		if !isUTC {
			// the transition switches according to the offset in effect
			// just before it, which the previous rule describes
			cmpTime = z.shiftByRuleDeltas(dt, prev.daylightDelta, prev.baseUTCOffsetDelta, true)
		}
		afterStart = !cmpTime.Before(rule.dateStart)
	} else {
		afterStart = !date.Before(rule.dateStart)
	}
	if !afterStart {
		return 1
	}

	var beforeEnd bool
	if rule.dateEnd.kind == UTCKind {
		cmpTime := dt
		if !isUTC {
			cmpTime = z.shiftByRuleDeltas(dt, rule.daylightDelta, rule.baseUTCOffsetDelta, true)
		}
		beforeEnd = !cmpTime.After(rule.dateEnd)
	} else {
		beforeEnd = !date.After(rule.dateEnd)
	}
	if beforeEnd {
		return 0
	}
	return -1
}

// shiftByRuleDeltas moves an instant between the zone's local timeline and
// UTC using the effective offset a rule's deltas produce, saturating at
// the representable range.
func (z *TimeZone) shiftByRuleDeltas(dt DateTime, daylightDelta, baseDelta time.Duration, toUTC bool) DateTime {
	offset := z.baseUTCOffset + baseDelta + daylightDelta
	if toUTC {
		offset = -offset
	}
	return dt.Add(offset)
}

// previousRule returns the rule preceding the rule at index, or the rule
// itself when it is the first.
func (z *TimeZone) previousRule(index int) AdjustmentRule {
	if index > 0 && index < len(z.rules) {
		return z.rules[index-1]
	}
	return z.rules[index]
}
