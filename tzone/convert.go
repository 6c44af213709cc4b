package tzone

import (
	"fmt"
	"time"
)

// Adding the base offset to a UTC instant within one day of the calendar
// range limits could leave the range, so offset resolution clamps such
// instants to the limit first.
var (
	minRuleDate = Date(1, time.January, 2, 0, 0, 0, 0, UTCKind)
	maxRuleDate = Date(9999, time.December, 30, 0, 0, 0, 0, UTCKind)
)

// UTCOffset returns the zone's offset from UTC at the given instant,
// including any daylight delta in effect. UTC-kind instants are resolved
// on the universal timeline, everything else on the zone's local timeline.
// Readings in a repeated hour resolve to the standard offset unless tagged
// as daylight.
func (z *TimeZone) UTCOffset(dt DateTime) time.Duration {
	if dt.kind == UTCKind {
		offset, _, _ := z.utcOffsetFromUTC(dt)
		return offset
	}
	return z.localUTCOffset(dt)
}

// ExactUTCOffset is UTCOffset for callers that need a single
// unambiguous answer: it fails with *AmbiguousTimeError for readings in
// a repeated hour and with *InvalidTimeError for readings in a gap,
// instead of defaulting.
func (z *TimeZone) ExactUTCOffset(dt DateTime) (time.Duration, error) {
	if dt.kind != UTCKind {
		if z.IsInvalidTime(dt) {
			return 0, &InvalidTimeError{Time: dt, Reason: fmt.Sprintf("reading does not exist in zone %q", z.id)}
		}
		if !dt.ambiguousDaylight && z.IsAmbiguousTime(dt) {
			return 0, &AmbiguousTimeError{Time: dt}
		}
	}
	return z.UTCOffset(dt), nil
}

func (z *TimeZone) localUTCOffset(dt DateTime) time.Duration {
	offset := z.baseUTCOffset
	rule, index, ok := z.findRule(dt, false)
	if !ok {
		return offset
	}
	offset += rule.baseUTCOffsetDelta
	if rule.hasDaylightSaving() {
		period := z.daylightPeriodFor(dt.Year(), rule, index)
		if z.isDaylightSavings(dt, rule, period) {
			offset += rule.daylightDelta
		}
	}
	return offset
}

// utcOffsetFromUTC resolves the effective offset for a UTC instant and
// reports whether daylight applies and whether the resulting local reading
// is ambiguous.
func (z *TimeZone) utcOffsetFromUTC(dt DateTime) (offset time.Duration, isDst, ambiguousLocal bool) {
	offset = z.baseUTCOffset

	var (
		rule  AdjustmentRule
		index int
		ok    bool
		year  int
	)
	switch {
	case dt.After(maxRuleDate):
		rule, index, ok = z.findRule(MaxDateTime, false)
		year = MaxDateTime.Year()
	case dt.Before(minRuleDate):
		rule, index, ok = z.findRule(MinDateTime, false)
		year = MinDateTime.Year()
	default:
		rule, index, ok = z.findRule(dt, true)
		// applying the base offset can move an instant near Dec 31/Jan 1
		// into the neighboring year; the rule's year must follow it
		year = dt.Add(offset).Year()
	}
	if !ok {
		return offset, false, false
	}

	offset += rule.baseUTCOffsetDelta
	if rule.hasDaylightSaving() {
		isDst, ambiguousLocal = z.isDaylightSavingsFromUTC(dt, year, rule, index)
		if isDst {
			offset += rule.daylightDelta
		}
	}
	return offset, isDst, ambiguousLocal
}

// IsDaylightSavingTime reports whether daylight saving is in effect at the
// given instant. It never fails: instants outside any rule, and zones
// without daylight saving, report false.
func (z *TimeZone) IsDaylightSavingTime(dt DateTime) bool {
	if !z.supportsDST || len(z.rules) == 0 {
		return false
	}
	if dt.kind == UTCKind {
		_, isDst, _ := z.utcOffsetFromUTC(dt)
		return isDst
	}
	rule, index, ok := z.findRule(dt, false)
	if !ok || !rule.hasDaylightSaving() {
		return false
	}
	period := z.daylightPeriodFor(dt.Year(), rule, index)
	return z.isDaylightSavings(dt, rule, period)
}

// IsAmbiguousTime reports whether the instant names a local reading that
// occurs twice in this zone.
func (z *TimeZone) IsAmbiguousTime(dt DateTime) bool {
	if !z.supportsDST {
		return false
	}
	adjusted := z.onOwnTimeline(dt)
	rule, index, ok := z.findRule(adjusted, false)
	if !ok || !rule.hasDaylightSaving() {
		return false
	}
	period := z.daylightPeriodFor(adjusted.Year(), rule, index)
	return isAmbiguousTime(adjusted, rule, period)
}

// IsInvalidTime reports whether the instant names a local reading skipped
// over by a transition. Only readings native to the zone's timeline can be
// invalid; UTC instants always exist.
func (z *TimeZone) IsInvalidTime(dt DateTime) bool {
	if dt.kind == UTCKind && correspondingKind(z) != UTCKind {
		return false
	}
	if dt.kind == LocalKind && correspondingKind(z) != LocalKind {
		return false
	}
	rule, index, ok := z.findRule(dt, false)
	if !ok || !rule.hasDaylightSaving() {
		return false
	}
	period := z.daylightPeriodFor(dt.Year(), rule, index)
	return isInvalidTime(dt, rule, period)
}

// AmbiguousOffsets returns the two offsets an ambiguous reading can map
// to, sorted ascending. ErrNotAmbiguous is returned for any instant that
// is not ambiguous in this zone.
func (z *TimeZone) AmbiguousOffsets(dt DateTime) (time.Duration, time.Duration, error) {
	if !z.supportsDST {
		return 0, 0, ErrNotAmbiguous
	}
	adjusted := z.onOwnTimeline(dt)
	rule, index, ok := z.findRule(adjusted, false)
	if !ok || !rule.hasDaylightSaving() {
		return 0, 0, ErrNotAmbiguous
	}
	period := z.daylightPeriodFor(adjusted.Year(), rule, index)
	if !isAmbiguousTime(adjusted, rule, period) {
		return 0, 0, ErrNotAmbiguous
	}

	standard := z.baseUTCOffset + rule.baseUTCOffsetDelta
	if rule.daylightDelta > 0 {
		return standard, standard + rule.daylightDelta, nil
	}
	return standard + rule.daylightDelta, standard, nil
}

// onOwnTimeline maps an instant onto the zone's local timeline so the
// local-form predicates apply. UTC instants are converted; everything else
// is already a wall-clock reading.
func (z *TimeZone) onOwnTimeline(dt DateTime) DateTime {
	if dt.kind != UTCKind || correspondingKind(z) == UTCKind {
		return dt
	}
	out, _ := convertTime(dt, UTC, z, false)
	return out
}

// ConvertTime converts an instant from the source zone to the destination
// zone via UTC. It fails with *InvalidTimeError when the instant's kind
// conflicts with the source zone or when the instant falls in a gap the
// source zone's clocks skip over; the result saturates at the calendar
// range limits instead of overflowing. A result landing in a repeated hour
// is tagged so later daylight queries resolve it consistently.
func ConvertTime(dt DateTime, source, dest *TimeZone) (DateTime, error) {
	return convertTime(dt, source, dest, true)
}

// ConvertTimeNoCheck is ConvertTime without the kind and gap checks:
// readings inside a gap convert as standard time.
func ConvertTimeNoCheck(dt DateTime, source, dest *TimeZone) DateTime {
	out, _ := convertTime(dt, source, dest, false)
	return out
}

// ToUTC converts an instant from the given zone to UTC.
func ToUTC(dt DateTime, source *TimeZone) (DateTime, error) {
	return ConvertTime(dt, source, UTC)
}

// FromUTC converts a UTC instant to the given zone.
func FromUTC(dt DateTime, dest *TimeZone) (DateTime, error) {
	return ConvertTime(dt, UTC, dest)
}

func convertTime(dt DateTime, source, dest *TimeZone, strict bool) (DateTime, error) {
	sourceKind := correspondingKind(source)
	if strict && dt.kind != Unspecified && dt.kind != sourceKind {
		return DateTime{}, &InvalidTimeError{
			Time:   dt,
			Reason: fmt.Sprintf("kind %s conflicts with source zone %q", dt.kind, source.id),
		}
	}

	sourceOffset := source.baseUTCOffset
	if rule, index, ok := source.findRule(dt, false); ok {
		sourceOffset += rule.baseUTCOffsetDelta
		if rule.hasDaylightSaving() {
			period := source.daylightPeriodFor(dt.Year(), rule, index)
			if strict && isInvalidTime(dt, rule, period) {
				return DateTime{}, &InvalidTimeError{
					Time:   dt,
					Reason: fmt.Sprintf("reading does not exist in zone %q", source.id),
				}
			}
			if source.isDaylightSavings(dt, rule, period) {
				sourceOffset += rule.daylightDelta
			}
		}
	}

	destKind := correspondingKind(dest)

	// converting a pure-kind reading within one zone is the identity;
	// distinct zones always take the UTC round trip, even when both are
	// designated local
	if source == dest && dt.kind != Unspecified && sourceKind != Unspecified && sourceKind == destKind {
		return dt, nil
	}

	// keep the intermediate arithmetic unclamped; only the value used for
	// offset resolution and the final result saturate
	utcWall := dt.wall.Add(-sourceOffset)
	utcClamped := DateTime{wall: utcWall, kind: UTCKind}.clamp()
	destOffset, _, ambiguousLocal := dest.utcOffsetFromUTC(utcClamped)

	out := DateTime{wall: utcWall.Add(destOffset), kind: destKind, ambiguousDaylight: ambiguousLocal}
	return out.clamp(), nil
}
