// Package tzone implements time zone offset resolution and conversion over
// explicit adjustment rules: given an instant, a base UTC offset and an
// ordered list of adjustment rules it determines whether the instant is in
// daylight saving, whether it is ambiguous or invalid on the local
// timeline, and converts between zones via UTC.
//
// The package performs no I/O. Zone data arrives fully populated, either
// built by hand through New or parsed from a TZ string by the tzstr
// package; reading operating system zone databases is a concern of the
// caller. All operations are pure functions of their inputs and a TimeZone
// is immutable after construction, so values may be shared freely across
// goroutines.
package tzone

import (
	"errors"
	"fmt"
	"time"
)

// MaxUTCOffset bounds the magnitude of any effective UTC offset: the base
// offset alone and the base offset combined with any rule's deltas must
// stay within ±MaxUTCOffset.
const MaxUTCOffset = 14 * time.Hour

// TimeZone is a zone identity plus the ordered adjustment rules that
// describe its daylight-saving history. Rules are sorted by start date and
// non-overlapping; New enforces both.
type TimeZone struct {
	id            string
	baseUTCOffset time.Duration
	rules         []AdjustmentRule
	supportsDST   bool
	kind          Kind
}

// UTC is the universal zone: zero offset, no rules. Conversions treat it
// specially when short-circuiting same-zone conversions of UTC-kind values.
var UTC = &TimeZone{id: "UTC", kind: UTCKind}

// New constructs a TimeZone from a base offset and an ordered rule list.
// All construction invariants are checked and every violation is reported,
// joined into one error.
func New(id string, baseUTCOffset time.Duration, rules []AdjustmentRule) (*TimeZone, error) {
	var errs []error
	if id == "" {
		errs = append(errs, fmt.Errorf("%w: empty zone id", ErrMalformedRule))
	}
	if baseUTCOffset < -MaxUTCOffset || baseUTCOffset > MaxUTCOffset {
		errs = append(errs, fmt.Errorf("%w: base offset %v outside ±%v", ErrOffsetOutOfRange, baseUTCOffset, MaxUTCOffset))
	}
	if baseUTCOffset%time.Minute != 0 {
		errs = append(errs, fmt.Errorf("%w: base offset %v not minute-aligned", ErrMalformedRule, baseUTCOffset))
	}

	supportsDST := false
	for i, r := range rules {
		effective := baseUTCOffset + r.baseUTCOffsetDelta + r.daylightDelta
		if effective < -MaxUTCOffset || effective > MaxUTCOffset {
			errs = append(errs, fmt.Errorf("%w: rule %d effective offset %v outside ±%v", ErrOffsetOutOfRange, i, effective, MaxUTCOffset))
		}
		if i > 0 && !rules[i-1].dateEnd.Before(r.dateStart) {
			errs = append(errs, fmt.Errorf("%w: rule %d starting %v overlaps or precedes rule %d ending %v",
				ErrMalformedRule, i, r.dateStart, i-1, rules[i-1].dateEnd))
		}
		if r.hasDaylightSaving() {
			supportsDST = true
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	z := &TimeZone{
		id:            id,
		baseUTCOffset: baseUTCOffset,
		rules:         append([]AdjustmentRule(nil), rules...),
		supportsDST:   supportsDST,
	}
	return z, nil
}

// FixedZone constructs a zone with a constant offset and no daylight
// saving.
func FixedZone(id string, baseUTCOffset time.Duration) (*TimeZone, error) {
	return New(id, baseUTCOffset, nil)
}

func (z *TimeZone) ID() string { return z.id }

func (z *TimeZone) BaseUTCOffset() time.Duration { return z.baseUTCOffset }

func (z *TimeZone) SupportsDaylightSavingTime() bool { return z.supportsDST }

// AdjustmentRules returns a copy of the zone's rule list.
func (z *TimeZone) AdjustmentRules() []AdjustmentRule {
	return append([]AdjustmentRule(nil), z.rules...)
}

// WithoutDaylightSaving returns a copy of the zone that keeps the base
// offset but drops all adjustment rules, so every daylight query on it
// reports false.
func (z *TimeZone) WithoutDaylightSaving() *TimeZone {
	return &TimeZone{id: z.id, baseUTCOffset: z.baseUTCOffset}
}

// AsLocal returns a copy of the zone designated as the local zone:
// LocalKind instants are considered native to it. Zone registries use this
// to mark one zone as the process-local choice without ambient globals.
func (z *TimeZone) AsLocal() *TimeZone {
	out := *z
	out.kind = LocalKind
	return &out
}

// correspondingKind maps a zone to the instant kind that is native to it.
func correspondingKind(z *TimeZone) Kind {
	if z == UTC {
		return UTCKind
	}
	return z.kind
}
