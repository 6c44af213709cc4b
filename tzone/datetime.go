package tzone

import (
	"time"

	"github.com/ngrash/go-tzone/internal/datemath"
)

// Kind describes which timeline a DateTime's wall-clock fields refer to.
// Unspecified values belong to no particular zone until a caller supplies
// one; UTCKind and LocalKind values are pinned to the universal and the
// designated local timeline respectively.
type Kind uint8

const (
	Unspecified Kind = iota
	UTCKind
	LocalKind
)

func (k Kind) String() string {
	switch k {
	case UTCKind:
		return "UTC"
	case LocalKind:
		return "Local"
	}
	return "Unspecified"
}

// DateTime is a wall-clock reading tagged with a Kind. The fields are held
// in a time.Time pinned to time.UTC which acts as a plain field container;
// the Kind, not the location, decides how the value is interpreted.
//
// A DateTime produced by a conversion that landed in a fall-back window
// additionally remembers that it sits in the repeated hour, so daylight
// queries on it resolve the ambiguity the same way the conversion did.
type DateTime struct {
	wall              time.Time
	kind              Kind
	ambiguousDaylight bool
}

// MinDateTime and MaxDateTime bound the representable calendar range.
// Conversions saturate to these instead of overflowing.
var (
	MinDateTime = DateTime{wall: time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)}
	MaxDateTime = DateTime{wall: time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)}
)

// Date constructs a DateTime from calendar fields, normalizing out-of-range
// values the same way time.Date does and saturating to the representable
// range.
func Date(year int, month time.Month, day, hour, min, sec, nsec int, kind Kind) DateTime {
	dt := DateTime{wall: time.Date(year, month, day, hour, min, sec, nsec, time.UTC), kind: kind}
	return dt.clamp()
}

// FromTime converts a time.Time into a DateTime carrying the same wall-clock
// fields. A UTC-located value becomes UTCKind, everything else LocalKind.
func FromTime(t time.Time) DateTime {
	kind := LocalKind
	if t.Location() == time.UTC {
		kind = UTCKind
	}
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return Date(y, m, d, hh, mm, ss, t.Nanosecond(), kind)
}

// Time returns the wall-clock fields as a time.Time in the UTC location.
// The location carries no meaning; the Kind does.
func (dt DateTime) Time() time.Time { return dt.wall }

func (dt DateTime) Kind() Kind { return dt.kind }

func (dt DateTime) Year() int { return dt.wall.Year() }

func (dt DateTime) Month() time.Month { return dt.wall.Month() }

func (dt DateTime) Day() int { return dt.wall.Day() }

// WithKind returns a copy tagged with the given kind.
func (dt DateTime) WithKind(kind Kind) DateTime {
	dt.kind = kind
	return dt
}

// InAmbiguousDaylight reports whether this value was produced by a
// conversion that landed in a repeated (fall-back) hour and was resolved to
// the daylight occurrence.
func (dt DateTime) InAmbiguousDaylight() bool { return dt.ambiguousDaylight }

func (dt DateTime) Equal(other DateTime) bool { return dt.wall.Equal(other.wall) }

func (dt DateTime) Before(other DateTime) bool { return dt.wall.Before(other.wall) }

func (dt DateTime) After(other DateTime) bool { return dt.wall.After(other.wall) }

// Sub returns the duration dt-other between the wall-clock readings.
func (dt DateTime) Sub(other DateTime) time.Duration { return dt.wall.Sub(other.wall) }

// Add returns dt+d, saturating to MinDateTime or MaxDateTime. Kind is
// preserved; the ambiguity tag is not, since the shifted reading no longer
// names the tagged instant.
func (dt DateTime) Add(d time.Duration) DateTime {
	out := DateTime{wall: dt.wall.Add(d), kind: dt.kind}
	return out.clamp()
}

// addYears shifts the calendar year by n, clamping the day to the target
// month's length (Feb 29 shifts to Feb 28, not Mar 1). The second return is
// false if the target year is outside the representable range; callers use
// that to treat boundary arithmetic overflow as "condition does not hold".
func (dt DateTime) addYears(n int) (DateTime, bool) {
	year := dt.wall.Year() + n
	if year < MinDateTime.wall.Year() || year > MaxDateTime.wall.Year() {
		return DateTime{}, false
	}
	month := dt.wall.Month()
	day := dt.wall.Day()
	if max := datemath.DaysInMonth(year, month); day > max {
		day = max
	}
	hh, mm, ss := dt.wall.Clock()
	out := DateTime{
		wall: time.Date(year, month, day, hh, mm, ss, dt.wall.Nanosecond(), time.UTC),
		kind: dt.kind,
	}
	return out, true
}

// dateOnly truncates to midnight, dropping kind and tag. Rule bounds with
// Unspecified kind are compared at this granularity.
func (dt DateTime) dateOnly() DateTime {
	y, m, d := dt.wall.Date()
	return DateTime{wall: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (dt DateTime) clamp() DateTime {
	if dt.wall.Before(MinDateTime.wall) {
		dt.wall = MinDateTime.wall
	} else if dt.wall.After(MaxDateTime.wall) {
		dt.wall = MaxDateTime.wall
	}
	return dt
}

func (dt DateTime) String() string {
	return dt.wall.Format("2006-01-02 15:04:05.999999999") + " " + dt.kind.String()
}
