package tzone

import (
	"errors"
	"fmt"
)

// Construction-time errors. New and the rule constructors wrap these with
// detail and join multiple violations with errors.Join.
var (
	// ErrMalformedRule reports a rule set that violates the construction
	// invariants: rules out of chronological order, overlapping spans,
	// non-minute-aligned deltas or inconsistent boundaries.
	ErrMalformedRule = errors.New("tzone: malformed adjustment rule")

	// ErrOffsetOutOfRange reports a base offset, or a combined
	// base+delta offset, outside the representable ±14h window.
	ErrOffsetOutOfRange = errors.New("tzone: utc offset out of range")
)

// ErrNotAmbiguous is returned by AmbiguousOffsets for instants that do not
// fall in a repeated hour.
var ErrNotAmbiguous = errors.New("tzone: time is not ambiguous")

// InvalidTimeError reports an instant that cannot be converted: either its
// kind conflicts with the source zone, or it falls in the gap a
// spring-forward transition skips over.
type InvalidTimeError struct {
	Time   DateTime
	Reason string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("tzone: invalid time %v: %s", e.Time, e.Reason)
}

// AmbiguousTimeError reports an instant for which a single offset was
// demanded but two exist.
type AmbiguousTimeError struct {
	Time DateTime
}

func (e *AmbiguousTimeError) Error() string {
	return fmt.Sprintf("tzone: time %v is ambiguous", e.Time)
}
