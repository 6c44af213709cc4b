package tzone

import (
	"errors"
	"testing"
	"time"
)

func TestIsDaylightSavingTimePacific(t *testing.T) {
	z := pacificZone(t)

	cases := []struct {
		name string
		dt   DateTime
		want bool
	}{
		{"midsummer", Date(2024, time.July, 1, 12, 0, 0, 0, Unspecified), true},
		{"midwinter", Date(2024, time.January, 15, 12, 0, 0, 0, Unspecified), false},
		{"minute before spring transition", Date(2024, time.March, 10, 1, 59, 0, 0, Unspecified), false},
		{"first daylight instant", Date(2024, time.March, 10, 3, 0, 0, 0, Unspecified), true},
		{"minute before fall transition", Date(2024, time.November, 3, 0, 59, 0, 0, Unspecified), true},
		{"repeated hour defaults to standard", Date(2024, time.November, 3, 1, 30, 0, 0, Unspecified), false},
		{"after fall transition", Date(2024, time.November, 3, 2, 0, 0, 0, Unspecified), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := z.IsDaylightSavingTime(c.dt); got != c.want {
				t.Errorf("IsDaylightSavingTime(%v) = %v, want %v", c.dt, got, c.want)
			}
		})
	}
}

func TestIsDaylightSavingTimeFromUTC(t *testing.T) {
	z := pacificZone(t)

	// the 2024 daylight period spans 2024-03-10T10:00Z .. 2024-11-03T09:00Z
	cases := []struct {
		name string
		dt   DateTime
		want bool
	}{
		{"midsummer", Date(2024, time.July, 1, 19, 0, 0, 0, UTCKind), true},
		{"instant before daylight starts", Date(2024, time.March, 10, 9, 59, 59, 0, UTCKind), false},
		{"first daylight instant", Date(2024, time.March, 10, 10, 0, 0, 0, UTCKind), true},
		{"last daylight instant", Date(2024, time.November, 3, 8, 59, 59, 0, UTCKind), true},
		{"instant daylight ends", Date(2024, time.November, 3, 9, 0, 0, 0, UTCKind), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := z.IsDaylightSavingTime(c.dt); got != c.want {
				t.Errorf("IsDaylightSavingTime(%v) = %v, want %v", c.dt, got, c.want)
			}
		})
	}
}

func TestIsInvalidTime(t *testing.T) {
	z := pacificZone(t)

	cases := []struct {
		name string
		dt   DateTime
		want bool
	}{
		{"inside the gap", Date(2024, time.March, 10, 2, 30, 0, 0, Unspecified), true},
		{"first skipped instant", Date(2024, time.March, 10, 2, 0, 0, 0, Unspecified), true},
		{"instant after the gap", Date(2024, time.March, 10, 3, 0, 0, 0, Unspecified), false},
		{"instant before the gap", Date(2024, time.March, 10, 1, 59, 59, 0, Unspecified), false},
		{"ordinary time", Date(2024, time.June, 1, 12, 0, 0, 0, Unspecified), false},
		{"utc instants always exist", Date(2024, time.March, 10, 2, 30, 0, 0, UTCKind), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := z.IsInvalidTime(c.dt); got != c.want {
				t.Errorf("IsInvalidTime(%v) = %v, want %v", c.dt, got, c.want)
			}
		})
	}
}

func TestIsAmbiguousTime(t *testing.T) {
	z := pacificZone(t)

	cases := []struct {
		name string
		dt   DateTime
		want bool
	}{
		{"inside the repeated hour", Date(2024, time.November, 3, 1, 30, 0, 0, Unspecified), true},
		{"first repeated instant", Date(2024, time.November, 3, 1, 0, 0, 0, Unspecified), true},
		{"instant after the repeated hour", Date(2024, time.November, 3, 2, 0, 0, 0, Unspecified), false},
		{"instant before the repeated hour", Date(2024, time.November, 3, 0, 59, 59, 0, Unspecified), false},
		{"ordinary time", Date(2024, time.June, 1, 12, 0, 0, 0, Unspecified), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := z.IsAmbiguousTime(c.dt); got != c.want {
				t.Errorf("IsAmbiguousTime(%v) = %v, want %v", c.dt, got, c.want)
			}
		})
	}
}

func TestAmbiguousOffsets(t *testing.T) {
	z := pacificZone(t)

	first, second, err := z.AmbiguousOffsets(Date(2024, time.November, 3, 1, 30, 0, 0, Unspecified))
	if err != nil {
		t.Fatalf("AmbiguousOffsets: %v", err)
	}
	if first != -8*time.Hour || second != -7*time.Hour {
		t.Errorf("AmbiguousOffsets = (%v, %v), want (-8h, -7h)", first, second)
	}

	if _, _, err := z.AmbiguousOffsets(Date(2024, time.June, 1, 12, 0, 0, 0, Unspecified)); !errors.Is(err, ErrNotAmbiguous) {
		t.Errorf("AmbiguousOffsets on unambiguous time: error = %v, want ErrNotAmbiguous", err)
	}
}

func TestSouthernHemisphereWraparound(t *testing.T) {
	z := southernZone(t)

	cases := []struct {
		name string
		dt   DateTime
		want bool
	}{
		{"new year's day is daylight", Date(2024, time.January, 1, 12, 0, 0, 0, Unspecified), true},
		{"december is daylight", Date(2024, time.December, 25, 12, 0, 0, 0, Unspecified), true},
		{"midwinter is standard", Date(2024, time.July, 1, 12, 0, 0, 0, Unspecified), false},
		{"new year's day from utc", Date(2023, time.December, 31, 14, 0, 0, 0, UTCKind), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := z.IsDaylightSavingTime(c.dt); got != c.want {
				t.Errorf("IsDaylightSavingTime(%v) = %v, want %v", c.dt, got, c.want)
			}
		})
	}
}

func TestReducedZone(t *testing.T) {
	z := reducedZone(t)

	// daylight moves clocks back an hour, so the repeated window follows
	// the period start and the gap precedes the period end
	if !z.IsAmbiguousTime(Date(2024, time.April, 7, 2, 30, 0, 0, Unspecified)) {
		t.Error("reading inside the backward shift at period start should be ambiguous")
	}
	if !z.IsInvalidTime(Date(2024, time.October, 27, 2, 30, 0, 0, Unspecified)) {
		t.Error("reading inside the forward shift at period end should be invalid")
	}
	first, second, err := z.AmbiguousOffsets(Date(2024, time.April, 7, 2, 30, 0, 0, Unspecified))
	if err != nil {
		t.Fatalf("AmbiguousOffsets: %v", err)
	}
	if first != time.Hour || second != 2*time.Hour {
		t.Errorf("AmbiguousOffsets = (%v, %v), want (1h, 2h)", first, second)
	}
}

func TestYearBoundaryMarkers(t *testing.T) {
	z := permanentShiftZone(t)

	cases := []struct {
		name       string
		dt         DateTime
		wantDst    bool
		wantOffset time.Duration
	}{
		// base +03:00, daylight +04:00 from March 2011 through October 2013
		{"before the shift", Date(2011, time.February, 1, 0, 0, 0, 0, UTCKind), false, 3 * time.Hour},
		{"late december 2011 from utc", Date(2011, time.December, 31, 20, 0, 0, 0, UTCKind), true, 4 * time.Hour},
		{"mid 2012 from utc", Date(2012, time.June, 1, 0, 0, 0, 0, UTCKind), true, 4 * time.Hour},
		{"early january 2013 from utc", Date(2013, time.January, 1, 0, 30, 0, 0, UTCKind), true, 4 * time.Hour},
		{"after the shift ends", Date(2013, time.November, 15, 0, 0, 0, 0, UTCKind), false, 3 * time.Hour},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := z.IsDaylightSavingTime(c.dt); got != c.wantDst {
				t.Errorf("IsDaylightSavingTime(%v) = %v, want %v", c.dt, got, c.wantDst)
			}
			if got := z.UTCOffset(c.dt); got != c.wantOffset {
				t.Errorf("UTCOffset(%v) = %v, want %v", c.dt, got, c.wantOffset)
			}
		})
	}

	t.Run("local new year reading is daylight", func(t *testing.T) {
		dt := Date(2012, time.January, 1, 0, 30, 0, 0, Unspecified)
		if !z.IsDaylightSavingTime(dt) {
			t.Error("reading in a year fully inside daylight should report daylight")
		}
		if z.IsAmbiguousTime(dt) {
			t.Error("year boundary marker leaves no ambiguous window")
		}
	})
}

func TestNoDaylightZoneProperties(t *testing.T) {
	fixed, err := FixedZone("Fixed/Plus5", 5*time.Hour)
	if err != nil {
		t.Fatalf("FixedZone: %v", err)
	}
	stripped := pacificZone(t).WithoutDaylightSaving()

	instants := []DateTime{
		Date(2024, time.March, 10, 2, 30, 0, 0, Unspecified),
		Date(2024, time.July, 1, 12, 0, 0, 0, Unspecified),
		Date(2024, time.November, 3, 1, 30, 0, 0, Unspecified),
		Date(2024, time.November, 3, 1, 30, 0, 0, UTCKind),
		MinDateTime,
		MaxDateTime,
	}
	for _, z := range []*TimeZone{fixed, stripped} {
		for _, dt := range instants {
			if z.IsDaylightSavingTime(dt) {
				t.Errorf("%s: IsDaylightSavingTime(%v) = true", z.ID(), dt)
			}
			if z.IsAmbiguousTime(dt) {
				t.Errorf("%s: IsAmbiguousTime(%v) = true", z.ID(), dt)
			}
			if z.IsInvalidTime(dt) {
				t.Errorf("%s: IsInvalidTime(%v) = true", z.ID(), dt)
			}
		}
	}
}
