package tzone

import (
	"testing"
	"time"
)

func TestDateNormalizesAndSaturates(t *testing.T) {
	// out-of-range calendar fields normalize like time.Date
	got := Date(2023, time.February, 30, 0, 0, 0, 0, Unspecified)
	want := Date(2023, time.March, 2, 0, 0, 0, 0, Unspecified)
	if !got.Equal(want) {
		t.Errorf("Date(feb 30) = %v, want %v", got, want)
	}

	if got := Date(10001, time.June, 1, 0, 0, 0, 0, Unspecified); !got.Equal(MaxDateTime) {
		t.Errorf("Date beyond the calendar range = %v, want MaxDateTime", got)
	}
	if got := Date(0, time.June, 1, 0, 0, 0, 0, Unspecified); !got.Equal(MinDateTime) {
		t.Errorf("Date before the calendar range = %v, want MinDateTime", got)
	}
}

func TestAddSaturates(t *testing.T) {
	if got := MaxDateTime.Add(time.Hour); !got.Equal(MaxDateTime) {
		t.Errorf("MaxDateTime.Add(1h) = %v, want MaxDateTime", got)
	}
	if got := MinDateTime.Add(-time.Hour); !got.Equal(MinDateTime) {
		t.Errorf("MinDateTime.Add(-1h) = %v, want MinDateTime", got)
	}
	got := Date(2024, time.March, 10, 1, 30, 0, 0, UTCKind).Add(time.Hour)
	if want := Date(2024, time.March, 10, 2, 30, 0, 0, UTCKind); !got.Equal(want) || got.Kind() != UTCKind {
		t.Errorf("Add = %v (%v), want %v preserving kind", got, got.Kind(), want)
	}
}

func TestSub(t *testing.T) {
	cases := []struct {
		name string
		a, b DateTime
		want time.Duration
	}{
		{
			name: "same day",
			a:    Date(2024, time.March, 10, 3, 0, 0, 0, Unspecified),
			b:    Date(2024, time.March, 10, 1, 30, 0, 0, Unspecified),
			want: 90 * time.Minute,
		},
		{
			name: "negative across midnight",
			a:    Date(2024, time.December, 31, 23, 0, 0, 0, Unspecified),
			b:    Date(2025, time.January, 1, 1, 0, 0, 0, Unspecified),
			want: -2 * time.Hour,
		},
		{
			name: "kinds do not affect the difference",
			a:    Date(2024, time.July, 1, 12, 0, 0, 0, UTCKind),
			b:    Date(2024, time.July, 1, 12, 0, 0, 0, LocalKind),
			want: 0,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Sub(c.b); got != c.want {
				t.Errorf("Sub = %v, want %v", got, c.want)
			}
		})
	}
}

func TestFromTimeKinds(t *testing.T) {
	utc := FromTime(time.Date(2024, time.July, 1, 12, 30, 0, 0, time.UTC))
	if utc.Kind() != UTCKind {
		t.Errorf("FromTime(UTC location) kind = %v, want UTC", utc.Kind())
	}
	local := FromTime(time.Date(2024, time.July, 1, 12, 30, 0, 0, time.FixedZone("X", 3600)))
	if local.Kind() != LocalKind {
		t.Errorf("FromTime(other location) kind = %v, want Local", local.Kind())
	}
	// the wall-clock fields carry over untouched by the location offset
	if !local.Equal(utc) {
		t.Errorf("FromTime wall fields differ: %v vs %v", local, utc)
	}
}

func TestAddDropsAmbiguityTag(t *testing.T) {
	z := pacificZone(t)
	tagged, err := FromUTC(Date(2024, time.November, 3, 8, 30, 0, 0, UTCKind), z)
	if err != nil {
		t.Fatalf("FromUTC: %v", err)
	}
	if !tagged.InAmbiguousDaylight() {
		t.Fatal("conversion into the repeated hour should tag the result")
	}
	if tagged.Add(time.Minute).InAmbiguousDaylight() {
		t.Error("shifted reading should not keep the tag")
	}
}
