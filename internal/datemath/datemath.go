// Package datemath implements proleptic Gregorian calendar arithmetic for
// resolving daylight saving transition dates. It deliberately avoids
// time.Location: resolving a zone's transition dates must not depend on any
// zone data being loaded.
package datemath

import "time"

// IsLeapYear determines if the year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in a given month for a specific year.
func DaysInMonth(year int, month time.Month) int {
	if month == time.February {
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

// DayOfWeek calculates the day of the week for a given date using Zeller's
// congruence, adjusted so that time.Sunday=0, ..., time.Saturday=6.
func DayOfWeek(year int, month time.Month, day int) time.Weekday {
	m := int(month)
	if m < 3 {
		m += 12
		year--
	}
	k := year % 100
	j := year / 100
	h := (day + ((13 * (m + 1)) / 5) + k + (k / 4) + (j / 4) + (5 * j)) % 7
	return time.Weekday((h + 6) % 7)
}

// NthWeekdayOfMonth returns the day of the month of the nth (1-based)
// occurrence of the given weekday on or after the 1st of the month.
// The caller must pass n in 1..4 so the occurrence always exists.
func NthWeekdayOfMonth(year int, month time.Month, n int, weekday time.Weekday) int {
	first := DayOfWeek(year, month, 1)
	offset := (int(weekday)-int(first)+7)%7 + 7*(n-1)
	return 1 + offset
}

// LastWeekdayOfMonth returns the day of the month of the last occurrence of
// the given weekday in the month.
func LastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) int {
	last := DaysInMonth(year, month)
	offset := (int(DayOfWeek(year, month, last)) - int(weekday) + 7) % 7
	return last - offset
}
