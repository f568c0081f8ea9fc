// Package calendar works with civil (day-granularity) dates.
//
// Dates are stored as midnight UTC of the civil day they represent, so the
// year/month/day of a stored value is its calendar date regardless of the
// database driver. Instants (such as "now") are converted with Civil after
// being placed in the location whose calendar applies.
package calendar

import "time"

// DateLayout is the wire format for civil dates.
const DateLayout = "2006-01-02"

// Date returns the stored form of the given civil date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Civil returns the stored form of t's calendar day, read in t's own location.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Parse parses a YYYY-MM-DD string into its stored form.
func Parse(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date, each read
// in its own location.
func SameDay(a, b time.Time) bool {
	return key(a) == key(b)
}

// Within reports whether d's calendar date lies in the closed range [start, end].
func Within(d, start, end time.Time) bool {
	k := key(d)
	return key(start) <= k && k <= key(end)
}

// Before reports whether a's calendar date is strictly before b's.
func Before(a, b time.Time) bool {
	return key(a) < key(b)
}

// DaysBetween returns the number of calendar days from `from` to `to`.
// The result is negative when `to` is earlier.
func DaysBetween(from, to time.Time) int {
	return int(Civil(to).Sub(Civil(from)).Hours() / 24)
}

func key(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
