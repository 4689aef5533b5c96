package diary

import "time"

// dateOnly strips the clock from a timestamp. All activation and
// urgency comparisons are calendar-date comparisons: an event due today
// stays active until midnight regardless of the hour.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// monthsEarlier walks back n calendar months from d, clamping the day
// of month when the target month is shorter. March 31 minus one month
// is February 28 (29 in a leap year), not March 3.
func monthsEarlier(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// daysBetween returns the whole calendar days from a to b, negative
// when b is before a.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)) / (24 * time.Hour))
}
