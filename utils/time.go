package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateOnly strips the time component, keeping only the calendar date in UTC.
// Appointment and check-in dates are always stored in this form so equality
// comparisons against the date column behave.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// MinuteToClock renders a minutes-since-midnight offset as "HH:MM".
func MinuteToClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
