package lib

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IMAPDateLayout is the date format used by SEARCH BEFORE/SINCE (RFC 3501 "date")
const IMAPDateLayout = "02-Jan-2006"

// Cutoff returns the calendar date daysAgo days before now, at midnight in now's location.
// Messages received strictly before that date are old enough to be swept.
func Cutoff(now time.Time, daysAgo int) (time.Time, error) {
	if daysAgo < 0 {
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidDays, daysAgo)
	}
	year, month, day := now.Date()
	return time.Date(year, month, day-daysAgo, 0, 0, 0, 0, now.Location()), nil
}

func FormatIMAPDate(date time.Time) string {
	return date.Format(IMAPDateLayout)
}

// ParseDays converts an operator input into a number of days
func ParseDays(input string) (int, error) {
	input = strings.TrimSpace(input)
	days, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDays, input)
	}
	if days < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDays, days)
	}
	return days, nil
}
