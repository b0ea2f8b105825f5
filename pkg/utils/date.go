package utils

import (
	"time"

	"github.com/pkg/errors"
)

const secondsPerDay = 24 * 60 * 60

// ParseDate parses a YYYY-MM-DD query value. An empty string yields nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid date %q, expected YYYY-MM-DD", dateStr)
	}

	return &date, nil
}

// TruncateToDay keeps the calendar date of t and returns it as UTC midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func FirstOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns end - start in whole calendar days; negative when end precedes start.
func DaysBetween(start, end time.Time) int {
	return int((TruncateToDay(end).Unix() - TruncateToDay(start).Unix()) / secondsPerDay)
}
