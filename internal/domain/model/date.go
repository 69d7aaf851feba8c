package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateKeyLayout is the time layout of a date key (YYYY-MM-DD).
const DateKeyLayout = "2006-01-02"

// editableWindowDays is how many days before today a record may still be
// edited from the tracker form.
const editableWindowDays = 2

// ErrInvalidDateKey is returned when a string is not a well-formed date key.
var ErrInvalidDateKey = errors.New("invalid date key")

// DateKey formats the calendar date of t, in t's location, as YYYY-MM-DD.
// The time of day is ignored.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key into midnight of that date in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDateKey, key)
	}
	return t, nil
}

// IsDateKey reports whether key is a well-formed date key.
func IsDateKey(key string) bool {
	_, err := time.Parse(DateKeyLayout, key)
	return err == nil
}

// AddDays returns midnight of the calendar date n days after d (n may be
// negative). Month, year, and DST boundaries are handled by time.Date.
func AddDays(d time.Time, n int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day()+n, 0, 0, 0, 0, d.Location())
}

// DaysBetween returns the rounded number of whole days from b to a, so
// DaysBetween(today, yesterday) == 1.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(a.Sub(b).Hours() / 24))
}

// Today returns midnight of now's calendar date in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// IsEditable reports whether the day at date may be edited from the tracker
// form: today or one of the two preceding days. This is a presentation
// policy; the history itself accepts writes for any date.
func IsEditable(today, date time.Time) bool {
	diff := DaysBetween(today, date)
	return diff >= 0 && diff <= editableWindowDays
}
