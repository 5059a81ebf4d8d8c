package checklist

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// Direction says which side of the anchor date a relative deadline falls on.
type Direction string

const (
	Antes  Direction = "antes"
	Depois Direction = "depois"
)

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ShiftDate moves base by relativeDays whole days, backwards for Antes and
// forwards for Depois, and truncates the result to calendar-date precision.
// A zero offset returns the base date for either direction.
func ShiftDate(base time.Time, relativeDays int, dir Direction) time.Time {
	shift := time.Duration(relativeDays) * 24 * time.Hour

	var shifted time.Time
	if dir == Antes {
		shifted = base.Add(-shift)
	} else {
		shifted = base.Add(shift)
	}

	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, time.UTC)
}
