// Package availability computes bookable time slots from business hours and
// existing reservations. Everything here is pure and safe for concurrent use.
package availability

import (
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay is the modulus applied to clock arithmetic.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidClock is returned for time-of-day values not in "HH:MM" form.
	ErrInvalidClock = errors.New("availability: invalid time of day")
	// ErrInvalidDuration is returned for non-positive slot durations.
	ErrInvalidDuration = errors.New("availability: duration must be positive")
	// ErrInvalidDate is returned for dates not in "YYYY-MM-DD" form.
	ErrInvalidDate = errors.New("availability: invalid date")
)

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock parses a 24-hour "HH:MM" value.
func ParseClock(value string) (Clock, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// String formats the clock as zero-padded "HH:MM", wrapping past midnight.
func (c Clock) String() string {
	minutes := int(c) % MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Add returns the clock shifted by the given number of minutes, wrapped modulo one day.
func (c Clock) Add(minutes int) Clock {
	shifted := (int(c) + minutes) % MinutesPerDay
	if shifted < 0 {
		shifted += MinutesPerDay
	}
	return Clock(shifted)
}

// AddMinutes adds minutes to an "HH:MM" value. "23:30" plus 60 is "00:30".
func AddMinutes(value string, minutes int) (string, error) {
	c, err := ParseClock(value)
	if err != nil {
		return "", err
	}
	return c.Add(minutes).String(), nil
}

// Weekday returns the day of week of a "YYYY-MM-DD" date. The date is treated
// as a calendar date, without any time zone conversion.
func Weekday(date string) (time.Weekday, error) {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t.Weekday(), nil
}
