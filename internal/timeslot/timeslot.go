// Package timeslot provides the half-open interval arithmetic shared by the
// availability and booking paths.  Every overlap decision in the system goes
// through Overlaps; reservation-vs-reservation and candidate-vs-block checks
// must never diverge in comparison operators, since mixing `<` and `<=` across
// call sites is a classic source of off-by-one double bookings.
package timeslot

import (
	"errors"
	"regexp"
	"time"
)

// DefaultDurationHours is the reservation duration assumed when a booking
// does not specify one.
const DefaultDurationHours = 2

// ErrInvalidDate is returned when a date string is not a real calendar date
// in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// ErrInvalidTime is returned when a time string is not a 24-hour HH:MM value.
var ErrInvalidTime = errors.New("invalid time format, expected HH:MM (24-hour)")

// timePattern matches 24-hour clock values from 00:00 to 23:59.
var timePattern = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// Window is a half-open time interval [Start, End) on the absolute timeline,
// constructed from a date plus a clock offset.  A late booking may extend past
// midnight arithmetically, but conflict scans are scoped to a single
// reservation date, so such a window is only compared against that date's
// rows.
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open windows intersect.  Back-to-back
// windows ([10:00,12:00) vs [12:00,14:00)) do not overlap; identical starts do.
func Overlaps(a, b Window) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// ParseDate validates and parses a YYYY-MM-DD date.  time.Parse already
// rejects impossible dates such as 2024-02-30.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseClock validates a 24-hour HH:MM string and returns the offset from
// midnight.
func ParseClock(s string) (time.Duration, error) {
	if !timePattern.MatchString(s) {
		return 0, ErrInvalidTime
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// At anchors a clock offset on a date, producing the absolute start instant.
func At(date time.Time, clock time.Duration) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).Add(clock)
}

// FromDuration builds the window for an interval that stores a start plus a
// duration in hours, which is how reservations are persisted.
func FromDuration(date time.Time, clock time.Duration, hours int) Window {
	if hours <= 0 {
		hours = DefaultDurationHours
	}
	start := At(date, clock)
	return Window{Start: start, End: start.Add(time.Duration(hours) * time.Hour)}
}

// FromRange builds the window for an interval that stores explicit start and
// end clock values, which is how admin blocks are persisted.
func FromRange(date time.Time, startClock, endClock time.Duration) Window {
	return Window{Start: At(date, startClock), End: At(date, endClock)}
}

// Candidate returns the window a new booking request at the given time would
// occupy.  The same symmetric [T, T+D) window is checked against both
// reservations and blocks.
func Candidate(date time.Time, clock time.Duration) Window {
	return FromDuration(date, clock, DefaultDurationHours)
}
