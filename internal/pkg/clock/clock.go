// Package clock implements wall-clock time-of-day arithmetic on "HH:MM"
// strings. There is no date and no timezone: a Clock is the offset from
// local midnight.
package clock

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidFormat is returned when a string is not a valid "HH:MM" time.
var ErrInvalidFormat = errors.New("time must be in HH:MM format")

var clockRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Clock is a time of day expressed as the duration since midnight.
type Clock time.Duration

// Parse converts "HH:MM" into a Clock.
func Parse(s string) (Clock, error) {
	if !clockRegex.MatchString(s) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}

	hours, _ := strconv.Atoi(s[:2])
	minutes, _ := strconv.Atoi(s[3:])
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}

	return Clock(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute), nil
}

// IsValid reports whether s parses as a Clock.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// String formats the clock back to "HH:MM".
func (c Clock) String() string {
	d := time.Duration(c)
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// AbsDiff returns |a - b|.
func AbsDiff(a, b Clock) time.Duration {
	d := time.Duration(a - b)
	if d < 0 {
		return -d
	}
	return d
}

// HoursBetween returns the elapsed hours from start to end.
// An end at or before start yields 0: shifts that cross midnight are not
// supported and are counted as zero hours rather than negative ones.
func HoursBetween(start, end Clock) float64 {
	if end <= start {
		return 0
	}
	return time.Duration(end - start).Seconds() / 3600
}

// Hours is HoursBetween over raw strings. Either side missing or malformed
// counts as an open shift and yields 0.
func Hours(start, end string) float64 {
	if start == "" || end == "" {
		return 0
	}
	s, err := Parse(start)
	if err != nil {
		return 0
	}
	e, err := Parse(end)
	if err != nil {
		return 0
	}
	return HoursBetween(s, e)
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
