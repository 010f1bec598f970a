// Package timeofday handles wall-clock times of day expressed as "HH:MM".
//
// A Clock is the number of minutes since midnight. Shifting a clock never
// crosses into another day: results are clamped to the [00:00, 23:59] range,
// so a 10 minute buffer before 00:05 yields 00:00 and after 23:55 yields 23:59.
package timeofday

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour

	Midnight Clock = 0
	EndOfDay Clock = MinutesPerDay - 1
)

var ErrInvalidClock = errors.New("invalid time of day, expected HH:MM (00:00-23:59)")

type Clock int

func Parse(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 || !isDigits(hh) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 || !isDigits(mm) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	return Clock(hours*MinutesPerHour + minutes), nil
}

func MustParse(s string) Clock {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/MinutesPerHour, int(c)%MinutesPerHour)
}

// Add shifts c by the given number of minutes, clamped to the same day.
func (c Clock) Add(minutes int) Clock {
	shifted := int(c) + minutes
	if shifted < int(Midnight) {
		return Midnight
	}
	if shifted > int(EndOfDay) {
		return EndOfDay
	}
	return Clock(shifted)
}

func (c Clock) Before(other Clock) bool {
	return c < other
}

// Adjust parses s, shifts it by minutes and formats the result.
func Adjust(s string, minutes int) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.Add(minutes).String(), nil
}

// Overlaps reports whether the half-open ranges [aFrom, aTo) and [bFrom, bTo) intersect.
func Overlaps(aFrom, aTo, bFrom, bTo Clock) bool {
	return aFrom < bTo && aTo > bFrom
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
