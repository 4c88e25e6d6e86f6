package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a time of day expressed as minutes since midnight.
// Delivery slots run on a 30-minute grid over the domain 00:00-24:00.
type ClockTime int

// TimeGridMinutes is the slot granularity for delivery times.
const TimeGridMinutes = 30

// maxClockTime is the upper bound of the time domain (24:00).
const maxClockTime ClockTime = 24 * 60

// ParseClockTime parses an "HH:MM" string into a ClockTime, enforcing the
// 30-minute grid and the 00:00-24:00 domain.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTime, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidTime, s)
	}
	ct := ClockTime(hour*60 + minute)
	if err := ct.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return ct, nil
}

// Validate checks the domain and grid constraints.
func (c ClockTime) Validate() error {
	if c < 0 || c > maxClockTime {
		return fmt.Errorf("%w: %d minutes outside 00:00-24:00", ErrInvalidTime, int(c))
	}
	if c%TimeGridMinutes != 0 {
		return fmt.Errorf("%w: %s not on the %d-minute grid", ErrInvalidTime, c, TimeGridMinutes)
	}
	return nil
}

// Add returns the clock time shifted by the given number of minutes.
// The result is not wrapped; comparisons past 24:00 stay meaningful for
// window arithmetic.
func (c ClockTime) Add(minutes int) ClockTime {
	return c + ClockTime(minutes)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}
