package entities

import (
	"fmt"
	"time"
)

// Plant identifies one of the production plants a schedule belongs to.
type Plant string

// Product identifies a delivered chemical product.
type Product string

// Horizon is the inclusive date range a draft plan covers.
type Horizon struct {
	Start time.Time
	End   time.Time
}

// NewHorizon creates a validated Horizon. Both dates are normalized to
// midnight UTC; the range is inclusive on both ends.
func NewHorizon(start, end time.Time) (*Horizon, error) {
	start = DateOnly(start)
	end = DateOnly(end)
	if end.Before(start) {
		return nil, fmt.Errorf("horizon end %s before start %s", end.Format(DateLayout), start.Format(DateLayout))
	}
	return &Horizon{Start: start, End: end}, nil
}

// NewHorizonDays creates a Horizon of the given length starting at start.
func NewHorizonDays(start time.Time, days int) (*Horizon, error) {
	if days < 1 {
		return nil, fmt.Errorf("horizon must cover at least one day, got %d", days)
	}
	start = DateOnly(start)
	return &Horizon{Start: start, End: start.AddDate(0, 0, days-1)}, nil
}

// DayCount returns the number of days in the horizon.
func (h *Horizon) DayCount() int {
	return int(h.End.Sub(h.Start).Hours()/24) + 1
}

// Date returns the calendar date at the given day index.
func (h *Horizon) Date(i int) time.Time {
	return h.Start.AddDate(0, 0, i)
}

// IndexOf returns the day index for a date, or false when the date falls
// outside the horizon.
func (h *Horizon) IndexOf(date time.Time) (int, bool) {
	date = DateOnly(date)
	if date.Before(h.Start) || date.After(h.End) {
		return 0, false
	}
	return int(date.Sub(h.Start).Hours() / 24), true
}

// DateLayout is the canonical date format used across stores and files.
const DateLayout = "2006-01-02"

// DateOnly strips the clock component, leaving midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
