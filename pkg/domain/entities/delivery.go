package entities

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Truck quantity bounds enforced on quantity edits.
var (
	minTruckQuantity = decimal.NewFromInt(1)
	maxTruckQuantity = decimal.NewFromInt(100)
)

// ValidateTruckQuantity checks a per-truck quantity against the permitted
// bounds.
func ValidateTruckQuantity(q decimal.Decimal) error {
	if q.LessThan(minTruckQuantity) || q.GreaterThan(maxTruckQuantity) {
		return fmt.Errorf("%w: %s not within [%s, %s]", ErrQuantityOutOfRange,
			q, minTruckQuantity, maxTruckQuantity)
	}
	return nil
}

// DeliveryEvent is one scheduled truck arrival (a "round") within a day.
// Cancellation is a soft delete: a cancelled round contributes nothing to the
// projection or to conflict detection but stays in the record for audit and
// undo.
type DeliveryEvent struct {
	ID               string
	Date             time.Time
	Time             ClockTime
	QuantityPerTruck decimal.Decimal
	Cancelled        bool
	Note             string
}

// DeliveryEventSet holds the scheduled rounds for a draft plan, keyed by date.
// Insertion order within a date is the round order.
type DeliveryEventSet struct {
	days            map[string][]*DeliveryEvent
	defaultQuantity decimal.Decimal
}

// NewDeliveryEventSet creates an empty event set. defaultQuantity seeds the
// per-truck quantity of rounds created by a time edit that grows a day's
// round count (typically the calibrated delivery amount for the product).
func NewDeliveryEventSet(defaultQuantity decimal.Decimal) *DeliveryEventSet {
	return &DeliveryEventSet{
		days:            make(map[string][]*DeliveryEvent),
		defaultQuantity: defaultQuantity,
	}
}

// Add appends a round to the date's sequence. The time must sit on the
// 30-minute grid.
func (s *DeliveryEventSet) Add(date time.Time, t ClockTime, quantityPerTruck decimal.Decimal) (*DeliveryEvent, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	ev := &DeliveryEvent{
		ID:               uuid.NewString(),
		Date:             DateOnly(date),
		Time:             t,
		QuantityPerTruck: quantityPerTruck,
	}
	key := ev.Date.Format(DateLayout)
	s.days[key] = append(s.days[key], ev)
	return ev, nil
}

// Cancel soft-deletes the round at the given index for a date.
func (s *DeliveryEventSet) Cancel(date time.Time, index int) error {
	ev, err := s.event(date, index)
	if err != nil {
		return err
	}
	ev.Cancelled = true
	return nil
}

// Restore clears the cancelled flag on the round at the given index.
func (s *DeliveryEventSet) Restore(date time.Time, index int) error {
	ev, err := s.event(date, index)
	if err != nil {
		return err
	}
	ev.Cancelled = false
	return nil
}

// Remove hard-deletes the round at the given index. Cancellation is the
// normal path; removal exists for explicit record destruction only.
func (s *DeliveryEventSet) Remove(date time.Time, index int) error {
	key := DateOnly(date).Format(DateLayout)
	rounds := s.days[key]
	if index < 0 || index >= len(rounds) {
		return fmt.Errorf("%w: round %d of %d on %s", ErrIndexOutOfRange, index, len(rounds), key)
	}
	s.days[key] = append(rounds[:index], rounds[index+1:]...)
	if len(s.days[key]) == 0 {
		delete(s.days, key)
	}
	return nil
}

// SetRoundTimes replaces the ordered time list for a date; the length of
// times becomes the date's new round count. Every time edit requires a
// non-empty note, and the resulting day must keep at least one non-cancelled
// round. Cancelled flags survive by round index; rounds grown beyond the old
// count inherit the date's last quantity, or the set's default quantity on a
// previously empty day.
func (s *DeliveryEventSet) SetRoundTimes(date time.Time, times []ClockTime, note string) error {
	if note == "" {
		return fmt.Errorf("%w: time edit on %s", ErrEmptyNote, DateOnly(date).Format(DateLayout))
	}
	for _, t := range times {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	key := DateOnly(date).Format(DateLayout)
	old := s.days[key]

	valid := 0
	for i := range times {
		if i >= len(old) || !old[i].Cancelled {
			valid++
		}
	}
	if valid == 0 {
		return fmt.Errorf("%w: on %s; cancel the day's deliveries instead", ErrNoValidRounds, key)
	}

	fillQty := s.defaultQuantity
	if len(old) > 0 {
		fillQty = old[len(old)-1].QuantityPerTruck
	}

	rounds := make([]*DeliveryEvent, len(times))
	for i, t := range times {
		if i < len(old) {
			old[i].Time = t
			old[i].Note = note
			rounds[i] = old[i]
			continue
		}
		rounds[i] = &DeliveryEvent{
			ID:               uuid.NewString(),
			Date:             DateOnly(date),
			Time:             t,
			QuantityPerTruck: fillQty,
			Note:             note,
		}
	}
	s.days[key] = rounds
	return nil
}

// EditQuantity changes the per-truck quantity of one round, bounds-checked.
func (s *DeliveryEventSet) EditQuantity(date time.Time, index int, quantity decimal.Decimal) error {
	ev, err := s.event(date, index)
	if err != nil {
		return err
	}
	if err := ValidateTruckQuantity(quantity); err != nil {
		return err
	}
	ev.QuantityPerTruck = quantity
	return nil
}

// Events returns the ordered rounds for a date, cancelled included.
func (s *DeliveryEventSet) Events(date time.Time) []*DeliveryEvent {
	return s.days[DateOnly(date).Format(DateLayout)]
}

// Dates returns every date carrying at least one round, in calendar order.
func (s *DeliveryEventSet) Dates() []time.Time {
	keys := make([]string, 0, len(s.days))
	for k := range s.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	dates := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		d, err := time.ParseInLocation(DateLayout, k, time.UTC)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

// ActiveEvents returns every non-cancelled round across all dates, ordered by
// date then round index.
func (s *DeliveryEventSet) ActiveEvents() []*DeliveryEvent {
	var out []*DeliveryEvent
	for _, d := range s.Dates() {
		for _, ev := range s.Events(d) {
			if !ev.Cancelled {
				out = append(out, ev)
			}
		}
	}
	return out
}

// DeliveryCount returns the number of non-cancelled rounds on a date.
func (s *DeliveryEventSet) DeliveryCount(date time.Time) int {
	n := 0
	for _, ev := range s.Events(date) {
		if !ev.Cancelled {
			n++
		}
	}
	return n
}

// DeliveryQuantity returns the summed per-truck quantity of the non-cancelled
// rounds on a date.
func (s *DeliveryEventSet) DeliveryQuantity(date time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, ev := range s.Events(date) {
		if !ev.Cancelled {
			total = total.Add(ev.QuantityPerTruck)
		}
	}
	return total
}

func (s *DeliveryEventSet) event(date time.Time, index int) (*DeliveryEvent, error) {
	key := DateOnly(date).Format(DateLayout)
	rounds := s.days[key]
	if index < 0 || index >= len(rounds) {
		return nil, fmt.Errorf("%w: round %d of %d on %s", ErrIndexOutOfRange, index, len(rounds), key)
	}
	return rounds[index], nil
}
