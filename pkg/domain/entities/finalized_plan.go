package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanStatus tags an event in a previously finalized plan.
type PlanStatus int

const (
	StatusSent PlanStatus = iota
	StatusConfirmed
	StatusModify
	StatusDone
)

// String method for PlanStatus enum
func (s PlanStatus) String() string {
	switch s {
	case StatusSent:
		return "sent"
	case StatusConfirmed:
		return "confirmed"
	case StatusModify:
		return "modify"
	case StatusDone:
		return "done"
	default:
		return "unknown"
	}
}

// ParsePlanStatus parses the wire form of a plan status tag.
func ParsePlanStatus(s string) (PlanStatus, bool) {
	switch s {
	case "sent":
		return StatusSent, true
	case "confirmed":
		return StatusConfirmed, true
	case "modify":
		return StatusModify, true
	case "done":
		return StatusDone, true
	default:
		return 0, false
	}
}

// FinalizedEvent is one delivery in a previously submitted plan, as read from
// the persistence service.
type FinalizedEvent struct {
	ID               string
	Date             time.Time
	Time             ClockTime
	QuantityPerTruck decimal.Decimal
	Cancelled        bool
	Status           PlanStatus
}

// FinalizedPlan is a previously submitted schedule used as the comparison
// baseline for conflict detection. It is read-only to the engine.
type FinalizedPlan struct {
	Plant   Plant
	Product Product
	Events  []FinalizedEvent
}

// ToEventSet materializes the plan as a DeliveryEventSet so it can feed the
// conflict detector. Cancelled deliveries are carried over with their flag
// intact and excluded there.
func (p *FinalizedPlan) ToEventSet() *DeliveryEventSet {
	set := NewDeliveryEventSet(decimal.Zero)
	for _, fe := range p.Events {
		ev, err := set.Add(fe.Date, fe.Time, fe.QuantityPerTruck)
		if err != nil {
			continue
		}
		ev.ID = fe.ID
		ev.Cancelled = fe.Cancelled
	}
	return set
}
