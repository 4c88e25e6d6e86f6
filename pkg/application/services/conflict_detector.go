package services

import (
	"github.com/tkoide/drp/pkg/domain/entities"
)

// ConflictDetector flags pairs of deliveries from two independently edited
// schedules (typically complementary products sharing a plant's unloading
// resource) whose arrival windows collide.
type ConflictDetector struct{}

// NewConflictDetector creates a new ConflictDetector.
func NewConflictDetector() *ConflictDetector {
	return &ConflictDetector{}
}

// FindConflicts compares every non-cancelled event in setA against every
// non-cancelled event in setB. Events a and b conflict iff they share a date
// and a.time <= b.time <= a.time + 120 minutes.
//
// The window is forward-only and anchored at the setA event: a setB delivery
// arriving before the anchor is not flagged even when symmetric intervals
// would intersect. This asymmetry is intentional dispatch behavior and must
// not be widened to symmetric overlap.
func (d *ConflictDetector) FindConflicts(setA, setB *entities.DeliveryEventSet) []entities.ConflictAnnotation {
	var conflicts []entities.ConflictAnnotation
	for _, a := range setA.ActiveEvents() {
		for _, b := range setB.Events(a.Date) {
			if b.Cancelled {
				continue
			}
			if a.Time <= b.Time && b.Time <= a.Time.Add(entities.ConflictWindowMinutes) {
				conflicts = append(conflicts, entities.ConflictAnnotation{
					EventA:      a,
					EventB:      b,
					Overlapping: true,
				})
			}
		}
	}
	return conflicts
}
