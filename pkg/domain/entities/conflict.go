package entities

// ConflictWindowMinutes is the forward-only window after an anchor event
// within which a second delivery on the same date is flagged.
const ConflictWindowMinutes = 120

// ConflictAnnotation marks a pair of deliveries whose time windows overlap.
// Annotations are derived and advisory: they are recomputed whenever either
// event set changes and never block saving a draft.
type ConflictAnnotation struct {
	EventA      *DeliveryEvent
	EventB      *DeliveryEvent
	Overlapping bool
}
