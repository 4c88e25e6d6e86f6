package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkoide/drp/pkg/domain/entities"
)

func TestConflictDetector_ForwardWindow(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	qty := decimal.NewFromInt(10)
	detector := NewConflictDetector()

	testCases := []struct {
		name     string
		bTime    string
		conflict bool
	}{
		{"90min after anchor", "15:30", true},
		{"same time", "14:00", true},
		{"window edge at +120min", "16:00", true},
		{"just past the window", "16:30", false},
		// A baseline arrival before the anchor is never flagged, even
		// though symmetric intervals would intersect.
		{"before anchor", "13:00", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setA := entities.NewDeliveryEventSet(qty)
			setB := entities.NewDeliveryEventSet(qty)
			addEvent(t, setA, date, "14:00", qty)
			addEvent(t, setB, date, tc.bTime, qty)

			conflicts := detector.FindConflicts(setA, setB)
			if tc.conflict && len(conflicts) != 1 {
				t.Fatalf("Expected 1 conflict, got %d", len(conflicts))
			}
			if !tc.conflict && len(conflicts) != 0 {
				t.Fatalf("Expected no conflicts, got %d", len(conflicts))
			}
			if tc.conflict && !conflicts[0].Overlapping {
				t.Error("Expected annotation marked overlapping")
			}
		})
	}
}

func TestConflictDetector_DifferentDatesNeverConflict(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	qty := decimal.NewFromInt(10)

	setA := entities.NewDeliveryEventSet(qty)
	setB := entities.NewDeliveryEventSet(qty)
	addEvent(t, setA, date, "14:00", qty)
	addEvent(t, setB, date.AddDate(0, 0, 1), "14:30", qty)

	if conflicts := NewConflictDetector().FindConflicts(setA, setB); len(conflicts) != 0 {
		t.Errorf("Expected no conflicts across dates, got %d", len(conflicts))
	}
}

func TestConflictDetector_ExcludesCancelled(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	qty := decimal.NewFromInt(10)

	setA := entities.NewDeliveryEventSet(qty)
	setB := entities.NewDeliveryEventSet(qty)
	addEvent(t, setA, date, "14:00", qty)
	addEvent(t, setB, date, "15:00", qty)
	setB.Cancel(date, 0)

	if conflicts := NewConflictDetector().FindConflicts(setA, setB); len(conflicts) != 0 {
		t.Errorf("Expected cancelled baseline round to be excluded, got %d conflicts", len(conflicts))
	}

	setB.Restore(date, 0)
	setA.Cancel(date, 0)
	if conflicts := NewConflictDetector().FindConflicts(setA, setB); len(conflicts) != 0 {
		t.Errorf("Expected cancelled draft round to be excluded, got %d conflicts", len(conflicts))
	}
}

func TestConflictDetector_MultipleRounds(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	qty := decimal.NewFromInt(10)

	setA := entities.NewDeliveryEventSet(qty)
	setB := entities.NewDeliveryEventSet(qty)
	addEvent(t, setA, date, "08:00", qty)
	addEvent(t, setA, date, "14:00", qty)
	addEvent(t, setB, date, "09:00", qty)
	addEvent(t, setB, date, "15:00", qty)

	conflicts := NewConflictDetector().FindConflicts(setA, setB)
	if len(conflicts) != 2 {
		t.Fatalf("Expected 2 conflicts (08->09, 14->15), got %d", len(conflicts))
	}
}

func addEvent(t *testing.T, set *entities.DeliveryEventSet, date time.Time, clock string, qty decimal.Decimal) {
	t.Helper()
	if _, err := set.Add(date, mustTime(t, clock), qty); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
}
