package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testDate() time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
}

func mustClock(t *testing.T, s string) ClockTime {
	t.Helper()
	ct, err := ParseClockTime(s)
	if err != nil {
		t.Fatalf("ParseClockTime(%q) failed: %v", s, err)
	}
	return ct
}

func TestDeliveryEventSet_AddValidatesGrid(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))

	ev, err := set.Add(testDate(), mustClock(t, "09:30"), decimal.NewFromInt(8))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if ev.ID == "" {
		t.Error("Expected event to receive an audit ID")
	}

	if _, err := set.Add(testDate(), ClockTime(9*60+15), decimal.NewFromInt(8)); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("Expected ErrInvalidTime for off-grid time, got %v", err)
	}
	if got := len(set.Events(testDate())); got != 1 {
		t.Errorf("Expected 1 round after rejected add, got %d", got)
	}
}

func TestDeliveryEventSet_CancelRestore(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))
	qty := decimal.NewFromInt(8)
	set.Add(testDate(), mustClock(t, "09:00"), qty)
	set.Add(testDate(), mustClock(t, "14:00"), qty)

	if err := set.Cancel(testDate(), 0); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	// Cancelled rounds contribute nothing but stay in the record.
	if got := set.DeliveryCount(testDate()); got != 1 {
		t.Errorf("DeliveryCount = %d, want 1", got)
	}
	if got := set.DeliveryQuantity(testDate()); !got.Equal(qty) {
		t.Errorf("DeliveryQuantity = %s, want %s", got, qty)
	}
	if got := len(set.Events(testDate())); got != 2 {
		t.Errorf("Expected 2 retained rounds, got %d", got)
	}

	if err := set.Restore(testDate(), 0); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := set.DeliveryQuantity(testDate()); !got.Equal(decimal.NewFromInt(16)) {
		t.Errorf("DeliveryQuantity after restore = %s, want 16", got)
	}

	if err := set.Cancel(testDate(), 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestDeliveryEventSet_EditQuantityBounds(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))
	set.Add(testDate(), mustClock(t, "09:00"), decimal.NewFromInt(8))

	testCases := []struct {
		name    string
		value   decimal.Decimal
		wantErr bool
	}{
		{"lower bound", decimal.NewFromInt(1), false},
		{"upper bound", decimal.NewFromInt(100), false},
		{"below", decimal.NewFromFloat(0.5), true},
		{"zero", decimal.Zero, true},
		{"above", decimal.NewFromInt(101), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := set.EditQuantity(testDate(), 0, tc.value)
			if tc.wantErr {
				if !errors.Is(err, ErrQuantityOutOfRange) {
					t.Errorf("Expected ErrQuantityOutOfRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("EditQuantity(%s) failed: %v", tc.value, err)
			}
		})
	}
}

func TestDeliveryEventSet_RejectedQuantityEditKeepsPriorValue(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))
	set.Add(testDate(), mustClock(t, "09:00"), decimal.NewFromInt(8))

	if err := set.EditQuantity(testDate(), 0, decimal.NewFromInt(200)); err == nil {
		t.Fatal("Expected out-of-range edit to fail")
	}
	if got := set.Events(testDate())[0].QuantityPerTruck; !got.Equal(decimal.NewFromInt(8)) {
		t.Errorf("Quantity = %s after rejected edit, want 8", got)
	}
}

func TestDeliveryEventSet_SetRoundTimes(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))
	set.Add(testDate(), mustClock(t, "09:00"), decimal.NewFromInt(8))
	set.Add(testDate(), mustClock(t, "14:00"), decimal.NewFromInt(6))

	times := []ClockTime{mustClock(t, "10:00"), mustClock(t, "15:00"), mustClock(t, "18:00")}
	if err := set.SetRoundTimes(testDate(), times, "shifted for tank cleaning"); err != nil {
		t.Fatalf("SetRoundTimes failed: %v", err)
	}

	rounds := set.Events(testDate())
	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(rounds))
	}
	if rounds[0].Time != mustClock(t, "10:00") {
		t.Errorf("Round 0 time = %s, want 10:00", rounds[0].Time)
	}
	// The grown round inherits the date's last quantity.
	if !rounds[2].QuantityPerTruck.Equal(decimal.NewFromInt(6)) {
		t.Errorf("Round 2 quantity = %s, want 6", rounds[2].QuantityPerTruck)
	}
}

func TestDeliveryEventSet_SetRoundTimesOnEmptyDayUsesDefault(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))

	if err := set.SetRoundTimes(testDate(), []ClockTime{mustClock(t, "08:00")}, "initial schedule"); err != nil {
		t.Fatalf("SetRoundTimes failed: %v", err)
	}
	rounds := set.Events(testDate())
	if len(rounds) != 1 || !rounds[0].QuantityPerTruck.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("Expected one round with default quantity 10, got %+v", rounds)
	}
}

func TestDeliveryEventSet_SetRoundTimesRequiresNote(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))
	set.Add(testDate(), mustClock(t, "09:00"), decimal.NewFromInt(8))

	err := set.SetRoundTimes(testDate(), []ClockTime{mustClock(t, "10:00")}, "")
	if !errors.Is(err, ErrEmptyNote) {
		t.Errorf("Expected ErrEmptyNote, got %v", err)
	}
	if set.Events(testDate())[0].Time != mustClock(t, "09:00") {
		t.Error("Rejected edit must leave round times unchanged")
	}
}

func TestDeliveryEventSet_SetRoundTimesRejectsZeroValidRounds(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))
	set.Add(testDate(), mustClock(t, "09:00"), decimal.NewFromInt(8))
	set.Add(testDate(), mustClock(t, "14:00"), decimal.NewFromInt(8))
	set.Cancel(testDate(), 0)
	set.Cancel(testDate(), 1)

	// Shrinking to only the cancelled round leaves zero valid rounds.
	err := set.SetRoundTimes(testDate(), []ClockTime{mustClock(t, "10:00")}, "note")
	if !errors.Is(err, ErrNoValidRounds) {
		t.Errorf("Expected ErrNoValidRounds, got %v", err)
	}

	// An empty time list is likewise a disguised full-day cancellation.
	err = set.SetRoundTimes(testDate(), nil, "note")
	if !errors.Is(err, ErrNoValidRounds) {
		t.Errorf("Expected ErrNoValidRounds for empty list, got %v", err)
	}
}

func TestDeliveryEventSet_CancelAllButOneRoundSucceeds(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))
	set.Add(testDate(), mustClock(t, "09:00"), decimal.NewFromInt(8))
	set.Add(testDate(), mustClock(t, "14:00"), decimal.NewFromInt(8))
	set.Cancel(testDate(), 0)

	err := set.SetRoundTimes(testDate(), []ClockTime{mustClock(t, "09:30"), mustClock(t, "15:00")}, "pushed back half an hour")
	if err != nil {
		t.Fatalf("Expected edit with one valid round to succeed: %v", err)
	}
	if set.DeliveryCount(testDate()) != 1 {
		t.Errorf("DeliveryCount = %d, want 1", set.DeliveryCount(testDate()))
	}
	// The surviving cancelled flag stays on round 0.
	if !set.Events(testDate())[0].Cancelled {
		t.Error("Expected round 0 to stay cancelled through the time edit")
	}
}

func TestDeliveryEventSet_Remove(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))
	set.Add(testDate(), mustClock(t, "09:00"), decimal.NewFromInt(8))
	set.Add(testDate(), mustClock(t, "14:00"), decimal.NewFromInt(6))

	if err := set.Remove(testDate(), 0); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	rounds := set.Events(testDate())
	if len(rounds) != 1 || rounds[0].Time != mustClock(t, "14:00") {
		t.Fatalf("Expected only the 14:00 round to remain, got %+v", rounds)
	}

	if err := set.Remove(testDate(), 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestDeliveryEventSet_DatesOrdered(t *testing.T) {
	set := NewDeliveryEventSet(decimal.NewFromInt(10))
	later := testDate().AddDate(0, 0, 5)
	set.Add(later, mustClock(t, "09:00"), decimal.NewFromInt(8))
	set.Add(testDate(), mustClock(t, "09:00"), decimal.NewFromInt(8))

	dates := set.Dates()
	if len(dates) != 2 {
		t.Fatalf("Expected 2 dates, got %d", len(dates))
	}
	if !dates[0].Equal(testDate()) || !dates[1].Equal(later) {
		t.Errorf("Dates not in calendar order: %v", dates)
	}
}
