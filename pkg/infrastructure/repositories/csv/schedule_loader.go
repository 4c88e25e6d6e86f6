package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkoide/drp/pkg/domain/entities"
)

// Loader handles loading delivery schedules from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadSchedule loads a draft delivery schedule from a CSV file. Rows marked
// cancelled are loaded with their soft-delete flag set, preserving the audit
// record. defaultQuantity seeds the resulting event set's fill quantity for
// later time edits.
func (l *Loader) LoadSchedule(filename string, defaultQuantity decimal.Decimal) (*entities.DeliveryEventSet, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"date", "time", "quantity_per_truck", "cancelled"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("schedule CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	set := entities.NewDeliveryEventSet(defaultQuantity)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("schedule CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		date, t, qty, err := parseScheduleRow(record)
		if err != nil {
			return nil, fmt.Errorf("schedule CSV row %d: %w", i+2, err)
		}
		ev, err := set.Add(date, t, qty)
		if err != nil {
			return nil, fmt.Errorf("schedule CSV row %d: %w", i+2, err)
		}
		ev.Cancelled = parseBool(record[3])
	}
	return set, nil
}

// LoadFinalizedPlan loads a finalized plan from a CSV file, used when a
// comparison baseline is exchanged as a file rather than read from the store.
func (l *Loader) LoadFinalizedPlan(filename string, plant entities.Plant, product entities.Product) (*entities.FinalizedPlan, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"date", "time", "quantity_per_truck", "cancelled", "status"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("plan CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	plan := &entities.FinalizedPlan{Plant: plant, Product: product}
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("plan CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		date, t, qty, err := parseScheduleRow(record)
		if err != nil {
			return nil, fmt.Errorf("plan CSV row %d: %w", i+2, err)
		}
		status, ok := entities.ParsePlanStatus(strings.TrimSpace(record[4]))
		if !ok {
			return nil, fmt.Errorf("plan CSV row %d: unknown status %q", i+2, record[4])
		}
		plan.Events = append(plan.Events, entities.FinalizedEvent{
			ID:               fmt.Sprintf("%s-%s-%d", plant, product, i),
			Date:             date,
			Time:             t,
			QuantityPerTruck: qty,
			Cancelled:        parseBool(record[3]),
			Status:           status,
		})
	}
	return plan, nil
}

func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open schedule file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV %s must have header and at least one data row", filename)
	}
	return records, nil
}

func parseScheduleRow(record []string) (time.Time, entities.ClockTime, decimal.Decimal, error) {
	date, err := time.ParseInLocation(entities.DateLayout, strings.TrimSpace(record[0]), time.UTC)
	if err != nil {
		return time.Time{}, 0, decimal.Zero, fmt.Errorf("parsing date %q: %w", record[0], err)
	}
	t, err := entities.ParseClockTime(strings.TrimSpace(record[1]))
	if err != nil {
		return time.Time{}, 0, decimal.Zero, err
	}
	qty, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return time.Time{}, 0, decimal.Zero, fmt.Errorf("parsing quantity %q: %w", record[2], err)
	}
	return date, t, qty, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return false
		}
	}
	return true
}
