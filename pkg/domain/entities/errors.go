package entities

import "errors"

// Sentinel errors for the planning domain. Call sites wrap these with
// fmt.Errorf("...: %w", err) so callers can classify failures with errors.Is
// while still seeing the offending value in the message.
var (
	// ErrIndexOutOfRange is returned for negative day or round indexes.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidValue is returned when a rate or stock value is negative.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidTime is returned when a delivery time is off the 30-minute grid.
	ErrInvalidTime = errors.New("invalid delivery time")

	// ErrQuantityOutOfRange is returned when a per-truck quantity falls
	// outside the permitted bounds.
	ErrQuantityOutOfRange = errors.New("quantity out of range")

	// ErrEmptyNote is returned when a time edit is submitted without a
	// recorded justification.
	ErrEmptyNote = errors.New("edit note cannot be empty")

	// ErrNoValidRounds is returned when a time edit would leave a date with
	// zero non-cancelled rounds. Cancelling a whole day must go through the
	// cancellation workflow, not a time edit.
	ErrNoValidRounds = errors.New("time edit would leave no valid rounds")

	// ErrSettingNotFound is returned by calibration stores when no setting
	// exists for a plant/product pair.
	ErrSettingNotFound = errors.New("calibration setting not found")

	// ErrPlanNotFound is returned by plan stores when no finalized plan
	// exists for a plant/product pair.
	ErrPlanNotFound = errors.New("finalized plan not found")

	// ErrComparisonUnavailable is returned when the finalized plan needed for
	// conflict comparison could not be loaded. The draft itself stays editable.
	ErrComparisonUnavailable = errors.New("comparison unavailable")
)
